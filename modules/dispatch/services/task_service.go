package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskdesk/taskdesk/modules/dispatch/domain/aggregates/task"
	"github.com/taskdesk/taskdesk/modules/dispatch/domain/entities/worker"
	"github.com/taskdesk/taskdesk/pkg/composables"
	"github.com/taskdesk/taskdesk/pkg/eventbus"
)

// TaskService guards task mutations after commit: status transitions,
// reassignment and the finalization sweep. Permission checks branch on the
// typed actor role, never on routing metadata.
type TaskService struct {
	repo      task.Repository
	workers   worker.Repository
	publisher eventbus.EventBus
}

func NewTaskService(repo task.Repository, workers worker.Repository, publisher eventbus.EventBus) *TaskService {
	return &TaskService{
		repo:      repo,
		workers:   workers,
		publisher: publisher,
	}
}

func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns tasks visible to the caller. Workers only ever see their own
// tasks (by the canonical assignee field); admins may filter freely.
func (s *TaskService) List(ctx context.Context, params *task.FindParams) ([]task.Task, int64, error) {
	actor, err := composables.UseActor(ctx)
	if err != nil {
		return nil, 0, err
	}
	if params == nil {
		params = &task.FindParams{}
	}
	if !actor.IsAdmin() {
		actorID := actor.ID
		params.AssignedWorkerID = &actorID
	}

	items, err := s.repo.GetPaginated(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateStatus applies a status transition under the role rules: admins may
// set any valid status on any task; workers only on tasks assigned to them,
// and never the administrative failed status. Transition ordering is
// deliberately permissive; pending may jump straight to completed.
func (s *TaskService) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (task.Task, error) {
	actor, err := composables.UseActor(ctx)
	if err != nil {
		return task.Task{}, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return task.Task{}, err
	}

	status, ok := task.ParseStatus(rawStatus)
	if !ok {
		return task.Task{}, task.ErrInvalidStatus
	}

	if !actor.IsAdmin() {
		if !existing.IsAssignedTo(actor.ID) {
			return task.Task{}, task.ErrNotAssigned
		}
		if status == task.StatusFailed {
			return task.Task{}, task.ErrForbidden
		}
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return task.Task{}, err
	}

	s.publisher.Publish(&task.StatusChangedEvent{
		TaskID:   updated.ID(),
		Previous: existing.Status(),
		Current:  updated.Status(),
		ActorID:  actor.ID,
	})
	return updated, nil
}

// Reassign moves a task to another worker. Admin-only; the target must exist
// and be active. Status is never touched here.
func (s *TaskService) Reassign(ctx context.Context, id uuid.UUID, workerID uuid.UUID) (task.Task, error) {
	actor, err := composables.UseActor(ctx)
	if err != nil {
		return task.Task{}, err
	}
	if !actor.IsAdmin() {
		return task.Task{}, task.ErrForbidden
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return task.Task{}, err
	}

	target, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		return task.Task{}, err
	}
	if !target.IsActive() {
		return task.Task{}, worker.ErrInactive
	}

	updated, err := s.repo.UpdateAssignee(ctx, id, target.ID())
	if err != nil {
		return task.Task{}, err
	}

	s.publisher.Publish(&task.ReassignedEvent{
		TaskID:           updated.ID(),
		PreviousWorkerID: existing.AssignedWorkerID(),
		WorkerID:         target.ID(),
	})
	return updated, nil
}

// FinalizeAll marks every not-yet-finalized task as finalized and reports how
// many rows changed. Idempotent: a second sweep affects zero rows. Admin-only.
func (s *TaskService) FinalizeAll(ctx context.Context) (int64, error) {
	actor, err := composables.UseActor(ctx)
	if err != nil {
		return 0, err
	}
	if !actor.IsAdmin() {
		return 0, task.ErrForbidden
	}

	count, err := s.repo.FinalizeAll(ctx)
	if err != nil {
		return 0, err
	}

	composables.UseLogger(ctx).WithField("finalized", count).Info("finalization sweep completed")
	s.publisher.Publish(&task.FinalizedEvent{Count: count})
	return count, nil
}
