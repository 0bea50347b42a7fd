package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/taskdesk/taskdesk/modules/dispatch/domain/aggregates/task"
	"github.com/taskdesk/taskdesk/modules/dispatch/domain/entities/worker"
	"github.com/taskdesk/taskdesk/modules/dispatch/domain/ingest"
	"github.com/taskdesk/taskdesk/pkg/composables"
	"github.com/taskdesk/taskdesk/pkg/eventbus"
)

// DraftEntry is one line of an inbound confirm payload. It round-tripped
// through the caller, so every field is untrusted input and gets the same
// validation as original ingestion.
type DraftEntry struct {
	ContactName      string
	Phone            string
	Notes            string
	ProposedWorkerID uuid.UUID
}

type CommitResult struct {
	TaskIDs []uuid.UUID
	Created int
	// Substituted holds the 0-based positions whose final assignee differs
	// from the proposed one (stale, inactive or absent worker reference).
	Substituted []int
	// Replayed is true when an idempotency key matched a previous commit and
	// the stored result was returned instead of inserting again.
	Replayed bool
}

// EntryValidationError rejects a confirm payload whose required fields do not
// survive re-validation. The whole batch fails; nothing is created.
type EntryValidationError struct {
	Index int
	Field string
}

func (e *EntryValidationError) Error() string {
	return fmt.Sprintf("task %d: %s is required", e.Index, e.Field)
}

// IdempotencyStore records commit results keyed by caller-supplied
// idempotency keys, in the same transaction as the insert they describe.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) ([]uuid.UUID, error)
	Save(ctx context.Context, key string, taskIDs []uuid.UUID) error
}

// CommitService turns a (possibly caller-edited) draft into persisted tasks
// in one bulk operation. Callers run Commit inside a transaction, so the
// batch lands whole or not at all.
type CommitService struct {
	tasks     task.Repository
	workers   worker.Repository
	keys      IdempotencyStore
	publisher eventbus.EventBus
}

func NewCommitService(
	tasks task.Repository,
	workers worker.Repository,
	keys IdempotencyStore,
	publisher eventbus.EventBus,
) *CommitService {
	return &CommitService{
		tasks:     tasks,
		workers:   workers,
		keys:      keys,
		publisher: publisher,
	}
}

// Commit re-validates every entry against current worker state, since time
// has passed since the draft was produced, and bulk-creates the tasks, all
// starting at pending and not finalized. A proposed worker that is no longer
// active is replaced via the same positional round-robin rule rather than
// dropping the record, and the substitution is reported.
func (s *CommitService) Commit(ctx context.Context, entries []DraftEntry, idempotencyKey string) (CommitResult, error) {
	if len(entries) == 0 {
		return CommitResult{}, task.ErrNoTasksProvided
	}

	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey != "" {
		replayed, err := s.keys.Get(ctx, idempotencyKey)
		if err != nil {
			return CommitResult{}, err
		}
		if replayed != nil {
			return CommitResult{
				TaskIDs:  replayed,
				Created:  len(replayed),
				Replayed: true,
			}, nil
		}
	}

	for i := range entries {
		entries[i].ContactName = strings.TrimSpace(entries[i].ContactName)
		entries[i].Phone = strings.TrimSpace(entries[i].Phone)
		entries[i].Notes = strings.TrimSpace(entries[i].Notes)
		if entries[i].ContactName == "" {
			return CommitResult{}, &EntryValidationError{Index: i, Field: "contactName"}
		}
		if entries[i].Phone == "" {
			return CommitResult{}, &EntryValidationError{Index: i, Field: "phone"}
		}
	}

	active, err := s.workers.GetActive(ctx)
	if err != nil {
		return CommitResult{}, err
	}
	if len(active) == 0 {
		return CommitResult{}, ingest.ErrNoWorkersAvailable
	}

	activeSet := make(map[uuid.UUID]struct{}, len(active))
	for _, w := range active {
		activeSet[w.ID()] = struct{}{}
	}

	var substituted []int
	toCreate := make([]task.Task, 0, len(entries))
	for i, entry := range entries {
		workerID := entry.ProposedWorkerID
		if _, ok := activeSet[workerID]; !ok {
			workerID = active[i%len(active)].ID()
			substituted = append(substituted, i)
		}
		toCreate = append(toCreate, task.New(entry.ContactName, entry.Phone, entry.Notes, workerID))
	}

	created, err := s.tasks.CreateBulk(ctx, toCreate)
	if err != nil {
		return CommitResult{}, err
	}

	taskIDs := make([]uuid.UUID, 0, len(created))
	for _, entity := range created {
		taskIDs = append(taskIDs, entity.ID())
	}

	if idempotencyKey != "" {
		if err := s.keys.Save(ctx, idempotencyKey, taskIDs); err != nil {
			return CommitResult{}, err
		}
	}

	composables.UseLogger(ctx).WithField("created", len(taskIDs)).Info("draft committed")
	s.publisher.Publish(&task.CreatedEvent{
		TaskIDs:     taskIDs,
		Substituted: len(substituted),
	})

	return CommitResult{
		TaskIDs:     taskIDs,
		Created:     len(taskIDs),
		Substituted: substituted,
	}, nil
}
