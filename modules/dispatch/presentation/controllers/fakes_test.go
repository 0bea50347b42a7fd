package controllers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskdesk/taskdesk/modules/dispatch/domain/aggregates/task"
	"github.com/taskdesk/taskdesk/modules/dispatch/domain/entities/worker"
)

type fakeTaskRepository struct {
	tasks []task.Task
}

func (r *fakeTaskRepository) GetByID(_ context.Context, id uuid.UUID) (task.Task, error) {
	for _, entity := range r.tasks {
		if entity.ID() == id {
			return entity, nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

func (r *fakeTaskRepository) GetPaginated(_ context.Context, params *task.FindParams) ([]task.Task, error) {
	var results []task.Task
	for _, entity := range r.tasks {
		if r.matches(entity, params) {
			results = append(results, entity)
		}
	}
	return results, nil
}

func (r *fakeTaskRepository) Count(_ context.Context, params *task.FindParams) (int64, error) {
	var count int64
	for _, entity := range r.tasks {
		if r.matches(entity, params) {
			count++
		}
	}
	return count, nil
}

func (r *fakeTaskRepository) CreateBulk(_ context.Context, tasks []task.Task) ([]task.Task, error) {
	now := time.Now()
	created := make([]task.Task, 0, len(tasks))
	for _, entity := range tasks {
		persisted := task.Hydrate(
			uuid.New(),
			entity.ContactName(),
			entity.Phone(),
			entity.Notes(),
			entity.AssignedWorkerID(),
			entity.Status(),
			entity.IsFinalized(),
			now,
			now,
		)
		r.tasks = append(r.tasks, persisted)
		created = append(created, persisted)
	}
	return created, nil
}

func (r *fakeTaskRepository) UpdateStatus(_ context.Context, id uuid.UUID, status task.Status) (task.Task, error) {
	for i, entity := range r.tasks {
		if entity.ID() == id {
			r.tasks[i] = task.Hydrate(
				entity.ID(), entity.ContactName(), entity.Phone(), entity.Notes(),
				entity.AssignedWorkerID(), status, entity.IsFinalized(),
				entity.CreatedAt(), time.Now(),
			)
			return r.tasks[i], nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

func (r *fakeTaskRepository) UpdateAssignee(_ context.Context, id uuid.UUID, workerID uuid.UUID) (task.Task, error) {
	for i, entity := range r.tasks {
		if entity.ID() == id {
			r.tasks[i] = task.Hydrate(
				entity.ID(), entity.ContactName(), entity.Phone(), entity.Notes(),
				workerID, entity.Status(), entity.IsFinalized(),
				entity.CreatedAt(), time.Now(),
			)
			return r.tasks[i], nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

func (r *fakeTaskRepository) FinalizeAll(_ context.Context) (int64, error) {
	var affected int64
	for i, entity := range r.tasks {
		if entity.IsFinalized() {
			continue
		}
		r.tasks[i] = task.Hydrate(
			entity.ID(), entity.ContactName(), entity.Phone(), entity.Notes(),
			entity.AssignedWorkerID(), entity.Status(), true,
			entity.CreatedAt(), time.Now(),
		)
		affected++
	}
	return affected, nil
}

func (r *fakeTaskRepository) matches(entity task.Task, params *task.FindParams) bool {
	if params == nil {
		return true
	}
	if params.AssignedWorkerID != nil && entity.AssignedWorkerID() != *params.AssignedWorkerID {
		return false
	}
	if params.Status != nil && entity.Status() != *params.Status {
		return false
	}
	return true
}

type fakeWorkerRepository struct {
	workers []worker.Worker
}

func (r *fakeWorkerRepository) GetActive(_ context.Context) ([]worker.Worker, error) {
	var active []worker.Worker
	for _, w := range r.workers {
		if w.IsActive() {
			active = append(active, w)
		}
	}
	return active, nil
}

func (r *fakeWorkerRepository) GetByID(_ context.Context, id uuid.UUID) (worker.Worker, error) {
	for _, w := range r.workers {
		if w.ID() == id {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrNotFound
}

type fakeKeyStore struct {
	keys map[string][]uuid.UUID
}

func (s *fakeKeyStore) Get(_ context.Context, key string) ([]uuid.UUID, error) {
	return s.keys[key], nil
}

func (s *fakeKeyStore) Save(_ context.Context, key string, taskIDs []uuid.UUID) error {
	s.keys[key] = taskIDs
	return nil
}
