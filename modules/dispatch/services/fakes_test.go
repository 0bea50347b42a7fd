package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskdesk/taskdesk/modules/dispatch/domain/aggregates/task"
	"github.com/taskdesk/taskdesk/modules/dispatch/domain/entities/worker"
)

type memTaskRepository struct {
	mu    sync.Mutex
	tasks []task.Task

	createBulkErr error
}

func newMemTaskRepository() *memTaskRepository {
	return &memTaskRepository{}
}

func (r *memTaskRepository) GetByID(_ context.Context, id uuid.UUID) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entity := range r.tasks {
		if entity.ID() == id {
			return entity, nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

func (r *memTaskRepository) GetPaginated(_ context.Context, params *task.FindParams) ([]task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var results []task.Task
	for _, entity := range r.tasks {
		if matchesParams(entity, params) {
			results = append(results, entity)
		}
	}
	return results, nil
}

func (r *memTaskRepository) Count(_ context.Context, params *task.FindParams) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, entity := range r.tasks {
		if matchesParams(entity, params) {
			count++
		}
	}
	return count, nil
}

func (r *memTaskRepository) CreateBulk(_ context.Context, tasks []task.Task) ([]task.Task, error) {
	if r.createBulkErr != nil {
		return nil, r.createBulkErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *memTaskRepository) UpdateStatus(_ context.Context, id uuid.UUID, status task.Status) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, entity := range r.tasks {
		if entity.ID() == id {
			r.tasks[i] = task.Hydrate(
				entity.ID(),
				entity.ContactName(),
				entity.Phone(),
				entity.Notes(),
				entity.AssignedWorkerID(),
				status,
				entity.IsFinalized(),
				entity.CreatedAt(),
				time.Now(),
			)
			return r.tasks[i], nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

func (r *memTaskRepository) UpdateAssignee(_ context.Context, id uuid.UUID, workerID uuid.UUID) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, entity := range r.tasks {
		if entity.ID() == id {
			r.tasks[i] = task.Hydrate(
				entity.ID(),
				entity.ContactName(),
				entity.Phone(),
				entity.Notes(),
				workerID,
				entity.Status(),
				entity.IsFinalized(),
				entity.CreatedAt(),
				time.Now(),
			)
			return r.tasks[i], nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

func (r *memTaskRepository) FinalizeAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var affected int64
	for i, entity := range r.tasks {
		if entity.IsFinalized() {
			continue
		}
		r.tasks[i] = task.Hydrate(
			entity.ID(),
			entity.ContactName(),
			entity.Phone(),
			entity.Notes(),
			entity.AssignedWorkerID(),
			entity.Status(),
			true,
			entity.CreatedAt(),
			time.Now(),
		)
		affected++
	}
	return affected, nil
}

func matchesParams(entity task.Task, params *task.FindParams) bool {
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

type memWorkerRepository struct {
	workers []worker.Worker
}

func (r *memWorkerRepository) GetActive(_ context.Context) ([]worker.Worker, error) {
	var active []worker.Worker
	for _, w := range r.workers {
		if w.IsActive() {
			active = append(active, w)
		}
	}
	return active, nil
}

func (r *memWorkerRepository) GetByID(_ context.Context, id uuid.UUID) (worker.Worker, error) {
	for _, w := range r.workers {
		if w.ID() == id {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrNotFound
}

type memKeyStore struct {
	keys map[string][]uuid.UUID
}

func newMemKeyStore() *memKeyStore {
	return &memKeyStore{keys: map[string][]uuid.UUID{}}
}

func (s *memKeyStore) Get(_ context.Context, key string) ([]uuid.UUID, error) {
	return s.keys[key], nil
}

func (s *memKeyStore) Save(_ context.Context, key string, taskIDs []uuid.UUID) error {
	s.keys[key] = taskIDs
	return nil
}

func testWorker(name string, active bool, createdAt time.Time) worker.Worker {
	return worker.Hydrate(uuid.New(), name, name+"@example.com", active, createdAt, createdAt)
}
