package task

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	AssignedWorkerID *uuid.UUID
	Status           *Status
	Limit            int
	Offset           int
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Task, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	// CreateBulk persists the batch in a single operation; callers run it
	// inside a transaction so the batch lands whole or not at all.
	CreateBulk(ctx context.Context, tasks []Task) ([]Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Task, error)
	UpdateAssignee(ctx context.Context, id uuid.UUID, workerID uuid.UUID) (Task, error)
	// FinalizeAll flips is_finalized on every task where it is still false
	// and reports how many rows changed.
	FinalizeAll(ctx context.Context) (int64, error)
}
