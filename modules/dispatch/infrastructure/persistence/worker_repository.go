package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskdesk/taskdesk/modules/dispatch/domain/entities/worker"
	"github.com/taskdesk/taskdesk/modules/dispatch/infrastructure/persistence/models"
	"github.com/taskdesk/taskdesk/pkg/composables"
)

const workerColumns = `id, name, contact_info, is_active, created_at, updated_at`

type WorkerRepository struct{}

func NewWorkerRepository() worker.Repository {
	return &WorkerRepository{}
}

// GetActive returns the active workers ordered by creation time with id as a
// tie-break. The ordering is part of the contract: positional distribution
// relies on it being stable between propose and commit.
func (r *WorkerRepository) GetActive(ctx context.Context) ([]worker.Worker, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT `+workerColumns+`
		FROM workers
		WHERE is_active = TRUE
		ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, gerrors.Wrap(err, "list active workers")
	}
	defer rows.Close()

	var results []worker.Worker
	for rows.Next() {
		var model models.Worker
		if err := rows.Scan(
			&model.ID,
			&model.Name,
			&model.ContactInfo,
			&model.IsActive,
			&model.CreatedAt,
			&model.UpdatedAt,
		); err != nil {
			return nil, gerrors.Wrap(err, "scan worker")
		}
		results = append(results, toDomainWorker(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *WorkerRepository) GetByID(ctx context.Context, id uuid.UUID) (worker.Worker, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return worker.Worker{}, err
	}

	var model models.Worker
	if err := tx.QueryRow(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = $1`, id).Scan(
		&model.ID,
		&model.Name,
		&model.ContactInfo,
		&model.IsActive,
		&model.CreatedAt,
		&model.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrNotFound
		}
		return worker.Worker{}, gerrors.Wrap(err, "get worker")
	}
	return toDomainWorker(&model), nil
}
