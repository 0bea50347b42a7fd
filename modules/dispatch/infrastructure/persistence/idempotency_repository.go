package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskdesk/taskdesk/modules/dispatch/services"
	"github.com/taskdesk/taskdesk/pkg/composables"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() services.IdempotencyStore {
	return &IdempotencyRepository{}
}

// Get returns the task ids recorded for a previously committed key, or nil
// when the key has not been seen.
func (r *IdempotencyRepository) Get(ctx context.Context, key string) ([]uuid.UUID, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var rawIDs []string
	if err := tx.QueryRow(ctx,
		`SELECT task_ids FROM dispatch_idempotency_keys WHERE key = $1`,
		key,
	).Scan(&rawIDs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, gerrors.Wrap(err, "get idempotency key")
	}

	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, gerrors.Wrap(err, "parse recorded task id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Save records the key with its created task ids. Runs in the same
// transaction as the bulk insert so the key and the tasks land together.
func (r *IdempotencyRepository) Save(ctx context.Context, key string, taskIDs []uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	rawIDs := make([]string, 0, len(taskIDs))
	for _, id := range taskIDs {
		rawIDs = append(rawIDs, id.String())
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO dispatch_idempotency_keys (key, task_ids) VALUES ($1, $2)`,
		key, rawIDs,
	); err != nil {
		return gerrors.Wrap(err, "save idempotency key")
	}
	return nil
}
