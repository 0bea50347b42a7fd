package persistence

import (
	"context"
	"errors"
	"fmt"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskdesk/taskdesk/modules/dispatch/domain/aggregates/task"
	"github.com/taskdesk/taskdesk/modules/dispatch/infrastructure/persistence/models"
	"github.com/taskdesk/taskdesk/pkg/composables"
	"github.com/taskdesk/taskdesk/pkg/repo"
)

const taskColumns = `id, contact_name, phone, notes, assigned_worker_id, status, is_finalized, created_at, updated_at`

type TaskRepository struct{}

func NewTaskRepository() task.Repository {
	return &TaskRepository{}
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return task.Task{}, err
	}

	row := tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	entity, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, gerrors.Wrap(err, "get task")
	}
	return entity, nil
}

func (r *TaskRepository) GetPaginated(ctx context.Context, params *task.FindParams) ([]task.Task, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := buildTaskFilters(params)
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + where + ` ORDER BY created_at, id`
	if params != nil {
		query += " " + repo.FormatLimitOffset(params.Limit, params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "list tasks")
	}
	defer rows.Close()

	var results []task.Task
	for rows.Next() {
		entity, err := scanTask(rows)
		if err != nil {
			return nil, gerrors.Wrap(err, "scan task")
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *TaskRepository) Count(ctx context.Context, params *task.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	where, args := buildTaskFilters(params)
	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE `+where, args...).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "count tasks")
	}
	return count, nil
}

func (r *TaskRepository) CreateBulk(ctx context.Context, tasks []task.Task) ([]task.Task, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	batch := &pgx.Batch{}
	for _, entity := range tasks {
		batch.Queue(
			`INSERT INTO tasks (contact_name, phone, notes, assigned_worker_id, status, is_finalized)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING `+taskColumns,
			entity.ContactName(),
			entity.Phone(),
			entity.Notes(),
			nullableWorkerID(entity.AssignedWorkerID()),
			string(entity.Status()),
			entity.IsFinalized(),
		)
	}

	results := tx.SendBatch(ctx, batch)
	created := make([]task.Task, 0, len(tasks))
	for range tasks {
		entity, err := scanTask(results.QueryRow())
		if err != nil {
			_ = results.Close()
			return nil, gerrors.Wrap(err, "bulk create tasks")
		}
		created = append(created, entity)
	}
	if err := results.Close(); err != nil {
		return nil, gerrors.Wrap(err, "bulk create tasks")
	}
	return created, nil
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status task.Status) (task.Task, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return task.Task{}, err
	}

	row := tx.QueryRow(ctx, `
		UPDATE tasks
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+taskColumns,
		id, string(status),
	)
	entity, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, gerrors.Wrap(err, "update task status")
	}
	return entity, nil
}

func (r *TaskRepository) UpdateAssignee(ctx context.Context, id uuid.UUID, workerID uuid.UUID) (task.Task, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return task.Task{}, err
	}

	row := tx.QueryRow(ctx, `
		UPDATE tasks
		SET assigned_worker_id = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+taskColumns,
		id, nullableWorkerID(workerID),
	)
	entity, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, gerrors.Wrap(err, "update task assignee")
	}
	return entity, nil
}

func (r *TaskRepository) FinalizeAll(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE tasks
		SET is_finalized = TRUE, updated_at = now()
		WHERE is_finalized = FALSE`,
	)
	if err != nil {
		return 0, gerrors.Wrap(err, "finalize tasks")
	}
	return tag.RowsAffected(), nil
}

func scanTask(row pgx.Row) (task.Task, error) {
	var model models.Task
	if err := row.Scan(
		&model.ID,
		&model.ContactName,
		&model.Phone,
		&model.Notes,
		&model.AssignedWorkerID,
		&model.Status,
		&model.IsFinalized,
		&model.CreatedAt,
		&model.UpdatedAt,
	); err != nil {
		return task.Task{}, err
	}
	return toDomainTask(&model), nil
}

func buildTaskFilters(params *task.FindParams) (string, []interface{}) {
	where := []string{"1 = 1"}
	var args []interface{}
	argPos := 1
	if params == nil {
		return where[0], args
	}

	if params.AssignedWorkerID != nil {
		where = append(where, fmt.Sprintf("assigned_worker_id = $%d", argPos))
		args = append(args, *params.AssignedWorkerID)
		argPos++
	}
	if params.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argPos))
		args = append(args, string(*params.Status))
	}

	clause := where[0]
	for _, w := range where[1:] {
		clause += " AND " + w
	}
	return clause, args
}
