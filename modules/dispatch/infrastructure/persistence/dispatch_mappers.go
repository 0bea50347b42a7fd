package persistence

import (
	"github.com/google/uuid"

	"github.com/taskdesk/taskdesk/modules/dispatch/domain/aggregates/task"
	"github.com/taskdesk/taskdesk/modules/dispatch/domain/entities/worker"
	"github.com/taskdesk/taskdesk/modules/dispatch/infrastructure/persistence/models"
)

func toDomainTask(row *models.Task) task.Task {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		id = uuid.Nil
	}
	assignee := uuid.Nil
	if row.AssignedWorkerID != nil {
		if parsed, err := uuid.Parse(*row.AssignedWorkerID); err == nil {
			assignee = parsed
		}
	}
	return task.Hydrate(
		id,
		row.ContactName,
		row.Phone,
		row.Notes,
		assignee,
		task.Status(row.Status),
		row.IsFinalized,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func toDomainWorker(row *models.Worker) worker.Worker {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		id = uuid.Nil
	}
	return worker.Hydrate(
		id,
		row.Name,
		row.ContactInfo,
		row.IsActive,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

// nullableWorkerID maps uuid.Nil, which the domain uses for "unassigned", to
// a SQL NULL.
func nullableWorkerID(id uuid.UUID) *string {
	if id == uuid.Nil {
		return nil
	}
	s := id.String()
	return &s
}
