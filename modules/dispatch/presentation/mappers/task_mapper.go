package mappers

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskdesk/taskdesk/modules/dispatch/domain/aggregates/task"
	"github.com/taskdesk/taskdesk/modules/dispatch/domain/ingest"
	"github.com/taskdesk/taskdesk/modules/dispatch/presentation/viewmodels"
)

func DraftToViewModel(draft ingest.Draft) viewmodels.Draft {
	items := make([]viewmodels.DraftTask, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, viewmodels.DraftTask{
			ContactName:      item.Record.ContactName,
			Phone:            item.Record.Phone,
			Notes:            item.Record.Notes,
			ProposedWorkerID: item.ProposedWorker.ID().String(),
			ProposedWorkerSummary: &viewmodels.WorkerSummary{
				ID:          item.ProposedWorker.ID().String(),
				Name:        item.ProposedWorker.Name(),
				ContactInfo: item.ProposedWorker.ContactInfo(),
			},
		})
	}
	return viewmodels.Draft{
		TotalCandidates: draft.TotalRows,
		TotalAccepted:   draft.TotalAccepted,
		Draft:           items,
	}
}

func TaskToViewModel(entity task.Task) viewmodels.Task {
	assignee := ""
	if entity.AssignedWorkerID() != uuid.Nil {
		assignee = entity.AssignedWorkerID().String()
	}
	return viewmodels.Task{
		ID:               entity.ID().String(),
		ContactName:      entity.ContactName(),
		Phone:            entity.Phone(),
		Notes:            entity.Notes(),
		AssignedWorkerID: assignee,
		Status:           string(entity.Status()),
		IsFinalized:      entity.IsFinalized(),
		CreatedAt:        entity.CreatedAt().Format(time.RFC3339),
		UpdatedAt:        entity.UpdatedAt().Format(time.RFC3339),
	}
}
