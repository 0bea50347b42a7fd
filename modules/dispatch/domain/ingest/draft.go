package ingest

import (
	"github.com/taskdesk/taskdesk/modules/dispatch/domain/entities/worker"
)

// DraftTask is one caller-visible proposal line: the record plus the proposed
// assignee. Never persisted; the caller may edit or discard it before commit,
// so nothing in it is binding.
type DraftTask struct {
	Record         CandidateRecord
	ProposedWorker worker.Worker
}

type Draft struct {
	Items         []DraftTask
	TotalRows     int
	TotalAccepted int
}

// AssembleDraft composes parser and distributor output into the reviewable
// draft. Fails with ErrEmptyUpload when no row survived parsing: the file
// was readable, there was just nothing usable in it.
func AssembleDraft(result ParseResult, workers []worker.Worker) (Draft, error) {
	if len(result.Records) == 0 {
		return Draft{}, ErrEmptyUpload
	}

	assignments, err := Distribute(result.Records, workers)
	if err != nil {
		return Draft{}, err
	}

	items := make([]DraftTask, 0, len(assignments))
	for _, assignment := range assignments {
		items = append(items, DraftTask{
			Record:         assignment.Record,
			ProposedWorker: assignment.Worker,
		})
	}
	return Draft{
		Items:         items,
		TotalRows:     result.TotalRows,
		TotalAccepted: len(items),
	}, nil
}
