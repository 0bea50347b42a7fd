package ingest

import (
	"github.com/taskdesk/taskdesk/modules/dispatch/domain/entities/worker"
)

// Assignment pairs one candidate record with the worker the positional rule
// selected for it.
type Assignment struct {
	Record CandidateRecord
	Worker worker.Worker
}

// Distribute pairs record i with worker i mod M over the given active-worker
// ordering. Purely positional: re-running with the same inputs yields the
// same pairing. It only selects; persistence is the commit service's job.
func Distribute(records []CandidateRecord, workers []worker.Worker) ([]Assignment, error) {
	if len(workers) == 0 {
		return nil, ErrNoWorkersAvailable
	}

	assignments := make([]Assignment, 0, len(records))
	for i, record := range records {
		assignments = append(assignments, Assignment{
			Record: record,
			Worker: workers[i%len(workers)],
		})
	}
	return assignments, nil
}
