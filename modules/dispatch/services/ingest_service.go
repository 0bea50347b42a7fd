package services

import (
	"context"
	"io"

	"github.com/taskdesk/taskdesk/modules/dispatch/domain/entities/worker"
	"github.com/taskdesk/taskdesk/modules/dispatch/domain/ingest"
	"github.com/taskdesk/taskdesk/pkg/eventbus"
)

// IngestService turns an uploaded tabular file into a reviewable draft.
// Nothing is persisted here: the draft goes back to the caller, who holds it
// until confirm.
type IngestService struct {
	workers   worker.Repository
	publisher eventbus.EventBus
}

func NewIngestService(workers worker.Repository, publisher eventbus.EventBus) *IngestService {
	return &IngestService{
		workers:   workers,
		publisher: publisher,
	}
}

// ProposeDraft parses the upload, reads one active-worker snapshot and
// assembles the round-robin draft proposal.
func (s *IngestService) ProposeDraft(ctx context.Context, r io.Reader, format ingest.Format) (ingest.Draft, error) {
	result, err := ingest.Parse(r, format)
	if err != nil {
		return ingest.Draft{}, err
	}

	workers, err := s.workers.GetActive(ctx)
	if err != nil {
		return ingest.Draft{}, err
	}

	draft, err := ingest.AssembleDraft(result, workers)
	if err != nil {
		return ingest.Draft{}, err
	}

	s.publisher.Publish(&ingest.DraftAssembledEvent{
		TotalRows:     draft.TotalRows,
		TotalAccepted: draft.TotalAccepted,
	})
	return draft, nil
}
