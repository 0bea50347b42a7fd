package ingest

// DraftAssembledEvent is published after a successful draft proposal. The
// draft itself stays caller-held; the event only carries the counts.
type DraftAssembledEvent struct {
	TotalRows     int
	TotalAccepted int
}
