package task

import "github.com/google/uuid"

// Domain events published on the application event bus.

type CreatedEvent struct {
	TaskIDs     []uuid.UUID
	Substituted int
}

type StatusChangedEvent struct {
	TaskID   uuid.UUID
	Previous Status
	Current  Status
	ActorID  uuid.UUID
}

type ReassignedEvent struct {
	TaskID           uuid.UUID
	PreviousWorkerID uuid.UUID
	WorkerID         uuid.UUID
}

type FinalizedEvent struct {
	Count int64
}
