package worker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("worker not found")
	ErrInactive = errors.New("worker is inactive")
)

// Worker is the assignee entity. This module reads workers for distribution
// and validation; account lifecycle belongs to a collaborator service.
type Worker struct {
	id          uuid.UUID
	name        string
	contactInfo string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func Hydrate(
	id uuid.UUID,
	name string,
	contactInfo string,
	isActive bool,
	createdAt time.Time,
	updatedAt time.Time,
) Worker {
	return Worker{
		id:          id,
		name:        strings.TrimSpace(name),
		contactInfo: strings.TrimSpace(contactInfo),
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (w Worker) ID() uuid.UUID { return w.id }
func (w Worker) Name() string { return w.name }
func (w Worker) ContactInfo() string { return w.contactInfo }
func (w Worker) IsActive() bool { return w.isActive }
func (w Worker) CreatedAt() time.Time { return w.createdAt }
func (w Worker) UpdatedAt() time.Time { return w.updatedAt }
func (w Worker) IsZero() bool { return w.id == uuid.Nil }

// Repository is read-only: the dispatch core never mutates workers.
// GetActive returns the active set in a stable order (creation order, id as
// tie-break) so positional distribution is deterministic across calls.
type Repository interface {
	GetActive(ctx context.Context) ([]Worker, error)
	GetByID(ctx context.Context, id uuid.UUID) (Worker, error)
}
