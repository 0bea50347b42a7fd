package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

func ParseStatus(v string) (Status, bool) {
	switch Status(v) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusFailed:
		return Status(v), true
	default:
		return "", false
	}
}

// Task is a persisted work item. Created only by draft commits; mutated only
// through the lifecycle guard (status, assignee) and the finalization sweep.
type Task struct {
	id               uuid.UUID
	contactName      string
	phone            string
	notes            string
	assignedWorkerID uuid.UUID
	status           Status
	isFinalized      bool
	createdAt        time.Time
	updatedAt        time.Time
}

// New builds an unpersisted task in its initial state. The id and timestamps
// are assigned by the repository at commit time.
func New(contactName, phone, notes string, assignedWorkerID uuid.UUID) Task {
	return Task{
		contactName:      strings.TrimSpace(contactName),
		phone:            strings.TrimSpace(phone),
		notes:            strings.TrimSpace(notes),
		assignedWorkerID: assignedWorkerID,
		status:           StatusPending,
	}
}

func Hydrate(
	id uuid.UUID,
	contactName string,
	phone string,
	notes string,
	assignedWorkerID uuid.UUID,
	status Status,
	isFinalized bool,
	createdAt time.Time,
	updatedAt time.Time,
) Task {
	return Task{
		id:               id,
		contactName:      contactName,
		phone:            phone,
		notes:            notes,
		assignedWorkerID: assignedWorkerID,
		status:           status,
		isFinalized:      isFinalized,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (t Task) ID() uuid.UUID { return t.id }
func (t Task) ContactName() string { return t.contactName }
func (t Task) Phone() string { return t.phone }
func (t Task) Notes() string { return t.notes }
func (t Task) Status() Status { return t.status }
func (t Task) IsFinalized() bool { return t.isFinalized }
func (t Task) CreatedAt() time.Time { return t.createdAt }
func (t Task) UpdatedAt() time.Time { return t.updatedAt }
func (t Task) IsZero() bool { return t.id == uuid.Nil }

// AssignedWorkerID returns uuid.Nil for unassigned tasks.
func (t Task) AssignedWorkerID() uuid.UUID { return t.assignedWorkerID }

// IsAssignedTo reports whether the task belongs to the given worker.
func (t Task) IsAssignedTo(workerID uuid.UUID) bool {
	return t.assignedWorkerID != uuid.Nil && t.assignedWorkerID == workerID
}
