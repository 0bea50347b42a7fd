package models

import "time"

type Task struct {
	ID               string
	ContactName      string
	Phone            string
	Notes            string
	AssignedWorkerID *string
	Status           string
	IsFinalized      bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Worker struct {
	ID          string
	Name        string
	ContactInfo string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
