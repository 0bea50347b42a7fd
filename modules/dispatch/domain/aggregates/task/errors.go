package task

import "errors"

var (
	ErrNotFound        = errors.New("task not found")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrNotAssigned     = errors.New("task is not assigned to caller")
	ErrForbidden       = errors.New("caller role does not permit this operation")
	ErrNoTasksProvided = errors.New("no tasks provided")
)
