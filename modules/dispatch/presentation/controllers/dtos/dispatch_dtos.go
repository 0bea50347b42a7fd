package dtos

// APIError is the error envelope every dispatch endpoint returns.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Meta    map[string]string `json:"meta,omitempty"`
}

type ConfirmTaskEntry struct {
	ContactName      string `json:"contactName" validate:"required"`
	Phone            string `json:"phone" validate:"required"`
	Notes            string `json:"notes"`
	ProposedWorkerID string `json:"proposedWorkerId"`
}

type ConfirmTasksRequest struct {
	Tasks []ConfirmTaskEntry `json:"tasks"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ReassignRequest struct {
	NewWorkerID string `json:"newWorkerId" validate:"required,uuid"`
}
