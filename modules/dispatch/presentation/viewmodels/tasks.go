package viewmodels

type WorkerSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contactInfo"`
}

type DraftTask struct {
	ContactName           string         `json:"contactName"`
	Phone                 string         `json:"phone"`
	Notes                 string         `json:"notes"`
	ProposedWorkerID      string         `json:"proposedWorkerId"`
	ProposedWorkerSummary *WorkerSummary `json:"proposedWorkerSummary,omitempty"`
}

type Draft struct {
	TotalCandidates int         `json:"totalCandidates"`
	TotalAccepted   int         `json:"totalAccepted"`
	Draft           []DraftTask `json:"draft"`
}

type Task struct {
	ID               string `json:"id"`
	ContactName      string `json:"contactName"`
	Phone            string `json:"phone"`
	Notes            string `json:"notes"`
	AssignedWorkerID string `json:"assignedWorkerId,omitempty"`
	Status           string `json:"status"`
	IsFinalized      bool   `json:"isFinalized"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

type CommitResult struct {
	Created     int      `json:"created"`
	TaskIDs     []string `json:"taskIds"`
	Substituted []int    `json:"substituted,omitempty"`
	Replayed    bool     `json:"replayed,omitempty"`
}

type FinalizeResult struct {
	FinalizedCount int64 `json:"finalizedCount"`
}
