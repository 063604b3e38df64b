package workspace

import "time"

// Workspace groups the decisions and milestones of one activation cycle.
type Workspace struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary is a lightweight representation for listing
type Summary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	DecisionCount  int       `json:"decision_count"`
	FinalizedCount int       `json:"finalized_count"`
	MilestoneCount int       `json:"milestone_count"`
	CreatedAt      time.Time `json:"created_at"`
}
