package activity

import "time"

// Type represents the type of activity event
type Type string

const (
	TypeDecisionCreated          Type = "decision_created"
	TypeDecisionStatusChanged    Type = "decision_status_changed"
	TypeReviewScheduled          Type = "review_scheduled"
	TypeMilestoneCreated         Type = "milestone_created"
	TypeMilestoneProgressUpdated Type = "milestone_progress_updated"
	TypeNudgeFired               Type = "nudge_fired"
)

// Valid reports whether t is a known activity type.
func (t Type) Valid() bool {
	switch t {
	case TypeDecisionCreated, TypeDecisionStatusChanged, TypeReviewScheduled,
		TypeMilestoneCreated, TypeMilestoneProgressUpdated, TypeNudgeFired:
		return true
	}
	return false
}

// Entry represents an event in the activity log
type Entry struct {
	ID          int64     `json:"id"`
	TenantID    string    `json:"tenant_id"`
	WorkspaceID string    `json:"workspace_id"`
	SubjectID   *string   `json:"subject_id,omitempty"` // decision or milestone
	Type        Type      `json:"type"`
	Summary     string    `json:"summary"`
	Details     string    `json:"details,omitempty"` // JSON string
	CreatedAt   time.Time `json:"created_at"`
}
