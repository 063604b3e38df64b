package decision

import (
	"encoding/json"
	"time"

	"github.com/rpggio/activation/internal/activation"
)

// Status is a decision's lifecycle status. Statuses are free text; the
// constants below are the ones the product writes.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusInReview  Status = "in_review"
	StatusFinalized Status = "finalized"
	StatusSignedOff Status = "signed_off"
	StatusApproved  Status = "approved"
	StatusArchived  Status = "archived"
)

// Finalized reports whether the status counts as a finalized decision.
func (s Status) Finalized() bool {
	return activation.IsFinalized(string(s))
}

// Decision is a recorded business decision.
type Decision struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenant_id"`
	WorkspaceID string          `json:"workspace_id"`
	Title       string          `json:"title"`
	Summary     string          `json:"summary,omitempty"`
	Status      Status          `json:"status"`
	Artifact    json.RawMessage `json:"artifact,omitempty"`
	// ReviewReminder is nil until a reminder has been set either way.
	ReviewReminder *bool     `json:"review_reminder,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	ModifiedAt     time.Time `json:"modified_at"`
}

// NextReviewDate returns the review date stored in the artifact, or "".
func (d *Decision) NextReviewDate() string {
	return activation.NextReviewDate(d.Artifact)
}

// Record converts the decision to the engine's input shape.
func (d *Decision) Record() activation.DecisionRecord {
	return activation.DecisionRecord{
		ID:             d.ID,
		Status:         string(d.Status),
		CreatedAt:      d.CreatedAt,
		Artifact:       d.Artifact,
		ReviewReminder: d.ReviewReminder,
	}
}

// Records converts decisions to engine inputs, preserving order.
func Records(decisions []Decision) []activation.DecisionRecord {
	out := make([]activation.DecisionRecord, len(decisions))
	for i := range decisions {
		out[i] = decisions[i].Record()
	}
	return out
}
