package milestone

import (
	"time"

	"github.com/rpggio/activation/internal/activation"
)

// Milestone is an execution checkpoint attached to a decision.
type Milestone struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	WorkspaceID string     `json:"workspace_id"`
	DecisionID  string     `json:"decision_id"`
	Title       string     `json:"title"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Progress    int        `json:"progress"` // percent, 0-100
	CreatedAt   time.Time  `json:"created_at"`
	ModifiedAt  time.Time  `json:"modified_at"`
}

// Done reports whether the milestone has reached 100%.
func (m *Milestone) Done() bool {
	return m.Progress >= MaxProgress
}

// Records converts milestones to engine inputs.
func Records(milestones []Milestone) []activation.MilestoneRecord {
	out := make([]activation.MilestoneRecord, len(milestones))
	for i, m := range milestones {
		out[i] = activation.MilestoneRecord{ID: m.ID, DecisionID: m.DecisionID}
	}
	return out
}
