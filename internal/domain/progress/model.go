package progress

import (
	"time"

	"github.com/rpggio/activation/internal/activation"
)

// StepStatus is one row of the onboarding checklist.
type StepStatus struct {
	Key      activation.StepKey `json:"key"`
	Label    string             `json:"label"`
	Complete bool               `json:"complete"`
	Next     bool               `json:"next,omitempty"`
}

// Report is the progress view for one workspace at one instant.
type Report struct {
	WorkspaceID   string              `json:"workspace_id"`
	Snapshot      activation.Snapshot `json:"snapshot"`
	Steps         []StepStatus        `json:"steps"`
	NextAction    activation.Action   `json:"next_action"`
	Nudge         *activation.Nudge   `json:"nudge,omitempty"`
	DaysRemaining *int                `json:"days_remaining,omitempty"`
	GeneratedAt   time.Time           `json:"generated_at"`
}
