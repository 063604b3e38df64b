package mcp

import (
	"encoding/json"
	"time"

	"github.com/rpggio/activation/internal/activation"
	"github.com/rpggio/activation/internal/domain/activity"
	"github.com/rpggio/activation/internal/domain/decision"
	"github.com/rpggio/activation/internal/domain/milestone"
	"github.com/rpggio/activation/internal/domain/progress"
	"github.com/rpggio/activation/internal/domain/workspace"
)

// --- Tool inputs ---

type CreateWorkspaceParams struct {
	ID          string `json:"id,omitempty" jsonschema:"workspace id; generated when omitted"`
	Name        string `json:"name" jsonschema:"workspace display name"`
	Description string `json:"description,omitempty"`
}

type ListWorkspacesParams struct{}

type WorkspaceParams struct {
	WorkspaceID string `json:"workspace_id,omitempty" jsonschema:"workspace id; the default workspace when omitted"`
}

type CreateDecisionParams struct {
	WorkspaceID string         `json:"workspace_id,omitempty" jsonschema:"workspace id; the default workspace when omitted"`
	Title       string         `json:"title" jsonschema:"short decision title"`
	Summary     string         `json:"summary,omitempty"`
	Status      string         `json:"status,omitempty" jsonschema:"initial status, draft when omitted"`
	Artifact    map[string]any `json:"artifact,omitempty" jsonschema:"decision artifact as a JSON object"`
}

type ListDecisionsParams struct {
	WorkspaceID string   `json:"workspace_id,omitempty" jsonschema:"workspace id; the default workspace when omitted"`
	Statuses    []string `json:"statuses,omitempty" jsonschema:"only decisions with one of these statuses"`
	Limit       int      `json:"limit,omitempty"`
	Offset      int      `json:"offset,omitempty"`
}

type UpdateDecisionStatusParams struct {
	ID     string `json:"id" jsonschema:"decision id"`
	Status string `json:"status" jsonschema:"new status, e.g. in_review, finalized, signed_off, approved"`
}

type ScheduleReviewParams struct {
	ID       string `json:"id" jsonschema:"decision id"`
	Date     string `json:"date" jsonschema:"next review date, YYYY-MM-DD or RFC 3339"`
	Reminder *bool  `json:"reminder,omitempty" jsonschema:"send a review reminder; true when omitted"`
}

type CreateMilestoneParams struct {
	DecisionID string `json:"decision_id" jsonschema:"decision the milestone belongs to"`
	Title      string `json:"title"`
	DueDate    string `json:"due_date,omitempty" jsonschema:"due date, YYYY-MM-DD"`
	Progress   int    `json:"progress,omitempty" jsonschema:"percent complete, 0-100"`
}

type ListMilestonesParams struct {
	DecisionID  string `json:"decision_id,omitempty" jsonschema:"list milestones of this decision"`
	WorkspaceID string `json:"workspace_id,omitempty" jsonschema:"list milestones of every decision in this workspace"`
	Limit       int    `json:"limit,omitempty"`
	Offset      int    `json:"offset,omitempty"`
}

type UpdateMilestoneProgressParams struct {
	ID       string `json:"id" jsonschema:"milestone id"`
	Progress int    `json:"progress" jsonschema:"percent complete, 0-100"`
}

type GetRecentActivityParams struct {
	WorkspaceID string `json:"workspace_id,omitempty" jsonschema:"workspace id; the default workspace when omitted"`
	SubjectID   string `json:"subject_id,omitempty" jsonschema:"only entries about this decision or milestone"`
	Type        string `json:"type,omitempty" jsonschema:"only entries of this type"`
	Limit       int    `json:"limit,omitempty"`
	Offset      int    `json:"offset,omitempty"`
}

// --- Tool outputs ---
//
// Timestamps are RFC 3339 strings and artifacts are plain objects so the
// generated output schemas stay simple.

type WorkspaceOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type WorkspaceSummaryOutput struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	DecisionCount  int    `json:"decision_count"`
	FinalizedCount int    `json:"finalized_count"`
	MilestoneCount int    `json:"milestone_count"`
	CreatedAt      string `json:"created_at"`
}

type ListWorkspacesOutput struct {
	Workspaces []WorkspaceSummaryOutput `json:"workspaces"`
	Count      int                      `json:"count"`
}

type DecisionOutput struct {
	ID             string         `json:"id"`
	WorkspaceID    string         `json:"workspace_id"`
	Title          string         `json:"title"`
	Summary        string         `json:"summary,omitempty"`
	Status         string         `json:"status"`
	Finalized      bool           `json:"finalized"`
	Artifact       map[string]any `json:"artifact,omitempty"`
	NextReviewDate string         `json:"next_review_date,omitempty"`
	ReviewReminder *bool          `json:"review_reminder,omitempty"`
	CreatedAt      string         `json:"created_at"`
	ModifiedAt     string         `json:"modified_at"`
}

type ListDecisionsOutput struct {
	Decisions []DecisionOutput `json:"decisions"`
	Count     int              `json:"count"`
}

type MilestoneOutput struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	DecisionID  string `json:"decision_id"`
	Title       string `json:"title"`
	DueDate     string `json:"due_date,omitempty"`
	Progress    int    `json:"progress"`
	Done        bool   `json:"done"`
	CreatedAt   string `json:"created_at"`
	ModifiedAt  string `json:"modified_at"`
}

type ListMilestonesOutput struct {
	Milestones []MilestoneOutput `json:"milestones"`
	Count      int               `json:"count"`
}

type StepOutput struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Complete bool   `json:"complete"`
	Next     bool   `json:"next,omitempty"`
}

type ActionOutput struct {
	Step   string `json:"step,omitempty"`
	Label  string `json:"label"`
	Target string `json:"target"`
	Scoped bool   `json:"scoped"`
}

type NudgeOutput struct {
	Day     int    `json:"day"`
	Message string `json:"message"`
}

type ProgressOutput struct {
	WorkspaceID    string       `json:"workspace_id"`
	Steps          []StepOutput `json:"steps"`
	CompletedCount int          `json:"completed_count"`
	TotalSteps     int          `json:"total_steps"`
	NextStep       string       `json:"next_step,omitempty"`
	AllComplete    bool         `json:"all_complete"`
	StartedAt      string       `json:"started_at,omitempty"`
	DaysSinceStart int          `json:"days_since_start"`
	DaysRemaining  *int         `json:"days_remaining,omitempty"`
	NextAction     ActionOutput `json:"next_action"`
	Nudge          *NudgeOutput `json:"nudge,omitempty"`
	GeneratedAt    string       `json:"generated_at"`
}

type CurrentNudgeOutput struct {
	WorkspaceID    string       `json:"workspace_id"`
	DaysSinceStart int          `json:"days_since_start"`
	Fired          bool         `json:"fired"`
	Nudge          *NudgeOutput `json:"nudge,omitempty"`
}

type ActivityOutput struct {
	ID          int64  `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	SubjectID   string `json:"subject_id,omitempty"`
	Type        string `json:"type"`
	Summary     string `json:"summary"`
	Details     string `json:"details,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type RecentActivityOutput struct {
	Entries []ActivityOutput `json:"entries"`
	Count   int              `json:"count"`
}

// --- Conversions ---

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func workspaceToOutput(ws *workspace.Workspace) WorkspaceOutput {
	return WorkspaceOutput{
		ID:          ws.ID,
		Name:        ws.Name,
		Description: ws.Description,
		CreatedAt:   formatTime(ws.CreatedAt),
	}
}

func decisionToOutput(d *decision.Decision) DecisionOutput {
	out := DecisionOutput{
		ID:             d.ID,
		WorkspaceID:    d.WorkspaceID,
		Title:          d.Title,
		Summary:        d.Summary,
		Status:         string(d.Status),
		Finalized:      d.Status.Finalized(),
		NextReviewDate: d.NextReviewDate(),
		ReviewReminder: d.ReviewReminder,
		CreatedAt:      formatTime(d.CreatedAt),
		ModifiedAt:     formatTime(d.ModifiedAt),
	}
	if len(d.Artifact) > 0 {
		var artifact map[string]any
		if err := json.Unmarshal(d.Artifact, &artifact); err == nil {
			out.Artifact = artifact
		}
	}
	return out
}

func milestoneToOutput(m *milestone.Milestone) MilestoneOutput {
	out := MilestoneOutput{
		ID:          m.ID,
		WorkspaceID: m.WorkspaceID,
		DecisionID:  m.DecisionID,
		Title:       m.Title,
		Progress:    m.Progress,
		Done:        m.Done(),
		CreatedAt:   formatTime(m.CreatedAt),
		ModifiedAt:  formatTime(m.ModifiedAt),
	}
	if m.DueDate != nil {
		out.DueDate = m.DueDate.UTC().Format(time.DateOnly)
	}
	return out
}

func nudgeToOutput(n *activation.Nudge) *NudgeOutput {
	if n == nil {
		return nil
	}
	return &NudgeOutput{Day: n.Day, Message: n.Message}
}

func reportToOutput(r *progress.Report) ProgressOutput {
	out := ProgressOutput{
		WorkspaceID:    r.WorkspaceID,
		Steps:          make([]StepOutput, len(r.Steps)),
		CompletedCount: r.Snapshot.CompletedCount,
		TotalSteps:     len(r.Steps),
		NextStep:       string(r.Snapshot.NextStep),
		AllComplete:    r.Snapshot.AllComplete,
		DaysSinceStart: r.Snapshot.DaysSinceStart,
		DaysRemaining:  r.DaysRemaining,
		NextAction: ActionOutput{
			Step:   string(r.NextAction.Step),
			Label:  r.NextAction.Label,
			Target: r.NextAction.Target,
			Scoped: r.NextAction.Scoped,
		},
		Nudge:       nudgeToOutput(r.Nudge),
		GeneratedAt: formatTime(r.GeneratedAt),
	}
	for i, step := range r.Steps {
		out.Steps[i] = StepOutput{
			Key:      string(step.Key),
			Label:    step.Label,
			Complete: step.Complete,
			Next:     step.Next,
		}
	}
	if r.Snapshot.StartedAt != nil {
		out.StartedAt = formatTime(*r.Snapshot.StartedAt)
	}
	return out
}

func activityToOutput(e *activity.Entry) ActivityOutput {
	out := ActivityOutput{
		ID:          e.ID,
		WorkspaceID: e.WorkspaceID,
		Type:        string(e.Type),
		Summary:     e.Summary,
		Details:     e.Details,
		CreatedAt:   formatTime(e.CreatedAt),
	}
	if e.SubjectID != nil {
		out.SubjectID = *e.SubjectID
	}
	return out
}
