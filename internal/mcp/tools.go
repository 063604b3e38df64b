package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/activation/internal/domain/activity"
	"github.com/rpggio/activation/internal/domain/decision"
	"github.com/rpggio/activation/internal/domain/milestone"
	"github.com/rpggio/activation/internal/domain/workspace"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type tools struct {
	svc Services
}

func registerTools(server *sdkmcp.Server, t *tools) {
	// Workspaces
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_workspace",
		Description: "Create a workspace. Each workspace runs its own 14-day activation cycle.",
	}, t.createWorkspace)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_workspaces",
		Description: "List workspaces with decision and milestone counts.",
	}, t.listWorkspaces)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_workspace",
		Description: "Get a workspace, or the default workspace when workspace_id is omitted.",
	}, t.getWorkspace)

	// Decisions
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_decision",
		Description: "Record a decision. Creating the first decision completes the describe and diagnostic steps.",
	}, t.createDecision)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_decisions",
		Description: "List decisions in a workspace, oldest first, optionally filtered by status.",
	}, t.listDecisions)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_decision_status",
		Description: "Change a decision's status. finalized, signed_off and approved complete the finalize step.",
	}, t.updateDecisionStatus)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "schedule_review",
		Description: "Set a decision's next review date. Completes the review step.",
	}, t.scheduleReview)

	// Milestones
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_milestone",
		Description: "Attach a milestone to a decision. Completes the milestones step.",
	}, t.createMilestone)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_milestones",
		Description: "List milestones for one decision (decision_id) or a whole workspace (workspace_id).",
	}, t.listMilestones)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_milestone_progress",
		Description: "Set a milestone's percent complete (0-100).",
	}, t.updateMilestoneProgress)

	// Activation
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_activation_progress",
		Description: "Get the onboarding checklist for a workspace: completed steps, next step, next action, days since start and days remaining.",
	}, t.getActivationProgress)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_current_nudge",
		Description: "Get today's nudge for a workspace, if one is due and not already satisfied.",
	}, t.getCurrentNudge)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_activity",
		Description: "List recent activity in a workspace, newest first.",
	}, t.getRecentActivity)
}

// --- Workspaces ---

func (t *tools) createWorkspace(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateWorkspaceParams) (*sdkmcp.CallToolResult, WorkspaceOutput, error) {
	ws, err := t.svc.Workspaces.Create(ctx, getTenantID(ctx), workspace.CreateRequest{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		return nil, WorkspaceOutput{}, toolError(err)
	}
	return nil, workspaceToOutput(ws), nil
}

func (t *tools) listWorkspaces(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListWorkspacesParams) (*sdkmcp.CallToolResult, ListWorkspacesOutput, error) {
	list, err := t.svc.Workspaces.List(ctx, getTenantID(ctx))
	if err != nil {
		return nil, ListWorkspacesOutput{}, toolError(err)
	}
	out := ListWorkspacesOutput{
		Workspaces: make([]WorkspaceSummaryOutput, len(list)),
		Count:      len(list),
	}
	for i, s := range list {
		out.Workspaces[i] = WorkspaceSummaryOutput{
			ID:             s.ID,
			Name:           s.Name,
			Description:    s.Description,
			DecisionCount:  s.DecisionCount,
			FinalizedCount: s.FinalizedCount,
			MilestoneCount: s.MilestoneCount,
			CreatedAt:      formatTime(s.CreatedAt),
		}
	}
	return nil, out, nil
}

func (t *tools) getWorkspace(ctx context.Context, _ *sdkmcp.CallToolRequest, in WorkspaceParams) (*sdkmcp.CallToolResult, WorkspaceOutput, error) {
	ws, err := t.svc.Workspaces.Resolve(ctx, getTenantID(ctx), in.WorkspaceID)
	if err != nil {
		return nil, WorkspaceOutput{}, toolError(err)
	}
	return nil, workspaceToOutput(ws), nil
}

// --- Decisions ---

func (t *tools) createDecision(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateDecisionParams) (*sdkmcp.CallToolResult, DecisionOutput, error) {
	tenantID := getTenantID(ctx)
	ws, err := t.svc.Workspaces.Resolve(ctx, tenantID, in.WorkspaceID)
	if err != nil {
		return nil, DecisionOutput{}, toolError(err)
	}

	var artifact json.RawMessage
	if in.Artifact != nil {
		artifact, err = json.Marshal(in.Artifact)
		if err != nil {
			return nil, DecisionOutput{}, toolError(decision.ErrInvalidArtifact)
		}
	}

	d, err := t.svc.Decisions.Create(ctx, tenantID, decision.CreateRequest{
		WorkspaceID: ws.ID,
		Title:       in.Title,
		Summary:     in.Summary,
		Status:      decision.Status(in.Status),
		Artifact:    artifact,
	})
	if err != nil {
		return nil, DecisionOutput{}, toolError(err)
	}
	return nil, decisionToOutput(d), nil
}

func (t *tools) listDecisions(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListDecisionsParams) (*sdkmcp.CallToolResult, ListDecisionsOutput, error) {
	tenantID := getTenantID(ctx)
	ws, err := t.svc.Workspaces.Resolve(ctx, tenantID, in.WorkspaceID)
	if err != nil {
		return nil, ListDecisionsOutput{}, toolError(err)
	}

	opts := decision.ListOptions{WorkspaceID: ws.ID, Limit: in.Limit, Offset: in.Offset}
	for _, s := range in.Statuses {
		opts.Statuses = append(opts.Statuses, decision.Status(s))
	}
	list, err := t.svc.Decisions.List(ctx, tenantID, opts)
	if err != nil {
		return nil, ListDecisionsOutput{}, toolError(err)
	}

	out := ListDecisionsOutput{Decisions: make([]DecisionOutput, len(list)), Count: len(list)}
	for i := range list {
		out.Decisions[i] = decisionToOutput(&list[i])
	}
	return nil, out, nil
}

func (t *tools) updateDecisionStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateDecisionStatusParams) (*sdkmcp.CallToolResult, DecisionOutput, error) {
	d, err := t.svc.Decisions.UpdateStatus(ctx, getTenantID(ctx), decision.UpdateStatusRequest{
		ID:     in.ID,
		Status: decision.Status(in.Status),
	})
	if err != nil {
		return nil, DecisionOutput{}, toolError(err)
	}
	return nil, decisionToOutput(d), nil
}

func (t *tools) scheduleReview(ctx context.Context, _ *sdkmcp.CallToolRequest, in ScheduleReviewParams) (*sdkmcp.CallToolResult, DecisionOutput, error) {
	d, err := t.svc.Decisions.ScheduleReview(ctx, getTenantID(ctx), decision.ScheduleReviewRequest{
		ID:       in.ID,
		Date:     in.Date,
		Reminder: in.Reminder,
	})
	if err != nil {
		return nil, DecisionOutput{}, toolError(err)
	}
	return nil, decisionToOutput(d), nil
}

// --- Milestones ---

func (t *tools) createMilestone(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateMilestoneParams) (*sdkmcp.CallToolResult, MilestoneOutput, error) {
	req := milestone.CreateRequest{
		DecisionID: in.DecisionID,
		Title:      in.Title,
		Progress:   in.Progress,
	}
	if due := strings.TrimSpace(in.DueDate); due != "" {
		parsed, err := time.Parse(time.DateOnly, due)
		if err != nil {
			return nil, MilestoneOutput{}, &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("due_date %q is not YYYY-MM-DD", due)}
		}
		req.DueDate = &parsed
	}

	m, err := t.svc.Milestones.Create(ctx, getTenantID(ctx), req)
	if err != nil {
		return nil, MilestoneOutput{}, toolError(err)
	}
	return nil, milestoneToOutput(m), nil
}

func (t *tools) listMilestones(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListMilestonesParams) (*sdkmcp.CallToolResult, ListMilestonesOutput, error) {
	tenantID := getTenantID(ctx)
	opts := milestone.ListOptions{DecisionID: in.DecisionID, Limit: in.Limit, Offset: in.Offset}
	if opts.DecisionID == "" {
		ws, err := t.svc.Workspaces.Resolve(ctx, tenantID, in.WorkspaceID)
		if err != nil {
			return nil, ListMilestonesOutput{}, toolError(err)
		}
		opts.WorkspaceID = ws.ID
	}

	list, err := t.svc.Milestones.List(ctx, tenantID, opts)
	if err != nil {
		return nil, ListMilestonesOutput{}, toolError(err)
	}

	out := ListMilestonesOutput{Milestones: make([]MilestoneOutput, len(list)), Count: len(list)}
	for i := range list {
		out.Milestones[i] = milestoneToOutput(&list[i])
	}
	return nil, out, nil
}

func (t *tools) updateMilestoneProgress(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateMilestoneProgressParams) (*sdkmcp.CallToolResult, MilestoneOutput, error) {
	m, err := t.svc.Milestones.UpdateProgress(ctx, getTenantID(ctx), in.ID, in.Progress)
	if err != nil {
		return nil, MilestoneOutput{}, toolError(err)
	}
	return nil, milestoneToOutput(m), nil
}

// --- Activation ---

func (t *tools) getActivationProgress(ctx context.Context, _ *sdkmcp.CallToolRequest, in WorkspaceParams) (*sdkmcp.CallToolResult, ProgressOutput, error) {
	tenantID := getTenantID(ctx)
	ws, err := t.svc.Workspaces.Resolve(ctx, tenantID, in.WorkspaceID)
	if err != nil {
		return nil, ProgressOutput{}, toolError(err)
	}
	report, err := t.svc.Progress.Report(ctx, tenantID, ws.ID)
	if err != nil {
		return nil, ProgressOutput{}, toolError(err)
	}
	return nil, reportToOutput(report), nil
}

func (t *tools) getCurrentNudge(ctx context.Context, _ *sdkmcp.CallToolRequest, in WorkspaceParams) (*sdkmcp.CallToolResult, CurrentNudgeOutput, error) {
	tenantID := getTenantID(ctx)
	ws, err := t.svc.Workspaces.Resolve(ctx, tenantID, in.WorkspaceID)
	if err != nil {
		return nil, CurrentNudgeOutput{}, toolError(err)
	}
	report, err := t.svc.Progress.Report(ctx, tenantID, ws.ID)
	if err != nil {
		return nil, CurrentNudgeOutput{}, toolError(err)
	}
	return nil, CurrentNudgeOutput{
		WorkspaceID:    ws.ID,
		DaysSinceStart: report.Snapshot.DaysSinceStart,
		Fired:          report.Nudge != nil,
		Nudge:          nudgeToOutput(report.Nudge),
	}, nil
}

func (t *tools) getRecentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetRecentActivityParams) (*sdkmcp.CallToolResult, RecentActivityOutput, error) {
	tenantID := getTenantID(ctx)
	ws, err := t.svc.Workspaces.Resolve(ctx, tenantID, in.WorkspaceID)
	if err != nil {
		return nil, RecentActivityOutput{}, toolError(err)
	}

	opts := activity.ListOptions{WorkspaceID: ws.ID, Limit: in.Limit, Offset: in.Offset}
	if in.SubjectID != "" {
		opts.SubjectID = &in.SubjectID
	}
	if in.Type != "" {
		typ := activity.Type(in.Type)
		opts.Type = &typ
	}

	entries, err := t.svc.Activity.Recent(ctx, tenantID, opts)
	if err != nil {
		return nil, RecentActivityOutput{}, toolError(err)
	}
	out := RecentActivityOutput{Entries: make([]ActivityOutput, len(entries)), Count: len(entries)}
	for i := range entries {
		out.Entries[i] = activityToOutput(&entries[i])
	}
	return nil, out, nil
}
