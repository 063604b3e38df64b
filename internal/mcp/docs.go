package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `activation tracks how far a workspace has moved through onboarding.

Core concepts:
- Workspace: one activation cycle. Omit workspace_id to use the default workspace.
- Decision: a recorded business decision with a status and an optional JSON artifact.
- Milestone: an execution checkpoint attached to a decision.
- Steps, in order: describe, diagnostic, finalize, milestones, review. Progress is derived from records on every call and never stored.
- Nudge: a reminder due on day 2, 4, 7, 10 or 12 of the 14-day cycle, silenced once its step is done.

Typical flow:
1) Orient: call get_activation_progress. Follow next_action.
2) Record work: create_decision, update_decision_status, create_milestone, schedule_review.
3) Check in: get_current_nudge tells you whether today has a reminder worth raising.
4) Audit: get_recent_activity shows what changed and which nudges fired.

Docs:
- activation://docs/index
- activation://docs/lifecycle
- activation://docs/nudges
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "activation://docs/index",
		Name:        "docs_index",
		Title:       "activation docs index",
		Description: "Entry point: what the server tracks and which doc to read next.",
		Content: `# activation: docs index

The server derives onboarding progress for a workspace from its decisions and
milestones. Nothing about progress is persisted; every read recomputes it.

## Read next

- activation://docs/lifecycle: the five steps and exactly what completes each.
- activation://docs/nudges: the reminder schedule and how suppression works.

## Tools at a glance

| Tool | Use it to |
|---|---|
| get_activation_progress | see completed steps, the next step and where to go |
| get_current_nudge | see whether today has a reminder |
| create_decision / update_decision_status | complete describe, diagnostic, finalize |
| create_milestone / update_milestone_progress | complete milestones, track execution |
| schedule_review | complete review |
| get_recent_activity | audit changes and fired nudges |
`,
	},
	{
		URI:         "activation://docs/lifecycle",
		Name:        "docs_lifecycle",
		Title:       "Activation lifecycle",
		Description: "The five onboarding steps, their completion rules and the day counter.",
		Content: `# Activation lifecycle

Steps are evaluated independently and reported in this order:

1. describe: the workspace has at least one decision.
2. diagnostic: the workspace has at least one decision. Both steps complete together.
3. finalize: some decision has status finalized, signed_off or approved
   (case-insensitive, surrounding spaces ignored).
4. milestones: some decision has at least one milestone.
5. review: some decision has a non-empty review_config.next_review_date in its
   artifact, or its review reminder is on.

The next step is the first incomplete one in that order, even if later steps
are already done.

## Day counter

The cycle starts at the creation time of the earliest decision. Days since
start is the number of whole 24-hour periods elapsed, never negative. With no
decisions the counter is 0.

Days remaining is max(0, 14 - days since start) and is hidden once every step
is complete.

## Next action

next_action names the screen for the next step. Once a decision exists,
finalize, milestones and review point at the earliest decision, e.g.
/decisions/{id}/milestones. When everything is done it points at /dashboard.
`,
	},
	{
		URI:         "activation://docs/nudges",
		Name:        "docs_nudges",
		Title:       "Nudge schedule",
		Description: "Which reminder fires on which day and what silences it.",
		Content: `# Nudge schedule

| Day | Message | Silenced by |
|---|---|---|
| 2 | Run your first diagnostic | diagnostic |
| 4 | Finalize your first decision | finalize |
| 7 | Assign milestones to begin execution | milestones |
| 10 | Update progress on at least one milestone | milestones |
| 12 | Schedule your first review | review |

A nudge is only due on its exact day. A missed day is not carried forward and
at most one nudge is due on any day. No nudge is due once every step is
complete.

When get_activation_progress or get_current_nudge sees a due nudge, a
nudge_fired entry is written to the activity log once per workspace and day.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
