package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/activation/internal/activation"
	"github.com/rpggio/activation/internal/bootstrap"
	"github.com/rpggio/activation/internal/mcp"
	"github.com/rpggio/activation/internal/sqlite"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type harness struct {
	t       *testing.T
	now     time.Time
	app     *bootstrap.Container
	session *sdkmcp.ClientSession
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	h := &harness{t: t, now: start}
	h.app = bootstrap.Wire(db, bootstrap.Options{
		Clock:     activation.ClockFunc(func() time.Time { return h.now }),
		LogNudges: true,
	})

	server := mcp.NewServer(mcp.Config{
		Services:      h.app.MCPServices(),
		TransportMode: "stdio",
	})
	h.session = connect(t, server)
	return h
}

func connect(t *testing.T, server *sdkmcp.Server) *sdkmcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	go func() {
		_ = server.Run(ctx, serverTransport)
	}()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func (h *harness) call(name string, args map[string]any, out any) {
	h.t.Helper()
	result := h.callRaw(name, args)
	require.False(h.t, result.IsError, "tool %s failed: %s", name, resultText(result))
	if out != nil {
		require.NoError(h.t, json.Unmarshal([]byte(resultText(result)), out))
	}
}

func (h *harness) callRaw(name string, args map[string]any) *sdkmcp.CallToolResult {
	h.t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	result, err := h.session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(h.t, err)
	return result
}

func resultText(result *sdkmcp.CallToolResult) string {
	var b strings.Builder
	for _, c := range result.Content {
		if text, ok := c.(*sdkmcp.TextContent); ok {
			b.WriteString(text.Text)
		}
	}
	return b.String()
}

func TestListTools(t *testing.T) {
	h := newHarness(t)

	res, err := h.session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"create_workspace", "list_workspaces", "get_workspace",
		"create_decision", "list_decisions", "update_decision_status", "schedule_review",
		"create_milestone", "list_milestones", "update_milestone_progress",
		"get_activation_progress", "get_current_nudge", "get_recent_activity",
	}, names)
}

func TestActivationWalkthrough(t *testing.T) {
	h := newHarness(t)

	var progress mcp.ProgressOutput
	h.call("get_activation_progress", nil, &progress)
	require.Equal(t, 0, progress.CompletedCount)
	require.Equal(t, "describe", progress.NextStep)
	require.Equal(t, "/onboarding/describe", progress.NextAction.Target)
	require.Equal(t, 0, progress.DaysSinceStart)
	require.NotNil(t, progress.DaysRemaining)
	require.Equal(t, 14, *progress.DaysRemaining)

	var dec mcp.DecisionOutput
	h.call("create_decision", map[string]any{"title": "Raise prices"}, &dec)
	require.Equal(t, "draft", dec.Status)
	require.False(t, dec.Finalized)

	h.call("get_activation_progress", nil, &progress)
	require.Equal(t, 2, progress.CompletedCount)
	require.Equal(t, "finalize", progress.NextStep)
	require.Equal(t, "/decisions/"+dec.ID, progress.NextAction.Target)
	require.True(t, progress.NextAction.Scoped)

	h.call("update_decision_status", map[string]any{"id": dec.ID, "status": "Signed_Off"}, &dec)
	require.True(t, dec.Finalized)

	var ms mcp.MilestoneOutput
	h.call("create_milestone", map[string]any{"decision_id": dec.ID, "title": "Announce", "due_date": "2025-03-10"}, &ms)
	require.Equal(t, "2025-03-10", ms.DueDate)

	h.call("get_activation_progress", nil, &progress)
	require.Equal(t, 4, progress.CompletedCount)
	require.Equal(t, "review", progress.NextStep)
	require.Equal(t, "/decisions/"+dec.ID+"/review", progress.NextAction.Target)

	h.call("schedule_review", map[string]any{"id": dec.ID, "date": "2025-04-01"}, &dec)
	require.Equal(t, "2025-04-01", dec.NextReviewDate)

	h.call("get_activation_progress", nil, &progress)
	require.True(t, progress.AllComplete)
	require.Empty(t, progress.NextStep)
	require.Equal(t, "/dashboard", progress.NextAction.Target)
	require.Nil(t, progress.DaysRemaining)
	require.Len(t, progress.Steps, 5)
}

func TestGetCurrentNudge(t *testing.T) {
	h := newHarness(t)

	var dec mcp.DecisionOutput
	h.call("create_decision", map[string]any{"title": "Hire a COO"}, &dec)

	h.now = start.Add(4*24*time.Hour + time.Hour)

	var nudge mcp.CurrentNudgeOutput
	h.call("get_current_nudge", nil, &nudge)
	require.True(t, nudge.Fired)
	require.Equal(t, 4, nudge.DaysSinceStart)
	require.Equal(t, "Finalize your first decision", nudge.Nudge.Message)

	// A second look on the same day does not log again.
	h.call("get_current_nudge", nil, &nudge)

	var activity mcp.RecentActivityOutput
	h.call("get_recent_activity", map[string]any{"type": "nudge_fired"}, &activity)
	require.Equal(t, 1, activity.Count)

	h.now = start.Add(5 * 24 * time.Hour)
	h.call("get_current_nudge", nil, &nudge)
	require.False(t, nudge.Fired)
	require.Nil(t, nudge.Nudge)
}

func TestWorkspaces(t *testing.T) {
	h := newHarness(t)

	var ws mcp.WorkspaceOutput
	h.call("create_workspace", map[string]any{"id": "acme", "name": "Acme"}, &ws)
	require.Equal(t, "acme", ws.ID)

	h.call("create_decision", map[string]any{"workspace_id": "acme", "title": "Open a second site", "status": "approved"}, nil)

	var list mcp.ListWorkspacesOutput
	h.call("list_workspaces", nil, &list)
	require.Equal(t, 1, list.Count)
	require.Equal(t, 1, list.Workspaces[0].DecisionCount)
	require.Equal(t, 1, list.Workspaces[0].FinalizedCount)

	// get_workspace without an id creates the default workspace.
	h.call("get_workspace", nil, &ws)
	require.Equal(t, "Default Workspace", ws.Name)

	result := h.callRaw("create_workspace", map[string]any{"id": "acme", "name": "Acme again"})
	require.True(t, result.IsError)
	require.Contains(t, resultText(result), "WORKSPACE_EXISTS")
}

func TestToolErrors(t *testing.T) {
	h := newHarness(t)

	cases := []struct {
		tool string
		args map[string]any
		code string
	}{
		{"get_workspace", map[string]any{"workspace_id": "missing"}, "WORKSPACE_NOT_FOUND"},
		{"update_decision_status", map[string]any{"id": "missing", "status": "approved"}, "DECISION_NOT_FOUND"},
		{"create_milestone", map[string]any{"decision_id": "missing", "title": "x"}, "DECISION_NOT_FOUND"},
		{"update_milestone_progress", map[string]any{"id": "missing", "progress": 10}, "MILESTONE_NOT_FOUND"},
		{"create_decision", map[string]any{"title": "  "}, "INVALID_INPUT"},
		{"get_recent_activity", map[string]any{"type": "bogus"}, "INVALID_INPUT"},
	}
	for _, tc := range cases {
		t.Run(tc.tool+"_"+tc.code, func(t *testing.T) {
			result := h.callRaw(tc.tool, tc.args)
			require.True(t, result.IsError)
			require.Contains(t, resultText(result), tc.code)
		})
	}
}

func TestScheduleReview_InvalidDate(t *testing.T) {
	h := newHarness(t)

	var dec mcp.DecisionOutput
	h.call("create_decision", map[string]any{"title": "Expand"}, &dec)

	result := h.callRaw("schedule_review", map[string]any{"id": dec.ID, "date": "next tuesday"})
	require.True(t, result.IsError)
	require.Contains(t, resultText(result), "INVALID_REVIEW_DATE")
}

func TestMilestoneProgress(t *testing.T) {
	h := newHarness(t)

	var dec mcp.DecisionOutput
	h.call("create_decision", map[string]any{"title": "Expand"}, &dec)
	var ms mcp.MilestoneOutput
	h.call("create_milestone", map[string]any{"decision_id": dec.ID, "title": "Lease"}, &ms)

	h.call("update_milestone_progress", map[string]any{"id": ms.ID, "progress": 60}, &ms)
	require.Equal(t, 60, ms.Progress)
	require.False(t, ms.Done)

	h.call("update_milestone_progress", map[string]any{"id": ms.ID, "progress": 100}, &ms)
	require.True(t, ms.Done)

	result := h.callRaw("update_milestone_progress", map[string]any{"id": ms.ID, "progress": 101})
	require.True(t, result.IsError)
	require.Contains(t, resultText(result), "INVALID_PROGRESS")

	var list mcp.ListMilestonesOutput
	h.call("list_milestones", nil, &list)
	require.Equal(t, 1, list.Count)
	require.Equal(t, dec.ID, list.Milestones[0].DecisionID)
}

func TestReadDocResources(t *testing.T) {
	h := newHarness(t)

	for _, uri := range []string{"activation://docs/index", "activation://docs/lifecycle", "activation://docs/nudges"} {
		res, err := h.session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: uri})
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		require.Equal(t, "text/markdown", res.Contents[0].MIMEType)
		require.NotEmpty(t, res.Contents[0].Text)
	}
}

type staticResolver map[string]string

func (r staticResolver) ResolveTenant(_ context.Context, token string) (string, error) {
	if tenant, ok := r[token]; ok {
		return tenant, nil
	}
	return "", errors.New("unknown token")
}

func TestAuthMiddleware_RejectsWithoutHeaders(t *testing.T) {
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	server := mcp.NewServer(mcp.Config{
		Services:      bootstrap.Wire(db, bootstrap.Options{}).MCPServices(),
		Resolver:      staticResolver{"secret": "tenant1"},
		AuthEnabled:   true,
		TransportMode: "http",
	})
	session := connect(t, server)

	// In-memory transports carry no HTTP headers, so tool calls are refused.
	_, err = session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "list_workspaces", Arguments: map[string]any{}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unauthorized")
}
