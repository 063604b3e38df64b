package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/activation/internal/activation"
	"github.com/rpggio/activation/internal/bootstrap"
	"github.com/rpggio/activation/internal/domain/decision"
	"github.com/rpggio/activation/internal/domain/workspace"
	"github.com/rpggio/activation/internal/sqlite"
)

var cycleStart = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// seedDB creates a database file holding workspace "acme" with one draft
// decision created at cycleStart.
func seedDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activation.db")
	db, err := sqlite.New(path)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.RunMigrations())

	app := bootstrap.Wire(db, bootstrap.Options{Clock: activation.FixedClock{T: cycleStart}})
	ctx := context.Background()
	_, err = app.Workspaces.Create(ctx, "default", workspace.CreateRequest{ID: "acme", Name: "Acme"})
	require.NoError(t, err)
	_, err = app.Decisions.Create(ctx, "default", decision.CreateRequest{
		WorkspaceID: "acme",
		Title:       "Pick a vendor",
		Status:      decision.StatusDraft,
	})
	require.NoError(t, err)
	return path
}

// useFlags points the package-level flags at db for the duration of t.
func useFlags(t *testing.T, db, now string, asJSON bool) {
	t.Helper()
	origDB, origTenant, origWS, origNow, origJSON := dbPath, tenantID, workspaceID, nowFlag, jsonOutput
	t.Cleanup(func() {
		dbPath, tenantID, workspaceID, nowFlag, jsonOutput = origDB, origTenant, origWS, origNow, origJSON
	})
	dbPath, tenantID, workspaceID, nowFlag, jsonOutput = db, "default", "", now, asJSON
}

func run(t *testing.T, cmd *cobra.Command) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	t.Cleanup(func() { cmd.SetOut(nil) })
	err := cmd.RunE(cmd, []string{})
	return buf.String(), err
}

func TestProgressCmd_Text(t *testing.T) {
	useFlags(t, seedDB(t), "2025-03-05T10:00:00Z", false)

	out, err := run(t, progressCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Workspace acme: 2/5 steps complete")
	assert.Contains(t, out, "[x] Describe your situation")
	assert.Contains(t, out, "[x] Run a diagnostic")
	assert.Contains(t, out, "[ ] Finalize a decision  <- next")
	assert.Contains(t, out, "[ ] Schedule a review")
	assert.Contains(t, out, "Started:         2025-03-01")
	assert.Contains(t, out, "Days remaining:  10")
	assert.Contains(t, out, "Nudge:           Finalize your first decision")
}

func TestProgressCmd_JSON(t *testing.T) {
	useFlags(t, seedDB(t), "2025-03-05T10:00:00Z", true)

	out, err := run(t, progressCmd)
	require.NoError(t, err)

	var got struct {
		WorkspaceID string `json:"workspace_id"`
		Snapshot    struct {
			CompletedCount int    `json:"completed_count"`
			NextStep       string `json:"next_step"`
			DaysSinceStart int    `json:"days_since_start"`
		} `json:"snapshot"`
		NextAction struct {
			Target string `json:"target"`
			Scoped bool   `json:"scoped"`
		} `json:"next_action"`
		DaysRemaining *int `json:"days_remaining"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "acme", got.WorkspaceID)
	assert.Equal(t, 2, got.Snapshot.CompletedCount)
	assert.Equal(t, "finalize", got.Snapshot.NextStep)
	assert.Equal(t, 4, got.Snapshot.DaysSinceStart)
	assert.True(t, got.NextAction.Scoped)
	require.NotNil(t, got.DaysRemaining)
	assert.Equal(t, 10, *got.DaysRemaining)
}

func TestNudgeCmd(t *testing.T) {
	db := seedDB(t)
	tests := []struct {
		name string
		now  string
		want string
	}{
		{"day 2 suppressed by diagnostic", "2025-03-03T09:00:00Z", "No nudge today.\n"},
		{"day 4 finalize", "2025-03-05T09:00:00Z", "Day 4: Finalize your first decision\n"},
		{"day 5 has no nudge", "2025-03-06T09:00:00Z", "No nudge today.\n"},
		{"day 12 review", "2025-03-13T09:00:00Z", "Day 12: Schedule your first review\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useFlags(t, db, tt.now, false)
			out, err := run(t, nudgeCmd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestNudgeCmd_JSON(t *testing.T) {
	useFlags(t, seedDB(t), "2025-03-08T09:00:00Z", true)

	out, err := run(t, nudgeCmd)
	require.NoError(t, err)
	var got struct {
		DaysSinceStart int               `json:"days_since_start"`
		Nudge          *activation.Nudge `json:"nudge"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 7, got.DaysSinceStart)
	require.NotNil(t, got.Nudge)
	assert.Equal(t, 7, got.Nudge.Day)
}

func TestProgressCmd_Errors(t *testing.T) {
	db := seedDB(t)

	t.Run("bad --now", func(t *testing.T) {
		useFlags(t, db, "yesterday", false)
		_, err := run(t, progressCmd)
		require.ErrorContains(t, err, "parsing --now")
	})

	t.Run("unknown workspace", func(t *testing.T) {
		useFlags(t, db, "", false)
		workspaceID = "missing"
		_, err := run(t, progressCmd)
		require.ErrorContains(t, err, "resolving workspace")
	})
}

// tableCounts returns the row count of every table the services write to.
func tableCounts(t *testing.T, path string) map[string]int {
	t.Helper()
	db, err := sqlite.New(path)
	require.NoError(t, err)
	defer db.Close()

	counts := map[string]int{}
	for _, table := range []string{"workspaces", "decisions", "milestones", "activity_log", "api_keys"} {
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
		counts[table] = n
	}
	return counts
}

func TestReadCommands_LeaveDatabaseUnchanged(t *testing.T) {
	db := seedDB(t)
	before := tableCounts(t, db)

	// Day 4 fires a nudge, which the server would log.
	useFlags(t, db, "2025-03-05T10:00:00Z", false)
	_, err := run(t, progressCmd)
	require.NoError(t, err)
	_, err = run(t, nudgeCmd)
	require.NoError(t, err)

	require.Equal(t, before, tableCounts(t, db))
}

func TestProgressCmd_NoDefaultWorkspace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	conn, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, conn.RunMigrations())
	require.NoError(t, conn.Close())

	useFlags(t, path, "2025-03-05T10:00:00Z", false)
	_, err = run(t, progressCmd)
	require.ErrorIs(t, err, workspace.ErrWorkspaceNotFound)

	require.Zero(t, tableCounts(t, path)["workspaces"])
}

func TestProgressCmd_MissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.db")

	useFlags(t, path, "2025-03-05T10:00:00Z", false)
	_, err := run(t, progressCmd)
	require.ErrorContains(t, err, "does not exist")

	_, statErr := os.Stat(path)
	require.ErrorIs(t, statErr, fs.ErrNotExist)
}

func TestApikeyCreateCmd(t *testing.T) {
	db := seedDB(t)
	useFlags(t, db, "", false)
	tenantID = "tenant-a"

	out, err := run(t, apikeyCreateCmd)
	require.NoError(t, err)
	token := out[:len(out)-1]
	assert.Regexp(t, `^act_[0-9a-f]{64}$`, token)

	conn, err := sqlite.New(db)
	require.NoError(t, err)
	defer conn.Close()
	resolved, err := sqlite.NewAPIKeyRepository(conn).ResolveTenant(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "tenant-a", resolved)
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "activationctl dev\n", buf.String())
}
