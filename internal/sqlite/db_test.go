package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully and can be rerun
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"workspaces",
		"decisions",
		"milestones",
		"activity_log",
		"api_keys",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}

	require.NoError(t, db.RunMigrations())
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

var testNow = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func insertWorkspace(t *testing.T, db *DB, id, tenantID string) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO workspaces (id, tenant_id, name, description, created_at) VALUES (?, ?, ?, '', ?)`,
		id, tenantID, "Workspace "+id, testNow)
	require.NoError(t, err)
}

func insertDecision(t *testing.T, db *DB, id, tenantID, workspaceID, status string, createdAt time.Time) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO decisions (id, tenant_id, workspace_id, title, summary, status, created_at, modified_at)
		 VALUES (?, ?, ?, ?, '', ?, ?, ?)`,
		id, tenantID, workspaceID, "Decision "+id, status, createdAt, createdAt)
	require.NoError(t, err)
}
