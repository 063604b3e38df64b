package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/activation/internal/domain/workspace"
	"github.com/rpggio/activation/internal/repository"
)

// WorkspaceRepository implements workspace.Repository for SQLite
type WorkspaceRepository struct {
	db *DB
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(db *DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(ctx context.Context, tenantID string, ws *workspace.Workspace) error {
	query := `
		INSERT INTO workspaces (id, tenant_id, name, description, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		ws.ID,
		tenantID,
		ws.Name,
		ws.Description,
		ws.CreatedAt,
	)
	if err != nil {
		return translateWriteError("create workspace", err)
	}

	return nil
}

// Get retrieves a workspace by ID
func (r *WorkspaceRepository) Get(ctx context.Context, tenantID, id string) (*workspace.Workspace, error) {
	query := `
		SELECT id, tenant_id, name, description, created_at
		FROM workspaces
		WHERE id = ? AND tenant_id = ?
	`

	ws, err := scanWorkspace(r.db.QueryRowContext(ctx, query, id, tenantID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return ws, nil
}

// GetDefault retrieves the tenant's first created workspace
func (r *WorkspaceRepository) GetDefault(ctx context.Context, tenantID string) (*workspace.Workspace, error) {
	query := `
		SELECT id, tenant_id, name, description, created_at
		FROM workspaces
		WHERE tenant_id = ?
		ORDER BY created_at ASC, rowid ASC
		LIMIT 1
	`

	ws, err := scanWorkspace(r.db.QueryRowContext(ctx, query, tenantID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default workspace: %w", err)
	}

	return ws, nil
}

// List returns all workspaces for a tenant with record counts, newest first
func (r *WorkspaceRepository) List(ctx context.Context, tenantID string) ([]workspace.Summary, error) {
	query := `
		SELECT
			w.id,
			w.name,
			w.description,
			w.created_at,
			(SELECT COUNT(*) FROM decisions d
				WHERE d.workspace_id = w.id AND d.tenant_id = w.tenant_id) AS decision_count,
			(SELECT COUNT(*) FROM decisions d
				WHERE d.workspace_id = w.id AND d.tenant_id = w.tenant_id
				AND LOWER(TRIM(d.status)) IN ('finalized', 'signed_off', 'approved')) AS finalized_count,
			(SELECT COUNT(*) FROM milestones m
				WHERE m.workspace_id = w.id AND m.tenant_id = w.tenant_id) AS milestone_count
		FROM workspaces w
		WHERE w.tenant_id = ?
		ORDER BY w.created_at DESC, w.rowid DESC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	summaries := []workspace.Summary{}
	for rows.Next() {
		var summary workspace.Summary
		err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.Description,
			&summary.CreatedAt,
			&summary.DecisionCount,
			&summary.FinalizedCount,
			&summary.MilestoneCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workspace summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workspace rows: %w", err)
	}

	return summaries, nil
}

func scanWorkspace(row *sql.Row) (*workspace.Workspace, error) {
	var ws workspace.Workspace
	err := row.Scan(
		&ws.ID,
		&ws.TenantID,
		&ws.Name,
		&ws.Description,
		&ws.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ws, nil
}
