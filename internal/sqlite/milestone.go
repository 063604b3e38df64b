package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/activation/internal/domain/milestone"
	"github.com/rpggio/activation/internal/repository"
)

// MilestoneRepository implements milestone.Repository for SQLite
type MilestoneRepository struct {
	db *DB
}

// NewMilestoneRepository creates a new MilestoneRepository
func NewMilestoneRepository(db *DB) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

const milestoneColumns = `id, tenant_id, workspace_id, decision_id, title, due_date, progress, created_at, modified_at`

// Create inserts a milestone
func (r *MilestoneRepository) Create(ctx context.Context, tenantID string, m *milestone.Milestone) error {
	query := `
		INSERT INTO milestones (` + milestoneColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var due any
	if m.DueDate != nil {
		due = *m.DueDate
	}

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		tenantID,
		m.WorkspaceID,
		m.DecisionID,
		m.Title,
		due,
		m.Progress,
		m.CreatedAt,
		m.ModifiedAt,
	)
	if err != nil {
		return translateWriteError("create milestone", err)
	}

	return nil
}

// Get retrieves a milestone by ID
func (r *MilestoneRepository) Get(ctx context.Context, tenantID, id string) (*milestone.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = ? AND tenant_id = ?`

	m, err := scanMilestone(r.db.QueryRowContext(ctx, query, id, tenantID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get milestone: %w", err)
	}

	return m, nil
}

// Update overwrites the mutable fields of a milestone
func (r *MilestoneRepository) Update(ctx context.Context, tenantID string, m *milestone.Milestone) error {
	query := `
		UPDATE milestones
		SET title = ?, due_date = ?, progress = ?, modified_at = ?
		WHERE id = ? AND tenant_id = ?
	`

	var due any
	if m.DueDate != nil {
		due = *m.DueDate
	}

	result, err := r.db.ExecContext(ctx, query, m.Title, due, m.Progress, m.ModifiedAt, m.ID, tenantID)
	if err != nil {
		return translateWriteError("update milestone", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// List returns milestones for a decision or workspace in creation order
func (r *MilestoneRepository) List(ctx context.Context, tenantID string, opts milestone.ListOptions) ([]milestone.Milestone, error) {
	where := []string{"tenant_id = ?"}
	args := []any{tenantID}

	if opts.DecisionID != "" {
		where = append(where, "decision_id = ?")
		args = append(args, opts.DecisionID)
	}
	if opts.WorkspaceID != "" {
		where = append(where, "workspace_id = ?")
		args = append(args, opts.WorkspaceID)
	}

	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY created_at ASC, rowid ASC`
	query, args = paginate(query, args, opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	defer rows.Close()

	milestones := []milestone.Milestone{}
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		milestones = append(milestones, *m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating milestone rows: %w", err)
	}

	return milestones, nil
}

func scanMilestone(row rowScanner) (*milestone.Milestone, error) {
	var (
		m   milestone.Milestone
		due sql.NullTime
	)
	err := row.Scan(
		&m.ID,
		&m.TenantID,
		&m.WorkspaceID,
		&m.DecisionID,
		&m.Title,
		&due,
		&m.Progress,
		&m.CreatedAt,
		&m.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	if due.Valid {
		t := due.Time
		m.DueDate = &t
	}
	return &m, nil
}
