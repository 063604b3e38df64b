package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/activation/internal/domain/decision"
	"github.com/rpggio/activation/internal/repository"
)

// DecisionRepository implements decision.Repository for SQLite
type DecisionRepository struct {
	db *DB
}

// NewDecisionRepository creates a new DecisionRepository
func NewDecisionRepository(db *DB) *DecisionRepository {
	return &DecisionRepository{db: db}
}

const decisionColumns = `id, tenant_id, workspace_id, title, summary, status, artifact, review_reminder, created_at, modified_at`

// Create inserts a decision
func (r *DecisionRepository) Create(ctx context.Context, tenantID string, d *decision.Decision) error {
	query := `
		INSERT INTO decisions (` + decisionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		tenantID,
		d.WorkspaceID,
		d.Title,
		d.Summary,
		string(d.Status),
		nullableJSON(d.Artifact),
		nullableBool(d.ReviewReminder),
		d.CreatedAt,
		d.ModifiedAt,
	)
	if err != nil {
		return translateWriteError("create decision", err)
	}

	return nil
}

// Get retrieves a decision by ID
func (r *DecisionRepository) Get(ctx context.Context, tenantID, id string) (*decision.Decision, error) {
	query := `SELECT ` + decisionColumns + ` FROM decisions WHERE id = ? AND tenant_id = ?`

	d, err := scanDecision(r.db.QueryRowContext(ctx, query, id, tenantID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}

	return d, nil
}

// Update overwrites the mutable fields of a decision
func (r *DecisionRepository) Update(ctx context.Context, tenantID string, d *decision.Decision) error {
	query := `
		UPDATE decisions
		SET title = ?, summary = ?, status = ?, artifact = ?, review_reminder = ?, modified_at = ?
		WHERE id = ? AND tenant_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		d.Title,
		d.Summary,
		string(d.Status),
		nullableJSON(d.Artifact),
		nullableBool(d.ReviewReminder),
		d.ModifiedAt,
		d.ID,
		tenantID,
	)
	if err != nil {
		return translateWriteError("update decision", err)
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

// List returns a workspace's decisions in creation order
func (r *DecisionRepository) List(ctx context.Context, tenantID string, opts decision.ListOptions) ([]decision.Decision, error) {
	var (
		where []string
		args  []any
	)
	where = append(where, "tenant_id = ?")
	args = append(args, tenantID)

	if opts.WorkspaceID != "" {
		where = append(where, "workspace_id = ?")
		args = append(args, opts.WorkspaceID)
	}
	if len(opts.Statuses) > 0 {
		placeholders := make([]string, len(opts.Statuses))
		for i, s := range opts.Statuses {
			placeholders[i] = "?"
			args = append(args, strings.ToLower(strings.TrimSpace(string(s))))
		}
		where = append(where, "LOWER(TRIM(status)) IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := `SELECT ` + decisionColumns + ` FROM decisions WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY created_at ASC, rowid ASC`
	query, args = paginate(query, args, opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list decisions: %w", err)
	}
	defer rows.Close()

	decisions := []decision.Decision{}
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		decisions = append(decisions, *d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating decision rows: %w", err)
	}

	return decisions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDecision(row rowScanner) (*decision.Decision, error) {
	var (
		d        decision.Decision
		status   string
		artifact sql.NullString
		reminder sql.NullBool
	)
	err := row.Scan(
		&d.ID,
		&d.TenantID,
		&d.WorkspaceID,
		&d.Title,
		&d.Summary,
		&status,
		&artifact,
		&reminder,
		&d.CreatedAt,
		&d.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}

	d.Status = decision.Status(status)
	if artifact.Valid && artifact.String != "" {
		d.Artifact = json.RawMessage(artifact.String)
	}
	if reminder.Valid {
		v := reminder.Bool
		d.ReviewReminder = &v
	}
	return &d, nil
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func nullableBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

func paginate(query string, args []any, limit, offset int) (string, []any) {
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
		if offset > 0 {
			query += " OFFSET ?"
			args = append(args, offset)
		}
	} else if offset > 0 {
		query += " LIMIT -1 OFFSET ?"
		args = append(args, offset)
	}
	return query, args
}
