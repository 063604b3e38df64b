package milestone

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/activation/internal/activation"
	"github.com/rpggio/activation/internal/domain/activity"
	"github.com/rpggio/activation/internal/repository"
)

// MaxProgress is a completed milestone's progress.
const MaxProgress = 100

// Service handles milestone operations.
type Service struct {
	milestones Repository
	decisions  DecisionRepository
	activities ActivityRepository
	clock      activation.Clock
	logger     *slog.Logger
}

// NewService creates a new milestone service. activities may be nil.
func NewService(milestones Repository, decisions DecisionRepository, activities ActivityRepository, clock activation.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = activation.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		milestones: milestones,
		decisions:  decisions,
		activities: activities,
		clock:      clock,
		logger:     logger,
	}
}

// CreateRequest describes a milestone creation request.
type CreateRequest struct {
	DecisionID string
	Title      string
	DueDate    *time.Time
	Progress   int
}

// Create attaches a milestone to an existing decision.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Milestone, error) {
	if strings.TrimSpace(req.DecisionID) == "" || strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}
	if err := validateProgress(req.Progress); err != nil {
		return nil, err
	}

	parent, err := s.decisions.Get(ctx, tenantID, req.DecisionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDecisionNotFound
		}
		return nil, fmt.Errorf("loading decision: %w", err)
	}

	now := s.clock.Now()
	m := &Milestone{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		WorkspaceID: parent.WorkspaceID,
		DecisionID:  parent.ID,
		Title:       strings.TrimSpace(req.Title),
		DueDate:     req.DueDate,
		Progress:    req.Progress,
		CreatedAt:   now,
		ModifiedAt:  now,
	}

	if err := s.milestones.Create(ctx, tenantID, m); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrDecisionNotFound
		}
		return nil, fmt.Errorf("creating milestone: %w", err)
	}

	s.logActivity(ctx, tenantID, m, activity.TypeMilestoneCreated, fmt.Sprintf("created milestone %q", m.Title))
	return m, nil
}

// Get returns a milestone by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Milestone, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	m, err := s.milestones.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("getting milestone: %w", err)
	}
	return m, nil
}

// List returns milestones for a decision or a workspace in creation order.
func (s *Service) List(ctx context.Context, tenantID string, opts ListOptions) ([]Milestone, error) {
	hasDecision := strings.TrimSpace(opts.DecisionID) != ""
	hasWorkspace := strings.TrimSpace(opts.WorkspaceID) != ""
	if hasDecision == hasWorkspace || opts.Limit < 0 || opts.Offset < 0 {
		return nil, ErrInvalidInput
	}
	list, err := s.milestones.List(ctx, tenantID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	return list, nil
}

// UpdateProgress sets a milestone's completion percentage.
func (s *Service) UpdateProgress(ctx context.Context, tenantID, id string, progress int) (*Milestone, error) {
	if err := validateProgress(progress); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Progress = progress
	updated.ModifiedAt = s.clock.Now()

	if err := s.milestones.Update(ctx, tenantID, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("updating milestone: %w", err)
	}

	s.logActivity(ctx, tenantID, &updated, activity.TypeMilestoneProgressUpdated,
		fmt.Sprintf("progress %d%% -> %d%%", current.Progress, updated.Progress))
	return &updated, nil
}

func validateProgress(progress int) error {
	if progress < 0 || progress > MaxProgress {
		return ErrInvalidProgress
	}
	return nil
}

func (s *Service) logActivity(ctx context.Context, tenantID string, m *Milestone, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	err := s.activities.Log(ctx, tenantID, &activity.Entry{
		TenantID:    tenantID,
		WorkspaceID: m.WorkspaceID,
		SubjectID:   &m.ID,
		Type:        typ,
		Summary:     summary,
		CreatedAt:   s.clock.Now(),
	})
	if err != nil {
		s.logger.Warn("activity log failed", "milestone", m.ID, "type", typ, "error", err)
	}
}
