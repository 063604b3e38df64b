package decision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/rpggio/activation/internal/activation"
	"github.com/rpggio/activation/internal/domain/activity"
	"github.com/rpggio/activation/internal/repository"
)

// Service handles decision business logic.
type Service struct {
	decisions  Repository
	activities ActivityRepository
	clock      activation.Clock
	logger     *slog.Logger
}

// NewService creates a new decision service. activities may be nil.
func NewService(decisions Repository, activities ActivityRepository, clock activation.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = activation.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		decisions:  decisions,
		activities: activities,
		clock:      clock,
		logger:     logger,
	}
}

// CreateRequest describes a decision creation request.
type CreateRequest struct {
	WorkspaceID string
	Title       string
	Summary     string
	Status      Status
	Artifact    json.RawMessage
}

// UpdateStatusRequest describes a status change.
type UpdateStatusRequest struct {
	ID     string
	Status Status
}

// ScheduleReviewRequest describes a review scheduling request.
type ScheduleReviewRequest struct {
	ID       string
	Date     string
	Reminder *bool // defaults to true
}

// Create records a new decision, defaulting its status to draft.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Decision, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	status := Status(strings.TrimSpace(string(req.Status)))
	if status == "" {
		status = StatusDraft
	}

	now := s.clock.Now()
	d := &Decision{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		WorkspaceID: req.WorkspaceID,
		Title:       strings.TrimSpace(req.Title),
		Summary:     req.Summary,
		Status:      status,
		Artifact:    req.Artifact,
		CreatedAt:   now,
		ModifiedAt:  now,
	}

	if err := s.decisions.Create(ctx, tenantID, d); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("creating decision: %w", err)
	}

	s.logActivity(ctx, tenantID, d, activity.TypeDecisionCreated, fmt.Sprintf("created decision %q", d.Title))
	return d, nil
}

// Get returns a decision by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Decision, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	d, err := s.decisions.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDecisionNotFound
		}
		return nil, fmt.Errorf("getting decision: %w", err)
	}
	return d, nil
}

// List returns decisions in creation order.
func (s *Service) List(ctx context.Context, tenantID string, opts ListOptions) ([]Decision, error) {
	if strings.TrimSpace(opts.WorkspaceID) == "" || opts.Limit < 0 || opts.Offset < 0 {
		return nil, ErrInvalidInput
	}
	list, err := s.decisions.List(ctx, tenantID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing decisions: %w", err)
	}
	return list, nil
}

// UpdateStatus sets a decision's status. The status is stored as given.
func (s *Service) UpdateStatus(ctx context.Context, tenantID string, req UpdateStatusRequest) (*Decision, error) {
	status := Status(strings.TrimSpace(string(req.Status)))
	if status == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.Get(ctx, tenantID, req.ID)
	if err != nil {
		return nil, err
	}

	previous := current.Status
	updated := *current
	updated.Status = status
	updated.ModifiedAt = s.clock.Now()

	if err := s.save(ctx, tenantID, &updated); err != nil {
		return nil, err
	}

	s.logActivity(ctx, tenantID, &updated, activity.TypeDecisionStatusChanged,
		fmt.Sprintf("status %s -> %s", previous, updated.Status))
	return &updated, nil
}

// ScheduleReview stores the next review date in the decision artifact and
// sets the reminder flag.
func (s *Service) ScheduleReview(ctx context.Context, tenantID string, req ScheduleReviewRequest) (*Decision, error) {
	date := strings.TrimSpace(req.Date)
	if err := ValidateReviewDate(date); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, tenantID, req.ID)
	if err != nil {
		return nil, err
	}

	artifact, err := WithReviewDate(current.Artifact, date)
	if err != nil {
		return nil, err
	}

	reminder := true
	if req.Reminder != nil {
		reminder = *req.Reminder
	}

	updated := *current
	updated.Artifact = artifact
	updated.ReviewReminder = &reminder
	updated.ModifiedAt = s.clock.Now()

	if err := s.save(ctx, tenantID, &updated); err != nil {
		return nil, err
	}

	s.logActivity(ctx, tenantID, &updated, activity.TypeReviewScheduled, fmt.Sprintf("review scheduled for %s", date))
	return &updated, nil
}

func (s *Service) save(ctx context.Context, tenantID string, d *Decision) error {
	if err := s.decisions.Update(ctx, tenantID, d); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDecisionNotFound
		}
		return fmt.Errorf("updating decision: %w", err)
	}
	return nil
}

func (s *Service) logActivity(ctx context.Context, tenantID string, d *Decision, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	err := s.activities.Log(ctx, tenantID, &activity.Entry{
		TenantID:    tenantID,
		WorkspaceID: d.WorkspaceID,
		SubjectID:   &d.ID,
		Type:        typ,
		Summary:     summary,
		CreatedAt:   s.clock.Now(),
	})
	if err != nil {
		s.logger.Warn("activity log failed", "decision", d.ID, "type", typ, "error", err)
	}
}
