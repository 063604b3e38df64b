package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/rpggio/activation/internal/activation"
	"github.com/rpggio/activation/internal/repository"
)

// DefaultName is the name given to the workspace created on first use.
const DefaultName = "Default Workspace"

// Service handles workspace operations.
type Service struct {
	repo   Repository
	clock  activation.Clock
	logger *slog.Logger
}

// NewService creates a new workspace service.
func NewService(repo Repository, clock activation.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = activation.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, clock: clock, logger: logger}
}

// CreateRequest defines workspace creation inputs.
type CreateRequest struct {
	ID          string
	Name        string
	Description string
}

// Create creates a new workspace.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Workspace, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	ws := &Workspace{
		ID:          id,
		TenantID:    tenantID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.Create(ctx, tenantID, ws); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrWorkspaceExists
		}
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	s.logger.Debug("workspace created", "tenant", tenantID, "workspace", ws.ID)
	return ws, nil
}

// Get fetches a workspace by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Workspace, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	ws, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("getting workspace: %w", err)
	}
	return ws, nil
}

// GetDefault returns the tenant's first workspace, creating one if missing.
func (s *Service) GetDefault(ctx context.Context, tenantID string) (*Workspace, error) {
	ws, err := s.repo.GetDefault(ctx, tenantID)
	if err == nil {
		return ws, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("getting default workspace: %w", err)
	}

	return s.Create(ctx, tenantID, CreateRequest{Name: DefaultName})
}

// Resolve returns the workspace named by id, or the default one when id is
// empty.
func (s *Service) Resolve(ctx context.Context, tenantID, id string) (*Workspace, error) {
	if strings.TrimSpace(id) == "" {
		return s.GetDefault(ctx, tenantID)
	}
	return s.Get(ctx, tenantID, id)
}

// Lookup is Resolve without side effects: an empty id names the tenant's
// first workspace, and ErrWorkspaceNotFound is returned when there is none.
func (s *Service) Lookup(ctx context.Context, tenantID, id string) (*Workspace, error) {
	if strings.TrimSpace(id) != "" {
		return s.Get(ctx, tenantID, id)
	}
	ws, err := s.repo.GetDefault(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("getting default workspace: %w", err)
	}
	return ws, nil
}

// List returns workspace summaries.
func (s *Service) List(ctx context.Context, tenantID string) ([]Summary, error) {
	list, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}
	return list, nil
}
