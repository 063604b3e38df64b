package activity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/activation/internal/activation"
)

// DefaultLimit caps listings that don't set a limit.
const DefaultLimit = 50

// Service handles activity log operations.
type Service struct {
	repo   Repository
	clock  activation.Clock
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, clock activation.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = activation.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, clock: clock, logger: logger}
}

// Log records an entry, stamping it with the service clock if it has no time.
func (s *Service) Log(ctx context.Context, tenantID string, entry *Entry) error {
	if entry == nil || strings.TrimSpace(entry.WorkspaceID) == "" || !entry.Type.Valid() {
		return ErrInvalidInput
	}
	entry.TenantID = tenantID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.clock.Now()
	}
	if err := s.repo.Log(ctx, tenantID, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// Recent lists activity entries newest first.
func (s *Service) Recent(ctx context.Context, tenantID string, opts ListOptions) ([]Entry, error) {
	if opts.Type != nil && !opts.Type.Valid() {
		return nil, ErrInvalidInput
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	entries, err := s.repo.List(ctx, tenantID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	return entries, nil
}
