// Package progress builds activation progress reports for a workspace by
// loading its records and running them through the activation engine.
package progress

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rpggio/activation/internal/activation"
	"github.com/rpggio/activation/internal/cache"
	"github.com/rpggio/activation/internal/domain/activity"
	"github.com/rpggio/activation/internal/domain/decision"
	"github.com/rpggio/activation/internal/domain/milestone"
	"github.com/rpggio/activation/internal/metrics"
	"github.com/rpggio/activation/internal/repository"
)

// Service derives progress reports.
type Service struct {
	workspaces WorkspaceRepository
	decisions  DecisionRepository
	milestones MilestoneRepository
	activities ActivityRepository
	engine     *activation.Engine
	logger     *slog.Logger

	cacheTTL    time.Duration
	completions cache.Manager[string, activation.Completion]
	logNudges   bool
	firedNudges cache.Manager[string, bool]
}

// NewService creates a progress service. activities may be nil, which
// disables nudge logging.
func NewService(
	workspaces WorkspaceRepository,
	decisions DecisionRepository,
	milestones MilestoneRepository,
	activities ActivityRepository,
	engine *activation.Engine,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	if engine == nil {
		engine = activation.NewEngine(nil)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		workspaces: workspaces,
		decisions:  decisions,
		milestones: milestones,
		activities: activities,
		engine:     engine,
		logger:     logger,
		cacheTTL:   DefaultCacheTTL,
		logNudges:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.completions == nil && s.cacheTTL > 0 {
		s.completions = cache.NewInMemory[string, activation.Completion]("completions", s.cacheTTL, cache.DefaultCleanupInterval)
	}
	if s.activities == nil {
		s.logNudges = false
	}
	if s.logNudges {
		s.firedNudges = cache.NewInMemory[string, bool]("fired_nudges", 24*time.Hour, cache.DefaultCleanupInterval)
	}
	return s
}

// Report loads the workspace's records and derives its progress at the
// engine's current time.
func (s *Service) Report(ctx context.Context, tenantID, workspaceID string) (*Report, error) {
	if _, err := s.workspaces.Get(ctx, tenantID, workspaceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("loading workspace: %w", err)
	}

	decisions, milestones, err := s.load(ctx, tenantID, workspaceID)
	if err != nil {
		return nil, err
	}

	completion := s.completion(ctx, tenantID, workspaceID, decisions, milestones)
	snap, now := s.engine.Snapshot(completion)

	report := &Report{
		WorkspaceID: workspaceID,
		Snapshot:    snap,
		Steps:       stepStatuses(snap),
		NextAction:  activation.NextAction(snap.NextStep, firstDecisionID(decisions)),
		GeneratedAt: now,
	}
	if nudge, ok := activation.CurrentNudge(snap.DaysSinceStart, snap); ok {
		report.Nudge = &nudge
		s.recordNudge(ctx, tenantID, workspaceID, snap, nudge)
	}
	if remaining, ok := activation.DaysRemaining(snap.DaysSinceStart, snap); ok {
		report.DaysRemaining = &remaining
	}

	metrics.RecordNextStep(string(snap.NextStep))
	s.logger.Debug("progress derived",
		"tenant", tenantID,
		"workspace", workspaceID,
		"completed", snap.CompletedCount,
		"next", snap.NextStep,
		"days", snap.DaysSinceStart,
	)
	return report, nil
}

func (s *Service) load(ctx context.Context, tenantID, workspaceID string) ([]decision.Decision, []milestone.Milestone, error) {
	var (
		decisions  []decision.Decision
		milestones []milestone.Milestone
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.decisions.List(gctx, tenantID, decision.ListOptions{WorkspaceID: workspaceID})
		if err != nil {
			return fmt.Errorf("loading decisions: %w", err)
		}
		decisions = list
		return nil
	})
	g.Go(func() error {
		list, err := s.milestones.List(gctx, tenantID, milestone.ListOptions{WorkspaceID: workspaceID})
		if err != nil {
			return fmt.Errorf("loading milestones: %w", err)
		}
		milestones = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return decisions, milestones, nil
}

func (s *Service) completion(ctx context.Context, tenantID, workspaceID string, decisions []decision.Decision, milestones []milestone.Milestone) activation.Completion {
	decisionRecords := decision.Records(decisions)
	milestoneRecords := milestone.Records(milestones)

	if s.completions == nil {
		metrics.RecordDerivation(false)
		return activation.Evaluate(decisionRecords, milestoneRecords)
	}

	key, err := completionKey(tenantID, workspaceID, decisionRecords, milestoneRecords)
	if err != nil {
		s.logger.Warn("completion key failed, skipping cache", "workspace", workspaceID, "error", err)
		metrics.RecordDerivation(false)
		return activation.Evaluate(decisionRecords, milestoneRecords)
	}
	if c, ok := s.completions.Get(ctx, key); ok {
		metrics.RecordDerivation(true)
		return c
	}

	c := activation.Evaluate(decisionRecords, milestoneRecords)
	s.completions.Set(ctx, key, c, cache.DefaultExpiration)
	metrics.RecordDerivation(false)
	return c
}

// recordNudge logs a nudge_fired activity the first time a nudge is seen for
// a workspace's cycle start and day. The activity log is the durable check;
// the cache saves the lookup on repeated reports.
func (s *Service) recordNudge(ctx context.Context, tenantID, workspaceID string, snap activation.Snapshot, nudge activation.Nudge) {
	if !s.logNudges || snap.StartedAt == nil {
		return
	}

	startedAt := snap.StartedAt.UTC()
	key := tenantID + "/" + workspaceID + "/" + startedAt.Format(time.RFC3339Nano) + "/" + strconv.Itoa(nudge.Day)
	if !s.firedNudges.Add(ctx, key, true, cache.DefaultExpiration) {
		return
	}

	firedDay := startedAt.Add(time.Duration(nudge.Day) * 24 * time.Hour)
	nudgeType := activity.TypeNudgeFired
	existing, err := s.activities.List(ctx, tenantID, activity.ListOptions{
		WorkspaceID: workspaceID,
		Type:        &nudgeType,
		Since:       &firedDay,
		Limit:       len(activation.Schedule()),
	})
	if err != nil {
		s.firedNudges.Delete(ctx, key)
		s.logger.Warn("nudge lookup failed", "workspace", workspaceID, "error", err)
		return
	}
	detail := nudgeDetails(nudge)
	for _, e := range existing {
		if e.Details == detail {
			return
		}
	}

	err = s.activities.Log(ctx, tenantID, &activity.Entry{
		TenantID:    tenantID,
		WorkspaceID: workspaceID,
		Type:        activity.TypeNudgeFired,
		Summary:     nudge.Message,
		Details:     detail,
		CreatedAt:   s.engine.Now(),
	})
	if err != nil {
		s.firedNudges.Delete(ctx, key)
		s.logger.Warn("nudge log failed", "workspace", workspaceID, "day", nudge.Day, "error", err)
		return
	}
	metrics.RecordNudgeFired(nudge.Day)
	s.logger.Info("nudge fired", "tenant", tenantID, "workspace", workspaceID, "day", nudge.Day)
}

func nudgeDetails(n activation.Nudge) string {
	return fmt.Sprintf(`{"day":%d}`, n.Day)
}

func stepStatuses(snap activation.Snapshot) []StepStatus {
	table := activation.Steps()
	out := make([]StepStatus, len(table))
	for i, step := range table {
		out[i] = StepStatus{
			Key:      step.Key,
			Label:    step.Label,
			Complete: snap.IsComplete(step.Key),
			Next:     step.Key == snap.NextStep,
		}
	}
	return out
}

// firstDecisionID returns the earliest-created decision's ID. Ties keep the
// repository's order.
func firstDecisionID(decisions []decision.Decision) string {
	var first *decision.Decision
	for i := range decisions {
		d := &decisions[i]
		if first == nil || d.CreatedAt.Before(first.CreatedAt) {
			first = d
		}
	}
	if first == nil {
		return ""
	}
	return first.ID
}

type keyDecision struct {
	ID       string `json:"i"`
	Status   string `json:"s"`
	Created  int64  `json:"c"`
	Artifact string `json:"a,omitempty"`
	Reminder *bool  `json:"r,omitempty"`
}

func completionKey(tenantID, workspaceID string, decisions []activation.DecisionRecord, milestones []activation.MilestoneRecord) (string, error) {
	ds := make([]keyDecision, len(decisions))
	for i, d := range decisions {
		var created int64
		if !d.CreatedAt.IsZero() {
			created = d.CreatedAt.UnixNano()
		}
		ds[i] = keyDecision{ID: d.ID, Status: d.Status, Created: created, Artifact: string(d.Artifact), Reminder: d.ReviewReminder}
	}
	ms := make([]string, len(milestones))
	for i, m := range milestones {
		ms[i] = m.DecisionID
	}

	payload, err := json.Marshal(struct {
		D []keyDecision `json:"d"`
		M []string      `json:"m"`
	}{ds, ms})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return tenantID + "/" + workspaceID + "/" + hex.EncodeToString(sum[:]), nil
}
