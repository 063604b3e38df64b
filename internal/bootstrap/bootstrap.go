// Package bootstrap is the composition root: it builds repositories and
// domain services over one database.
package bootstrap

import (
	"log/slog"
	"time"

	"github.com/rpggio/activation/internal/activation"
	"github.com/rpggio/activation/internal/domain/activity"
	"github.com/rpggio/activation/internal/domain/decision"
	"github.com/rpggio/activation/internal/domain/milestone"
	"github.com/rpggio/activation/internal/domain/progress"
	"github.com/rpggio/activation/internal/domain/workspace"
	"github.com/rpggio/activation/internal/mcp"
	"github.com/rpggio/activation/internal/sqlite"
	"github.com/rpggio/activation/internal/transport"
)

// Options tunes the service graph.
type Options struct {
	// Clock drives every time-dependent decision. Nil means the system clock.
	Clock activation.Clock
	// CacheTTL memoizes step completion per workspace. Zero disables it.
	CacheTTL time.Duration
	// LogNudges records a nudge_fired activity when a nudge is first seen.
	LogNudges bool
	Logger    *slog.Logger
}

// Container holds the wired services.
type Container struct {
	DB         *sqlite.DB
	Clock      activation.Clock
	Logger     *slog.Logger
	APIKeys    *sqlite.APIKeyRepository
	Workspaces *workspace.Service
	Decisions  *decision.Service
	Milestones *milestone.Service
	Activity   *activity.Service
	Progress   *progress.Service
}

// Wire builds the service graph over db. Migrations are the caller's job.
func Wire(db *sqlite.DB, opts Options) *Container {
	clock := opts.Clock
	if clock == nil {
		clock = activation.SystemClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	workspaceRepo := sqlite.NewWorkspaceRepository(db)
	decisionRepo := sqlite.NewDecisionRepository(db)
	milestoneRepo := sqlite.NewMilestoneRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	return &Container{
		DB:         db,
		Clock:      clock,
		Logger:     logger,
		APIKeys:    sqlite.NewAPIKeyRepository(db),
		Workspaces: workspace.NewService(workspaceRepo, clock, logger.With("component", "workspace")),
		Decisions:  decision.NewService(decisionRepo, activityRepo, clock, logger.With("component", "decision")),
		Milestones: milestone.NewService(milestoneRepo, decisionRepo, activityRepo, clock, logger.With("component", "milestone")),
		Activity:   activity.NewService(activityRepo, clock, logger.With("component", "activity")),
		Progress: progress.NewService(
			workspaceRepo, decisionRepo, milestoneRepo, activityRepo,
			activation.NewEngine(clock),
			logger.With("component", "progress"),
			progress.WithCacheTTL(opts.CacheTTL),
			progress.WithNudgeLog(opts.LogNudges),
		),
	}
}

// MCPServices exposes the container to the MCP server.
func (c *Container) MCPServices() mcp.Services {
	return mcp.Services{
		Workspaces: c.Workspaces,
		Decisions:  c.Decisions,
		Milestones: c.Milestones,
		Progress:   c.Progress,
		Activity:   c.Activity,
	}
}

// RESTServices exposes the container to the REST API.
func (c *Container) RESTServices() transport.Services {
	return transport.Services{
		Workspaces: c.Workspaces,
		Decisions:  c.Decisions,
		Milestones: c.Milestones,
		Progress:   c.Progress,
		Activity:   c.Activity,
	}
}
