package mcp

import (
	"context"
	"log/slog"

	"github.com/rpggio/activation/internal/domain/activity"
	"github.com/rpggio/activation/internal/domain/decision"
	"github.com/rpggio/activation/internal/domain/milestone"
	"github.com/rpggio/activation/internal/domain/progress"
	"github.com/rpggio/activation/internal/domain/workspace"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// WorkspaceService defines workspace operations needed by MCP.
type WorkspaceService interface {
	Create(ctx context.Context, tenantID string, req workspace.CreateRequest) (*workspace.Workspace, error)
	Get(ctx context.Context, tenantID, id string) (*workspace.Workspace, error)
	Resolve(ctx context.Context, tenantID, id string) (*workspace.Workspace, error)
	List(ctx context.Context, tenantID string) ([]workspace.Summary, error)
}

// DecisionService defines decision operations needed by MCP.
type DecisionService interface {
	Create(ctx context.Context, tenantID string, req decision.CreateRequest) (*decision.Decision, error)
	Get(ctx context.Context, tenantID, id string) (*decision.Decision, error)
	List(ctx context.Context, tenantID string, opts decision.ListOptions) ([]decision.Decision, error)
	UpdateStatus(ctx context.Context, tenantID string, req decision.UpdateStatusRequest) (*decision.Decision, error)
	ScheduleReview(ctx context.Context, tenantID string, req decision.ScheduleReviewRequest) (*decision.Decision, error)
}

// MilestoneService defines milestone operations needed by MCP.
type MilestoneService interface {
	Create(ctx context.Context, tenantID string, req milestone.CreateRequest) (*milestone.Milestone, error)
	List(ctx context.Context, tenantID string, opts milestone.ListOptions) ([]milestone.Milestone, error)
	UpdateProgress(ctx context.Context, tenantID, id string, progress int) (*milestone.Milestone, error)
}

// ProgressService builds activation progress reports.
type ProgressService interface {
	Report(ctx context.Context, tenantID, workspaceID string) (*progress.Report, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	Recent(ctx context.Context, tenantID string, opts activity.ListOptions) ([]activity.Entry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Workspaces WorkspaceService
	Decisions  DecisionService
	Milestones MilestoneService
	Progress   ProgressService
	Activity   ActivityService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      TenantResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	DefaultTenant string
	Version       string
	Logger        *slog.Logger
}

// DefaultTenant is the tenant used when authentication is off.
const DefaultTenant = "default"

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.DefaultTenant == "" {
		cfg.DefaultTenant = DefaultTenant
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "activation",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio is local-only, so it never authenticates.
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(noAuthMiddleware(cfg.DefaultTenant))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &tools{svc: cfg.Services})

	return server
}
