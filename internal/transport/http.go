package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/activation/internal/domain/activity"
	"github.com/rpggio/activation/internal/domain/decision"
	"github.com/rpggio/activation/internal/domain/milestone"
	"github.com/rpggio/activation/internal/domain/progress"
	"github.com/rpggio/activation/internal/domain/workspace"
	"github.com/rpggio/activation/internal/metrics"
)

// WorkspaceService defines workspace operations needed by the API.
type WorkspaceService interface {
	Create(ctx context.Context, tenantID string, req workspace.CreateRequest) (*workspace.Workspace, error)
	Get(ctx context.Context, tenantID, id string) (*workspace.Workspace, error)
	List(ctx context.Context, tenantID string) ([]workspace.Summary, error)
}

// DecisionService defines decision operations needed by the API.
type DecisionService interface {
	Create(ctx context.Context, tenantID string, req decision.CreateRequest) (*decision.Decision, error)
	Get(ctx context.Context, tenantID, id string) (*decision.Decision, error)
	List(ctx context.Context, tenantID string, opts decision.ListOptions) ([]decision.Decision, error)
	UpdateStatus(ctx context.Context, tenantID string, req decision.UpdateStatusRequest) (*decision.Decision, error)
	ScheduleReview(ctx context.Context, tenantID string, req decision.ScheduleReviewRequest) (*decision.Decision, error)
}

// MilestoneService defines milestone operations needed by the API.
type MilestoneService interface {
	Create(ctx context.Context, tenantID string, req milestone.CreateRequest) (*milestone.Milestone, error)
	List(ctx context.Context, tenantID string, opts milestone.ListOptions) ([]milestone.Milestone, error)
	UpdateProgress(ctx context.Context, tenantID, id string, progress int) (*milestone.Milestone, error)
}

// ProgressService builds activation progress reports.
type ProgressService interface {
	Report(ctx context.Context, tenantID, workspaceID string) (*progress.Report, error)
}

// ActivityService lists the activity log.
type ActivityService interface {
	Recent(ctx context.Context, tenantID string, opts activity.ListOptions) ([]activity.Entry, error)
}

// Services contains the domain services behind the API.
type Services struct {
	Workspaces WorkspaceService
	Decisions  DecisionService
	Milestones MilestoneService
	Progress   ProgressService
	Activity   ActivityService
}

// Config configures the HTTP router.
type Config struct {
	Services Services
	// Auth authenticates /api/v1. Nil assigns DefaultTenant.
	Auth          func(http.Handler) http.Handler
	DefaultTenant string
	RateLimit     RateLimitConfig
	// MCP is mounted at /mcp when set.
	MCP    http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewServer creates the HTTP router: health and metrics at the root, the
// REST API under /api/v1 and, optionally, MCP at /mcp.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	auth := cfg.Auth
	if auth == nil {
		tenant := cfg.DefaultTenant
		if tenant == "" {
			tenant = "default"
		}
		auth = StaticTenant(tenant)
	}

	srv := &Server{svc: cfg.Services, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.Middleware)
		r.Use(auth)
		r.Use(RateLimit(cfg.RateLimit))

		r.Route("/workspaces", func(r chi.Router) {
			r.Get("/", srv.listWorkspaces)
			r.Post("/", srv.createWorkspace)
			r.Route("/{workspaceID}", func(r chi.Router) {
				r.Get("/", srv.getWorkspace)
				r.Get("/progress", srv.getProgress)
				r.Get("/nudge", srv.getNudge)
				r.Get("/activity", srv.listActivity)
				r.Get("/decisions", srv.listDecisions)
				r.Post("/decisions", srv.createDecision)
				r.Get("/milestones", srv.listWorkspaceMilestones)
			})
		})

		r.Route("/decisions/{decisionID}", func(r chi.Router) {
			r.Get("/", srv.getDecision)
			r.Patch("/status", srv.updateDecisionStatus)
			r.Post("/review", srv.scheduleReview)
			r.Get("/milestones", srv.listDecisionMilestones)
			r.Post("/milestones", srv.createMilestone)
		})

		r.Patch("/milestones/{milestoneID}/progress", srv.updateMilestoneProgress)
	})

	// The MCP server authenticates through its own middleware.
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
