package progress

import (
	"context"

	"github.com/rpggio/activation/internal/domain/activity"
	"github.com/rpggio/activation/internal/domain/decision"
	"github.com/rpggio/activation/internal/domain/milestone"
	"github.com/rpggio/activation/internal/domain/workspace"
)

// WorkspaceRepository confirms a workspace exists.
type WorkspaceRepository interface {
	Get(ctx context.Context, tenantID, id string) (*workspace.Workspace, error)
}

// DecisionRepository lists a workspace's decisions in creation order.
type DecisionRepository interface {
	List(ctx context.Context, tenantID string, opts decision.ListOptions) ([]decision.Decision, error)
}

// MilestoneRepository lists a workspace's milestones.
type MilestoneRepository interface {
	List(ctx context.Context, tenantID string, opts milestone.ListOptions) ([]milestone.Milestone, error)
}

// ActivityRepository records and looks up fired nudges.
type ActivityRepository interface {
	Log(ctx context.Context, tenantID string, entry *activity.Entry) error
	List(ctx context.Context, tenantID string, opts activity.ListOptions) ([]activity.Entry, error)
}
