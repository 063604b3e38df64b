package milestone

import (
	"context"

	"github.com/rpggio/activation/internal/domain/activity"
	"github.com/rpggio/activation/internal/domain/decision"
)

// Repository provides persistence for milestones.
type Repository interface {
	Create(ctx context.Context, tenantID string, m *Milestone) error
	Get(ctx context.Context, tenantID, id string) (*Milestone, error)
	Update(ctx context.Context, tenantID string, m *Milestone) error
	List(ctx context.Context, tenantID string, opts ListOptions) ([]Milestone, error)
}

// DecisionRepository looks up the decision a milestone belongs to.
type DecisionRepository interface {
	Get(ctx context.Context, tenantID, id string) (*decision.Decision, error)
}

// ActivityRepository logs milestone activities.
type ActivityRepository interface {
	Log(ctx context.Context, tenantID string, entry *activity.Entry) error
}
