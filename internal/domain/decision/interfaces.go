package decision

import (
	"context"

	"github.com/rpggio/activation/internal/domain/activity"
)

// Repository provides persistence for decisions.
type Repository interface {
	Create(ctx context.Context, tenantID string, d *Decision) error
	Get(ctx context.Context, tenantID, id string) (*Decision, error)
	Update(ctx context.Context, tenantID string, d *Decision) error
	List(ctx context.Context, tenantID string, opts ListOptions) ([]Decision, error)
}

// ActivityRepository logs decision activities.
type ActivityRepository interface {
	Log(ctx context.Context, tenantID string, entry *activity.Entry) error
}
