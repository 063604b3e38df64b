package workspace

import "context"

// Repository provides persistence for workspaces.
type Repository interface {
	Create(ctx context.Context, tenantID string, ws *Workspace) error
	Get(ctx context.Context, tenantID, id string) (*Workspace, error)
	GetDefault(ctx context.Context, tenantID string) (*Workspace, error)
	List(ctx context.Context, tenantID string) ([]Summary, error)
}
