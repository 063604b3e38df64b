package workspace_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/activation/internal/activation"
	"github.com/rpggio/activation/internal/domain/workspace"
	"github.com/rpggio/activation/internal/repository"
	"github.com/rpggio/activation/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceService_GetDefaultCreates(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	repo := &mocks.WorkspaceRepository{}
	repo.On("GetDefault", ctx, tenantID).Return((*workspace.Workspace)(nil), repository.ErrNotFound)
	repo.On("Create", ctx, tenantID, mock.Anything).Return(nil)

	svc := workspace.NewService(repo, activation.FixedClock{T: now}, nil)
	ws, err := svc.GetDefault(ctx, tenantID)
	require.NoError(t, err)
	require.NotEmpty(t, ws.ID)
	require.Equal(t, workspace.DefaultName, ws.Name)
	require.Equal(t, now, ws.CreatedAt)
	require.Equal(t, tenantID, ws.TenantID)
}

func TestWorkspaceService_GetDefaultExisting(t *testing.T) {
	ctx := context.Background()
	existing := &workspace.Workspace{ID: "ws1", Name: "Main"}

	repo := &mocks.WorkspaceRepository{}
	repo.On("GetDefault", ctx, "tenant1").Return(existing, nil)

	svc := workspace.NewService(repo, nil, nil)
	ws, err := svc.GetDefault(ctx, "tenant1")
	require.NoError(t, err)
	require.Same(t, existing, ws)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkspaceService_LookupNeverCreates(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.WorkspaceRepository{}
	repo.On("GetDefault", ctx, "tenant1").Return((*workspace.Workspace)(nil), repository.ErrNotFound)

	svc := workspace.NewService(repo, nil, nil)
	_, err := svc.Lookup(ctx, "tenant1", "  ")
	require.ErrorIs(t, err, workspace.ErrWorkspaceNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkspaceService_LookupByID(t *testing.T) {
	ctx := context.Background()
	existing := &workspace.Workspace{ID: "ws1", Name: "Main"}

	repo := &mocks.WorkspaceRepository{}
	repo.On("Get", ctx, "tenant1", "ws1").Return(existing, nil)

	svc := workspace.NewService(repo, nil, nil)
	ws, err := svc.Lookup(ctx, "tenant1", "ws1")
	require.NoError(t, err)
	require.Same(t, existing, ws)
	repo.AssertNotCalled(t, "GetDefault", mock.Anything, mock.Anything)
}

func TestWorkspaceService_CreateValidation(t *testing.T) {
	ctx := context.Background()

	svc := workspace.NewService(&mocks.WorkspaceRepository{}, nil, nil)
	_, err := svc.Create(ctx, "tenant1", workspace.CreateRequest{Name: "  "})
	require.ErrorIs(t, err, workspace.ErrInvalidInput)
}

func TestWorkspaceService_CreateKeepsExplicitID(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.WorkspaceRepository{}
	repo.On("Create", ctx, "tenant1", mock.MatchedBy(func(ws *workspace.Workspace) bool {
		return ws.ID == "acme" && ws.Name == "Acme"
	})).Return(nil)

	svc := workspace.NewService(repo, nil, nil)
	ws, err := svc.Create(ctx, "tenant1", workspace.CreateRequest{ID: "acme", Name: " Acme "})
	require.NoError(t, err)
	require.Equal(t, "acme", ws.ID)
	repo.AssertExpectations(t)
}

func TestWorkspaceService_CreateDuplicate(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.WorkspaceRepository{}
	repo.On("Create", ctx, "tenant1", mock.Anything).Return(repository.ErrConflict)

	svc := workspace.NewService(repo, nil, nil)
	_, err := svc.Create(ctx, "tenant1", workspace.CreateRequest{ID: "acme", Name: "Acme"})
	require.ErrorIs(t, err, workspace.ErrWorkspaceExists)
}

func TestWorkspaceService_GetNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.WorkspaceRepository{}
	repo.On("Get", ctx, "tenant1", "missing").Return((*workspace.Workspace)(nil), repository.ErrNotFound)
	repo.On("Get", ctx, "tenant1", "broken").Return((*workspace.Workspace)(nil), errors.New("io"))

	svc := workspace.NewService(repo, nil, nil)
	_, err := svc.Get(ctx, "tenant1", "missing")
	require.ErrorIs(t, err, workspace.ErrWorkspaceNotFound)

	_, err = svc.Get(ctx, "tenant1", "broken")
	require.ErrorContains(t, err, "getting workspace")
}

func TestWorkspaceService_ResolveEmptyUsesDefault(t *testing.T) {
	ctx := context.Background()
	existing := &workspace.Workspace{ID: "ws1"}

	repo := &mocks.WorkspaceRepository{}
	repo.On("GetDefault", ctx, "tenant1").Return(existing, nil)
	repo.On("Get", ctx, "tenant1", "ws2").Return(&workspace.Workspace{ID: "ws2"}, nil)

	svc := workspace.NewService(repo, nil, nil)
	ws, err := svc.Resolve(ctx, "tenant1", "")
	require.NoError(t, err)
	require.Equal(t, "ws1", ws.ID)

	ws, err = svc.Resolve(ctx, "tenant1", "ws2")
	require.NoError(t, err)
	require.Equal(t, "ws2", ws.ID)
}
