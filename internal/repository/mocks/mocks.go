// Package mocks provides testify mocks for the domain repositories.
package mocks

import (
	"context"

	"github.com/rpggio/activation/internal/domain/activity"
	"github.com/rpggio/activation/internal/domain/decision"
	"github.com/rpggio/activation/internal/domain/milestone"
	"github.com/rpggio/activation/internal/domain/workspace"
	"github.com/stretchr/testify/mock"
)

// WorkspaceRepository is a mock for workspace.Repository.
type WorkspaceRepository struct {
	mock.Mock
}

func (m *WorkspaceRepository) Create(ctx context.Context, tenantID string, ws *workspace.Workspace) error {
	args := m.Called(ctx, tenantID, ws)
	return args.Error(0)
}

func (m *WorkspaceRepository) Get(ctx context.Context, tenantID, id string) (*workspace.Workspace, error) {
	args := m.Called(ctx, tenantID, id)
	if ws, ok := args.Get(0).(*workspace.Workspace); ok {
		return ws, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorkspaceRepository) GetDefault(ctx context.Context, tenantID string) (*workspace.Workspace, error) {
	args := m.Called(ctx, tenantID)
	if ws, ok := args.Get(0).(*workspace.Workspace); ok {
		return ws, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorkspaceRepository) List(ctx context.Context, tenantID string) ([]workspace.Summary, error) {
	args := m.Called(ctx, tenantID)
	if list, ok := args.Get(0).([]workspace.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// DecisionRepository is a mock for decision.Repository.
type DecisionRepository struct {
	mock.Mock
}

func (m *DecisionRepository) Create(ctx context.Context, tenantID string, d *decision.Decision) error {
	args := m.Called(ctx, tenantID, d)
	return args.Error(0)
}

func (m *DecisionRepository) Get(ctx context.Context, tenantID, id string) (*decision.Decision, error) {
	args := m.Called(ctx, tenantID, id)
	if d, ok := args.Get(0).(*decision.Decision); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DecisionRepository) Update(ctx context.Context, tenantID string, d *decision.Decision) error {
	args := m.Called(ctx, tenantID, d)
	return args.Error(0)
}

func (m *DecisionRepository) List(ctx context.Context, tenantID string, opts decision.ListOptions) ([]decision.Decision, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]decision.Decision); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// MilestoneRepository is a mock for milestone.Repository.
type MilestoneRepository struct {
	mock.Mock
}

func (m *MilestoneRepository) Create(ctx context.Context, tenantID string, ms *milestone.Milestone) error {
	args := m.Called(ctx, tenantID, ms)
	return args.Error(0)
}

func (m *MilestoneRepository) Get(ctx context.Context, tenantID, id string) (*milestone.Milestone, error) {
	args := m.Called(ctx, tenantID, id)
	if ms, ok := args.Get(0).(*milestone.Milestone); ok {
		return ms, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MilestoneRepository) Update(ctx context.Context, tenantID string, ms *milestone.Milestone) error {
	args := m.Called(ctx, tenantID, ms)
	return args.Error(0)
}

func (m *MilestoneRepository) List(ctx context.Context, tenantID string, opts milestone.ListOptions) ([]milestone.Milestone, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]milestone.Milestone); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, tenantID string, entry *activity.Entry) error {
	args := m.Called(ctx, tenantID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, tenantID string, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
