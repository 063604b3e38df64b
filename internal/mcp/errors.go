package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/activation/internal/domain/activity"
	"github.com/rpggio/activation/internal/domain/decision"
	"github.com/rpggio/activation/internal/domain/milestone"
	"github.com/rpggio/activation/internal/domain/progress"
	"github.com/rpggio/activation/internal/domain/workspace"
)

// APIError is the coded error returned to MCP clients.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps domain errors to coded errors. Unknown errors return nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, workspace.ErrWorkspaceNotFound),
		errors.Is(err, decision.ErrWorkspaceNotFound),
		errors.Is(err, progress.ErrWorkspaceNotFound):
		return &APIError{Code: "WORKSPACE_NOT_FOUND", Message: "workspace not found", RecoveryHint: "Call list_workspaces"}
	case errors.Is(err, workspace.ErrWorkspaceExists):
		return &APIError{Code: "WORKSPACE_EXISTS", Message: "workspace already exists", RecoveryHint: "Omit id to generate one"}
	case errors.Is(err, decision.ErrDecisionNotFound),
		errors.Is(err, milestone.ErrDecisionNotFound):
		return &APIError{Code: "DECISION_NOT_FOUND", Message: "decision not found", RecoveryHint: "Call list_decisions"}
	case errors.Is(err, milestone.ErrMilestoneNotFound):
		return &APIError{Code: "MILESTONE_NOT_FOUND", Message: "milestone not found", RecoveryHint: "Call list_milestones"}
	case errors.Is(err, milestone.ErrInvalidProgress):
		return &APIError{Code: "INVALID_PROGRESS", Message: err.Error()}
	case errors.Is(err, decision.ErrInvalidReviewDate):
		return &APIError{Code: "INVALID_REVIEW_DATE", Message: err.Error()}
	case errors.Is(err, decision.ErrInvalidArtifact):
		return &APIError{Code: "INVALID_ARTIFACT", Message: err.Error()}
	case errors.Is(err, workspace.ErrInvalidInput),
		errors.Is(err, decision.ErrInvalidInput),
		errors.Is(err, milestone.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return nil
	}
}

// toolError converts a service error into the error a tool handler returns.
// The SDK reports it to the client as a tool result with IsError set.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return &APIError{Code: "INTERNAL", Message: err.Error()}
}
