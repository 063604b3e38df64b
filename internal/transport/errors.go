package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpggio/activation/internal/domain/activity"
	"github.com/rpggio/activation/internal/domain/decision"
	"github.com/rpggio/activation/internal/domain/milestone"
	"github.com/rpggio/activation/internal/domain/progress"
	"github.com/rpggio/activation/internal/domain/workspace"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{workspace.ErrWorkspaceNotFound, http.StatusNotFound, "WORKSPACE_NOT_FOUND"},
	{decision.ErrWorkspaceNotFound, http.StatusNotFound, "WORKSPACE_NOT_FOUND"},
	{progress.ErrWorkspaceNotFound, http.StatusNotFound, "WORKSPACE_NOT_FOUND"},
	{decision.ErrDecisionNotFound, http.StatusNotFound, "DECISION_NOT_FOUND"},
	{milestone.ErrDecisionNotFound, http.StatusNotFound, "DECISION_NOT_FOUND"},
	{milestone.ErrMilestoneNotFound, http.StatusNotFound, "MILESTONE_NOT_FOUND"},
	{workspace.ErrWorkspaceExists, http.StatusConflict, "WORKSPACE_EXISTS"},
	{milestone.ErrInvalidProgress, http.StatusBadRequest, "INVALID_PROGRESS"},
	{decision.ErrInvalidReviewDate, http.StatusBadRequest, "INVALID_REVIEW_DATE"},
	{decision.ErrInvalidArtifact, http.StatusBadRequest, "INVALID_ARTIFACT"},
	{workspace.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
	{decision.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
	{milestone.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
	{activity.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
}

// statusFor maps a service error to an HTTP status and error code.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "INTERNAL"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
