package decision

import (
	"encoding/json"
	"strings"
	"time"
)

// ValidateCreateInput validates fields required to create a decision.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.WorkspaceID) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.Title) == "" {
		return ErrInvalidInput
	}
	if len(req.Artifact) > 0 && !isObject(req.Artifact) {
		return ErrInvalidArtifact
	}
	return nil
}

// ValidateReviewDate accepts a calendar date or an RFC 3339 timestamp.
func ValidateReviewDate(date string) error {
	date = strings.TrimSpace(date)
	if date == "" {
		return ErrInvalidReviewDate
	}
	if _, err := time.Parse(time.DateOnly, date); err == nil {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, date); err == nil {
		return nil
	}
	return ErrInvalidReviewDate
}

func isObject(raw json.RawMessage) bool {
	var obj map[string]json.RawMessage
	return json.Unmarshal(raw, &obj) == nil && obj != nil
}
