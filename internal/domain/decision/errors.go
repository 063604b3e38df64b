package decision

import "errors"

var (
	// ErrDecisionNotFound indicates the decision doesn't exist.
	ErrDecisionNotFound = errors.New("decision not found")
	// ErrWorkspaceNotFound indicates the target workspace doesn't exist.
	ErrWorkspaceNotFound = errors.New("workspace not found")
	// ErrInvalidReviewDate indicates a review date that isn't a calendar date.
	ErrInvalidReviewDate = errors.New("review date must be YYYY-MM-DD or RFC 3339")
	// ErrInvalidArtifact indicates an artifact that isn't a JSON object.
	ErrInvalidArtifact = errors.New("artifact must be a JSON object")
	// ErrInvalidInput indicates invalid input for decision operations.
	ErrInvalidInput = errors.New("invalid decision input")
)
