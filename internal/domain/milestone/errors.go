package milestone

import "errors"

var (
	// ErrMilestoneNotFound indicates the milestone doesn't exist.
	ErrMilestoneNotFound = errors.New("milestone not found")
	// ErrDecisionNotFound indicates the parent decision doesn't exist.
	ErrDecisionNotFound = errors.New("decision not found")
	// ErrInvalidProgress indicates progress outside 0-100.
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	// ErrInvalidInput indicates invalid milestone input.
	ErrInvalidInput = errors.New("invalid milestone input")
)
