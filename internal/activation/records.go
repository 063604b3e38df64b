package activation

import (
	"encoding/json"
	"strings"
	"time"
)

// DecisionRecord is the part of a decision the engine reads.
type DecisionRecord struct {
	ID        string
	Status    string
	CreatedAt time.Time
	// Artifact is the decision's artifact snapshot as raw JSON. Only
	// review_config.next_review_date is inspected.
	Artifact json.RawMessage
	// ReviewReminder is the explicit reminder flag; nil means unset.
	ReviewReminder *bool
}

// MilestoneRecord ties a milestone to its decision.
type MilestoneRecord struct {
	ID         string
	DecisionID string
}

var finalizedStatuses = map[string]bool{
	"finalized":  true,
	"signed_off": true,
	"approved":   true,
}

// IsFinalized reports whether a free-text decision status counts as final.
func IsFinalized(status string) bool {
	return finalizedStatuses[strings.ToLower(strings.TrimSpace(status))]
}

// Finalized reports whether the decision's status counts as final.
func (d DecisionRecord) Finalized() bool {
	return IsFinalized(d.Status)
}

// ReviewScheduled reports whether the decision carries a review date or an
// explicit reminder.
func (d DecisionRecord) ReviewScheduled() bool {
	if d.ReviewReminder != nil && *d.ReviewReminder {
		return true
	}
	return NextReviewDate(d.Artifact) != ""
}

// NextReviewDate extracts review_config.next_review_date from an artifact.
// Malformed JSON, a missing key, or a non-string value all yield "".
func NextReviewDate(artifact json.RawMessage) string {
	if len(artifact) == 0 {
		return ""
	}
	var doc struct {
		ReviewConfig json.RawMessage `json:"review_config"`
	}
	if err := json.Unmarshal(artifact, &doc); err != nil || len(doc.ReviewConfig) == 0 {
		return ""
	}
	var cfg map[string]any
	if err := json.Unmarshal(doc.ReviewConfig, &cfg); err != nil {
		return ""
	}
	date, _ := cfg["next_review_date"].(string)
	return strings.TrimSpace(date)
}
