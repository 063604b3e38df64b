package decision

import (
	"encoding/json"
	"fmt"
)

const (
	reviewConfigKey   = "review_config"
	nextReviewDateKey = "next_review_date"
)

// WithReviewDate returns a copy of artifact with
// review_config.next_review_date set to date. Other keys, including other
// review_config keys, are kept.
func WithReviewDate(artifact json.RawMessage, date string) (json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	if len(artifact) > 0 {
		if !isObject(artifact) {
			return nil, ErrInvalidArtifact
		}
		if err := json.Unmarshal(artifact, &doc); err != nil {
			return nil, ErrInvalidArtifact
		}
	}

	cfg := map[string]json.RawMessage{}
	if raw, ok := doc[reviewConfigKey]; ok && isObject(raw) {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, ErrInvalidArtifact
		}
	}

	encodedDate, err := json.Marshal(date)
	if err != nil {
		return nil, fmt.Errorf("encoding review date: %w", err)
	}
	cfg[nextReviewDateKey] = encodedDate

	encodedCfg, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding review config: %w", err)
	}
	doc[reviewConfigKey] = encodedCfg

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding artifact: %w", err)
	}
	return out, nil
}
