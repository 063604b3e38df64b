package decision_test

import (
	"encoding/json"
	"testing"

	"github.com/rpggio/activation/internal/activation"
	"github.com/rpggio/activation/internal/domain/decision"
	"github.com/stretchr/testify/require"
)

func TestWithReviewDate(t *testing.T) {
	tests := []struct {
		name     string
		artifact string
		wantErr  error
	}{
		{name: "empty artifact"},
		{name: "object without config", artifact: `{"summary":"x"}`},
		{name: "config replaced when not object", artifact: `{"review_config":"soon"}`},
		{name: "existing date overwritten", artifact: `{"review_config":{"next_review_date":"2024-01-01"}}`},
		{name: "array rejected", artifact: `[]`, wantErr: decision.ErrInvalidArtifact},
		{name: "malformed rejected", artifact: `{`, wantErr: decision.ErrInvalidArtifact},
		{name: "null rejected", artifact: `null`, wantErr: decision.ErrInvalidArtifact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in json.RawMessage
			if tt.artifact != "" {
				in = json.RawMessage(tt.artifact)
			}
			out, err := decision.WithReviewDate(in, "2025-06-30")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "2025-06-30", activation.NextReviewDate(out))
		})
	}
}
