package activation_test

import (
	"testing"

	"github.com/rpggio/activation/internal/activation"
	"github.com/stretchr/testify/require"
)

func TestNextAction(t *testing.T) {
	tests := []struct {
		name       string
		next       activation.StepKey
		decisionID string
		wantTarget string
		wantScoped bool
	}{
		{name: "describe generic", next: activation.StepDescribe, wantTarget: "/onboarding/describe"},
		{name: "describe ignores decision", next: activation.StepDescribe, decisionID: "d1", wantTarget: "/onboarding/describe"},
		{name: "diagnostic ignores decision", next: activation.StepDiagnostic, decisionID: "d1", wantTarget: "/diagnostics/new"},
		{name: "finalize generic", next: activation.StepFinalize, wantTarget: "/decisions"},
		{name: "finalize scoped", next: activation.StepFinalize, decisionID: "d1", wantTarget: "/decisions/d1", wantScoped: true},
		{name: "milestones generic", next: activation.StepMilestones, wantTarget: "/milestones"},
		{name: "milestones scoped", next: activation.StepMilestones, decisionID: "d1", wantTarget: "/decisions/d1/milestones", wantScoped: true},
		{name: "review generic", next: activation.StepReview, wantTarget: "/reviews"},
		{name: "review scoped", next: activation.StepReview, decisionID: "d1", wantTarget: "/decisions/d1/review", wantScoped: true},
		{name: "escaped id", next: activation.StepReview, decisionID: "a/b", wantTarget: "/decisions/a%2Fb/review", wantScoped: true},
		{name: "all complete", next: "", decisionID: "d1", wantTarget: "/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := activation.NextAction(tt.next, tt.decisionID)
			require.Equal(t, tt.wantTarget, action.Target)
			require.Equal(t, tt.wantScoped, action.Scoped)
			require.Equal(t, tt.next, action.Step)
			require.NotEmpty(t, action.Label)
		})
	}
}
