package activation

import "net/url"

// Action is the recommended next move for a workspace.
type Action struct {
	Step   StepKey `json:"step,omitempty"`
	Label  string  `json:"label"`
	Target string  `json:"target"`
	// Scoped is true when Target points at a specific decision.
	Scoped bool `json:"scoped"`
}

type actionRoute struct {
	label       string
	target      string
	scopedLabel string
	scopedPath  string
}

var actionRoutes = map[StepKey]actionRoute{
	StepDescribe:   {label: "Describe your situation", target: "/onboarding/describe"},
	StepDiagnostic: {label: "Run your first diagnostic", target: "/diagnostics/new"},
	StepFinalize: {
		label: "Finalize your first decision", target: "/decisions",
		scopedLabel: "Finalize this decision",
	},
	StepMilestones: {
		label: "Assign milestones", target: "/milestones",
		scopedLabel: "Assign milestones to this decision", scopedPath: "/milestones",
	},
	StepReview: {
		label: "Schedule your first review", target: "/reviews",
		scopedLabel: "Schedule a review for this decision", scopedPath: "/review",
	},
}

var dashboardAction = Action{Label: "Open your dashboard", Target: "/dashboard"}

// NextAction maps the next step to a label and target. Finalize, milestones
// and review are scoped to decisionID when one is given; every other
// combination falls back to the generic destination.
func NextAction(next StepKey, decisionID string) Action {
	route, ok := actionRoutes[next]
	if !ok {
		return dashboardAction
	}
	if decisionID != "" && route.scopedLabel != "" {
		return Action{
			Step:   next,
			Label:  route.scopedLabel,
			Target: "/decisions/" + url.PathEscape(decisionID) + route.scopedPath,
			Scoped: true,
		}
	}
	return Action{Step: next, Label: route.label, Target: route.target}
}
