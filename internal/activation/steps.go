// Package activation derives a workspace's progress through the fixed
// five-step onboarding cycle and decides which day-indexed nudge, if any,
// applies today.
//
// Everything here is a pure function of its arguments. Wall-clock time only
// enters through a [Clock], so a fixed clock makes every result reproducible.
package activation

// StepKey identifies a lifecycle step.
type StepKey string

const (
	StepDescribe   StepKey = "describe"
	StepDiagnostic StepKey = "diagnostic"
	StepFinalize   StepKey = "finalize"
	StepMilestones StepKey = "milestones"
	StepReview     StepKey = "review"
)

// StepCount is the number of steps in a cycle.
const StepCount = 5

// Step is one row of the lifecycle table.
type Step struct {
	Key   StepKey
	Label string
	done  func(evidence) bool
}

// steps is the canonical order. Describe and diagnostic share a predicate:
// the record store has no signal that separates them.
var steps = []Step{
	{Key: StepDescribe, Label: "Describe your situation", done: evidence.hasDecisions},
	{Key: StepDiagnostic, Label: "Run a diagnostic", done: evidence.hasDecisions},
	{Key: StepFinalize, Label: "Finalize a decision", done: evidence.hasFinalized},
	{Key: StepMilestones, Label: "Assign milestones", done: evidence.hasMilestones},
	{Key: StepReview, Label: "Schedule a review", done: evidence.hasReview},
}

// Steps returns the lifecycle table in canonical order.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// Valid reports whether k names a lifecycle step.
func (k StepKey) Valid() bool {
	return k.index() >= 0
}

// Label returns the display label for k, or "" for an unknown key.
func (k StepKey) Label() string {
	if i := k.index(); i >= 0 {
		return steps[i].Label
	}
	return ""
}

func (k StepKey) index() int {
	for i, s := range steps {
		if s.Key == k {
			return i
		}
	}
	return -1
}

// evidence is what the records say, reduced to the facts the step
// predicates need.
type evidence struct {
	decisions  int
	finalized  bool
	milestones bool
	review     bool
}

func (e evidence) hasDecisions() bool  { return e.decisions > 0 }
func (e evidence) hasFinalized() bool  { return e.finalized }
func (e evidence) hasMilestones() bool { return e.milestones }
func (e evidence) hasReview() bool     { return e.review }
