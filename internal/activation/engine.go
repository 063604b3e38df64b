package activation

import "time"

// Engine runs derivations against an injected clock. It holds no other state
// and is safe for concurrent use.
type Engine struct {
	clock Clock
}

// NewEngine returns an engine reading time from clock. A nil clock means
// [SystemClock].
func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{clock: clock}
}

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// Derive computes a snapshot from the records at the engine's current time.
func (e *Engine) Derive(decisions []DecisionRecord, milestones []MilestoneRecord) Snapshot {
	return Derive(decisions, milestones, e.clock.Now())
}

// Snapshot applies the engine's current time to a memoized completion and
// returns the instant it used.
func (e *Engine) Snapshot(c Completion) (Snapshot, time.Time) {
	now := e.clock.Now()
	return c.At(now), now
}
