package activation

import "time"

const day = 24 * time.Hour

// Completion is the record-derived half of a snapshot. It does not depend on
// the clock, so callers may memoize it per set of records.
type Completion struct {
	Completed []StepKey  `json:"completed"`
	StartedAt *time.Time `json:"started_at,omitempty"`
}

// Snapshot is a progress view recomputed on every call. It is never stored.
type Snapshot struct {
	Completed      []StepKey  `json:"completed"`
	CompletedCount int        `json:"completed_count"`
	NextStep       StepKey    `json:"next_step,omitempty"`
	AllComplete    bool       `json:"all_complete"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	DaysSinceStart int        `json:"days_since_start"`
}

// Evaluate tests every step predicate against the records and finds the
// cycle start. Milestones whose decision is not in decisions are ignored.
func Evaluate(decisions []DecisionRecord, milestones []MilestoneRecord) Completion {
	perDecision := make(map[string]int, len(milestones))
	for _, m := range milestones {
		perDecision[m.DecisionID]++
	}

	ev := evidence{decisions: len(decisions)}
	var start time.Time
	for _, d := range decisions {
		if d.Finalized() {
			ev.finalized = true
		}
		if perDecision[d.ID] > 0 {
			ev.milestones = true
		}
		if d.ReviewScheduled() {
			ev.review = true
		}
		if d.CreatedAt.IsZero() {
			continue
		}
		if start.IsZero() || d.CreatedAt.Before(start) {
			start = d.CreatedAt
		}
	}

	c := Completion{Completed: make([]StepKey, 0, StepCount)}
	for _, s := range steps {
		if s.done(ev) {
			c.Completed = append(c.Completed, s.Key)
		}
	}
	if !start.IsZero() {
		c.StartedAt = &start
	}
	return c
}

// At combines the completion with the current time.
func (c Completion) At(now time.Time) Snapshot {
	completed := make([]StepKey, len(c.Completed))
	copy(completed, c.Completed)

	snap := Snapshot{
		Completed:      completed,
		CompletedCount: len(completed),
		AllComplete:    len(completed) >= StepCount,
	}
	if !snap.AllComplete {
		snap.NextStep = firstMissing(completed)
	}
	if c.StartedAt != nil {
		started := *c.StartedAt
		snap.StartedAt = &started
		snap.DaysSinceStart = DaysBetween(started, now)
	}
	return snap
}

// Derive evaluates the records at the given instant.
func Derive(decisions []DecisionRecord, milestones []MilestoneRecord, now time.Time) Snapshot {
	return Evaluate(decisions, milestones).At(now)
}

// DaysBetween returns whole days elapsed from start to now, never negative.
func DaysBetween(start, now time.Time) int {
	if !now.After(start) {
		return 0
	}
	return int(now.Sub(start) / day)
}

// IsComplete reports whether step k is in the completed set.
func (s Snapshot) IsComplete(k StepKey) bool {
	for _, c := range s.Completed {
		if c == k {
			return true
		}
	}
	return false
}

func firstMissing(completed []StepKey) StepKey {
	done := make(map[StepKey]bool, len(completed))
	for _, k := range completed {
		done[k] = true
	}
	for _, s := range steps {
		if !done[s.Key] {
			return s.Key
		}
	}
	return ""
}
