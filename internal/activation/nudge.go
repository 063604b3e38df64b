package activation

// CycleLength is the length of an activation cycle in days.
const CycleLength = 14

// Nudge is a reminder keyed to an absolute day since the cycle started.
type Nudge struct {
	Day     int    `json:"day"`
	Message string `json:"message"`
	// Suppressor is the step whose completion silences the nudge; empty
	// means the nudge is never silenced by progress.
	Suppressor StepKey `json:"suppressor,omitempty"`
}

// Day 10 shares its suppressor with day 7: no record tracks milestone
// progress separately from milestone existence.
var schedule = []Nudge{
	{Day: 2, Message: "Run your first diagnostic", Suppressor: StepDiagnostic},
	{Day: 4, Message: "Finalize your first decision", Suppressor: StepFinalize},
	{Day: 7, Message: "Assign milestones to begin execution", Suppressor: StepMilestones},
	{Day: 10, Message: "Update progress on at least one milestone", Suppressor: StepMilestones},
	{Day: 12, Message: "Schedule your first review", Suppressor: StepReview},
}

// Schedule returns the fixed nudge schedule ordered by day.
func Schedule() []Nudge {
	out := make([]Nudge, len(schedule))
	copy(out, schedule)
	return out
}

// CurrentNudge returns the nudge for exactly daysSinceStart, if one is
// scheduled and not suppressed. Missed days are not carried forward.
func CurrentNudge(daysSinceStart int, progress Snapshot) (Nudge, bool) {
	if progress.AllComplete {
		return Nudge{}, false
	}
	for _, n := range schedule {
		if n.Day != daysSinceStart {
			continue
		}
		if n.Suppressor == "" || !progress.IsComplete(n.Suppressor) {
			return n, true
		}
		return Nudge{}, false
	}
	return Nudge{}, false
}

// DaysRemaining returns max(0, CycleLength-daysSinceStart), always within
// [0, CycleLength]. The second result is false once every step is complete.
func DaysRemaining(daysSinceStart int, progress Snapshot) (int, bool) {
	if progress.AllComplete {
		return 0, false
	}
	if daysSinceStart < 0 {
		daysSinceStart = 0
	}
	remaining := CycleLength - daysSinceStart
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}
