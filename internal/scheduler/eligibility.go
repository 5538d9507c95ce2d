package scheduler

import (
	"github.com/julianstephens/turnkey/internal/constants"
	"github.com/julianstephens/turnkey/internal/models"
	"github.com/julianstephens/turnkey/internal/utils"
)

// Reason explains why a turn may not be logged.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonComplete Reason = "complete"
	ReasonWait     Reason = "wait"
)

// Eligibility is the guard result for a log request. A rejection is a
// normal value, never an error.
type Eligibility struct {
	CanLog bool
	Reason Reason
	// DaysRemaining is set only for interval waits. Weekly-cap waits leave
	// it at zero since the next slot depends on the calendar, not a gap.
	DaysRemaining int
}

var eligible = Eligibility{CanLog: true}

// CanLogTurn decides whether a turn for sel may be logged on today.
func (s *Scheduler) CanLogTurn(sel models.Selector, st State, today string) Eligibility {
	if !sel.Combined() {
		return fold(sel, func(t models.Track) Eligibility {
			return s.trackEligibility(t, st, today)
		}, anyEligible)
	}

	if s.bothComplete(st) {
		return Eligibility{Reason: ReasonComplete}
	}
	if s.LogsTogether(st) {
		return intervalGate(st.Aggregates.LastCombined, st.Settings.IntervalDays, today)
	}
	return fold(sel, func(t models.Track) Eligibility {
		return s.trackEligibility(t, st, today)
	}, anyEligible)
}

// LogsTogether reports whether a combined request is checked against the
// newest turn on either arch rather than per track.
func (s *Scheduler) LogsTogether(st State) bool {
	return st.Settings.LogTogether && st.Settings.ScheduleType == models.ScheduleEveryNDays
}

func (s *Scheduler) trackEligibility(t models.Track, st State, today string) Eligibility {
	if s.IsComplete(t, st) {
		return Eligibility{Reason: ReasonComplete}
	}

	switch st.Settings.ScheduleType {
	case models.ScheduleTwicePerWeek:
		if WeekCount(st, t, today) >= constants.WeeklyCap {
			return Eligibility{Reason: ReasonWait}
		}
		return eligible
	default:
		return intervalGate(st.Aggregates.For(t).LastDay, st.Settings.IntervalDays, today)
	}
}

// intervalGate applies the minimum-gap rule. A lastDay in the future gives a
// negative gap and therefore a longer wait, never an early unlock.
func intervalGate(lastDay string, interval int, today string) Eligibility {
	if lastDay == "" {
		return eligible
	}
	daysSince, err := utils.DaysBetween(lastDay, today)
	if err != nil {
		// days are validated before they reach a State
		return eligible
	}
	if daysSince < interval {
		return Eligibility{Reason: ReasonWait, DaysRemaining: interval - daysSince}
	}
	return eligible
}

// WeekCount returns how many turns t has in the Monday-started week containing today.
func WeekCount(st State, t models.Track, today string) int {
	start, err := utils.WeekStart(today)
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range st.Events {
		if e.Arch == t && utils.SameWeek(start, e.Day) {
			count++
		}
	}
	return count
}

// anyEligible merges per-track results for a combined request: it is open
// when either track is open. Between two waits the shorter wait wins.
func anyEligible(a, b Eligibility) Eligibility {
	switch {
	case a.CanLog:
		return a
	case b.CanLog:
		return b
	case a.Reason == ReasonComplete:
		return b
	case b.Reason == ReasonComplete:
		return a
	}
	if a.DaysRemaining == 0 || (b.DaysRemaining > 0 && b.DaysRemaining < a.DaysRemaining) {
		return b
	}
	return a
}
