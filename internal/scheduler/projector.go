package scheduler

import (
	"github.com/julianstephens/turnkey/internal/constants"
	"github.com/julianstephens/turnkey/internal/models"
	"github.com/julianstephens/turnkey/internal/utils"
)

// dueDate is a nullable projected day.
type dueDate struct {
	day string
	ok  bool
}

var noDueDate = dueDate{}

// NextDueDate projects the next day sel becomes eligible. ok is false when
// the track (or both tracks) is complete, or when there is nothing to anchor
// an interval projection to.
func (s *Scheduler) NextDueDate(sel models.Selector, st State, today string) (string, bool) {
	var d dueDate
	switch {
	case !sel.Combined():
		d = fold(sel, func(t models.Track) dueDate { return s.trackDueDate(t, st, today) }, earliest)
	case s.bothComplete(st):
		d = noDueDate
	case s.LogsTogether(st):
		d = intervalDue(st.Aggregates.LastCombined, st.Settings)
	default:
		d = fold(sel, func(t models.Track) dueDate { return s.trackDueDate(t, st, today) }, earliest)
	}
	return d.day, d.ok
}

// DisplayDueDate clamps a projected day so nothing earlier than today is shown.
func DisplayDueDate(day, today string) string {
	if day <= today {
		return today
	}
	return day
}

func (s *Scheduler) trackDueDate(t models.Track, st State, today string) dueDate {
	if s.IsComplete(t, st) {
		return noDueDate
	}

	switch st.Settings.ScheduleType {
	case models.ScheduleTwicePerWeek:
		if WeekCount(st, t, today) < constants.WeeklyCap {
			return dueDate{day: today, ok: true}
		}
		start, err := utils.WeekStart(today)
		if err != nil {
			return noDueDate
		}
		next, err := utils.AddDays(start, 7)
		if err != nil {
			return noDueDate
		}
		return dueDate{day: next, ok: true}
	default:
		return intervalDue(st.Aggregates.For(t).LastDay, st.Settings)
	}
}

// intervalDue anchors on the last turn, or on the install day before any turn.
func intervalDue(lastDay string, settings models.Settings) dueDate {
	anchor := lastDay
	if anchor == "" {
		anchor = settings.InstallDate
	}
	if anchor == "" {
		return noDueDate
	}
	day, err := utils.AddDays(anchor, settings.IntervalDays)
	if err != nil {
		return noDueDate
	}
	return dueDate{day: day, ok: true}
}

// earliest picks the sooner of two projections; a null only yields the other.
func earliest(a, b dueDate) dueDate {
	switch {
	case !a.ok:
		return b
	case !b.ok:
		return a
	case b.day < a.day:
		return b
	}
	return a
}
