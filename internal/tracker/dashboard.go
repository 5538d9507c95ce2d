package tracker

import (
	"github.com/julianstephens/turnkey/internal/models"
	"github.com/julianstephens/turnkey/internal/scheduler"
)

// TrackView is the per-arch summary a renderer shows.
type TrackView struct {
	Track       models.Track
	Done        int // install turn included
	Total       int
	Remaining   int
	Status      scheduler.Status
	Eligibility scheduler.Eligibility
	NextDue     string // clamped to today; empty when there is no due date
}

// CombinedView summarizes both arches as one action.
type CombinedView struct {
	Status      scheduler.Status
	Eligibility scheduler.Eligibility
	NextDue     string
}

// Dashboard is everything the CLI and TUI render.
type Dashboard struct {
	ChildName    string
	Today        string
	ScheduleType models.ScheduleType
	IntervalDays int
	LogTogether  bool
	InstallDate  string
	Tracks       []TrackView
	Combined     CombinedView
	History      []models.TurnEvent
}

// Track returns the view for t.
func (d Dashboard) Track(t models.Track) TrackView {
	for _, v := range d.Tracks {
		if v.Track == t {
			return v
		}
	}
	return TrackView{Track: t}
}

// Dashboard derives the render model from the committed state.
func (s *Service) Dashboard() Dashboard {
	st := s.state
	today := s.Today()
	sched := s.scheduler

	d := Dashboard{
		ChildName:    st.Settings.ChildName,
		Today:        today,
		ScheduleType: st.Settings.ScheduleType,
		IntervalDays: st.Settings.IntervalDays,
		LogTogether:  st.Settings.LogTogether,
		InstallDate:  st.Settings.InstallDate,
		History:      st.History(),
	}

	for _, t := range models.Tracks {
		sel := models.SelectorFor(t)
		d.Tracks = append(d.Tracks, TrackView{
			Track:       t,
			Done:        sched.DoneCount(t, st),
			Total:       st.Settings.Total(t),
			Remaining:   sched.Remaining(t, st),
			Status:      sched.Status(sel, st, today),
			Eligibility: sched.CanLogTurn(sel, st, today),
			NextDue:     displayDue(sched, sel, st, today),
		})
	}

	d.Combined = CombinedView{
		Status:      sched.Status(models.SelectBoth, st, today),
		Eligibility: sched.CanLogTurn(models.SelectBoth, st, today),
		NextDue:     displayDue(sched, models.SelectBoth, st, today),
	}
	// a together log is one action behind one gate
	if sched.LogsTogether(st) {
		d.Combined.Status = scheduler.StatusOf(d.Combined.Eligibility)
	}
	return d
}

func displayDue(sched *scheduler.Scheduler, sel models.Selector, st scheduler.State, today string) string {
	day, ok := sched.NextDueDate(sel, st, today)
	if !ok {
		return ""
	}
	return scheduler.DisplayDueDate(day, today)
}
