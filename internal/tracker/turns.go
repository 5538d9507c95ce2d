package tracker

import (
	"time"

	apperrors "github.com/julianstephens/turnkey/internal/errors"
	"github.com/julianstephens/turnkey/internal/logger"
	"github.com/julianstephens/turnkey/internal/models"
	"github.com/julianstephens/turnkey/internal/scheduler"
	"github.com/julianstephens/turnkey/internal/validation"
)

// LogResult describes the outcome of a log request. A guard rejection is
// reported here with Logged empty, not as an error.
type LogResult struct {
	Eligibility         scheduler.Eligibility
	Logged              []models.TurnEvent
	LogTogetherDisabled bool
}

// LogTurn records a turn for sel on day ("" means today). The request is
// guarded as of that day; days after today are rejected.
func (s *Service) LogTurn(sel models.Selector, day, note string) (LogResult, error) {
	today := s.Today()
	if day == "" {
		day = today
	}
	if err := validation.ValidateDay(day); err != nil {
		return LogResult{}, err
	}
	if day > today {
		return LogResult{}, apperrors.Invalid("date", "%s is after today (%s)", day, today)
	}
	if len(sel.Tracks()) == 0 {
		return LogResult{}, apperrors.Invalid("track", "%q (expected top, bottom or both)", sel)
	}

	st := s.state
	elig := s.scheduler.CanLogTurn(sel, st, day)
	if !elig.CanLog {
		return LogResult{Eligibility: elig}, nil
	}

	tracks := s.tracksToLog(sel, st, day)
	note = validation.SanitizeNote(note)
	created := s.now().UTC()

	events := make([]models.TurnEvent, 0, len(tracks))
	for i, t := range tracks {
		events = append(events, models.TurnEvent{
			ID:   s.newID(),
			Day:  day,
			Arch: t,
			Note: note,
			// later tracks sort newer so undo peels the batch back in reverse
			CreatedAt: created.Add(time.Duration(i) * time.Microsecond),
			Source:    models.SourceApp,
		})
	}

	if err := s.store.InsertTurns(events); err != nil {
		return LogResult{Eligibility: elig}, apperrors.Persistence("save turn", err)
	}
	next := scheduler.Append(st, events...)

	result := LogResult{Eligibility: elig, Logged: events}
	var err error
	next, result.LogTogetherDisabled, err = s.applyLogTogether(next)
	if err != nil {
		return result, err
	}

	s.state = next
	for _, e := range events {
		logger.Info("Turn logged", "id", e.ID, "arch", e.Arch, "day", e.Day)
	}
	return result, nil
}

// tracksToLog picks the arches a guarded request writes. In log-together
// mode every unfinished arch moves; otherwise only arches that are open.
func (s *Service) tracksToLog(sel models.Selector, st scheduler.State, day string) []models.Track {
	var out []models.Track
	together := sel.Combined() && s.scheduler.LogsTogether(st)
	for _, t := range sel.Tracks() {
		if s.scheduler.IsComplete(t, st) {
			continue
		}
		if together || s.scheduler.CanLogTurn(models.SelectorFor(t), st, day).CanLog {
			out = append(out, t)
		}
	}
	return out
}

// UndoLast removes the newest turn. ok is false when the log is empty.
func (s *Service) UndoLast() (models.TurnEvent, bool, error) {
	next, removed, ok := scheduler.UndoLast(s.state)
	return s.commitRemoval(next, removed, ok)
}

// UndoAt removes the turn at index in newest-first history order.
func (s *Service) UndoAt(index int) (models.TurnEvent, bool, error) {
	next, removed, ok := scheduler.UndoAt(s.state, index)
	return s.commitRemoval(next, removed, ok)
}

// UndoByID removes the turn with id.
func (s *Service) UndoByID(id string) (models.TurnEvent, bool, error) {
	next, removed, ok := scheduler.UndoByID(s.state, id)
	return s.commitRemoval(next, removed, ok)
}

func (s *Service) commitRemoval(next scheduler.State, removed models.TurnEvent, ok bool) (models.TurnEvent, bool, error) {
	if !ok {
		return models.TurnEvent{}, false, nil
	}
	if err := s.store.DeleteTurn(removed.ID); err != nil {
		return removed, true, apperrors.Persistence("delete turn", err)
	}
	s.state = next
	logger.Info("Turn removed", "id", removed.ID, "arch", removed.Arch, "day", removed.Day)
	return removed, true, nil
}

// EditTurn moves a turn to day and, when note is non-nil, replaces its note.
func (s *Service) EditTurn(id, day string, note *string) (models.TurnEvent, bool, error) {
	if err := validation.ValidateDay(day); err != nil {
		return models.TurnEvent{}, false, err
	}
	if today := s.Today(); day > today {
		return models.TurnEvent{}, false, apperrors.Invalid("date", "%s is after today (%s)", day, today)
	}

	next, edited, ok := scheduler.EditDay(s.state, id, day)
	if !ok {
		return models.TurnEvent{}, false, nil
	}
	if note != nil {
		_, idx, _ := next.Find(id)
		events := next.History()
		events[idx].Note = validation.SanitizeNote(*note)
		edited = events[idx]
		next = scheduler.NewState(next.Settings, events)
	}

	if err := s.store.UpdateTurn(edited); err != nil {
		return edited, true, apperrors.Persistence("update turn", err)
	}
	s.state = next
	logger.Info("Turn edited", "id", id, "day", day)
	return edited, true, nil
}

// ImportTurns stores converted turns in one batch. With replace set the
// existing log is cleared first. Missing ids and creation times are filled in.
func (s *Service) ImportTurns(events []models.TurnEvent, replace bool) (int, error) {
	base := s.now().UTC()
	batch := make([]models.TurnEvent, 0, len(events))
	for i, e := range events {
		if _, err := models.ParseTrack(string(e.Arch)); err != nil {
			return 0, err
		}
		if err := validation.ValidateDay(e.Day); err != nil {
			return 0, err
		}
		if e.ID == "" {
			e.ID = s.newID()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
		}
		e.Note = validation.SanitizeNote(e.Note)
		batch = append(batch, e)
	}

	prior := s.state.Events
	if replace {
		if err := s.store.ClearTurns(); err != nil {
			return 0, apperrors.Persistence("clear turns", err)
		}
		prior = nil
	}
	if err := s.store.InsertTurns(batch); err != nil {
		if replace {
			s.reload()
		}
		return 0, apperrors.Persistence("import turns", err)
	}

	next := scheduler.NewState(s.state.Settings, append(append([]models.TurnEvent{}, prior...), batch...))
	next, _, err := s.applyLogTogether(next)
	if err != nil {
		return len(batch), err
	}
	s.state = next
	logger.Info("Turns imported", "count", len(batch), "replace", replace)
	return len(batch), nil
}

// applyLogTogether runs the log-together post-condition on next and stores
// the settings when it flips. The turns are already written at this point,
// so a failed save resyncs from the store.
func (s *Service) applyLogTogether(next scheduler.State) (scheduler.State, bool, error) {
	next, flipped := s.scheduler.ApplyLogTogether(next)
	if !flipped {
		return next, false, nil
	}
	if err := s.store.SaveSettings(next.Settings); err != nil {
		s.reload()
		return next, true, apperrors.Persistence("turn off log together", err)
	}
	logger.Info("Log together turned off", "reason", "one arch complete")
	return next, true, nil
}
