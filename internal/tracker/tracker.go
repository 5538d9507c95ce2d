// Package tracker runs user actions against the scheduler and the store.
// Every mutation is guard, build next state, persist, then swap; a failed
// write leaves the last committed state in place.
package tracker

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/turnkey/internal/errors"
	"github.com/julianstephens/turnkey/internal/logger"
	"github.com/julianstephens/turnkey/internal/models"
	"github.com/julianstephens/turnkey/internal/scheduler"
	"github.com/julianstephens/turnkey/internal/storage"
	"github.com/julianstephens/turnkey/internal/utils"
	"github.com/julianstephens/turnkey/internal/validation"
)

type Service struct {
	store     storage.Provider
	scheduler *scheduler.Scheduler
	clock     utils.Clock
	state     scheduler.State

	newID func() string
	now   func() time.Time
}

// New builds a Service over a loaded store. A nil clock follows the
// timezone in the stored settings.
func New(store storage.Provider, sched *scheduler.Scheduler, clock utils.Clock) *Service {
	return &Service{
		store:     store,
		scheduler: sched,
		clock:     clock,
		state:     scheduler.NewState(models.DefaultSettings(), nil),
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Scheduler returns the scheduler the service guards with.
func (s *Service) Scheduler() *scheduler.Scheduler {
	return s.scheduler
}

// State returns the last committed snapshot.
func (s *Service) State() scheduler.State {
	return s.state
}

// Today returns the current calendar day in the user's timezone.
func (s *Service) Today() string {
	if s.clock != nil {
		return s.clock.Today()
	}
	return utils.ClockFromSettings(s.state.Settings).Today()
}

// Load replaces the in-memory state with what the store holds. Rows with
// an unknown arch or a malformed day are skipped with a warning so one bad
// row cannot hide the rest of the log.
func (s *Service) Load() error {
	settings, err := s.store.GetSettings()
	if err != nil {
		return apperrors.Persistence("load settings", err)
	}
	if err := validation.ValidateSettings(settings); err != nil {
		logger.Warn("Stored settings are invalid", "error", err)
	}

	turns, err := s.store.ListTurns()
	if err != nil {
		return apperrors.Persistence("load turns", err)
	}

	valid := make([]models.TurnEvent, 0, len(turns))
	for _, e := range turns {
		if !e.Arch.Valid() || !utils.ValidateDay(e.Day) {
			logger.Warn("Skipping invalid turn", "id", e.ID, "day", e.Day, "arch", e.Arch)
			continue
		}
		valid = append(valid, e)
	}

	s.state = scheduler.NewState(settings, valid)
	logger.Debug("Tracker loaded", "turns", len(valid), "skipped", len(turns)-len(valid))
	return nil
}

// reload resyncs after a multi-step write failed part way.
func (s *Service) reload() {
	if err := s.Load(); err != nil {
		logger.Error("Failed to reload state after a partial write", "error", err)
	}
}

// CanLog reports whether sel may be logged today.
func (s *Service) CanLog(sel models.Selector) scheduler.Eligibility {
	return s.scheduler.CanLogTurn(sel, s.state, s.Today())
}
