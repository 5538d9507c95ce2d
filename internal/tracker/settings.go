package tracker

import (
	apperrors "github.com/julianstephens/turnkey/internal/errors"
	"github.com/julianstephens/turnkey/internal/logger"
	"github.com/julianstephens/turnkey/internal/models"
	"github.com/julianstephens/turnkey/internal/scheduler"
	"github.com/julianstephens/turnkey/internal/validation"
)

// UpdateSettings validates and stores settings. Log-together is a one-way
// switch once an arch completes, so re-enabling it then is rejected, and a
// total change that completes one arch turns it off.
func (s *Service) UpdateSettings(settings models.Settings) error {
	if err := validation.ValidateSettings(settings); err != nil {
		return err
	}

	next := s.state.WithSettings(settings)
	if flipped, flips := s.scheduler.ApplyLogTogether(next); flips {
		if !s.state.Settings.LogTogether {
			return apperrors.Invalid("log_together", "cannot be turned on after one arch is complete")
		}
		next = flipped
		logger.Info("Log together turned off", "reason", "one arch complete")
	}

	if err := s.store.SaveSettings(next.Settings); err != nil {
		return apperrors.Persistence("save settings", err)
	}
	s.state = next
	logger.Info("Settings updated")
	return nil
}

// Reset clears every turn and restores default settings.
func (s *Service) Reset() error {
	if err := s.store.ClearTurns(); err != nil {
		return apperrors.Persistence("clear turns", err)
	}
	defaults := models.DefaultSettings()
	if err := s.store.SaveSettings(defaults); err != nil {
		// turns are gone but settings are not; resync with what is stored
		s.reload()
		return apperrors.Persistence("restore default settings", err)
	}
	s.state = scheduler.NewState(defaults, nil)
	logger.Info("Tracker reset")
	return nil
}
