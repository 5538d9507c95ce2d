package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/turnkey/internal/backup"
	"github.com/julianstephens/turnkey/internal/logger"
	"github.com/julianstephens/turnkey/internal/models"
	"github.com/julianstephens/turnkey/internal/scheduler"
	"github.com/julianstephens/turnkey/internal/storage"
	"github.com/julianstephens/turnkey/internal/storage/sqlite"
	"github.com/julianstephens/turnkey/internal/tracker"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Tracker   *tracker.Service
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// Only the SQLite backend keeps file backups.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseSelector parses a track argument; an empty argument means both arches.
func ParseSelector(s string) (models.Selector, error) {
	if strings.TrimSpace(s) == "" {
		return models.SelectBoth, nil
	}
	return models.ParseSelector(s)
}

// FormatEligibility describes a guard result in one line.
func FormatEligibility(e scheduler.Eligibility) string {
	switch {
	case e.CanLog:
		return "ready"
	case e.Reason == scheduler.ReasonComplete:
		return "complete"
	case e.DaysRemaining > 0:
		return fmt.Sprintf("wait %s", pluralDays(e.DaysRemaining))
	}
	return "weekly limit reached"
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}

// FormatSchedule describes the schedule settings.
func FormatSchedule(t models.ScheduleType, intervalDays int) string {
	if t == models.ScheduleTwicePerWeek {
		return "twice per week"
	}
	if intervalDays == 1 {
		return "every day"
	}
	return fmt.Sprintf("every %d days", intervalDays)
}
