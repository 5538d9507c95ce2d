// Package legacy converts the old snapshot-counter history log into turn
// events. Each old entry stored the counters as they stood after an action,
// so the arch that moved has to be inferred from the difference to the
// entry before it.
package legacy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/turnkey/internal/logger"
	"github.com/julianstephens/turnkey/internal/models"
	"github.com/julianstephens/turnkey/internal/scheduler"
	"github.com/julianstephens/turnkey/internal/utils"
	"github.com/julianstephens/turnkey/internal/validation"
)

// Report summarizes what a conversion could not map one to one.
type Report struct {
	Entries   int // entries read
	Events    int // turn events produced
	Ambiguous int // entries where both counters advanced
	Skipped   int // entries with nothing to convert
}

// LoadFile reads an export written by the old tracker. A bare JSON array of
// history entries is accepted as well as the full document.
func LoadFile(path string) (models.LegacyExport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.LegacyExport{}, fmt.Errorf("failed to read legacy export: %w", err)
	}

	var export models.LegacyExport
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		if err := json.Unmarshal(data, &export.History); err != nil {
			return models.LegacyExport{}, fmt.Errorf("failed to parse legacy history: %w", err)
		}
		return export, nil
	}
	if err := json.Unmarshal(data, &export); err != nil {
		return models.LegacyExport{}, fmt.Errorf("failed to parse legacy export: %w", err)
	}
	return export, nil
}

// Convert turns history entries, newest first, into turn events. The oldest
// entry is compared with baseline, the count the old tracker started from.
//
// An entry where both counters advanced cannot say which arch came first; it
// becomes a top then a bottom event on the same day and is counted as
// ambiguous. Entries where neither counter advanced produce nothing.
func Convert(entries []models.LegacyEntry, baseline int) ([]models.TurnEvent, Report) {
	report := Report{Entries: len(entries)}
	var events []models.TurnEvent

	prevTop, prevBottom := baseline, baseline
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		topSteps := entry.TopDoneAfter - prevTop
		bottomSteps := entry.BottomDoneAfter - prevBottom
		if topSteps > 0 {
			prevTop = entry.TopDoneAfter
		}
		if bottomSteps > 0 {
			prevBottom = entry.BottomDoneAfter
		}

		day := strings.TrimSpace(entry.Date)
		if !utils.ValidateDay(day) {
			logger.Warn("Skipping legacy entry with invalid date", "date", entry.Date)
			report.Skipped++
			continue
		}
		if topSteps <= 0 && bottomSteps <= 0 {
			logger.Warn("Skipping legacy entry with no advancing counter",
				"date", day, "top", entry.TopDoneAfter, "bottom", entry.BottomDoneAfter)
			report.Skipped++
			continue
		}
		if topSteps > 0 && bottomSteps > 0 {
			report.Ambiguous++
		}

		created := parseTimestamp(entry.Timestamp)
		note := validation.SanitizeNote(entry.Note)
		emit := func(t models.Track, steps int) {
			for n := 0; n < steps; n++ {
				e := models.TurnEvent{
					Day:    day,
					Arch:   t,
					Note:   note,
					Source: models.SourceLegacy,
				}
				if !created.IsZero() {
					e.CreatedAt = created.Add(time.Duration(len(events)) * time.Microsecond)
				}
				events = append(events, e)
			}
		}
		emit(models.TrackTop, topSteps)
		emit(models.TrackBottom, bottomSteps)
	}

	report.Events = len(events)
	return events, report
}

// Reconcile returns the aggregates the converted log produces.
func Reconcile(entries []models.LegacyEntry, baseline int) scheduler.Aggregates {
	events, _ := Convert(entries, baseline)
	return scheduler.Reconcile(events)
}

// ConvertSettings maps the old settings block onto Settings. Missing or
// non-positive values keep their defaults, and so does the timezone, which
// the old format never stored.
func ConvertSettings(ls *models.LegacySettings) models.Settings {
	s := models.DefaultSettings()
	if ls == nil {
		return s
	}
	if ls.TopTotal > 0 {
		s.TopTotal = ls.TopTotal
	}
	if ls.BottomTotal > 0 {
		s.BottomTotal = ls.BottomTotal
	}
	if utils.ValidateDay(ls.InstallDate) {
		s.InstallDate = ls.InstallDate
	}
	if st := models.ScheduleType(ls.ScheduleType); st.Valid() {
		s.ScheduleType = st
	}
	if ls.IntervalDays > 0 {
		s.IntervalDays = ls.IntervalDays
	}
	if name := strings.TrimSpace(ls.ChildName); name != "" {
		s.ChildName = name
	}
	if ls.LogTogether != nil {
		s.LogTogether = *ls.LogTogether
	}
	return s
}

func parseTimestamp(ts string) time.Time {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
