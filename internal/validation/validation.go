package validation

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/julianstephens/turnkey/internal/constants"
	apperrors "github.com/julianstephens/turnkey/internal/errors"
	"github.com/julianstephens/turnkey/internal/models"
	"github.com/julianstephens/turnkey/internal/utils"
)

// MaxNoteLength caps the stored length of a turn note, in runes
const MaxNoteLength = 280

var notePolicy = bluemonday.StrictPolicy()

// ValidateSettings checks every settings field. The first problem found is returned.
func ValidateSettings(s models.Settings) error {
	if s.TopTotal <= 0 {
		return apperrors.Invalid(constants.SettingTopTotal, "must be positive, got %d", s.TopTotal)
	}
	if s.BottomTotal <= 0 {
		return apperrors.Invalid(constants.SettingBottomTotal, "must be positive, got %d", s.BottomTotal)
	}
	if s.InstallDate != "" && !utils.ValidateDay(s.InstallDate) {
		return apperrors.Invalid(constants.SettingInstallDate, "%q (expected YYYY-MM-DD)", s.InstallDate)
	}
	if !s.ScheduleType.Valid() {
		return apperrors.Invalid(constants.SettingScheduleType, "%q (expected %s or %s)",
			s.ScheduleType, models.ScheduleEveryNDays, models.ScheduleTwicePerWeek)
	}
	if s.IntervalDays <= 0 {
		return apperrors.Invalid(constants.SettingIntervalDays, "must be positive, got %d", s.IntervalDays)
	}
	if strings.TrimSpace(s.ChildName) == "" {
		return apperrors.Invalid(constants.SettingChildName, "must not be empty")
	}
	if !utils.ValidateTimezone(s.Timezone) {
		return apperrors.Invalid(constants.SettingTimezone, "%q is not a known IANA timezone", s.Timezone)
	}
	return nil
}

// ValidateDay checks a user-supplied calendar day.
func ValidateDay(day string) error {
	if !utils.ValidateDay(day) {
		return apperrors.Invalid("date", "%q (expected YYYY-MM-DD)", day)
	}
	return nil
}

// ValidateOffset checks the install-turn offset.
func ValidateOffset(offset int) error {
	if offset != 0 && offset != 1 {
		return apperrors.Invalid("install offset", "must be 0 or 1, got %d", offset)
	}
	return nil
}

// SanitizeNote strips markup and surrounding whitespace from a note and
// truncates it to MaxNoteLength runes. Notes are plain text, so entities the
// policy escapes are decoded again.
func SanitizeNote(note string) string {
	clean := strings.TrimSpace(html.UnescapeString(notePolicy.Sanitize(note)))
	if r := []rune(clean); len(r) > MaxNoteLength {
		clean = string(r[:MaxNoteLength])
	}
	return clean
}

// ConflictType represents the type of history problem
type ConflictType string

const (
	ConflictInvalidDay    ConflictType = "invalid_day"
	ConflictUnknownArch   ConflictType = "unknown_arch"
	ConflictFutureDay     ConflictType = "future_day"
	ConflictOverComplete  ConflictType = "over_complete"
	ConflictDuplicateTurn ConflictType = "duplicate_turn"
)

// Conflict represents one detected problem in the turn history
type Conflict struct {
	Type        ConflictType
	Description string
	Day         string   // YYYY-MM-DD format (if applicable)
	TurnIDs     []string // IDs of turns involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks a stored turn history for integrity problems. None of
// these stop the scheduler from working; they are surfaced by doctor.
type Validator struct {
	offset int
}

// New creates a new Validator for the given install offset
func New(offset int) *Validator {
	return &Validator{offset: offset}
}

// ValidateHistory checks events against settings as of today.
func (v *Validator) ValidateHistory(settings models.Settings, events []models.TurnEvent, today string) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	counts := make(map[models.Track]int)
	sameDay := make(map[string][]string)

	for _, e := range events {
		if !e.Arch.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownArch,
				Description: fmt.Sprintf("Turn %s has unknown arch %q", e.ID, e.Arch),
				Day:         e.Day,
				TurnIDs:     []string{e.ID},
			})
			continue
		}
		counts[e.Arch]++

		if !utils.ValidateDay(e.Day) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDay,
				Description: fmt.Sprintf("Turn %s has invalid day %q", e.ID, e.Day),
				TurnIDs:     []string{e.ID},
			})
			continue
		}
		if e.Day > today {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureDay,
				Description: fmt.Sprintf("Turn %s is dated in the future (%s)", e.ID, e.Day),
				Day:         e.Day,
				TurnIDs:     []string{e.ID},
			})
		}

		key := e.Day + "/" + string(e.Arch)
		sameDay[key] = append(sameDay[key], e.ID)
	}

	for _, t := range models.Tracks {
		done := counts[t] + v.offset
		if total := settings.Total(t); done > total {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOverComplete,
				Description: fmt.Sprintf("%s arch has %d turns but the total is %d", t, done, total),
			})
		}
	}

	keys := make([]string, 0, len(sameDay))
	for key := range sameDay {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		ids := sameDay[key]
		if len(ids) < 2 {
			continue
		}
		day, arch, _ := strings.Cut(key, "/")
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateTurn,
			Description: fmt.Sprintf("%d %s turns logged on %s", len(ids), arch, day),
			Day:         day,
			TurnIDs:     ids,
		})
	}

	return result
}
