package validation

import (
	"strings"
	"testing"

	apperrors "github.com/julianstephens/turnkey/internal/errors"
	"github.com/julianstephens/turnkey/internal/models"
)

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Settings)
		wantErr bool
	}{
		{"defaults", func(s *models.Settings) {}, false},
		{"install date set", func(s *models.Settings) { s.InstallDate = "2024-01-01" }, false},
		{"weekly schedule", func(s *models.Settings) { s.ScheduleType = models.ScheduleTwicePerWeek }, false},
		{"named timezone", func(s *models.Settings) { s.Timezone = "UTC" }, false},
		{"zero top total", func(s *models.Settings) { s.TopTotal = 0 }, true},
		{"negative bottom total", func(s *models.Settings) { s.BottomTotal = -1 }, true},
		{"bad install date", func(s *models.Settings) { s.InstallDate = "2024-13-01" }, true},
		{"unknown schedule", func(s *models.Settings) { s.ScheduleType = "daily" }, true},
		{"zero interval", func(s *models.Settings) { s.IntervalDays = 0 }, true},
		{"blank child name", func(s *models.Settings) { s.ChildName = "  " }, true},
		{"bad timezone", func(s *models.Settings) { s.Timezone = "Mars/Olympus" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.DefaultSettings()
			tt.mutate(&s)
			err := ValidateSettings(s)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateSettings() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperrors.IsValidation(err) {
				t.Errorf("expected a ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateDay(t *testing.T) {
	for _, day := range []string{"2024-02-29", "2023-12-31"} {
		if err := ValidateDay(day); err != nil {
			t.Errorf("ValidateDay(%q) = %v", day, err)
		}
	}
	for _, day := range []string{"", "2023-02-29", "01/02/2024", "2024-1-2"} {
		if err := ValidateDay(day); err == nil {
			t.Errorf("ValidateDay(%q) expected error", day)
		}
	}
}

func TestValidateOffset(t *testing.T) {
	if err := ValidateOffset(0); err != nil {
		t.Error(err)
	}
	if err := ValidateOffset(1); err != nil {
		t.Error(err)
	}
	if err := ValidateOffset(2); err == nil {
		t.Error("expected offset 2 to be rejected")
	}
}

func TestSanitizeNote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  evening turn  ", "evening turn"},
		{"<b>cried</b> a bit", "cried a bit"},
		{"<script>alert(1)</script>ok", "ok"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeNote(tt.in); got != tt.want {
			t.Errorf("SanitizeNote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	long := strings.Repeat("a", MaxNoteLength+10)
	if got := SanitizeNote(long); len([]rune(got)) != MaxNoteLength {
		t.Errorf("expected note truncated to %d runes, got %d", MaxNoteLength, len([]rune(got)))
	}
}

func TestValidateHistory(t *testing.T) {
	settings := models.DefaultSettings()
	settings.TopTotal = 2

	events := []models.TurnEvent{
		{ID: "1", Day: "2024-01-01", Arch: models.TrackTop},
		{ID: "2", Day: "2024-01-01", Arch: models.TrackTop},
		{ID: "3", Day: "2024-01-03", Arch: models.TrackBottom},
		{ID: "4", Day: "2024-02-30", Arch: models.TrackBottom},
		{ID: "5", Day: "2024-01-04", Arch: "middle"},
		{ID: "6", Day: "2024-03-01", Arch: models.TrackBottom},
	}

	result := New(1).ValidateHistory(settings, events, "2024-01-10")
	if !result.HasConflicts() {
		t.Fatal("expected conflicts")
	}

	found := make(map[ConflictType]int)
	for _, c := range result.Conflicts {
		found[c.Type]++
	}
	for _, want := range []ConflictType{
		ConflictInvalidDay, ConflictUnknownArch, ConflictFutureDay, ConflictOverComplete, ConflictDuplicateTurn,
	} {
		if found[want] != 1 {
			t.Errorf("expected one %s conflict, got %d", want, found[want])
		}
	}

	if !strings.Contains(result.FormatReport(), "2 top turns logged on 2024-01-01") {
		t.Errorf("report missing duplicate line:\n%s", result.FormatReport())
	}
}

func TestValidateHistory_Clean(t *testing.T) {
	events := []models.TurnEvent{
		{ID: "1", Day: "2024-01-01", Arch: models.TrackTop},
		{ID: "2", Day: "2024-01-01", Arch: models.TrackBottom},
	}
	result := New(0).ValidateHistory(models.DefaultSettings(), events, "2024-01-02")
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected report %q", result.FormatReport())
	}
}
