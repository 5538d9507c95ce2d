package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/turnkey/internal/constants"
	"github.com/julianstephens/turnkey/internal/models"
)

// Clock supplies "today" as a calendar day in the user's timezone.
type Clock interface {
	Today() string
}

// SystemClock reads the wall clock in the configured timezone.
type SystemClock struct {
	Timezone string
}

// Today returns today's date string (YYYY-MM-DD). An unloadable timezone
// falls back to the system zone rather than failing a read-only query.
func (c SystemClock) Today() string {
	today, err := GetTodayInTimezone(c.Timezone)
	if err != nil {
		return time.Now().Format(constants.DateFormat)
	}
	return today
}

// FixedClock always reports the same day.
type FixedClock string

func (c FixedClock) Today() string { return string(c) }

// ClockFromSettings returns a SystemClock for the settings' timezone.
func ClockFromSettings(settings models.Settings) Clock {
	return SystemClock{Timezone: settings.Timezone}
}

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// ParseDay parses a YYYY-MM-DD string as a civil date at UTC midnight.
// Day arithmetic is done on these values so DST transitions cannot shift a count.
func ParseDay(day string) (time.Time, error) {
	return time.Parse(constants.DateFormat, day)
}

// ValidateDay checks if the string is a well-formed calendar day.
func ValidateDay(day string) bool {
	_, err := ParseDay(day)
	return err == nil
}

// DayOf returns the calendar day of t in its own location.
func DayOf(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DaysBetween returns the whole calendar days from `from` to `to`.
// The result is negative when `from` is after `to`.
func DaysBetween(from, to string) (int, error) {
	f, err := ParseDay(from)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", from, err)
	}
	t, err := ParseDay(to)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", to, err)
	}
	return int(t.Sub(f).Hours() / 24), nil
}

// AddDays shifts a calendar day by n days.
func AddDays(day string, n int) (string, error) {
	d, err := ParseDay(day)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", day, err)
	}
	return d.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// WeekStart returns the Monday of the week containing day.
func WeekStart(day string) (string, error) {
	d, err := ParseDay(day)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", day, err)
	}
	// time.Weekday counts from Sunday; shift so Monday is 0
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset).Format(constants.DateFormat), nil
}

// SameWeek reports whether day falls in the Monday-started week beginning at weekStart.
func SameWeek(weekStart, day string) bool {
	n, err := DaysBetween(weekStart, day)
	return err == nil && n >= 0 && n < 7
}
