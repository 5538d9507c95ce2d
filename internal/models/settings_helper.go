package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/turnkey/internal/constants"
)

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		TopTotal:     constants.DefaultTopTotal,
		BottomTotal:  constants.DefaultBottomTotal,
		InstallDate:  constants.DefaultInstallDate,
		ScheduleType: ScheduleType(constants.DefaultScheduleType),
		IntervalDays: constants.DefaultIntervalDays,
		ChildName:    constants.DefaultChildName,
		LogTogether:  constants.DefaultLogTogether,
		Timezone:     constants.DefaultTimezone,
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Keys that are absent keep their default value.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingTopTotal:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing top_total: %w", err)
			}
			settings.TopTotal = n
		case constants.SettingBottomTotal:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing bottom_total: %w", err)
			}
			settings.BottomTotal = n
		case constants.SettingInstallDate:
			settings.InstallDate = value
		case constants.SettingScheduleType:
			settings.ScheduleType = ScheduleType(value)
		case constants.SettingIntervalDays:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing interval_days: %w", err)
			}
			settings.IntervalDays = n
		case constants.SettingChildName:
			settings.ChildName = value
		case constants.SettingLogTogether:
			settings.LogTogether = value == "true"
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTopTotal:     strconv.Itoa(settings.TopTotal),
		constants.SettingBottomTotal:  strconv.Itoa(settings.BottomTotal),
		constants.SettingInstallDate:  settings.InstallDate,
		constants.SettingScheduleType: string(settings.ScheduleType),
		constants.SettingIntervalDays: strconv.Itoa(settings.IntervalDays),
		constants.SettingChildName:    settings.ChildName,
		constants.SettingLogTogether:  strconv.FormatBool(settings.LogTogether),
		constants.SettingTimezone:     settings.Timezone,
	}
}

// ApplyDefaultSettings fills zero-valued fields with defaults.
func ApplyDefaultSettings(settings *Settings) {
	if settings.TopTotal == 0 {
		settings.TopTotal = constants.DefaultTopTotal
	}
	if settings.BottomTotal == 0 {
		settings.BottomTotal = constants.DefaultBottomTotal
	}
	if settings.ScheduleType == "" {
		settings.ScheduleType = ScheduleType(constants.DefaultScheduleType)
	}
	if settings.IntervalDays == 0 {
		settings.IntervalDays = constants.DefaultIntervalDays
	}
	if settings.ChildName == "" {
		settings.ChildName = constants.DefaultChildName
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}
