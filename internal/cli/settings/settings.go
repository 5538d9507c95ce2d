package settings

import (
	"fmt"

	"github.com/julianstephens/turnkey/internal/cli"
	"github.com/julianstephens/turnkey/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	TopTotal     *int    `help:"Target number of top arch turns."`
	BottomTotal  *int    `help:"Target number of bottom arch turns."`
	InstallDate  *string `help:"Day the expander was installed (YYYY-MM-DD)."`
	Schedule     *string `help:"Schedule type: every_n_days or twice_per_week."`
	IntervalDays *int    `help:"Minimum days between turns (every_n_days only)."`
	ChildName    *string `help:"Name shown on the dashboard."`
	LogTogether  *bool   `help:"Log top and bottom as one action."`
	Timezone     *string `help:"IANA timezone used to decide what day it is (or Local)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings := ctx.Tracker.State().Settings

	if c.List {
		printSettings(ctx, settings)
		return nil
	}

	updated := false
	if c.TopTotal != nil {
		settings.TopTotal = *c.TopTotal
		updated = true
	}
	if c.BottomTotal != nil {
		settings.BottomTotal = *c.BottomTotal
		updated = true
	}
	if c.InstallDate != nil {
		settings.InstallDate = *c.InstallDate
		updated = true
	}
	if c.Schedule != nil {
		settings.ScheduleType = models.ScheduleType(*c.Schedule)
		updated = true
	}
	if c.IntervalDays != nil {
		settings.IntervalDays = *c.IntervalDays
		updated = true
	}
	if c.ChildName != nil {
		settings.ChildName = *c.ChildName
		updated = true
	}
	if c.LogTogether != nil {
		settings.LogTogether = *c.LogTogether
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := ctx.Tracker.UpdateSettings(settings); err != nil {
		return err
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

func printSettings(ctx *cli.Context, s models.Settings) {
	installDate := s.InstallDate
	if installDate == "" {
		installDate = "(not set)"
	}

	fmt.Println("Current Settings:")
	fmt.Printf("  Child Name:      %s\n", s.ChildName)
	fmt.Printf("  Top Total:       %d\n", s.TopTotal)
	fmt.Printf("  Bottom Total:    %d\n", s.BottomTotal)
	fmt.Printf("  Install Date:    %s\n", installDate)
	fmt.Printf("  Schedule:        %s (%s)\n", s.ScheduleType, cli.FormatSchedule(s.ScheduleType, s.IntervalDays))
	fmt.Printf("  Interval Days:   %d\n", s.IntervalDays)
	fmt.Printf("  Log Together:    %v\n", s.LogTogether)
	fmt.Printf("  Timezone:        %s\n", s.Timezone)
	fmt.Printf("  Install Offset:  %d\n", ctx.Scheduler.Offset())
}
