package system

import (
	"fmt"

	"github.com/julianstephens/turnkey/internal/cli"
	"github.com/julianstephens/turnkey/internal/legacy"
)

// ImportCmd loads a history export from the old tracker.
type ImportCmd struct {
	File     string `arg:"" type:"existingfile" help:"Legacy JSON export to import."`
	Replace  bool   `help:"Clear the current turn log before importing."`
	Settings bool   `help:"Also apply the settings stored in the export."`
	DryRun   bool   `help:"Show what would be imported without writing."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	export, err := legacy.LoadFile(c.File)
	if err != nil {
		return err
	}

	events, report := legacy.Convert(export.History, ctx.Scheduler.Offset())

	fmt.Printf("Read %d legacy entries: %d turns", report.Entries, report.Events)
	if report.Skipped > 0 {
		fmt.Printf(", %d entries skipped", report.Skipped)
	}
	fmt.Println()
	if report.Ambiguous > 0 {
		fmt.Printf("⚠ %d entries advanced both arches at once; each became a top then a bottom turn on the same day.\n", report.Ambiguous)
	}

	if c.DryRun {
		agg := legacy.Reconcile(export.History, ctx.Scheduler.Offset())
		fmt.Printf("Would import top: %d (last %s), bottom: %d (last %s)\n",
			agg.Top.Done, orNone(agg.Top.LastDay), agg.Bottom.Done, orNone(agg.Bottom.LastDay))
		return nil
	}

	if c.Settings && export.Settings != nil {
		settings := legacy.ConvertSettings(export.Settings)
		settings.Timezone = ctx.Tracker.State().Settings.Timezone
		if err := ctx.Tracker.UpdateSettings(settings); err != nil {
			return fmt.Errorf("failed to apply legacy settings: %w", err)
		}
		fmt.Println("✓ Settings imported")
	}

	if len(events) == 0 {
		fmt.Println("Nothing to import.")
		return nil
	}

	if c.Replace {
		ctx.PerformAutomaticBackup()
	}
	n, err := ctx.Tracker.ImportTurns(events, c.Replace)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Imported %d turns\n", n)
	return nil
}

func orNone(day string) string {
	if day == "" {
		return "none"
	}
	return day
}
