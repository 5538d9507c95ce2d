package settings

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/turnkey/internal/cli"
)

type ResetCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

// confirmReset asks before wiping the log. Replaced in tests.
var confirmReset = func() (bool, error) {
	var confirmed bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset all turns and settings?").
				Description("A backup is taken first, but the tracker starts over from zero.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(&confirmed),
		),
	).Run()
	return confirmed, err
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		confirmed, err := confirmReset()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Tracker.Reset(); err != nil {
		return err
	}
	fmt.Println("✓ Tracker reset. All turns removed and settings restored to defaults.")
	return nil
}
