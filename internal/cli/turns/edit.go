package turns

import (
	"fmt"

	"github.com/julianstephens/turnkey/internal/cli"
	apperrors "github.com/julianstephens/turnkey/internal/errors"
)

type EditCmd struct {
	ID   string  `arg:"" help:"ID of the turn to edit (see history --ids)."`
	Date string  `help:"New day for the turn (YYYY-MM-DD)." short:"d"`
	Note *string `help:"Replace the note. An empty value clears it." short:"n"`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	current, _, ok := ctx.Tracker.State().Find(c.ID)
	if !ok {
		return fmt.Errorf("turn %s: %w", c.ID, apperrors.ErrNotFound)
	}

	day := c.Date
	if day == "" {
		if c.Note == nil {
			fmt.Println("No changes specified. Use --date or --note.")
			return nil
		}
		day = current.Day
	}

	edited, ok, err := ctx.Tracker.EditTurn(c.ID, day, c.Note)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("turn %s: %w", c.ID, apperrors.ErrNotFound)
	}

	fmt.Printf("✓ Updated %s turn: %s\n", edited.Arch, edited.Day)
	return nil
}
