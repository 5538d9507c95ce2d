package turns

import (
	"errors"
	"fmt"

	"github.com/julianstephens/turnkey/internal/cli"
	"github.com/julianstephens/turnkey/internal/models"
)

type UndoCmd struct {
	ID    string `help:"Remove the turn with this ID instead of the newest."`
	Index *int   `help:"Remove the turn at this position in history (0 is newest)."`
}

func (c *UndoCmd) Run(ctx *cli.Context) error {
	if c.ID != "" && c.Index != nil {
		return errors.New("use either --id or --index, not both")
	}

	var (
		removed models.TurnEvent
		ok      bool
		err     error
	)
	switch {
	case c.ID != "":
		removed, ok, err = ctx.Tracker.UndoByID(c.ID)
	case c.Index != nil:
		removed, ok, err = ctx.Tracker.UndoAt(*c.Index)
	default:
		removed, ok, err = ctx.Tracker.UndoLast()
	}
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No matching turn to undo.")
		return nil
	}

	fmt.Printf("✓ Removed %s turn from %s\n", removed.Arch, removed.Day)
	return nil
}
