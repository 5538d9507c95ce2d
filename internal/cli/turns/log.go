package turns

import (
	"fmt"
	"strings"

	"github.com/julianstephens/turnkey/internal/cli"
	"github.com/julianstephens/turnkey/internal/scheduler"
)

type LogCmd struct {
	Track string `arg:"" optional:"" help:"Arch to log: top, bottom or both (default both)."`
	Date  string `help:"Day the turn was made (YYYY-MM-DD). Defaults to today." short:"d"`
	Note  string `help:"Optional note." short:"n"`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	sel, err := cli.ParseSelector(c.Track)
	if err != nil {
		return err
	}

	res, err := ctx.Tracker.LogTurn(sel, c.Date, c.Note)
	if err != nil {
		return err
	}

	if len(res.Logged) == 0 {
		switch res.Eligibility.Reason {
		case scheduler.ReasonComplete:
			fmt.Printf("Nothing to log: %s is complete.\n", sel)
		default:
			fmt.Printf("Not yet: %s (%s).\n", sel, cli.FormatEligibility(res.Eligibility))
		}
		return nil
	}

	arches := make([]string, 0, len(res.Logged))
	for _, e := range res.Logged {
		arches = append(arches, string(e.Arch))
	}
	fmt.Printf("✓ Logged %s turn for %s\n", strings.Join(arches, " + "), res.Logged[0].Day)

	if res.LogTogetherDisabled {
		fmt.Println("One arch is complete, so top and bottom will be logged separately from now on.")
	}
	return nil
}
