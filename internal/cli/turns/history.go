package turns

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/julianstephens/turnkey/internal/cli"
	"github.com/julianstephens/turnkey/internal/models"
)

type HistoryCmd struct {
	Track string `arg:"" optional:"" help:"Only show one arch: top or bottom."`
	Limit int    `help:"Number of turns to show (0 for all)." default:"${history_limit}" short:"l"`
	IDs   bool   `help:"Show turn IDs." name:"ids"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	events := ctx.Tracker.Dashboard().History

	if c.Track != "" {
		t, err := models.ParseTrack(c.Track)
		if err != nil {
			return err
		}
		events = filterTrack(events, t)
	}

	if len(events) == 0 {
		fmt.Println("No turns logged yet.")
		return nil
	}

	total := len(events)
	if c.Limit > 0 && c.Limit < total {
		events = events[:c.Limit]
	}

	_, _ = fmt.Fprintln(color.Output, historyTable(events, c.IDs))
	if len(events) < total {
		fmt.Printf("\nShowing %d of %d turns. Use --limit 0 to show all.\n", len(events), total)
	}
	return nil
}

func filterTrack(events []models.TurnEvent, t models.Track) []models.TurnEvent {
	var out []models.TurnEvent
	for _, e := range events {
		if e.Arch == t {
			out = append(out, e)
		}
	}
	return out
}

func historyTable(events []models.TurnEvent, ids bool) *uitable.Table {
	tbl := uitable.New()
	tbl.MaxColWidth = 50
	tbl.Wrap = true

	if ids {
		tbl.AddRow("DAY", "ARCH", "SOURCE", "NOTE", "ID")
	} else {
		tbl.AddRow("DAY", "ARCH", "SOURCE", "NOTE")
	}
	for _, e := range events {
		if ids {
			tbl.AddRow(e.Day, e.Arch, e.SourceOrDefault(), e.Note, e.ID)
		} else {
			tbl.AddRow(e.Day, e.Arch, e.SourceOrDefault(), e.Note)
		}
	}
	return tbl
}
