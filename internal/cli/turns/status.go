package turns

import (
	"fmt"

	"github.com/julianstephens/turnkey/internal/cli"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	fmt.Print(cli.RenderStatus(ctx.Tracker.Dashboard()))
	return nil
}
