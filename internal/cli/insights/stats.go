package insights

import (
	"fmt"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/tui"
)

type StatsCmd struct {
	Days int `help:"Days of mood trend to show." default:"7"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	entries := ctx.Store.GetAll()
	if len(entries) == 0 {
		fmt.Printf("No entries yet. Write one with '%s new'.\n", constants.AppName)
		return nil
	}

	snap := ctx.Memo.Snapshot(entries, c.Days, ctx.Now())
	fmt.Println(tui.RenderDashboard(snap))
	fmt.Printf("%d entries in total\n", len(entries))
	return nil
}
