package insights

import (
	"fmt"

	"github.com/julianstephens/mindful/internal/analytics"
	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/tui"
)

type TrendCmd struct {
	Days int `help:"Number of days ending today." default:"7"`
}

func (c *TrendCmd) Run(ctx *cli.Context) error {
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", c.Days)
	}
	points := analytics.MoodTrend(ctx.Store.GetAll(), c.Days, ctx.Now())
	fmt.Print(tui.RenderTrend(points))
	return nil
}
