package insights

import (
	"fmt"

	"github.com/julianstephens/mindful/internal/analytics"
	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/tui"
)

type AchievementsCmd struct {
	All bool `help:"Include locked achievements with progress."`
}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	progress := analytics.Progress(ctx.Store.GetAll(), ctx.Now())
	fmt.Print(tui.RenderAchievements(progress, c.All))
	return nil
}
