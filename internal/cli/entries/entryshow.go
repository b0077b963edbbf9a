package entries

import (
	"fmt"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/tui"
)

type EntryShowCmd struct {
	ID string `arg:"" help:"Entry ID or unique prefix."`
}

func (c *EntryShowCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.FindEntry(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find entry: %w", err)
	}
	fmt.Print(tui.RenderEntry(entry, ctx.Location()))
	return nil
}

func entryDay(ctx *cli.Context, date string) string {
	t, err := models.ParseEntryDate(date, ctx.Location())
	if err != nil {
		return date
	}
	return t.In(ctx.Location()).Format(constants.DateFormat)
}
