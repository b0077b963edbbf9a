package entries

import (
	"fmt"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/journal"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/tui"
)

type EntryListCmd struct {
	Search string `help:"Only entries whose text contains this (case-insensitive)." short:"s"`
	Tag    string `help:"Only entries carrying this tag."`
	Mood   string `help:"Only entries with this mood."`
	Limit  int    `help:"Show at most this many entries (0 for all)." default:"0"`
}

func (c *EntryListCmd) Run(ctx *cli.Context) error {
	q := journal.Query{Search: c.Search, Tag: c.Tag}
	if c.Mood != "" {
		mood, err := models.ParseMood(c.Mood)
		if err != nil {
			return err
		}
		q.Mood = mood
	}

	all := ctx.Store.GetAll()
	matched := journal.Filter(all, q)

	if len(matched) == 0 {
		if len(all) == 0 {
			fmt.Printf("No entries yet. Write one with '%s new'.\n", constants.AppName)
		} else {
			fmt.Println("No entries match your filters.")
		}
		return nil
	}

	shown := matched
	if c.Limit > 0 && len(shown) > c.Limit {
		shown = shown[:c.Limit]
	}
	for _, e := range shown {
		fmt.Println(tui.RenderEntryLine(e, ctx.Location()))
	}
	fmt.Printf("\n%d of %d entries\n", len(shown), len(all))
	return nil
}
