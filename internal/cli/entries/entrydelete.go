package entries

import (
	"fmt"

	"github.com/julianstephens/mindful/internal/cli"
)

type EntryDeleteCmd struct {
	ID  string `arg:"" help:"Entry ID or unique prefix."`
	Yes bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *EntryDeleteCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.FindEntry(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find entry: %w", err)
	}

	if !c.Yes {
		ok, err := confirm(fmt.Sprintf("Delete the entry from %s? This cannot be undone.", entryDay(ctx, entry.Date)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Delete(entry.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	fmt.Printf("Deleted entry %s\n", shortID(entry.ID))
	return nil
}
