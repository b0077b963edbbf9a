package entries

import (
	"fmt"

	"github.com/julianstephens/mindful/internal/cli"
)

type EntryEditCmd struct {
	ID          string `arg:"" help:"Entry ID or unique prefix."`
	EntryFields `embed:""`
}

func (c *EntryEditCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.FindEntry(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find entry: %w", err)
	}

	if c.empty() {
		edited, ok, err := runEntryForm(entry)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Edit cancelled.")
			return nil
		}
		entry = edited
	} else if entry, err = c.apply(ctx, entry); err != nil {
		return err
	}

	if _, err := ctx.Store.Save(entry); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	fmt.Printf("✓ Updated entry %s\n", shortID(entry.ID))
	return nil
}
