package entries

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/journal"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/tui"
	"github.com/julianstephens/mindful/internal/utils"
)

// Replaced in tests.
var (
	runEntryForm = tui.RunEntryForm
	confirm      = tui.Confirm
)

// EntryFields are the content flags shared by new and edit. Empty values
// leave the field untouched.
type EntryFields struct {
	Mood       string `help:"Mood: amazing, good, okay, difficult or challenging." short:"m"`
	Emoji      string `help:"Decorative emoji for the entry."`
	Highlights string `help:"What went well today."`
	Challenges string `help:"What was hard today."`
	Gratitude  string `help:"What you are grateful for."`
	Text       string `help:"Free-form notes." short:"t"`
	Tags       string `help:"Comma-separated tags."`
	Date       string `help:"Entry date (YYYY-MM-DD or RFC 3339). Defaults to now."`
}

func (f EntryFields) empty() bool {
	return f.Mood == "" && f.Emoji == "" && f.Highlights == "" && f.Challenges == "" &&
		f.Gratitude == "" && f.Text == "" && f.Tags == "" && f.Date == ""
}

func (f EntryFields) apply(ctx *cli.Context, e models.JournalEntry) (models.JournalEntry, error) {
	if f.Mood != "" {
		mood, err := models.ParseMood(f.Mood)
		if err != nil {
			return e, err
		}
		e.Mood = mood
	}
	if f.Date != "" {
		t, err := models.ParseEntryDate(f.Date, ctx.Location())
		if err != nil {
			return e, err
		}
		e.Date = utils.FormatEntryDate(t)
	}
	if f.Emoji != "" {
		e.Emoji = strings.TrimSpace(f.Emoji)
	}
	if f.Highlights != "" {
		e.Highlights = f.Highlights
	}
	if f.Challenges != "" {
		e.Challenges = f.Challenges
	}
	if f.Gratitude != "" {
		e.Gratitude = f.Gratitude
	}
	if f.Text != "" {
		e.FreeText = f.Text
	}
	if f.Tags != "" {
		e.Tags = tui.ParseTags(f.Tags)
	}
	return e, nil
}

type EntryAddCmd struct {
	EntryFields `embed:""`
}

func (c *EntryAddCmd) Run(ctx *cli.Context) error {
	entry := journal.NewEntry(ctx.Now())

	if c.empty() {
		edited, ok, err := runEntryForm(entry)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Entry discarded.")
			return nil
		}
		entry = edited
	} else {
		var err error
		if entry, err = c.apply(ctx, entry); err != nil {
			return err
		}
	}

	saved, err := ctx.Store.Save(entry)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	fmt.Printf("✓ Saved entry %s (%s %s)\n", shortID(saved.ID), saved.Mood.Emoji(), saved.Mood.Label())
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
