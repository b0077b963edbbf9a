package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/mindful/internal/analytics"
	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/lockfile"
	"github.com/julianstephens/mindful/internal/logger"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/tui"
)

// Replaced in tests.
var runWithSpinner = tui.RunWithSpinner

type SummaryCmd struct {
	Week    bool          `help:"Only summarize entries from the current week."`
	JSON    bool          `help:"Print the summary as JSON." name:"json"`
	Timeout time.Duration `help:"Give up waiting for the relay after this long." default:"2m"`
}

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	entries := ctx.Store.GetAll()
	if c.Week {
		entries = thisWeek(entries, ctx.Now())
	}
	if len(entries) == 0 {
		if c.Week {
			return errors.New("no journal entries this week, write one with 'mindful new' or drop --week")
		}
		return errors.New("no journal entries to summarize, write one with 'mindful new'")
	}

	lock, err := lockfile.Acquire(ctx.ConfigDir, constants.SummaryLockName)
	if err != nil {
		if errors.Is(err, lockfile.ErrLocked) {
			return fmt.Errorf("a summary is already being generated: %w", err)
		}
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release summary lock", "error", err)
		}
	}()

	reqCtx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	var summary models.Summary
	err = runWithSpinner(reqCtx, fmt.Sprintf("Reflecting on %d entries...", len(entries)), func(rc context.Context) error {
		s, err := ctx.Relay().Summarize(rc, entries)
		summary = s
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to generate summary: %w", err)
	}

	if c.JSON {
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	fmt.Print(tui.RenderSummary(summary))
	return nil
}

func thisWeek(entries []models.JournalEntry, now time.Time) []models.JournalEntry {
	start, end := analytics.WeekBounds(now)
	var out []models.JournalEntry
	for _, e := range entries {
		t, err := e.Time(now.Location())
		if err != nil {
			continue
		}
		if !t.Before(start) && !t.After(end) {
			out = append(out, e)
		}
	}
	return out
}
