package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/journal"
	"github.com/julianstephens/mindful/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing storage before initialization."`
	Source string `help:"Source database path, JSON file or connection string to copy entries from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Slot.GetConfigPath()

	if c.Force {
		if postgres.IsConnString(path) || path == "postgresql" {
			return errors.New("--force is not supported for PostgreSQL storage; drop the mindful schema manually")
		}
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absPath, err := filepath.Abs(path)
			if err == nil {
				path = absPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == path {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
			}
		}
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Slot.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			fmt.Printf("Deleted existing storage at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Slot.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized mindful storage at: %s\n", ctx.Slot.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying entries from: %s\n", c.Source)
		n, err := c.copyEntries(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Printf("Copied %d entries\n", n)
	}
	return nil
}

func (c *InitCmd) copyEntries(ctx *cli.Context) (int, error) {
	source, err := cli.OpenSlot(c.Source, false)
	if err != nil {
		return 0, err
	}
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source storage: %w", err)
	}
	defer source.Close()

	data, err := journal.New(source).ExportAll()
	if err != nil {
		return 0, err
	}
	return ctx.Store.ImportAll(data)
}
