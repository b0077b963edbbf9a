package entries

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/utils"
)

type ExportCmd struct {
	Output string `help:"File to write. Use '-' for stdout. Defaults to journal-backup-<date>.json in the current directory." short:"o"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Store.ExportAll()
	if err != nil {
		return fmt.Errorf("failed to export entries: %w", err)
	}

	if c.Output == "-" {
		fmt.Println(data)
		return nil
	}

	path := c.Output
	if path == "" {
		path = fmt.Sprintf("journal-backup-%s.json", ctx.Now().Format(constants.DateFormat))
	}
	if path, err = utils.ExpandPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Printf("✓ Exported %d entries to %s\n", len(ctx.Store.GetAll()), path)
	return nil
}
