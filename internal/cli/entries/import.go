package entries

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/journal"
	"github.com/julianstephens/mindful/internal/utils"
)

type ImportCmd struct {
	File string `arg:"" help:"JSON file produced by 'export'." type:"existingfile"`
	Yes  bool   `help:"Replace existing entries without asking." short:"y"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	path, err := utils.ExpandPath(c.File)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	if existing := len(ctx.Store.GetAll()); existing > 0 && !c.Yes {
		ok, err := confirm(fmt.Sprintf("Replace all %d existing entries with the contents of %s?", existing, c.File))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	// Import replaces the whole collection, so snapshot it first
	ctx.PerformAutomaticBackup()

	n, err := ctx.Store.ImportAll(string(data))
	if err != nil {
		var formatErr *journal.ImportFormatError
		if errors.As(err, &formatErr) {
			return fmt.Errorf("failed to import data, please check the file format: %w", err)
		}
		return fmt.Errorf("failed to import data: %w", err)
	}

	fmt.Printf("✓ Imported %d entries\n", n)
	return nil
}
