package system

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/keyring"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/storage"
)

type DoctorCmd struct {
	SkipRelay bool `help:"Skip the summary relay reachability check."`
}

type check struct {
	name         string
	// warn marks checks whose failure does not fail the run
	warn         bool
	// needsStorage checks are skipped when storage is unreachable
	needsStorage bool
	run          func(ctx *cli.Context) error
}

func (cmd *DoctorCmd) checks() []check {
	checks := []check{
		{name: "Storage reachable", run: checkStorageReachable},
		{name: "Migrations complete", needsStorage: true, run: checkMigrationsComplete},
		{name: "Entry data", needsStorage: true, run: checkEntries},
		{name: "Backups present", warn: true, run: checkBackupsPresent},
		{name: "Clock/timezone", run: checkClockTimezone},
		{name: "OS keyring", warn: true, run: checkKeyring},
	}
	if !cmd.SkipRelay {
		checks = append(checks, check{name: "Summary relay", warn: true, run: checkRelay})
	}
	return checks
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	reachable := true

	for _, c := range cmd.checks() {
		if c.needsStorage && !reachable {
			fmt.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Storage reachable" {
				reachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Slot.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Slot.Read(constants.StorageKey); err != nil && !errors.Is(err, storage.ErrSlotEmpty) {
		return fmt.Errorf("failed to read storage: %w", err)
	}
	return nil
}

type migrator interface {
	PendingMigrations() (int, error)
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Slot.(migrator)
	if !ok {
		return nil
	}
	pending, err := m.PendingMigrations()
	if err != nil {
		return err
	}
	if pending > 0 {
		return fmt.Errorf("%d pending migration(s), run 'mindful init'", pending)
	}
	return nil
}

// checkEntries decodes the stored collection strictly. The entry store
// itself treats unreadable data as empty, so this is where corruption shows.
func checkEntries(ctx *cli.Context) error {
	data, err := ctx.Slot.Read(constants.StorageKey)
	if errors.Is(err, storage.ErrSlotEmpty) {
		return nil
	}
	if err != nil {
		return err
	}

	var entries []models.JournalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("stored entries are not a JSON array of entries: %w", err)
	}

	seen := make(map[string]bool, len(entries))
	var problems []error
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("entry %d (%s): %w", i, e.ID, err))
		}
		if e.ID != "" && seen[e.ID] {
			problems = append(problems, fmt.Errorf("entry %d: duplicate id %s", i, e.ID))
		}
		seen[e.ID] = true
	}
	return errors.Join(problems...)
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := ctx.Backups()
	if mgr == nil {
		return errors.New("backups are not managed for this storage backend")
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s, run 'mindful backup create'", mgr.GetBackupDir())
	}
	if age := ctx.Now().Sub(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("newest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Location() == nil {
		return errors.New("no timezone configured")
	}
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkRelay(ctx *cli.Context) error {
	c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := ctx.Relay().Healthy(c); err != nil {
		return fmt.Errorf("relay at %s is not answering (start it with 'mindful serve'): %w", ctx.RelayURL, err)
	}
	return nil
}
