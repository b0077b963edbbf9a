package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/journal"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/storage"
	"github.com/julianstephens/mindful/internal/storage/sqlite"
)

var testNow = time.Date(2024, 3, 14, 15, 0, 0, 0, time.UTC)

func setupTestInitDB(t *testing.T) (*cli.Context, string, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	ctx := cli.NewContext(store, func() time.Time { return testNow })

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, dbPath, cleanup
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("init command failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}

	e := journal.NewEntry(testNow)
	if _, err := ctx.Store.Save(e); err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("database file was not recreated after force")
	}
	if n := len(ctx.Store.GetAll()); n != 0 {
		t.Errorf("expected empty journal after force, got %d entries", n)
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx); err == nil {
		t.Error("expected error when source and destination match")
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	sourcePath := filepath.Join(t.TempDir(), "old.json")
	source := storage.NewJSONSlot(sourcePath)
	if err := source.Init(); err != nil {
		t.Fatalf("failed to init source: %v", err)
	}
	sourceStore := journal.New(source, journal.WithClock(func() time.Time { return testNow }))
	for _, mood := range []models.Mood{models.MoodGood, models.MoodOkay} {
		e := journal.NewEntry(testNow)
		e.Mood = mood
		if _, err := sourceStore.Save(e); err != nil {
			t.Fatalf("failed to seed source: %v", err)
		}
	}

	if err := (&InitCmd{Source: sourcePath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	got := ctx.Store.GetAll()
	if len(got) != 2 {
		t.Fatalf("expected 2 copied entries, got %d", len(got))
	}
	want := sourceStore.GetAll()
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("entry %d: got id %s, want %s", i, got[i].ID, want[i].ID)
		}
	}
}
