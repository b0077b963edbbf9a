package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/mindful/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitCreatesSlotsTable(t *testing.T) {
	store := setupTestStore(t)

	exists, err := store.tableExists("slots")
	if err != nil {
		t.Fatalf("tableExists() returned unexpected error: %v", err)
	}
	if !exists {
		t.Error("tableExists(slots) = false, want true")
	}

	exists, err = store.tableExists("SLOTS")
	if err != nil || !exists {
		t.Errorf("tableExists is expected to be case-insensitive, got %v, %v", exists, err)
	}

	pending, err := store.PendingMigrations()
	if err != nil {
		t.Fatalf("PendingMigrations() failed: %v", err)
	}
	if pending != 0 {
		t.Errorf("PendingMigrations() = %d, want 0", pending)
	}
}

func TestReadEmptySlot(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Read("journal_entries")
	if !errors.Is(err, storage.ErrSlotEmpty) {
		t.Errorf("Read() error = %v, want ErrSlotEmpty", err)
	}
}

func TestWriteReplacesValue(t *testing.T) {
	store := setupTestStore(t)

	if err := store.Write("k", []byte(`[1]`)); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if err := store.Write("k", []byte(`[1,2]`)); err != nil {
		t.Fatalf("second Write() failed: %v", err)
	}

	got, err := store.Read("k")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(got) != `[1,2]` {
		t.Errorf("Read() = %s, want [1,2]", got)
	}

	var rows int
	if err := store.GetDB().QueryRow("SELECT count(*) FROM slots").Scan(&rows); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if rows != 1 {
		t.Errorf("slots rows = %d, want 1", rows)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Write("k", []byte(`"v"`)); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	store.Close()

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Read("k")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(got) != `"v"` {
		t.Errorf("Read() = %s", got)
	}
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() on missing database should fail")
	}
}

func TestNotLoaded(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "x.db"))
	if _, err := store.Read("k"); err == nil {
		t.Error("Read() before Load should fail")
	}
	if err := store.Write("k", []byte("[]")); err == nil {
		t.Error("Write() before Load should fail")
	}
}
