package journal

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/storage"
)

var fixedNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func setupTestStore(t *testing.T) (*Store, *storage.MemorySlot) {
	t.Helper()
	slot := storage.NewMemorySlot()
	store := New(slot, WithClock(func() time.Time { return fixedNow }))
	return store, slot
}

func testEntry(id string, mood models.Mood, tags ...string) models.JournalEntry {
	e := NewEntry(fixedNow)
	e.ID = id
	e.Mood = mood
	e.Tags = append([]string{}, tags...)
	return e
}

func mustSave(t *testing.T, s *Store, e models.JournalEntry) models.JournalEntry {
	t.Helper()
	saved, err := s.Save(e)
	if err != nil {
		t.Fatalf("Save(%s) failed: %v", e.ID, err)
	}
	return saved
}

func TestGetAllEmpty(t *testing.T) {
	store, _ := setupTestStore(t)

	entries := store.GetAll()
	if entries == nil || len(entries) != 0 {
		t.Errorf("GetAll() on empty store = %#v, want empty slice", entries)
	}
}

func TestGetAllCorruptData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "not json"},
		{"object", `{"id":"a"}`},
		{"truncated", `[{"id":"a"`},
		{"null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, slot := setupTestStore(t)
			if err := slot.Write(constants.StorageKey, []byte(tt.data)); err != nil {
				t.Fatalf("seed failed: %v", err)
			}
			if got := store.GetAll(); len(got) != 0 {
				t.Errorf("GetAll() = %v, want empty", got)
			}
		})
	}
}

func TestSaveAppendsAndUpserts(t *testing.T) {
	store, _ := setupTestStore(t)

	mustSave(t, store, testEntry("a", models.MoodGood))
	mustSave(t, store, testEntry("b", models.MoodOkay))
	mustSave(t, store, testEntry("c", models.MoodAmazing))

	updated := testEntry("b", models.MoodDifficult)
	updated.Highlights = "rewrote the entry"
	mustSave(t, store, updated)

	entries := store.GetAll()
	if len(entries) != 3 {
		t.Fatalf("GetAll() returned %d entries, want 3", len(entries))
	}

	var ids []string
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Errorf("order after upsert = %v, want [a b c]", ids)
	}
	if entries[1].Mood != models.MoodDifficult || entries[1].Highlights != "rewrote the entry" {
		t.Errorf("upserted entry = %+v, want latest field values", entries[1])
	}
}

func TestSaveStampsTimestamps(t *testing.T) {
	store, _ := setupTestStore(t)

	e := testEntry("a", models.MoodGood)
	e.CreatedAt = 0
	e.UpdatedAt = 0
	saved := mustSave(t, store, e)

	wantMs := fixedNow.UnixMilli()
	if saved.CreatedAt != wantMs || saved.UpdatedAt != wantMs {
		t.Errorf("timestamps = %d/%d, want %d", saved.CreatedAt, saved.UpdatedAt, wantMs)
	}

	// A createdAt ahead of the clock must not produce updatedAt < createdAt.
	future := testEntry("b", models.MoodGood)
	future.CreatedAt = wantMs + 60_000
	saved = mustSave(t, store, future)
	if saved.UpdatedAt < saved.CreatedAt {
		t.Errorf("updatedAt %d < createdAt %d", saved.UpdatedAt, saved.CreatedAt)
	}
}

func TestSaveRefreshesUpdatedAt(t *testing.T) {
	slot := storage.NewMemorySlot()
	now := fixedNow
	store := New(slot, WithClock(func() time.Time { return now }))

	first := mustSave(t, store, testEntry("a", models.MoodGood))
	now = now.Add(time.Hour)
	second := mustSave(t, store, first)

	if second.CreatedAt != first.CreatedAt {
		t.Errorf("createdAt changed on update: %d -> %d", first.CreatedAt, second.CreatedAt)
	}
	if second.UpdatedAt != now.UnixMilli() {
		t.Errorf("updatedAt = %d, want %d", second.UpdatedAt, now.UnixMilli())
	}
}

func TestSaveRejectsInvalidEntry(t *testing.T) {
	store, slot := setupTestStore(t)

	tests := []struct {
		name  string
		entry models.JournalEntry
	}{
		{"missing id", testEntry("", models.MoodGood)},
		{"unknown mood", testEntry("a", models.Mood("ecstatic"))},
		{"bad date", func() models.JournalEntry {
			e := testEntry("a", models.MoodGood)
			e.Date = "yesterday"
			return e
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Save(tt.entry)
			if !errors.Is(err, ErrInvalidEntry) {
				t.Errorf("Save() error = %v, want ErrInvalidEntry", err)
			}
		})
	}
	if slot.Writes != 0 {
		t.Errorf("invalid saves wrote to storage %d times", slot.Writes)
	}
}

func TestSavePersistenceError(t *testing.T) {
	store, slot := setupTestStore(t)
	mustSave(t, store, testEntry("a", models.MoodGood))

	slot.WriteErr = errors.New("quota exceeded")
	_, err := store.Save(testEntry("b", models.MoodGood))

	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("Save() error = %v, want *PersistenceError", err)
	}
	if perr.Op != "save" || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("unexpected error: %v", err)
	}

	slot.WriteErr = nil
	if got := store.GetAll(); len(got) != 1 {
		t.Errorf("failed save changed the collection: %v", got)
	}
}

func TestDelete(t *testing.T) {
	store, _ := setupTestStore(t)
	mustSave(t, store, testEntry("a", models.MoodGood))
	mustSave(t, store, testEntry("b", models.MoodGood))

	if err := store.Delete("a"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	entries := store.GetAll()
	if len(entries) != 1 || entries[0].ID != "b" {
		t.Errorf("after delete = %v, want only b", entries)
	}

	before := store.GetAll()
	if err := store.Delete("missing"); err != nil {
		t.Errorf("Delete(missing) returned error: %v", err)
	}
	if after := store.GetAll(); !reflect.DeepEqual(before, after) {
		t.Errorf("Delete(missing) changed the collection: %v -> %v", before, after)
	}
}

func TestDeletePersistenceError(t *testing.T) {
	store, slot := setupTestStore(t)
	mustSave(t, store, testEntry("a", models.MoodGood))

	slot.WriteErr = errors.New("disk full")
	var perr *PersistenceError
	if err := store.Delete("a"); !errors.As(err, &perr) {
		t.Fatalf("Delete() error = %v, want *PersistenceError", err)
	}
}

func TestGet(t *testing.T) {
	store, _ := setupTestStore(t)
	mustSave(t, store, testEntry("a", models.MoodGood))

	e, err := store.Get("a")
	if err != nil || e.ID != "a" {
		t.Errorf("Get(a) = %v, %v", e, err)
	}
	if _, err := store.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nope) error = %v, want ErrNotFound", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	store, _ := setupTestStore(t)

	a := testEntry("a", models.MoodAmazing, "calm", "focus")
	a.Highlights = "sunrise walk"
	a.Gratitude = "coffee"
	a.Emoji = "🌸"
	mustSave(t, store, a)
	b := testEntry("b", models.MoodChallenging)
	b.FreeText = "multi\nline \"quoted\" text"
	mustSave(t, store, b)

	original := store.GetAll()
	exported, err := store.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll() failed: %v", err)
	}
	if !strings.Contains(exported, "\n  {") {
		t.Errorf("export is not indented:\n%s", exported)
	}

	other, _ := setupTestStore(t)
	n, err := other.ImportAll(exported)
	if err != nil {
		t.Fatalf("ImportAll() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ImportAll() = %d, want 2", n)
	}
	if got := other.GetAll(); !reflect.DeepEqual(got, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, original)
	}
}

func TestImportReplacesCollection(t *testing.T) {
	store, _ := setupTestStore(t)
	mustSave(t, store, testEntry("old", models.MoodGood))

	if _, err := store.ImportAll(`[{"id":"new","date":"2024-03-14","mood":"good","tags":[]}]`); err != nil {
		t.Fatalf("ImportAll() failed: %v", err)
	}
	entries := store.GetAll()
	if len(entries) != 1 || entries[0].ID != "new" {
		t.Errorf("after import = %v, want only the imported entry", entries)
	}
}

func TestImportFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "not json"},
		{"empty", ""},
		{"object", `{"id":"a"}`},
		{"null", "null"},
		{"wrong element type", `[1, 2]`},
		{"missing id", `[{"date":"2024-03-14","mood":"good"}]`},
		{"duplicate id", `[{"id":"x","mood":"good"},{"id":"x","mood":"okay"}]`},
		{"unknown mood", `[{"id":"x","date":"2024-03-14","mood":"meh","tags":[]}]`},
		{"missing mood", `[{"id":"x","date":"2024-03-14","tags":[]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := setupTestStore(t)
			original := mustSave(t, store, testEntry("keep", models.MoodGood))

			_, err := store.ImportAll(tt.text)
			var ferr *ImportFormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("ImportAll() error = %v, want *ImportFormatError", err)
			}

			entries := store.GetAll()
			if len(entries) != 1 || !reflect.DeepEqual(entries[0], original) {
				t.Errorf("failed import changed the collection: %v", entries)
			}
		})
	}
}

func TestImportPersistenceError(t *testing.T) {
	store, slot := setupTestStore(t)
	slot.WriteErr = errors.New("quota exceeded")

	var perr *PersistenceError
	if _, err := store.ImportAll(`[]`); !errors.As(err, &perr) {
		t.Errorf("ImportAll() error = %v, want *PersistenceError", err)
	}
}

func TestWithKey(t *testing.T) {
	slot := storage.NewMemorySlot()
	store := New(slot, WithKey("other"), WithClock(func() time.Time { return fixedNow }))
	mustSave(t, store, testEntry("a", models.MoodGood))

	if _, err := slot.Read(constants.StorageKey); !errors.Is(err, storage.ErrSlotEmpty) {
		t.Errorf("default key was written despite WithKey")
	}
	if _, err := slot.Read("other"); err != nil {
		t.Errorf("Read(other) failed: %v", err)
	}
}

func TestNewEntry(t *testing.T) {
	e := NewEntry(fixedNow)
	if e.ID == "" {
		t.Error("NewEntry() id is empty")
	}
	if e.Date != "2024-03-14T09:30:00.000Z" {
		t.Errorf("NewEntry() date = %q", e.Date)
	}
	if e.CreatedAt != e.UpdatedAt || e.CreatedAt != fixedNow.UnixMilli() {
		t.Errorf("NewEntry() timestamps = %d/%d", e.CreatedAt, e.UpdatedAt)
	}
	if e.Tags == nil {
		t.Error("NewEntry() tags should be an empty slice")
	}
	if err := e.Validate(); err != nil {
		t.Errorf("NewEntry() is invalid: %v", err)
	}
}
