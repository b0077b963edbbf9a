package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/logger"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/storage"
	"github.com/julianstephens/mindful/internal/utils"
)

// Store keeps the whole entry collection as one JSON array in a storage slot.
// Every mutation is a read-modify-write of that array. Callers that mutate
// from independent snapshots race and the last writer wins.
type Store struct {
	slot storage.Slot
	key  string
	now  func() time.Time
}

type Option func(*Store)

// WithClock overrides the clock used to stamp createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithKey overrides the slot key the collection is stored under.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

func New(slot storage.Slot, opts ...Option) *Store {
	s := &Store{
		slot: slot,
		key:  constants.StorageKey,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewEntry returns an unsaved entry dated now with a fresh id.
func NewEntry(now time.Time) models.JournalEntry {
	ms := utils.EpochMillis(now)
	return models.JournalEntry{
		ID:        uuid.New().String(),
		Date:      utils.FormatEntryDate(now),
		Mood:      models.MoodOkay,
		Tags:      []string{},
		CreatedAt: ms,
		UpdatedAt: ms,
	}
}

// GetAll returns every stored entry. A missing or unreadable collection
// yields an empty slice; the cause is logged, not returned.
func (s *Store) GetAll() []models.JournalEntry {
	data, err := s.slot.Read(s.key)
	if err != nil {
		if errors.Is(err, storage.ErrSlotEmpty) {
			logger.Debug("No journal entries stored yet", "key", s.key)
		} else {
			logger.Warn("Failed to read journal entries", "key", s.key, "error", err)
		}
		return []models.JournalEntry{}
	}

	entries, err := decodeEntries(data)
	if err != nil {
		logger.Warn("Stored journal entries are corrupt", "key", s.key, "error", err)
		return []models.JournalEntry{}
	}
	return entries
}

// Get returns the entry with the given id or ErrNotFound.
func (s *Store) Get(id string) (models.JournalEntry, error) {
	for _, e := range s.GetAll() {
		if e.ID == id {
			return e, nil
		}
	}
	return models.JournalEntry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Save inserts the entry, or replaces the stored entry with the same id in
// place. It returns the entry as stored, with timestamps refreshed.
func (s *Store) Save(entry models.JournalEntry) (models.JournalEntry, error) {
	now := utils.EpochMillis(s.now())
	if entry.CreatedAt == 0 {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = max(now, entry.CreatedAt)
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	if err := entry.Validate(); err != nil {
		return models.JournalEntry{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	entries := s.GetAll()
	replaced := false
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	if err := s.persist("save", entries); err != nil {
		return models.JournalEntry{}, err
	}
	logger.Debug("Entry saved", "id", entry.ID, "replaced", replaced)
	return entry, nil
}

// Delete removes the entry with the given id. Deleting an unknown id is not
// an error.
func (s *Store) Delete(id string) error {
	entries := s.GetAll()
	kept := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if err := s.persist("delete", kept); err != nil {
		return err
	}
	logger.Debug("Entry deleted", "id", id, "removed", len(entries)-len(kept))
	return nil
}

// ExportAll renders the collection as an indented JSON array.
func (s *Store) ExportAll() (string, error) {
	data, err := json.MarshalIndent(s.GetAll(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode entries: %w", err)
	}
	return string(data), nil
}

// ImportAll replaces the stored collection with the entries in text. On any
// error the stored collection is left as it was.
func (s *Store) ImportAll(text string) (int, error) {
	entries, err := decodeEntries([]byte(text))
	if err != nil {
		return 0, &ImportFormatError{Err: err}
	}

	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return 0, &ImportFormatError{Err: fmt.Errorf("entry %d has no id", i)}
		}
		if seen[e.ID] {
			return 0, &ImportFormatError{Err: fmt.Errorf("duplicate entry id %s", e.ID)}
		}
		if !e.Mood.Valid() {
			return 0, &ImportFormatError{Err: fmt.Errorf("entry %s has unknown mood %q", e.ID, e.Mood)}
		}
		seen[e.ID] = true
	}

	if err := s.persist("import", entries); err != nil {
		return 0, err
	}
	logger.Info("Entries imported", "count", len(entries))
	return len(entries), nil
}

func (s *Store) persist(op string, entries []models.JournalEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	if err := s.slot.Write(s.key, data); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

func decodeEntries(data []byte) ([]models.JournalEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("expected a JSON array of entries")
	}

	var entries []models.JournalEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Tags == nil {
			entries[i].Tags = []string{}
		}
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	return entries, nil
}
