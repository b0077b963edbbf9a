package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONSlot stores every slot as a member of one JSON object on disk.
type JSONSlot struct {
	path  string
	slots map[string]json.RawMessage
}

func NewJSONSlot(path string) *JSONSlot {
	return &JSONSlot{
		path: path,
	}
}

func (s *JSONSlot) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.slots = make(map[string]json.RawMessage)
	return s.save()
}

func (s *JSONSlot) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'mindful init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	slots := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &slots); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	s.slots = slots
	return nil
}

func (s *JSONSlot) Close() error {
	return nil
}

func (s *JSONSlot) Read(key string) ([]byte, error) {
	if s.slots == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	raw, ok := s.slots[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	// Values are re-indented when the file is written; hand back the compact form.
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, fmt.Errorf("slot %s: %w", key, err)
	}
	return buf.Bytes(), nil
}

// Write stores data under key. Only valid JSON values can be stored since
// they are embedded directly in the file.
func (s *JSONSlot) Write(key string, data []byte) error {
	if s.slots == nil {
		return fmt.Errorf("storage not loaded")
	}
	if !json.Valid(data) {
		return fmt.Errorf("slot %s: value is not valid JSON", key)
	}

	raw := json.RawMessage(append([]byte(nil), data...))
	prev, had := s.slots[key]
	s.slots[key] = raw
	if err := s.save(); err != nil {
		if had {
			s.slots[key] = prev
		} else {
			delete(s.slots, key)
		}
		return err
	}
	return nil
}

func (s *JSONSlot) GetConfigPath() string {
	return s.path
}

// save writes to a temp file and renames it over the target.
func (s *JSONSlot) save() error {
	data, err := json.MarshalIndent(s.slots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}
