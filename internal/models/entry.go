package models

import (
	"errors"
	"fmt"
	"time"
)

type JournalEntry struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"` // ISO 8601
	Mood       Mood     `json:"mood"`
	Highlights string   `json:"highlights"`
	Challenges string   `json:"challenges"`
	Gratitude  string   `json:"gratitude"`
	FreeText   string   `json:"freeText"`
	Tags       []string `json:"tags"`
	Emoji      string   `json:"emoji,omitempty"`
	CreatedAt  int64    `json:"createdAt"` // epoch milliseconds
	UpdatedAt  int64    `json:"updatedAt"` // epoch milliseconds
}

var entryDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseEntryDate parses an ISO 8601 entry date. Values without a zone are
// interpreted in loc.
func ParseEntryDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range entryDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid entry date %q", s)
}

// Time returns the entry date in loc.
func (e JournalEntry) Time(loc *time.Location) (time.Time, error) {
	t, err := ParseEntryDate(e.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t, nil
}

func (e JournalEntry) Validate() error {
	if e.ID == "" {
		return errors.New("entry id is required")
	}
	if !e.Mood.Valid() {
		return fmt.Errorf("invalid mood %q", e.Mood)
	}
	if _, err := ParseEntryDate(e.Date, time.UTC); err != nil {
		return err
	}
	if e.UpdatedAt < e.CreatedAt {
		return fmt.Errorf("updatedAt (%d) precedes createdAt (%d)", e.UpdatedAt, e.CreatedAt)
	}
	return nil
}

// HasTag reports whether tag is present, compared exactly.
func (e JournalEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
