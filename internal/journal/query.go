package journal

import (
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/mindful/internal/models"
)

// Query narrows an entry listing. Zero fields match everything.
type Query struct {
	Search string
	Tag    string
	Mood   models.Mood
}

// Filter returns the entries matching q, newest first. Search is a
// case-insensitive substring match over the text fields.
func Filter(entries []models.JournalEntry, q Query) []models.JournalEntry {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if needle != "" && !matchesText(e, needle) {
			continue
		}
		if q.Tag != "" && !e.HasTag(q.Tag) {
			continue
		}
		if q.Mood != "" && e.Mood != q.Mood {
			continue
		}
		out = append(out, e)
	}

	SortNewestFirst(out)
	return out
}

func matchesText(e models.JournalEntry, needle string) bool {
	for _, field := range []string{e.Highlights, e.Challenges, e.Gratitude, e.FreeText} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// SortNewestFirst orders entries by date descending. Entries whose date
// cannot be parsed sort last, in their original order.
func SortNewestFirst(entries []models.JournalEntry) {
	type dated struct {
		entry models.JournalEntry
		at    time.Time
		ok    bool
	}
	rows := make([]dated, len(entries))
	for i, e := range entries {
		t, err := models.ParseEntryDate(e.Date, time.UTC)
		rows[i] = dated{entry: e, at: t, ok: err == nil}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ok && rows[j].ok {
			return rows[i].at.After(rows[j].at)
		}
		return rows[i].ok && !rows[j].ok
	})
	for i := range rows {
		entries[i] = rows[i].entry
	}
}

// AllTags returns the distinct tags used across entries, sorted.
func AllTags(entries []models.JournalEntry) []string {
	seen := make(map[string]struct{})
	for _, e := range entries {
		for _, t := range e.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// AddTag appends tag after trimming it. Blank and already present tags are
// ignored. The comparison is exact; "Calm" and "calm" are different tags.
func AddTag(tags []string, tag string) []string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return tags
	}
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}
