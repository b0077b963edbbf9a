package analytics

import (
	"sync"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/julianstephens/mindful/internal/logger"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/utils"
)

// Snapshot bundles everything the dashboard renders for one day.
type Snapshot struct {
	Weekly       models.WeeklyStats
	Trend        []models.TrendPoint
	Achievements []models.AchievementProgress
}

type memoKey struct {
	Entries  []models.JournalEntry
	Day      string
	Location string
	Days     int
}

// Memo caches the last Snapshot keyed by a content hash of the entries, the
// calendar day of now and the trend length. Callers must treat returned
// snapshots as read-only.
type Memo struct {
	mu       sync.Mutex
	hash     uint64
	valid    bool
	snapshot Snapshot
	hits     int
}

func NewMemo() *Memo {
	return &Memo{}
}

// Snapshot returns the cached snapshot when the inputs hash the same as the
// last call, recomputing it otherwise.
func (m *Memo) Snapshot(entries []models.JournalEntry, trendDays int, now time.Time) Snapshot {
	key := memoKey{
		Entries:  entries,
		Day:      utils.DayKey(now),
		Location: now.Location().String(),
		Days:     trendDays,
	}
	hash, err := hashstructure.Hash(key, hashstructure.FormatV2, nil)
	if err != nil {
		logger.Debug("Analytics hash failed, computing without cache", "error", err)
		return compute(entries, trendDays, now)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.valid && m.hash == hash {
		m.hits++
		return m.snapshot
	}

	m.snapshot = compute(entries, trendDays, now)
	m.hash = hash
	m.valid = true
	return m.snapshot
}

// Hits reports how many calls were served from the cache.
func (m *Memo) Hits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}

func compute(entries []models.JournalEntry, trendDays int, now time.Time) Snapshot {
	return Snapshot{
		Weekly:       WeeklyStats(entries, now),
		Trend:        MoodTrend(entries, trendDays, now),
		Achievements: Progress(entries, now),
	}
}
