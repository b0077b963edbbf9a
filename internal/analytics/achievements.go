package analytics

import (
	"time"

	"github.com/julianstephens/mindful/internal/models"
)

var catalog = []models.Achievement{
	{ID: "first_entry", Title: "First Step", Description: "Wrote your first journal entry", Icon: "✨", Metric: models.MetricEntryCount, Threshold: 1},
	{ID: "week_streak", Title: "Week Warrior", Description: "Maintained a 7-day streak", Icon: "🔥", Metric: models.MetricStreak, Threshold: 7},
	{ID: "month_streak", Title: "Month Master", Description: "Maintained a 30-day streak", Icon: "💪", Metric: models.MetricStreak, Threshold: 30},
	{ID: "entries_10", Title: "Getting Started", Description: "Wrote 10 journal entries", Icon: "📝", Metric: models.MetricEntryCount, Threshold: 10},
	{ID: "entries_50", Title: "Dedicated Writer", Description: "Wrote 50 journal entries", Icon: "📚", Metric: models.MetricEntryCount, Threshold: 50},
	{ID: "entries_100", Title: "Journaling Pro", Description: "Wrote 100 journal entries", Icon: "🏆", Metric: models.MetricEntryCount, Threshold: 100},
}

// Catalog returns a copy of the fixed achievement table in declaration order.
func Catalog() []models.Achievement {
	out := make([]models.Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// Progress evaluates every catalog item against the current entry count and
// streak. Nothing is remembered between calls, so deleting entries can
// lock an achievement again.
func Progress(entries []models.JournalEntry, now time.Time) []models.AchievementProgress {
	metrics := map[models.AchievementMetric]int{
		models.MetricEntryCount: len(entries),
		models.MetricStreak:     Streak(entries, now),
	}

	out := make([]models.AchievementProgress, 0, len(catalog))
	for _, a := range catalog {
		current := metrics[a.Metric]
		out = append(out, models.AchievementProgress{
			Achievement: a,
			Current:     current,
			Unlocked:    current >= a.Threshold,
		})
	}
	return out
}

// Achievements returns the unlocked catalog items in catalog order.
func Achievements(entries []models.JournalEntry, now time.Time) []models.Achievement {
	out := []models.Achievement{}
	for _, p := range Progress(entries, now) {
		if p.Unlocked {
			out = append(out, p.Achievement)
		}
	}
	return out
}
