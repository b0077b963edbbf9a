// Package analytics derives streaks, weekly statistics, mood trends and
// achievements from a journal entry collection. Every function is pure: the
// result depends only on the entries and the supplied "now", and calendar
// days are evaluated in now's location.
package analytics

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/utils"
)

// datedEntry is an entry whose date parsed, expressed in the caller's location.
type datedEntry struct {
	entry models.JournalEntry
	at    time.Time
}

// dated parses entry dates into loc. Entries with unparseable dates are dropped.
func dated(entries []models.JournalEntry, loc *time.Location) []datedEntry {
	out := make([]datedEntry, 0, len(entries))
	for _, e := range entries {
		t, err := e.Time(loc)
		if err != nil {
			continue
		}
		out = append(out, datedEntry{entry: e, at: t})
	}
	return out
}

func daySet(entries []datedEntry) map[string]struct{} {
	days := make(map[string]struct{}, len(entries))
	for _, d := range entries {
		days[utils.DayKey(d.at)] = struct{}{}
	}
	return days
}

// Streak counts consecutive calendar days with at least one entry, walking
// back from the day of now. A day without entries ends the walk, so a
// journal with no entry today has a streak of 0.
func Streak(entries []models.JournalEntry, now time.Time) int {
	days := daySet(dated(entries, now.Location()))

	streak := 0
	cursor := utils.StartOfDay(now)
	for {
		if _, ok := days[utils.DayKey(cursor)]; !ok {
			return streak
		}
		streak++
		cursor = utils.AddDays(cursor, -1)
	}
}

// WeekBounds returns the Sunday 00:00:00.000 to Saturday 23:59:59.999 window
// containing now.
func WeekBounds(now time.Time) (time.Time, time.Time) {
	today := utils.StartOfDay(now)
	start := utils.AddDays(today, -int(today.Weekday()))
	end := utils.AddDays(start, 7).Add(-time.Millisecond)
	return start, end
}

// WeeklyStats aggregates the entries dated inside the current week. Entries
// with a mood outside the scale are skipped so the distribution always sums
// to TotalEntries. The streak is computed over the full collection.
func WeeklyStats(entries []models.JournalEntry, now time.Time) models.WeeklyStats {
	start, end := WeekBounds(now)

	distribution := make(map[models.Mood]int, len(models.Moods()))
	for _, m := range models.Moods() {
		distribution[m] = 0
	}

	total := 0
	var tagOrder []string
	tagCounts := make(map[string]int)
	for _, d := range dated(entries, now.Location()) {
		if d.at.Before(start) || d.at.After(end) || !d.entry.Mood.Valid() {
			continue
		}
		total++
		distribution[d.entry.Mood]++
		for _, tag := range d.entry.Tags {
			if _, seen := tagCounts[tag]; !seen {
				tagOrder = append(tagOrder, tag)
			}
			tagCounts[tag]++
		}
	}

	return models.WeeklyStats{
		TotalEntries:     total,
		MoodDistribution: distribution,
		CommonTags:       topTags(tagOrder, tagCounts, constants.TopTagLimit),
		Streak:           Streak(entries, now),
		WeekStart:        start,
		WeekEnd:          end,
	}
}

// topTags ranks tags by count; equal counts keep first-seen order.
func topTags(order []string, counts map[string]int, limit int) []models.TagCount {
	ranked := make([]models.TagCount, 0, len(order))
	for _, tag := range order {
		ranked = append(ranked, models.TagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// MoodTrend returns one point per calendar day for the last days days,
// oldest first, ending with the day of now. A day's score is the mean mood
// score of its entries, or 0 when it has none.
func MoodTrend(entries []models.JournalEntry, days int, now time.Time) []models.TrendPoint {
	if days <= 0 {
		return []models.TrendPoint{}
	}

	byDay := make(map[string][]float64)
	for _, d := range dated(entries, now.Location()) {
		if score := d.entry.Mood.Score(); score > 0 {
			key := utils.DayKey(d.at)
			byDay[key] = append(byDay[key], float64(score))
		}
	}

	today := utils.StartOfDay(now)
	points := make([]models.TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := utils.DayKey(utils.AddDays(today, -i))
		point := models.TrendPoint{Date: key}
		if scores := byDay[key]; len(scores) > 0 {
			if mean, err := stats.Mean(scores); err == nil {
				point.MoodScore = mean
			}
		}
		points = append(points, point)
	}
	return points
}
