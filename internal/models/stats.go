package models

import "time"

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// WeeklyStats is derived from the entry collection and never persisted.
type WeeklyStats struct {
	TotalEntries     int          `json:"totalEntries"`
	MoodDistribution map[Mood]int `json:"moodDistribution"`
	CommonTags       []TagCount   `json:"commonTags"`
	Streak           int          `json:"streak"`
	WeekStart        time.Time    `json:"weekStart"`
	WeekEnd          time.Time    `json:"weekEnd"`
}

// TrendPoint is one day of a mood trend. MoodScore 0 means no entries that day.
type TrendPoint struct {
	Date      string  `json:"date"`
	MoodScore float64 `json:"moodScore"`
}

func (p TrendPoint) HasData() bool {
	return p.MoodScore > 0
}

type AchievementMetric string

const (
	MetricEntryCount AchievementMetric = "entry_count"
	MetricStreak     AchievementMetric = "streak"
)

type Achievement struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	Metric      AchievementMetric `json:"metric"`
	Threshold   int               `json:"threshold"`
}

// AchievementProgress pairs a catalog item with the metric's current value.
type AchievementProgress struct {
	Achievement
	Current  int  `json:"current"`
	Unlocked bool `json:"unlocked"`
}
