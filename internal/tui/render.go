package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindful/internal/analytics"
	"github.com/julianstephens/mindful/internal/models"
)

const barWidth = 20

func bar(n, max int) string {
	if max <= 0 || n <= 0 {
		return ""
	}
	width := n * barWidth / max
	if width == 0 {
		width = 1
	}
	return strings.Repeat("█", width)
}

// RenderEntryLine renders a one-line summary of e for listings.
func RenderEntryLine(e models.JournalEntry, loc *time.Location) string {
	date := e.Date
	if t, err := e.Time(loc); err == nil {
		date = t.Format("Mon Jan 02 2006 15:04")
	}

	preview := firstNonEmpty(e.Highlights, e.FreeText, e.Gratitude, e.Challenges)
	if len([]rune(preview)) > 50 {
		preview = string([]rune(preview)[:47]) + "..."
	}
	preview = strings.ReplaceAll(preview, "\n", " ")

	parts := []string{
		labelStyle.Render(e.ID[:min(8, len(e.ID))]),
		date,
		moodStyle(e.Mood).Render(e.Mood.Emoji() + " " + e.Mood.Label()),
	}
	if e.Emoji != "" {
		parts = append(parts, e.Emoji)
	}
	if preview != "" {
		parts = append(parts, preview)
	}
	if len(e.Tags) > 0 {
		parts = append(parts, renderTags(e.Tags))
	}
	return strings.Join(parts, "  ")
}

func renderTags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagStyle.Render("#"+t))
	}
	return strings.Join(out, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// RenderEntry renders every field of e.
func RenderEntry(e models.JournalEntry, loc *time.Location) string {
	var b strings.Builder

	date := e.Date
	if t, err := e.Time(loc); err == nil {
		date = t.Format("Monday, January 2, 2006 15:04")
	}
	title := date
	if e.Emoji != "" {
		title = e.Emoji + " " + date
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(labelStyle.Render("Mood: ") + moodStyle(e.Mood).Render(e.Mood.Emoji()+" "+e.Mood.Label()) + "\n")

	for _, section := range []struct{ name, body string }{
		{"Highlights", e.Highlights},
		{"Challenges", e.Challenges},
		{"Gratitude", e.Gratitude},
		{"Notes", e.FreeText},
	} {
		if strings.TrimSpace(section.body) == "" {
			continue
		}
		b.WriteString(headingStyle.Render(section.name) + "\n")
		b.WriteString(section.body + "\n")
	}
	if len(e.Tags) > 0 {
		b.WriteString("\n" + renderTags(e.Tags) + "\n")
	}
	b.WriteString(mutedStyle.Render("id "+e.ID) + "\n")
	return b.String()
}

// RenderWeekly renders the weekly dashboard block.
func RenderWeekly(ws models.WeeklyStats) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("This week  %s – %s",
		ws.WeekStart.Format("Jan 2"), ws.WeekEnd.Format("Jan 2"))) + "\n")
	b.WriteString(fmt.Sprintf("%s %d   %s %d 🔥\n",
		labelStyle.Render("Entries:"), ws.TotalEntries,
		labelStyle.Render("Streak:"), ws.Streak))

	b.WriteString(headingStyle.Render("Mood distribution") + "\n")
	peak := 0
	for _, n := range ws.MoodDistribution {
		peak = max(peak, n)
	}
	for _, m := range models.Moods() {
		n := ws.MoodDistribution[m]
		label := fmt.Sprintf("%s %-11s", m.Emoji(), m.Label())
		b.WriteString(fmt.Sprintf("%s %2d %s\n", label, n, moodStyle(m).Render(bar(n, peak))))
	}

	b.WriteString(headingStyle.Render("Top tags") + "\n")
	if len(ws.CommonTags) == 0 {
		b.WriteString(mutedStyle.Render("No tags this week") + "\n")
	}
	for _, tc := range ws.CommonTags {
		b.WriteString(fmt.Sprintf("%s ×%d\n", tagStyle.Render("#"+tc.Tag), tc.Count))
	}
	return b.String()
}

// RenderTrend renders one row per day; days without entries show "no entries".
func RenderTrend(points []models.TrendPoint) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Mood trend") + "\n")
	for _, p := range points {
		if !p.HasData() {
			b.WriteString(fmt.Sprintf("%s  %s\n", p.Date, mutedStyle.Render("no entries")))
			continue
		}
		b.WriteString(fmt.Sprintf("%s  %.1f %s\n", p.Date, p.MoodScore, bar(int(p.MoodScore*10), 50)))
	}
	return b.String()
}

// RenderAchievements lists catalog progress. Locked items are shown only
// when showLocked is set.
func RenderAchievements(progress []models.AchievementProgress, showLocked bool) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Achievements") + "\n")

	shown := 0
	for _, p := range progress {
		if p.Unlocked {
			b.WriteString(unlockedStyle.Render(fmt.Sprintf("%s %s", p.Icon, p.Title)) +
				"  " + mutedStyle.Render(p.Description) + "\n")
			shown++
			continue
		}
		if showLocked {
			b.WriteString(lockedStyle.Render(fmt.Sprintf("🔒 %s  %s (%d/%d)", p.Title, p.Description, p.Current, p.Threshold)) + "\n")
			shown++
		}
	}
	if shown == 0 {
		b.WriteString(mutedStyle.Render("Nothing unlocked yet. Write your first entry!") + "\n")
	}
	return b.String()
}

// RenderDashboard combines the weekly stats, trend and achievements.
func RenderDashboard(s analytics.Snapshot) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		boxStyle.Render(strings.TrimRight(RenderWeekly(s.Weekly), "\n")),
		RenderTrend(s.Trend),
		RenderAchievements(s.Achievements, false),
	)
}

// RenderSummary renders the structured weekly summary from the relay.
func RenderSummary(s models.Summary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Weekly insight") + "\n")
	if s.WeeklySummary != "" {
		b.WriteString(s.WeeklySummary + "\n")
	}

	for _, section := range []struct {
		name  string
		items []string
	}{
		{"Emotional patterns", s.EmotionalPatterns},
		{"Themes", s.WeeklyThemes},
		{"Limiting beliefs", s.LimitingBeliefs},
		{"Strengths & progress", s.StrengthsAndProgress},
		{"Coaching insights", s.CoachingInsights},
		{"Reflection questions", s.ReflectionQuestions},
		{"Next week focus", s.NextWeekFocus},
	} {
		if len(section.items) == 0 {
			continue
		}
		b.WriteString(headingStyle.Render(section.name) + "\n")
		for _, item := range section.items {
			b.WriteString("  • " + item + "\n")
		}
	}
	return b.String()
}

// RenderError formats a user-facing error line.
func RenderError(msg string) string {
	return errorStyle.Render("✗ " + msg)
}
