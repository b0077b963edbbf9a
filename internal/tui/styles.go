package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindful/internal/models"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("141")).
			Bold(true).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))

	unlockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1)
)

var moodColors = map[models.Mood]lipgloss.Color{
	models.MoodAmazing:     lipgloss.Color("220"),
	models.MoodGood:        lipgloss.Color("42"),
	models.MoodOkay:        lipgloss.Color("39"),
	models.MoodDifficult:   lipgloss.Color("208"),
	models.MoodChallenging: lipgloss.Color("63"),
}

func moodStyle(m models.Mood) lipgloss.Style {
	if c, ok := moodColors[m]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle()
}
