package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateEntries:
		content = docStyle.Render(m.entryList.View())
	case StateDashboard:
		content = docStyle.Render(m.dashboard.View())
	case StateAchievements:
		content = docStyle.Render(m.achievements.View())
	case StateReading:
		content = docStyle.Render(m.reader.View())
	case StateEditing:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs(), content}
	if m.status != "" {
		parts = append(parts, warningStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) activeTab() SessionState {
	switch m.state {
	case StateEntries, StateDashboard, StateAchievements:
		return m.state
	}
	return m.previousState
}

func (m Model) viewTabs() string {
	var tabs []string
	active := m.activeTab()
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, max(m.height-chromeHeight, 1),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			errorStyle.Render("Delete this entry? This cannot be undone."),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
