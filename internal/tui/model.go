package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindful/internal/analytics"
	"github.com/julianstephens/mindful/internal/journal"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/tui/components/entrylist"
	"github.com/julianstephens/mindful/internal/tui/components/pager"
)

type SessionState int

const (
	StateEntries SessionState = iota
	StateDashboard
	StateAchievements
	StateReading
	StateEditing
	StateConfirmDelete
)

var tabTitles = []string{"Journal", "Dashboard", "Achievements"}

// chromeHeight is the room left for tabs and help below the content panes.
const chromeHeight = 6

type Model struct {
	store           *journal.Store
	memo            *analytics.Memo
	now             func() time.Time
	trendDays       int
	state           SessionState
	previousState   SessionState
	keys            KeyMap
	help            help.Model
	entryList       entrylist.Model
	dashboard       pager.Model
	achievements    pager.Model
	reader          pager.Model
	form            *huh.Form
	entryForm       *EntryFormModel
	editing         models.JournalEntry
	entryToDeleteID string
	status          string
	quitting        bool
	width           int
	height          int
}

// NewModel builds the interactive journal browser over store. Analytics are
// recomputed through memo whenever the entries change.
func NewModel(store *journal.Store, memo *analytics.Memo, now func() time.Time, trendDays int) Model {
	if now == nil {
		now = time.Now
	}
	m := Model{
		store:        store,
		memo:         memo,
		now:          now,
		trendDays:    trendDays,
		state:        StateEntries,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		entryList:    entrylist.New(nil, now().Location(), 0, 0),
		dashboard:    pager.New(0, 0, "No entries yet."),
		achievements: pager.New(0, 0, "No achievements yet."),
		reader:       pager.New(0, 0, ""),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateReading:
		return []key.Binding{m.keys.Back, m.keys.Up, m.keys.Down, m.keys.Quit}
	case StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Back}

	var actions []key.Binding
	if m.state == StateEntries {
		keys := entrylist.DefaultKeyMap()
		actions = []key.Binding{keys.Add, keys.View, keys.Edit, keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads entries from the store and re-renders the analytics panes.
func (m *Model) refresh() {
	entries := m.store.GetAll()
	journal.SortNewestFirst(entries)
	m.entryList.SetEntries(entries)

	snap := m.memo.Snapshot(entries, m.trendDays, m.now())
	if len(entries) == 0 {
		m.dashboard.SetContent("")
	} else {
		m.dashboard.SetContent(RenderWeekly(snap.Weekly) + RenderTrend(snap.Trend))
	}
	m.achievements.SetContent(RenderAchievements(snap.Achievements, true))
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	h := max(height-chromeHeight, 1)
	w := max(width-4, 1)
	m.entryList.SetSize(w, h)
	m.dashboard.SetSize(w, h)
	m.achievements.SetSize(w, h)
	m.reader.SetSize(w, h)
}
