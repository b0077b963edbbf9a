package entrylist

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindful/internal/models"
)

type AddEntryMsg struct{}

type ViewEntryMsg struct {
	Entry models.JournalEntry
}

type EditEntryMsg struct {
	Entry models.JournalEntry
}

type DeleteEntryMsg struct {
	ID string
}

type Item struct {
	Entry models.JournalEntry
	Loc   *time.Location
}

func (i Item) Title() string {
	date := i.Entry.Date
	if t, err := i.Entry.Time(i.Loc); err == nil {
		date = t.Format("Mon Jan 02 2006")
	}
	title := i.Entry.Mood.Emoji() + " " + date
	if i.Entry.Emoji != "" {
		title += " " + i.Entry.Emoji
	}
	return title
}
func (i Item) Description() string {
	desc := i.Entry.Mood.Label()
	if len(i.Entry.Tags) > 0 {
		desc += " | #" + strings.Join(i.Entry.Tags, " #")
	}
	return desc
}
func (i Item) FilterValue() string {
	return strings.Join([]string{
		i.Entry.Highlights, i.Entry.Challenges, i.Entry.Gratitude, i.Entry.FreeText,
		strings.Join(i.Entry.Tags, " "),
	}, " ")
}

type KeyMap struct {
	Add    key.Binding
	View   key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new entry"),
		),
		View: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "read"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
	loc  *time.Location
}

func New(entries []models.JournalEntry, loc *time.Location, width, height int) Model {
	l := list.New(items(entries, loc), list.NewDefaultDelegate(), width, height)
	l.Title = "Journal"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.View, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.View, keys.Edit, keys.Delete}
	}

	return Model{list: l, keys: keys, loc: loc}
}

func items(entries []models.JournalEntry, loc *time.Location) []list.Item {
	out := make([]list.Item, len(entries))
	for i, e := range entries {
		out[i] = Item{Entry: e, Loc: loc}
	}
	return out
}

// SetEntries replaces the listed entries, keeping their order.
func (m *Model) SetEntries(entries []models.JournalEntry) {
	m.list.SetItems(items(entries, m.loc))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Selected() (models.JournalEntry, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Entry, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddEntryMsg{} }
		case key.Matches(msg, m.keys.View):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ViewEntryMsg{Entry: e} }
			}
		case key.Matches(msg, m.keys.Edit):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditEntryMsg{Entry: e} }
			}
		case key.Matches(msg, m.keys.Delete):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteEntryMsg{ID: e.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No entries yet.\n  Press 'a' to write one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list is capturing keys for its filter input.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
