package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindful/internal/journal"
	"github.com/julianstephens/mindful/internal/logger"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/tui/components/entrylist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.setSize(size.Width, size.Height)
	}

	switch m.state {
	case StateEditing:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case entrylist.AddEntryMsg:
		return m.startForm(journal.NewEntry(m.now()))
	case entrylist.EditEntryMsg:
		return m.startForm(msg.Entry)
	case entrylist.ViewEntryMsg:
		m.reader.SetContent(RenderEntry(msg.Entry, m.now().Location()))
		m.previousState = m.state
		m.state = StateReading
		return m, nil
	case entrylist.DeleteEntryMsg:
		m.entryToDeleteID = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		if m.state == StateEntries && m.entryList.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case m.state == StateReading && key.Matches(msg, m.keys.Back):
			m.state = m.previousState
			return m, nil
		case m.state != StateReading && key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			m.status = ""
			return m, nil
		case m.state != StateReading && key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			m.status = ""
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateEntries:
		m.entryList, cmd = m.entryList.Update(msg)
	case StateDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case StateAchievements:
		m.achievements, cmd = m.achievements.Update(msg)
	case StateReading:
		m.reader, cmd = m.reader.Update(msg)
	}
	return m, cmd
}

func (m Model) startForm(e models.JournalEntry) (tea.Model, tea.Cmd) {
	m.editing = e
	m.entryForm = NewEntryFormModel(e)
	m.form = NewEntryForm(m.entryForm)
	m.previousState = m.state
	m.state = StateEditing
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Back) {
		m.form = nil
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		entry := m.entryForm.Apply(m.editing)
		if _, err := m.store.Save(entry); err != nil {
			logger.Error("Failed to save entry", "id", entry.ID, "error", err)
			m.status = "Could not save entry: " + err.Error()
		} else {
			m.status = "Entry saved"
		}
		m.form = nil
		m.state = m.previousState
		m.refresh()
		return m, nil
	case huh.StateAborted:
		m.form = nil
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, m.keys.Confirm):
		if err := m.store.Delete(m.entryToDeleteID); err != nil {
			logger.Error("Failed to delete entry", "id", m.entryToDeleteID, "error", err)
			m.status = "Could not delete entry: " + err.Error()
		} else {
			m.status = "Entry deleted"
		}
		m.entryToDeleteID = ""
		m.state = m.previousState
		m.refresh()
	case key.Matches(k, m.keys.Cancel):
		m.entryToDeleteID = ""
		m.state = m.previousState
	}
	return m, nil
}
