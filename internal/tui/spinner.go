package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct {
	err error
}

type spinnerModel struct {
	spinner spinner.Model
	title   string
	cancel  context.CancelFunc
	err     error
	done    bool
}

func newSpinnerModel(title string, cancel context.CancelFunc) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle
	return spinnerModel{spinner: s, title: title, cancel: cancel}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.cancel()
			m.err = context.Canceled
			m.done = true
			return m, tea.Quit
		}
	case doneMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s %s\n", m.spinner.View(), m.title, mutedStyle.Render("(esc to cancel)"))
}

// RunWithSpinner shows a spinner while fn runs. Pressing esc or ctrl+c
// cancels the context handed to fn and returns context.Canceled without
// waiting for fn.
func RunWithSpinner(ctx context.Context, title string, fn func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newSpinnerModel(title, cancel), tea.WithContext(ctx))
	go func() {
		p.Send(doneMsg{err: fn(ctx)})
	}()

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("spinner error: %w", err)
	}
	return final.(spinnerModel).err
}
