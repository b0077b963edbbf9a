package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/tui"
)

type TuiCmd struct {
	Days int `help:"Days of mood trend on the dashboard." default:"7"`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	days := c.Days
	if days <= 0 {
		days = constants.DefaultTrendDays
	}
	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Memo, ctx.Now, days), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
