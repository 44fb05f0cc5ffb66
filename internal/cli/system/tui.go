package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/postboard/internal/cli"
	"github.com/julianstephens/postboard/internal/ideas"
	"github.com/julianstephens/postboard/internal/logger"
	"github.com/julianstephens/postboard/internal/session"
	"github.com/julianstephens/postboard/internal/tui"
)

type TuiCmd struct {
	Month string `arg:"" optional:"" help:"Month to open (YYYY-MM). Defaults to the configured start month."`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	month, year, err := ctx.ResolveMonth(c.Month)
	if err != nil {
		return err
	}

	notice := ""
	lock, err := session.Acquire(ctx.ConfigDir())
	if err != nil {
		logger.Warn("Could not write session lock", "error", err)
	} else {
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("Could not remove session lock", "error", err)
			}
		}()
		if lock.OtherPID != 0 {
			notice = fmt.Sprintf("Another postboard session is running (pid %d). Edits are not shared between sessions.", lock.OtherPID)
		}
	}

	m := tui.NewModel(tui.Options{
		Controller: ctx.NewController(month, year),
		Ideas:      ideas.NewStore(ideas.WithClock(ctx.Now)),
		Export:     ctx.ExportTarget(""),
		Notice:     notice,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
