package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/allot/internal/model"
)

// Action names reported back to the model.
const (
	actionDistribute = "distribute"
	actionReload     = "reload"
)

// actionDoneMsg carries the budget after an action finished.
type actionDoneMsg struct {
	err    error
	action string
	state  model.State
}

func distributeCmd(ctx context.Context, b Budget) tea.Cmd {
	return func() tea.Msg {
		err := b.Distribute(ctx)
		return actionDoneMsg{action: actionDistribute, state: b.State(), err: err}
	}
}

func reloadCmd(ctx context.Context, b Budget) tea.Cmd {
	return func() tea.Msg {
		err := b.Reload(ctx)
		return actionDoneMsg{action: actionReload, state: b.State(), err: err}
	}
}
