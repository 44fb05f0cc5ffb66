package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/tui/state"
)

var tabOrder = []constants.SessionState{
	constants.StateCalendar,
	constants.StateIdeas,
	constants.StateLegend,
}

// HandleGlobalKeys handles key presses shared by every tab. Overlays and
// forms keep their keys, except ctrl+c.
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return true, tea.Quit
	}
	if !m.IsBaseState() || (m.State == constants.StateIdeas && m.IdeaList.Filtering()) {
		return false, nil
	}

	switch msg.String() {
	case "q":
		m.Quitting = true
		return true, tea.Quit
	case "?":
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	case "tab":
		m.Board.Cancel()
		m.State = nextTab(m.State, 1)
		return true, nil
	case "shift+tab":
		m.Board.Cancel()
		m.State = nextTab(m.State, -1)
		return true, nil
	}
	return false, nil
}

func nextTab(current constants.SessionState, delta int) constants.SessionState {
	for i, s := range tabOrder {
		if s == current {
			return tabOrder[(i+delta+len(tabOrder))%len(tabOrder)]
		}
	}
	return constants.StateCalendar
}
