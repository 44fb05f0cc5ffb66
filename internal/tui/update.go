package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/tui/handlers"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	// Component messages are handled whatever the state
	if handled, cmd := handlers.HandleCalendarMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleIdeaMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleProgressMessages(&m.Model, msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := handlers.HandleGlobalKeys(&m.Model, msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.State {
	case constants.StateAddPost:
		cmd = handlers.HandleAddPostState(&m.Model, msg)
	case constants.StateAddIdea:
		cmd = handlers.HandleAddIdeaState(&m.Model, msg)
	case constants.StateAddStep:
		cmd = handlers.HandleAddStepState(&m.Model, msg)
	case constants.StateEditCaption:
		cmd = handlers.HandleEditCaptionState(&m.Model, msg)
	case constants.StateConfirmDelete:
		cmd = handlers.HandleConfirmDeleteState(&m.Model, msg)
	case constants.StateProgress:
		cmd = handlers.HandleProgressState(&m.Model, msg)
	case constants.StateCalendar:
		m.Grid, cmd = m.Grid.Update(msg)
	case constants.StateIdeas:
		m.IdeaList, cmd = m.IdeaList.Update(msg)
	case constants.StateLegend:
		m.Legend, cmd = m.Legend.Update(msg)
	}
	return m, cmd
}

// resize hands the space left by the tabs, banners and help bar to the views
func (m *Model) resize(width, height int) {
	m.Width = width
	m.Height = height
	m.Help.Width = width

	h, v := docStyle.GetFrameSize()
	contentHeight := max(height-v-chromeHeight, 0)
	m.Grid.SetSize(width-h, contentHeight)
	m.IdeaList.SetSize(width-h, contentHeight)
	m.Legend.SetSize(width-h, contentHeight)
	m.Checklist.SetWidth(width - h)
}
