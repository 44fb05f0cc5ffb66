// Package tui is the interactive content calendar.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/postboard/internal/calendar"
	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/export"
	"github.com/julianstephens/postboard/internal/ideas"
	"github.com/julianstephens/postboard/internal/tui/state"
)

// Options configures a new Model
type Options struct {
	Controller *calendar.Controller
	Ideas      *ideas.Store
	Export     export.Target
	// Notice is shown under the tabs for the whole session
	Notice string
}

type Model struct {
	state.Model
}

func NewModel(opts Options) Model {
	store := opts.Ideas
	if store == nil {
		store = ideas.NewStore()
	}
	return Model{
		Model: state.New(opts.Controller, store, opts.Export, opts.Notice),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// ShortHelp returns the bindings of the active view for the help bar
func (m Model) ShortHelp() []key.Binding {
	switch m.State {
	case constants.StateCalendar:
		return append(m.Grid.Keys().ShortHelp(), m.Keys.ShortHelp()...)
	case constants.StateIdeas:
		return append(m.IdeaList.ShortHelp(), m.Keys.ShortHelp()...)
	case constants.StateLegend:
		return m.Keys.ShortHelp()
	case constants.StateProgress:
		return m.Checklist.Keys().ShortHelp()
	case constants.StateAddPost, constants.StateAddIdea, constants.StateAddStep, constants.StateEditCaption:
		if m.Form != nil {
			return append(m.Form.KeyBinds(), formCancelKey)
		}
	}
	return nil
}

func (m Model) FullHelp() [][]key.Binding {
	switch m.State {
	case constants.StateCalendar:
		return append(m.Grid.Keys().FullHelp(), m.Keys.FullHelp()...)
	case constants.StateIdeas:
		return append(m.IdeaList.FullHelp(), m.Keys.FullHelp()...)
	case constants.StateProgress:
		return m.Checklist.Keys().FullHelp()
	}
	return [][]key.Binding{m.ShortHelp()}
}

var formCancelKey = key.NewBinding(
	key.WithKeys("esc"),
	key.WithHelp("esc", "cancel"),
)
