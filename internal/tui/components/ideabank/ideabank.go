// Package ideabank lists the content ideas grouped by category.
package ideabank

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/postboard/internal/catalog"
	"github.com/julianstephens/postboard/internal/ideas"
	"github.com/julianstephens/postboard/internal/models"
)

type AddIdeaMsg struct{}

type DeleteIdeaMsg struct {
	ID string
}

var (
	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Item struct {
	Idea models.ContentIdea
}

func (i Item) Title() string { return i.Idea.Title }

func (i Item) Description() string {
	return fmt.Sprintf("%s · %s", catalog.IdeaCategoryLabel(i.Idea.Category), i.Idea.Description)
}

func (i Item) FilterValue() string { return i.Idea.Title }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add idea"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list   list.Model
	keys   KeyMap
	groups []ideas.IdeaGroup
}

func New(groups []ideas.IdeaGroup, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Idea Bank"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}

	m := Model{list: l, keys: keys}
	m.SetGroups(groups)
	return m
}

// SetGroups replaces the listed ideas, keeping category order
func (m *Model) SetGroups(groups []ideas.IdeaGroup) {
	m.groups = groups
	var items []list.Item
	for _, g := range groups {
		for _, idea := range g.Ideas {
			items = append(items, Item{Idea: idea})
		}
	}
	m.list.SetItems(items)
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, max(height-2, 0))
}

// Selected returns the highlighted idea
func (m Model) Selected() (models.ContentIdea, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Idea, true
	}
	return models.ContentIdea{}, false
}

// Filtering reports whether the list is capturing keys for its filter
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// ShortHelp exposes the list's bindings to the help bar
func (m Model) ShortHelp() []key.Binding {
	return m.list.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.list.FullHelp()
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
			return m, func() tea.Msg { return AddIdeaMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if idea, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteIdeaMsg{ID: idea.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Len() == 0 {
		return emptyStyle.Render("No ideas yet. Press a to add one.")
	}
	counts := make([]string, len(m.groups))
	for i, g := range m.groups {
		counts[i] = fmt.Sprintf("%s (%d)", catalog.IdeaCategoryLabel(g.Category), len(g.Ideas))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		countStyle.Render(strings.Join(counts, " · ")),
		"",
		m.list.View(),
	)
}
