// Package legend shows the post type legend and the special days of the
// shown month in a scrollable viewport.
package legend

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/postboard/internal/calendar"
	"github.com/julianstephens/postboard/internal/catalog"
)

var (
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Width(4)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	content  string
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.viewport.Height == 0 {
		return m.content
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(m.content)
}

// SetMonth renders the legend for the controller's current month
func (m *Model) SetMonth(ctrl *calendar.Controller) {
	counts := ctrl.CountByType()

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Post Types"))
	b.WriteString("\n")
	for _, entry := range catalog.PostTypes() {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Color)).Render("██")
		fmt.Fprintf(&b, "%s %s %s %s\n",
			swatch,
			countStyle.Render(fmt.Sprintf("%d this month", counts[entry.Type])),
			entry.Icon,
			entry.Label,
		)
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Special Days in " + ctrl.MonthTitle()))
	b.WriteString("\n")
	specials := ctrl.SpecialDays()
	if len(specials) == 0 {
		b.WriteString(kindStyle.Render("None this month"))
		b.WriteString("\n")
	}
	for _, sd := range specials {
		fmt.Fprintf(&b, "%s %s %s %s\n",
			dayStyle.Render(fmt.Sprintf("%d", sd.Day)),
			sd.Emoji,
			sd.Name,
			kindStyle.Render("("+catalog.SpecialDayKindLabel(sd.Kind)+")"),
		)
	}

	m.content = b.String()
	m.viewport.SetContent(m.content)
}
