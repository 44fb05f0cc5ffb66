package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/postboard/internal/catalog"
	"github.com/julianstephens/postboard/internal/constants"
)

var tabs = []struct {
	title string
	state constants.SessionState
}{
	{"Calendar", constants.StateCalendar},
	{"Ideas", constants.StateIdeas},
	{"Legend", constants.StateLegend},
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string
	switch m.State {
	case constants.StateCalendar:
		content = docStyle.Render(m.Grid.View())
	case constants.StateIdeas:
		content = docStyle.Render(m.IdeaList.View())
	case constants.StateLegend:
		content = docStyle.Render(m.Legend.View())
	case constants.StateProgress:
		content = m.centered(m.Checklist.View())
	case constants.StateAddPost, constants.StateAddIdea, constants.StateAddStep, constants.StateEditCaption:
		content = m.viewForm()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	sections := []string{m.viewTabs()}
	if banner := m.viewConflictBanner(); banner != "" {
		sections = append(sections, banner)
	}
	if m.Notice != "" {
		sections = append(sections, warningStyle.Render(m.Notice))
	}
	sections = append(sections, content)
	if m.StatusMessage != "" {
		sections = append(sections, statusStyle.Render(m.StatusMessage))
	}
	sections = append(sections, m.Help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	active := m.State
	switch m.State {
	case constants.StateProgress, constants.StateAddPost, constants.StateAddStep,
		constants.StateEditCaption, constants.StateConfirmDelete:
		active = constants.StateCalendar
	case constants.StateAddIdea:
		active = constants.StateIdeas
	}

	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if t.state == active {
			rendered[i] = activeTabStyle.Render(t.title)
		} else {
			rendered[i] = inactiveTabStyle.Render(t.title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewConflictBanner() string {
	if len(m.ValidationConflicts) == 0 {
		return ""
	}
	text := fmt.Sprintf("⚠ %d CONFLICT(S) DETECTED", len(m.ValidationConflicts))
	if m.ValidationWarning != "" {
		text = fmt.Sprintf("%s: %s", text, m.ValidationWarning)
	}
	return bannerStyle.Render(text)
}

func (m Model) viewForm() string {
	if m.Form == nil {
		return ""
	}
	body := m.Form.View()
	if m.FormError != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", dangerStyle.Render(m.FormError))
	}
	return docStyle.Render(body)
}

func (m Model) viewConfirmDelete() string {
	title := "this post"
	if post, ok := m.Calendar.Post(m.PostToDeleteID); ok {
		desc, _ := catalog.Describe(post.Type)
		title = fmt.Sprintf("%s %q", desc.Icon, post.Title)
	}
	return m.centered(lipgloss.JoinVertical(lipgloss.Center,
		dangerStyle.Render(fmt.Sprintf("Delete %s?", title)),
		warningStyle.Render("Its progress is removed as well."),
		"",
		"[y] Yes",
		"[n] No",
	))
}

func (m Model) centered(s string) string {
	if m.Width == 0 || m.Height == 0 {
		return s
	}
	return lipgloss.Place(m.Width, max(m.Height-chromeHeight, lipgloss.Height(s)),
		lipgloss.Center, lipgloss.Center, s)
}
