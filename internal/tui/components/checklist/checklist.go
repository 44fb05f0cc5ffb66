// Package checklist is the progress tracker overlay of a single post.
package checklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/postboard/internal/catalog"
	"github.com/julianstephens/postboard/internal/models"
	"github.com/julianstephens/postboard/internal/progress"
)

type AddStepMsg struct{}

type EditCaptionMsg struct{}

type SaveMsg struct{}

type DiscardMsg struct{}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	badgeStyles = map[models.PostStatus]lipgloss.Style{
		models.StatusNotStarted: lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("240")).Foreground(lipgloss.Color("255")),
		models.StatusInProgress: lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("214")).Foreground(lipgloss.Color("0")),
		models.StatusReady:      lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("35")).Foreground(lipgloss.Color("0")),
	}
)

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	AddStep  key.Binding
	Remove   key.Binding
	Creative key.Binding
	Edit     key.Binding
	Save     key.Binding
	Discard  key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.AddStep, k.Remove, k.Creative, k.Edit, k.Save, k.Discard}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.AddStep, k.Remove},
		{k.Creative, k.Edit, k.Save, k.Discard},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "toggle step"),
		),
		AddStep: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add step"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove step"),
		),
		Creative: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "creative ready"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit caption"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Discard: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "discard"),
		),
	}
}

// Model renders and edits the draft held by an open progress.Tracker
type Model struct {
	tracker *progress.Tracker
	post    models.Post
	bar     progressbar.Model
	keys    KeyMap
	cursor  int
	width   int
}

func New() Model {
	return Model{
		bar:  progressbar.New(progressbar.WithDefaultGradient()),
		keys: DefaultKeyMap(),
	}
}

// Open attaches the overlay to an open tracker for post
func (m *Model) Open(t *progress.Tracker, post models.Post) {
	m.tracker = t
	m.post = post
	m.cursor = 0
	m.updateBindings()
}

func (m *Model) Close() {
	m.tracker = nil
	m.post = models.Post{}
	m.cursor = 0
}

func (m Model) IsOpen() bool {
	return m.tracker != nil && m.tracker.IsOpen()
}

func (m Model) Tracker() *progress.Tracker {
	return m.tracker
}

func (m Model) Post() models.Post {
	return m.post
}

func (m Model) Keys() KeyMap {
	return m.keys
}

// Cursor returns the index of the highlighted step
func (m Model) Cursor() int {
	return m.cursor
}

func (m *Model) SetWidth(width int) {
	m.width = width
	m.bar.Width = max(20, min(50, width-16))
}

// Refresh clamps the step cursor after the draft changed outside the overlay
func (m *Model) Refresh() {
	m.clamp()
	m.updateBindings()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsOpen() {
		return m, nil
	}

	steps := m.tracker.Draft().Steps
	var cmd tea.Cmd
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(steps)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		if m.cursor < len(steps) {
			m.tracker.ToggleStep(steps[m.cursor].ID)
		}
	case key.Matches(keyMsg, m.keys.Remove):
		if m.cursor < len(steps) {
			m.tracker.RemoveStep(steps[m.cursor].ID)
			m.clamp()
		}
	case key.Matches(keyMsg, m.keys.Creative):
		m.tracker.SetCreative(!m.tracker.Draft().HasCreative)
	case key.Matches(keyMsg, m.keys.AddStep):
		cmd = func() tea.Msg { return AddStepMsg{} }
	case key.Matches(keyMsg, m.keys.Edit):
		cmd = func() tea.Msg { return EditCaptionMsg{} }
	case key.Matches(keyMsg, m.keys.Save):
		cmd = func() tea.Msg { return SaveMsg{} }
	case key.Matches(keyMsg, m.keys.Discard):
		cmd = func() tea.Msg { return DiscardMsg{} }
	}
	m.updateBindings()
	return m, cmd
}

func (m *Model) clamp() {
	if !m.IsOpen() {
		m.cursor = 0
		return
	}
	n := len(m.tracker.Draft().Steps)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) updateBindings() {
	hasSteps := m.IsOpen() && len(m.tracker.Draft().Steps) > 0
	m.keys.Toggle.SetEnabled(hasSteps)
	m.keys.Remove.SetEnabled(hasSteps)
	m.keys.Up.SetEnabled(hasSteps)
	m.keys.Down.SetEnabled(hasSteps)
}

func (m Model) View() string {
	if !m.IsOpen() {
		return ""
	}
	draft := m.tracker.Draft()
	status := m.tracker.Status()
	completed, total, percent := m.tracker.Completion()

	desc, _ := catalog.Describe(m.post.Type)
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", desc.Icon, m.post.Title)))
	b.WriteString("  ")
	b.WriteString(badgeStyles[status].Render(progress.StatusLabel(status)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s · %s", catalog.Label(m.post.Type), m.post.ScheduledDate.Format("Monday, January 2"))))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("Steps %d/%d", completed, total)))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(percent / 100))
	b.WriteString("\n")
	if len(draft.Steps) == 0 {
		b.WriteString(labelStyle.Render("  No steps. Press a to add one."))
		b.WriteString("\n")
	}
	for i, s := range draft.Steps {
		box := "[ ]"
		text := s.Text
		if s.Completed {
			box = "[x]"
			text = doneStyle.Render(text)
		}
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("› ")
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, box, text)
	}

	b.WriteString("\n")
	creative := "✗ not ready"
	if draft.HasCreative {
		creative = "✓ ready"
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Creative:"), creative)
	if draft.CreativeDescription != "" {
		fmt.Fprintf(&b, "  %s\n", draft.CreativeDescription)
	}

	fmt.Fprintf(&b, "%s\n", labelStyle.Render(fmt.Sprintf("Caption (%d characters):", m.tracker.CaptionLength())))
	if draft.Caption == "" {
		b.WriteString(labelStyle.Render("  No caption yet. Press e to write one."))
	} else {
		b.WriteString(lipgloss.NewStyle().Width(max(20, m.bar.Width)).Render(draft.Caption))
	}
	if warning, ok := m.tracker.CaptionWarning(); ok {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("⚠ " + warning))
	}

	return boxStyle.Render(b.String())
}
