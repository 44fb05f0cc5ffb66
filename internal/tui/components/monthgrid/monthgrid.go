// Package monthgrid renders the month as a seven column grid of day cells and
// turns key presses into calendar actions.
package monthgrid

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/postboard/internal/calendar"
	"github.com/julianstephens/postboard/internal/catalog"
	"github.com/julianstephens/postboard/internal/dnd"
	"github.com/julianstephens/postboard/internal/models"
	"github.com/julianstephens/postboard/internal/progress"
)

type AddPostMsg struct {
	Day int
}

type DeletePostMsg struct {
	ID string
}

type OpenProgressMsg struct {
	ID string
}

type ExportMsg struct{}

type MonthChangedMsg struct{}

// DropMsg reports the end of a move gesture
type DropMsg struct {
	ID      string
	Day     int
	Dropped bool
	Err     error
}

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	cursorCellStyle = cellStyle.
			Background(lipgloss.Color("236"))

	dropCellStyle = cellStyle.
			Background(lipgloss.Color("57"))

	dayNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	moreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	NextCard  key.Binding
	PrevCard  key.Binding
	Add       key.Binding
	Delete    key.Binding
	Open      key.Binding
	Move      key.Binding
	Cancel    key.Binding
	Export    key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Delete, k.Open, k.Move, k.Cancel, k.Export}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PrevMonth, k.NextMonth},
		{k.NextCard, k.PrevCard, k.Add, k.Delete, k.Open, k.Move, k.Cancel, k.Export},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
		NextCard: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "next post"),
		),
		PrevCard: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "prev post"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add post"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "progress"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel move"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export"),
		),
	}
}

// Model is the calendar grid. Each post card is a drag source and each day
// cell of the shown month a drop target on the shared board.
type Model struct {
	ctrl    *calendar.Controller
	board   *dnd.Board
	keys    KeyMap
	cursor  int
	card    int
	sources map[string]dnd.DragSource
	targets map[int]dnd.DropTarget
	width   int
	height  int
}

func New(ctrl *calendar.Controller, board *dnd.Board) Model {
	m := Model{
		ctrl:   ctrl,
		board:  board,
		keys:   DefaultKeyMap(),
		cursor: 1,
	}
	m.Sync()
	return m
}

// Sync re-registers drag sources and drop targets after the posts or the
// month changed.
func (m *Model) Sync() {
	ctrl := m.ctrl
	m.sources = make(map[string]dnd.DragSource)
	for _, p := range ctrl.Posts() {
		m.sources[p.ID] = m.board.Draggable(dnd.Payload{Tag: dnd.TagPost, ID: p.ID, FromDay: p.Day()})
	}
	m.targets = make(map[int]dnd.DropTarget)
	for day := 1; day <= ctrl.DaysInMonth(); day++ {
		m.targets[day] = m.board.Droppable(dnd.TagPost, func(p dnd.Payload) error {
			return ctrl.MovePost(p.ID, day)
		})
	}
	m.clamp()
	if _, ok := m.board.Dragging(); ok {
		_ = m.board.Hover(m.targets[m.cursor])
	}
	m.updateBindings()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Cursor returns the selected day of month
func (m Model) Cursor() int {
	return m.cursor
}

// SetCursor selects day, clamped to the month
func (m *Model) SetCursor(day int) {
	m.cursor = day
	m.card = 0
	m.clamp()
	m.updateBindings()
}

// Selected returns the post under the card cursor
func (m Model) Selected() (models.Post, bool) {
	posts := m.ctrl.PostsOnDay(m.cursor)
	if m.card < 0 || m.card >= len(posts) {
		return models.Post{}, false
	}
	return posts[m.card], true
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(-7)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(7)
	case key.Matches(keyMsg, m.keys.PrevMonth):
		cmd = m.changeMonth(-1)
	case key.Matches(keyMsg, m.keys.NextMonth):
		cmd = m.changeMonth(1)
	case key.Matches(keyMsg, m.keys.NextCard):
		m.cycleCard(1)
	case key.Matches(keyMsg, m.keys.PrevCard):
		m.cycleCard(-1)
	case key.Matches(keyMsg, m.keys.Add):
		if m.ctrl.CanAddMore(m.cursor) {
			day := m.cursor
			cmd = func() tea.Msg { return AddPostMsg{Day: day} }
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if p, ok := m.Selected(); ok {
			cmd = func() tea.Msg { return DeletePostMsg{ID: p.ID} }
		}
	case key.Matches(keyMsg, m.keys.Open):
		if p, ok := m.Selected(); ok {
			cmd = func() tea.Msg { return OpenProgressMsg{ID: p.ID} }
		}
	case key.Matches(keyMsg, m.keys.Move):
		cmd = m.toggleMove()
	case key.Matches(keyMsg, m.keys.Cancel):
		m.board.Cancel()
	case key.Matches(keyMsg, m.keys.Export):
		cmd = func() tea.Msg { return ExportMsg{} }
	}
	m.updateBindings()
	return m, cmd
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 1 || next > m.ctrl.DaysInMonth() {
		return
	}
	m.cursor = next
	m.card = 0
	if _, ok := m.board.Dragging(); ok {
		_ = m.board.Hover(m.targets[m.cursor])
	}
}

// changeMonth abandons any move in progress; there is no target outside the
// shown month.
func (m *Model) changeMonth(delta int) tea.Cmd {
	m.board.Cancel()
	m.ctrl.ChangeMonth(delta)
	m.card = 0
	m.Sync()
	return func() tea.Msg { return MonthChangedMsg{} }
}

func (m *Model) cycleCard(delta int) {
	n := len(m.ctrl.PostsOnDay(m.cursor))
	if n == 0 {
		return
	}
	m.card = (m.card + delta + n) % n
}

func (m *Model) toggleMove() tea.Cmd {
	if payload, ok := m.board.Dragging(); ok {
		day := m.cursor
		dropped, err := m.board.Release()
		m.Sync()
		if dropped {
			m.Focus(payload.ID)
		}
		return func() tea.Msg {
			return DropMsg{ID: payload.ID, Day: day, Dropped: dropped, Err: err}
		}
	}

	p, ok := m.Selected()
	if !ok {
		return nil
	}
	if err := m.board.Pick(m.sources[p.ID]); err != nil {
		return nil
	}
	_ = m.board.Hover(m.targets[m.cursor])
	return nil
}

// Focus moves the card cursor to post id on the cursor day
func (m *Model) Focus(id string) {
	for i, p := range m.ctrl.PostsOnDay(m.cursor) {
		if p.ID == id {
			m.card = i
			return
		}
	}
}

func (m *Model) clamp() {
	days := m.ctrl.DaysInMonth()
	if m.cursor < 1 {
		m.cursor = 1
	}
	if m.cursor > days {
		m.cursor = days
	}
	n := len(m.ctrl.PostsOnDay(m.cursor))
	if m.card >= n {
		m.card = n - 1
	}
	if m.card < 0 {
		m.card = 0
	}
}

func (m *Model) updateBindings() {
	_, selected := m.Selected()
	_, dragging := m.board.Dragging()
	m.keys.Add.SetEnabled(m.ctrl.CanAddMore(m.cursor))
	m.keys.Delete.SetEnabled(selected && !dragging)
	m.keys.Open.SetEnabled(selected && !dragging)
	m.keys.Move.SetEnabled(selected || dragging)
	m.keys.Cancel.SetEnabled(dragging)
}

func (m Model) View() string {
	cw := m.cellWidth()

	header := make([]string, len(weekdayNames))
	for i, name := range weekdayNames {
		header[i] = headerStyle.Width(cw).Render(name)
	}

	var cells []string
	for i := 0; i < int(m.ctrl.FirstWeekday()); i++ {
		cells = append(cells, cellStyle.Width(cw).Render(""))
	}
	for day := 1; day <= m.ctrl.DaysInMonth(); day++ {
		cells = append(cells, m.renderDay(day, cw))
	}

	rows := []string{
		titleStyle.Render(fmt.Sprintf("‹ %s ›", m.ctrl.MonthTitle())),
		lipgloss.JoinHorizontal(lipgloss.Top, header...),
	}
	for start := 0; start < len(cells); start += 7 {
		end := min(start+7, len(cells))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[start:end]...))
	}
	rows = append(rows, "", m.detail())
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) cellWidth() int {
	if m.width <= 0 {
		return 18
	}
	return max(12, min(28, m.width/7))
}

func (m Model) renderDay(day, cw int) string {
	head := fmt.Sprintf("%2d", day)
	if sd, ok := m.ctrl.SpecialDayOn(day); ok {
		head += " " + sd.Emoji
	}
	lines := []string{dayNumberStyle.Render(head)}

	dragID := ""
	if p, ok := m.board.Dragging(); ok {
		dragID = p.ID
	}

	limit := m.ctrl.MaxPostsPerDay()
	posts := m.ctrl.PostsOnDay(day)
	shown := posts
	if len(posts) > limit {
		shown = posts[:limit-1]
	}
	for i, p := range shown {
		selected := day == m.cursor && i == m.card
		lines = append(lines, m.renderCard(p, cw-2, selected, p.ID == dragID))
	}
	if len(shown) < len(posts) {
		lines = append(lines, moreStyle.Render(fmt.Sprintf("+%d more", len(posts)-len(shown))))
	}
	for len(lines) < limit+1 {
		lines = append(lines, "")
	}

	style := cellStyle
	if day == m.cursor {
		style = cursorCellStyle
		if dragID != "" {
			style = dropCellStyle
		}
	}
	return style.Width(cw).Render(strings.Join(lines, "\n"))
}

func (m Model) renderCard(p models.Post, width int, selected, dragging bool) string {
	desc, _ := catalog.Describe(p.Type)
	text := desc.Icon + " " + p.Title
	if m.ctrl.StatusOf(p.ID) == models.StatusReady {
		text += " ✓"
	}
	if dragging {
		text = "⇢ " + text
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(desc.Color)).
		MaxWidth(width)
	if selected {
		style = style.Reverse(true)
	}
	if dragging {
		style = style.Italic(true).Underline(true)
	}
	return style.Render(truncate(text, width))
}

func (m Model) detail() string {
	day := m.cursor
	date := time.Date(m.ctrl.Year(), m.ctrl.Month(), day, 0, 0, 0, 0, time.Local)
	posts := m.ctrl.PostsOnDay(day)

	line := fmt.Sprintf("%s · %d/%d posts", date.Format("Monday, January 2"), len(posts), m.ctrl.MaxPostsPerDay())
	if sd, ok := m.ctrl.SpecialDayOn(day); ok {
		line += fmt.Sprintf(" · %s %s", sd.Emoji, sd.Name)
	}
	lines := []string{line}

	if payload, ok := m.board.Dragging(); ok {
		if p, found := m.ctrl.Post(payload.ID); found {
			lines = append(lines, fmt.Sprintf("Moving %q from day %d: pick a day, m to drop, esc to cancel", p.Title, payload.FromDay))
		}
	} else if p, ok := m.Selected(); ok {
		lines = append(lines,
			fmt.Sprintf("%s %s (%s): %s", catalogIcon(p.Type), p.Title, catalog.Label(p.Type), progress.StatusLabel(m.ctrl.StatusOf(p.ID))),
			p.Description,
		)
	}
	return detailStyle.Render(strings.Join(lines, "\n"))
}

func catalogIcon(pt models.PostType) string {
	desc, _ := catalog.Describe(pt)
	return desc.Icon
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
