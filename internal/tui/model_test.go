package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/postboard/internal/calendar"
	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/export"
	"github.com/julianstephens/postboard/internal/ideas"
	"github.com/julianstephens/postboard/internal/models"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	now := func() time.Time { return time.Date(2025, time.January, 1, 9, 0, 0, 0, time.Local) }
	ctrl := calendar.New(time.January, 2025, calendar.WithClock(now))
	return NewModel(Options{
		Controller: ctrl,
		Ideas:      ideas.NewStore(ideas.WithClock(now)),
		Export:     export.Target{Format: export.FormatMarkdown, Dir: t.TempDir()},
	})
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends each key and feeds the message produced by the returned
// command back into the model. Commands returned by that second update are
// dropped so form initialisation never runs.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, cmd := m.Update(keyMsg(k))
		m = updated.(Model)
		if cmd == nil || (!m.IsBaseState() && m.State != constants.StateProgress) {
			continue
		}
		msg := cmd()
		if _, quit := msg.(tea.QuitMsg); quit || msg == nil {
			continue
		}
		updated, _ = m.Update(msg)
		m = updated.(Model)
	}
	return m
}

// complete marks the open form as submitted and lets the state handler apply it
func complete(t *testing.T, m Model) Model {
	t.Helper()
	if m.Form == nil {
		t.Fatal("no form is open")
	}
	m.Form.State = huh.StateCompleted
	updated, _ := m.Update(struct{}{})
	return updated.(Model)
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t)

	if m.State != constants.StateCalendar {
		t.Errorf("State = %v, want calendar", m.State)
	}
	if m.Grid.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", m.Grid.Cursor())
	}
	if len(m.ValidationConflicts) != 0 {
		t.Errorf("generated month should have no conflicts, got %v", m.ValidationConflicts)
	}
	if m.Init() != nil {
		t.Error("Init() should return nil")
	}
}

func TestTabsCycle(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want constants.SessionState
	}{
		{"one tab", []string{"tab"}, constants.StateIdeas},
		{"two tabs", []string{"tab", "tab"}, constants.StateLegend},
		{"wraps forward", []string{"tab", "tab", "tab"}, constants.StateCalendar},
		{"wraps backward", []string{"shift+tab"}, constants.StateLegend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(t, newTestModel(t), tt.keys...)
			if m.State != tt.want {
				t.Errorf("State = %v, want %v", m.State, tt.want)
			}
		})
	}
}

func TestCursorMovement(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"right", []string{"right", "l"}, 3},
		{"down a week", []string{"down"}, 8},
		{"up a week", []string{"j", "k"}, 1},
		{"stays inside the month", []string{"left", "up"}, 1},
		{"last week", []string{"down", "down", "down", "down", "down"}, 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(t, newTestModel(t), tt.keys...)
			if got := m.Grid.Cursor(); got != tt.want {
				t.Errorf("Cursor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMonthNavigation(t *testing.T) {
	m := press(t, newTestModel(t), "]")
	if m.Calendar.Month() != time.February || m.Calendar.Year() != 2025 {
		t.Fatalf("after ] got %s %d", m.Calendar.Month(), m.Calendar.Year())
	}

	m = press(t, m, "[", "[")
	if m.Calendar.Month() != time.December || m.Calendar.Year() != 2024 {
		t.Fatalf("after [[ got %s %d", m.Calendar.Month(), m.Calendar.Year())
	}
	if !strings.Contains(m.View(), "December 2024") {
		t.Error("view should show the new month title")
	}
}

func TestAddPost(t *testing.T) {
	m := press(t, newTestModel(t), "a")
	if m.State != constants.StateAddPost {
		t.Fatalf("State = %v, want add post", m.State)
	}
	if day, ok := m.Calendar.AddDialogDay(); !ok || day != 1 {
		t.Fatalf("AddDialogDay() = %d, %v", day, ok)
	}

	m.PostForm.Type = models.PostTypeBlog
	m.PostForm.Title = "  New Year Budget  "
	m.PostForm.Description = "Planning for the year"
	m = complete(t, m)

	if m.State != constants.StateCalendar {
		t.Fatalf("State = %v, want calendar", m.State)
	}
	posts := m.Calendar.PostsOnDay(1)
	if len(posts) != 1 || posts[0].Title != "New Year Budget" {
		t.Fatalf("PostsOnDay(1) = %+v", posts)
	}
	if _, ok := m.Calendar.AddDialogDay(); ok {
		t.Error("add dialog should be closed")
	}
	if !strings.Contains(m.StatusMessage, "New Year Budget") {
		t.Errorf("StatusMessage = %q", m.StatusMessage)
	}
}

func TestAddPostIgnoredOnFullDay(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < m.Calendar.MaxPostsPerDay(); i++ {
		if _, err := m.Calendar.AddPost(2, models.PostTypeBlog, "Filler", "Filler post"); err != nil {
			t.Fatalf("AddPost() error = %v", err)
		}
	}
	m.Refresh()

	m = press(t, m, "right", "a")
	if m.State != constants.StateCalendar {
		t.Errorf("State = %v, full day must not open the form", m.State)
	}
	if m.Grid.Keys().Add.Enabled() {
		t.Error("add binding should be disabled on a full day")
	}
}

func TestAddPostEscCancels(t *testing.T) {
	m := press(t, newTestModel(t), "a", "esc")
	if m.State != constants.StateCalendar {
		t.Errorf("State = %v, want calendar", m.State)
	}
	if _, ok := m.Calendar.AddDialogDay(); ok {
		t.Error("add dialog should be closed")
	}
}

func TestDeletePostConfirmation(t *testing.T) {
	m := press(t, newTestModel(t), "right", "right", "right", "right", "right")
	if m.Grid.Cursor() != 6 {
		t.Fatalf("Cursor() = %d, want 6", m.Grid.Cursor())
	}

	m = press(t, m, "d")
	if m.State != constants.StateConfirmDelete || m.PostToDeleteID != "pet-6" {
		t.Fatalf("State = %v, PostToDeleteID = %q", m.State, m.PostToDeleteID)
	}

	m = press(t, m, "n")
	if _, ok := m.Calendar.Post("pet-6"); !ok {
		t.Fatal("n must keep the post")
	}

	m = press(t, m, "d", "y")
	if _, ok := m.Calendar.Post("pet-6"); ok {
		t.Error("y should delete the post")
	}
	if m.State != constants.StateCalendar {
		t.Errorf("State = %v, want calendar", m.State)
	}
}

func TestMovePost(t *testing.T) {
	m := press(t, newTestModel(t), "right", "right", "right", "right", "right")

	m = press(t, m, "m")
	if p, ok := m.Board.Dragging(); !ok || p.ID != "pet-6" {
		t.Fatalf("Dragging() = %+v, %v", p, ok)
	}

	m = press(t, m, "right", "m")
	if _, ok := m.Board.Dragging(); ok {
		t.Fatal("drop should end the gesture")
	}
	post, _ := m.Calendar.Post("pet-6")
	if post.Day() != 7 {
		t.Errorf("pet-6 on day %d, want 7", post.Day())
	}
	if !strings.Contains(m.StatusMessage, "Tuesday, January 7") {
		t.Errorf("StatusMessage = %q", m.StatusMessage)
	}
	if sel, ok := m.Grid.Selected(); !ok || sel.ID != "pet-6" {
		t.Errorf("moved card should stay selected, got %+v", sel)
	}
}

func TestMoveCancelled(t *testing.T) {
	m := press(t, newTestModel(t), "right", "right", "right", "right", "right", "m", "right", "esc")

	if _, ok := m.Board.Dragging(); ok {
		t.Error("esc should cancel the gesture")
	}
	post, _ := m.Calendar.Post("pet-6")
	if post.Day() != 6 {
		t.Errorf("pet-6 on day %d, want 6", post.Day())
	}
}

func TestMoveOntoFullDayShowsConflict(t *testing.T) {
	m := newTestModel(t)
	// Day 7 already has one post
	for i := 0; i < m.Calendar.MaxPostsPerDay()-1; i++ {
		if _, err := m.Calendar.AddPost(7, models.PostTypeBlog, "Filler", "Filler post"); err != nil {
			t.Fatalf("AddPost() error = %v", err)
		}
	}
	m.Refresh()

	m = press(t, m, "right", "right", "right", "right", "right", "m", "right", "m")

	if got := len(m.Calendar.PostsOnDay(7)); got != m.Calendar.MaxPostsPerDay()+1 {
		t.Fatalf("day 7 has %d posts", got)
	}
	if len(m.ValidationConflicts) == 0 {
		t.Fatal("expected a day over cap conflict")
	}
	if !strings.Contains(m.View(), "CONFLICT") {
		t.Error("view should show the conflict banner")
	}
}

func TestProgressOverlay(t *testing.T) {
	m := press(t, newTestModel(t), "right", "right", "right", "right", "right", "enter")
	if m.State != constants.StateProgress {
		t.Fatalf("State = %v, want progress", m.State)
	}
	if !m.Checklist.IsOpen() {
		t.Fatal("checklist should be open")
	}

	m = press(t, m, "space", "c", "s")
	if m.State != constants.StateCalendar {
		t.Fatalf("State = %v, want calendar", m.State)
	}
	saved, ok := m.Calendar.Progress("pet-6")
	if !ok {
		t.Fatal("progress should be saved")
	}
	if !saved.Steps[0].Completed || !saved.HasCreative {
		t.Errorf("saved = %+v", saved)
	}
	if saved.Status != models.StatusInProgress {
		t.Errorf("Status = %q, want in-progress", saved.Status)
	}
}

func TestProgressDiscard(t *testing.T) {
	m := press(t, newTestModel(t), "right", "right", "right", "right", "right", "enter", "space", "esc")

	if m.State != constants.StateCalendar {
		t.Fatalf("State = %v, want calendar", m.State)
	}
	if _, ok := m.Calendar.Progress("pet-6"); ok {
		t.Error("discarded edits must not be saved")
	}
	if m.Calendar.ProgressTracker() != nil {
		t.Error("tracker should be closed")
	}
}

func TestProgressSteps(t *testing.T) {
	m := press(t, newTestModel(t), "right", "right", "right", "right", "right", "enter", "x")
	if got := len(m.Checklist.Tracker().Draft().Steps); got != 3 {
		t.Fatalf("after x got %d steps, want 3", got)
	}

	m = press(t, m, "a")
	if m.State != constants.StateAddStep {
		t.Fatalf("State = %v, want add step", m.State)
	}
	m.StepForm.Text = "Boost post"
	m = complete(t, m)
	if m.State != constants.StateProgress {
		t.Fatalf("State = %v, want progress", m.State)
	}
	steps := m.Checklist.Tracker().Draft().Steps
	if len(steps) != 4 || steps[3].Text != "Boost post" {
		t.Errorf("steps = %+v", steps)
	}
}

func TestEditCaption(t *testing.T) {
	m := press(t, newTestModel(t), "right", "right", "right", "right", "right", "enter", "e")
	if m.State != constants.StateEditCaption {
		t.Fatalf("State = %v, want edit caption", m.State)
	}

	m.CaptionForm.CreativeDescription = "Max in the lobby"
	m.CaptionForm.Caption = strings.Repeat("a", constants.CaptionSoftLimit+1)
	m = complete(t, m)

	if m.State != constants.StateProgress {
		t.Fatalf("State = %v, want progress", m.State)
	}
	if _, warn := m.Checklist.Tracker().CaptionWarning(); !warn {
		t.Error("long caption should warn")
	}
	if !strings.Contains(m.View(), "character limit") {
		t.Error("overlay should show the caption warning")
	}

	m = press(t, m, "s")
	saved, _ := m.Calendar.Progress("pet-6")
	if saved.CreativeDescription != "Max in the lobby" {
		t.Errorf("CreativeDescription = %q", saved.CreativeDescription)
	}
}

func TestIdeas(t *testing.T) {
	updated, _ := newTestModel(t).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m := press(t, updated.(Model), "tab", "a")
	if m.State != constants.StateAddIdea {
		t.Fatalf("State = %v, want add idea", m.State)
	}

	m.IdeaForm.Category = models.IdeaCategoryPhoto
	m.IdeaForm.Title = "Branch mural"
	m.IdeaForm.Description = "Photo series of the new mural"
	m = complete(t, m)

	if m.State != constants.StateIdeas {
		t.Fatalf("State = %v, want ideas", m.State)
	}
	if m.Ideas.Len() != 1 || m.IdeaList.Len() != 1 {
		t.Fatalf("ideas = %d, listed = %d", m.Ideas.Len(), m.IdeaList.Len())
	}
	if !strings.Contains(m.View(), "Branch mural") {
		t.Error("view should list the idea")
	}

	m = press(t, m, "d")
	if m.Ideas.Len() != 0 {
		t.Errorf("d should delete the idea, %d left", m.Ideas.Len())
	}
}

func TestExport(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(keyMsg("x"))
	m = updated.(Model)
	updated, cmd = m.Update(cmd())
	m = updated.(Model)
	if !m.Exporting {
		t.Fatal("export should be running")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if m.Exporting {
		t.Error("export should be finished")
	}
	path := filepath.Join(m.Export.Dir, "postboard-2025-01.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export file: %v", err)
	}
	if !strings.Contains(string(data), "# Content Calendar: January 2025") {
		t.Errorf("unexpected export:\n%s", data)
	}
	if !strings.Contains(m.StatusMessage, path) {
		t.Errorf("StatusMessage = %q", m.StatusMessage)
	}
}

func TestGlobalKeys(t *testing.T) {
	m := press(t, newTestModel(t), "?")
	if !m.Help.ShowAll {
		t.Error("? should expand the help")
	}

	updated, cmd := m.Update(keyMsg("ctrl+c"))
	m = updated.(Model)
	if !m.Quitting || cmd == nil {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestViewShowsNotice(t *testing.T) {
	m := newTestModel(t)
	m.Notice = "Another postboard session is running"
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	m = updated.(Model)

	view := m.View()
	for _, want := range []string{"Calendar", "Ideas", "Legend", "January 2025", "Another postboard session"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
