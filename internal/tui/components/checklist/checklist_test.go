package checklist

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/postboard/internal/models"
	"github.com/julianstephens/postboard/internal/progress"
)

func openChecklist() (Model, *progress.Tracker) {
	tr := progress.NewTracker(0)
	tr.Open("blog-1", nil)
	m := New()
	m.Open(tr, models.Post{
		ID:            "blog-1",
		Type:          models.PostTypeBlog,
		Title:         "Budget tips",
		ScheduledDate: time.Date(2025, time.January, 22, 0, 0, 0, 0, time.Local),
	})
	return m, tr
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestToggleAndRemove(t *testing.T) {
	m, tr := openChecklist()

	m, _ = m.Update(runes("j"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if steps := tr.Draft().Steps; !steps[1].Completed {
		t.Errorf("step 2 should be completed, got %+v", steps)
	}

	m, _ = m.Update(runes("x"))
	if got := len(tr.Draft().Steps); got != 3 {
		t.Errorf("got %d steps, want 3", got)
	}
	if m.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", m.Cursor())
	}
}

func TestRemoveLastStepClampsCursor(t *testing.T) {
	m, tr := openChecklist()
	for i := 0; i < 3; i++ {
		m, _ = m.Update(runes("j"))
	}
	m, _ = m.Update(runes("x"))
	if m.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", m.Cursor())
	}
	for len(tr.Draft().Steps) > 0 {
		m, _ = m.Update(runes("x"))
	}
	if m.Keys().Toggle.Enabled() {
		t.Error("toggle should be disabled without steps")
	}
	if !strings.Contains(m.View(), "No steps") {
		t.Error("view should explain the empty checklist")
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want tea.Msg
	}{
		{runes("a"), AddStepMsg{}},
		{runes("e"), EditCaptionMsg{}},
		{runes("s"), SaveMsg{}},
		{tea.KeyMsg{Type: tea.KeyEsc}, DiscardMsg{}},
	}
	for _, tt := range tests {
		m, _ := openChecklist()
		_, cmd := m.Update(tt.key)
		if cmd == nil {
			t.Fatalf("%s: no command", tt.key)
		}
		if got := cmd(); got != tt.want {
			t.Errorf("%s: got %#v, want %#v", tt.key, got, tt.want)
		}
	}
}

func TestView(t *testing.T) {
	m, tr := openChecklist()
	tr.SetCreative(true)
	tr.SetCaption("Read the blog")

	view := m.View()
	for _, want := range []string{"Budget tips", "In Progress", "Steps 0/4", "Create graphic/video", "✓ ready", "Read the blog"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestClosed(t *testing.T) {
	m := New()
	if m.IsOpen() {
		t.Error("new checklist should be closed")
	}
	if m.View() != "" {
		t.Error("closed checklist renders nothing")
	}
	if _, cmd := m.Update(runes("s")); cmd != nil {
		t.Error("closed checklist ignores keys")
	}
}
