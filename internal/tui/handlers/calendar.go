package handlers

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/export"
	"github.com/julianstephens/postboard/internal/logger"
	"github.com/julianstephens/postboard/internal/models"
	"github.com/julianstephens/postboard/internal/tui/components/monthgrid"
	"github.com/julianstephens/postboard/internal/tui/state"
)

// ExportDoneMsg carries the outcome of a background export
type ExportDoneMsg struct {
	Result export.Result
	Err    error
}

// ExportCmd writes snap to target off the update loop
func ExportCmd(snap models.Snapshot, target export.Target) tea.Cmd {
	return func() tea.Msg {
		res, err := export.Run(snap, target)
		return ExportDoneMsg{Result: res, Err: err}
	}
}

// HandleCalendarMessages handles messages from the month grid
func HandleCalendarMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case monthgrid.AddPostMsg:
		if err := m.Calendar.OpenAddDialog(msg.Day); err != nil {
			m.StatusMessage = err.Error()
			return true, nil
		}
		if !m.Calendar.CanAddMore(msg.Day) {
			m.Calendar.CloseAddDialog()
			return true, nil
		}
		m.PostForm = &state.PostFormModel{
			Day:  msg.Day,
			Type: models.AllPostTypes[0],
		}
		m.Form = NewPostForm(m.PostForm, dayLabel(m, msg.Day))
		m.FormError = ""
		m.State = constants.StateAddPost
		return true, m.Form.Init()

	case monthgrid.DeletePostMsg:
		m.PostToDeleteID = msg.ID
		m.State = constants.StateConfirmDelete
		return true, nil

	case monthgrid.OpenProgressMsg:
		post, ok := m.Calendar.Post(msg.ID)
		if !ok {
			return true, nil
		}
		tracker, err := m.Calendar.OpenProgress(msg.ID)
		if err != nil {
			m.StatusMessage = err.Error()
			return true, nil
		}
		m.Checklist.Open(tracker, post)
		m.State = constants.StateProgress
		return true, nil

	case monthgrid.DropMsg:
		switch {
		case msg.Err != nil:
			m.StatusMessage = fmt.Sprintf("Move failed: %v", msg.Err)
		case !msg.Dropped:
			m.StatusMessage = "Move cancelled"
		default:
			m.StatusMessage = fmt.Sprintf("Moved to %s", dayLabel(m, msg.Day))
			logger.Debug("Post moved", "id", msg.ID, "day", msg.Day)
		}
		m.Refresh()
		return true, nil

	case monthgrid.MonthChangedMsg:
		m.StatusMessage = ""
		m.Refresh()
		return true, nil

	case monthgrid.ExportMsg:
		if m.Exporting {
			return true, nil
		}
		m.Exporting = true
		m.StatusMessage = fmt.Sprintf("Exporting %s as %s...", m.Calendar.MonthTitle(), m.Export.Format)
		return true, ExportCmd(m.Calendar.Snapshot(m.Ideas.All()), m.Export)

	case ExportDoneMsg:
		m.Exporting = false
		if msg.Err != nil {
			logger.Error("Export failed", "format", m.Export.Format, "error", msg.Err)
			m.StatusMessage = fmt.Sprintf("Export failed: %v", msg.Err)
			return true, nil
		}
		logger.Debug("TUI export finished", "format", msg.Result.Format, "location", msg.Result.Location, "rows", msg.Result.Rows)
		if msg.Result.Rows > 0 {
			m.StatusMessage = fmt.Sprintf("Exported %d rows to %s", msg.Result.Rows, msg.Result.Location)
		} else {
			m.StatusMessage = fmt.Sprintf("Exported to %s", msg.Result.Location)
		}
		return true, nil
	}
	return false, nil
}

// HandleAddPostState handles the add post form
func HandleAddPostState(m *state.Model, msg tea.Msg) tea.Cmd {
	if isEsc(msg) {
		m.Calendar.CloseAddDialog()
		m.FormError = ""
		m.State = constants.StateCalendar
		return nil
	}

	formState, cmd := updateForm(m, msg)
	switch formState {
	case huh.StateCompleted:
		day, ok := m.Calendar.AddDialogDay()
		if !ok {
			day = m.PostForm.Day
		}
		post, err := m.Calendar.AddPost(
			day,
			m.PostForm.Type,
			strings.TrimSpace(m.PostForm.Title),
			strings.TrimSpace(m.PostForm.Description),
		)
		if err != nil {
			m.Calendar.CloseAddDialog()
			m.StatusMessage = fmt.Sprintf("Failed to add post: %v", err)
		} else {
			m.Refresh()
			m.Grid.Focus(post.ID)
			m.StatusMessage = fmt.Sprintf("Added %q on %s", post.Title, dayLabel(m, day))
		}
		m.FormError = ""
		m.State = constants.StateCalendar
	case huh.StateAborted:
		m.Calendar.CloseAddDialog()
		m.State = constants.StateCalendar
	}
	return cmd
}

func dayLabel(m *state.Model, day int) string {
	return time.Date(m.Calendar.Year(), m.Calendar.Month(), day, 0, 0, 0, 0, time.Local).Format("Monday, January 2")
}
