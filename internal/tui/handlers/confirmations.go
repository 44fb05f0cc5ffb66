package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/tui/state"
)

// HandleConfirmDeleteState handles the delete post confirmation state
func HandleConfirmDeleteState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if m.PostToDeleteID != "" {
				post, _ := m.Calendar.Post(m.PostToDeleteID)
				if m.Calendar.DeletePost(m.PostToDeleteID) {
					m.StatusMessage = fmt.Sprintf("Deleted %q", post.Title)
					m.Refresh()
				}
				m.PostToDeleteID = ""
			}
			m.State = constants.StateCalendar
		case "n", "N", "esc":
			m.PostToDeleteID = ""
			m.State = constants.StateCalendar
		}
	}
	return nil
}
