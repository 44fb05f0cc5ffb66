package handlers

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/models"
	"github.com/julianstephens/postboard/internal/tui/components/ideabank"
	"github.com/julianstephens/postboard/internal/tui/state"
)

// HandleIdeaMessages handles messages from the idea bank
func HandleIdeaMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case ideabank.AddIdeaMsg:
		m.IdeaForm = &state.IdeaFormModel{
			Category: models.IdeaCategoryVideo,
		}
		m.Form = NewIdeaForm(m.IdeaForm)
		m.FormError = ""
		m.State = constants.StateAddIdea
		return true, m.Form.Init()

	case ideabank.DeleteIdeaMsg:
		if m.Ideas.Remove(msg.ID) {
			m.IdeaList.SetGroups(m.Ideas.GroupByCategory())
			m.StatusMessage = "Idea deleted"
		}
		return true, nil
	}
	return false, nil
}

// HandleAddIdeaState handles the add idea form
func HandleAddIdeaState(m *state.Model, msg tea.Msg) tea.Cmd {
	if isEsc(msg) {
		m.FormError = ""
		m.State = constants.StateIdeas
		return nil
	}

	formState, cmd := updateForm(m, msg)
	switch formState {
	case huh.StateCompleted:
		idea, err := m.Ideas.Add(
			m.IdeaForm.Category,
			strings.TrimSpace(m.IdeaForm.Title),
			strings.TrimSpace(m.IdeaForm.Description),
		)
		if err != nil {
			// Stay in the form so the input can be corrected
			m.FormError = fmt.Sprintf("Failed to add idea: %v", err)
			m.Form.State = huh.StateNormal
			return cmd
		}
		m.IdeaList.SetGroups(m.Ideas.GroupByCategory())
		m.StatusMessage = fmt.Sprintf("Added idea %q", idea.Title)
		m.FormError = ""
		m.State = constants.StateIdeas
	case huh.StateAborted:
		m.State = constants.StateIdeas
	}
	return cmd
}
