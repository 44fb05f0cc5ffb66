package handlers

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/progress"
	"github.com/julianstephens/postboard/internal/tui/components/checklist"
	"github.com/julianstephens/postboard/internal/tui/state"
)

// HandleProgressState routes keys to the tracker overlay
func HandleProgressState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.Checklist, cmd = m.Checklist.Update(msg)
	return cmd
}

// HandleProgressMessages handles messages from the tracker overlay
func HandleProgressMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg.(type) {
	case checklist.AddStepMsg:
		m.StepForm = &state.StepFormModel{}
		m.Form = NewStepForm(m.StepForm)
		m.State = constants.StateAddStep
		return true, m.Form.Init()

	case checklist.EditCaptionMsg:
		tracker := m.Checklist.Tracker()
		if tracker == nil {
			m.StatusMessage = errNoTracker.Error()
			return true, nil
		}
		draft := tracker.Draft()
		m.CaptionForm = &state.CaptionFormModel{
			CreativeDescription: draft.CreativeDescription,
			Caption:             draft.Caption,
		}
		m.Form = NewCaptionForm(m.CaptionForm, tracker.CaptionLimit())
		m.State = constants.StateEditCaption
		return true, m.Form.Init()

	case checklist.SaveMsg:
		tracker := m.Checklist.Tracker()
		if tracker == nil || !tracker.IsOpen() {
			m.State = constants.StateCalendar
			return true, nil
		}
		title := m.Checklist.Post().Title
		saved := tracker.Save()
		m.Calendar.SaveProgress(saved)
		m.Checklist.Close()
		m.Refresh()
		m.StatusMessage = fmt.Sprintf("Saved %q: %s", title, progress.StatusLabel(saved.Status))
		m.State = constants.StateCalendar
		return true, nil

	case checklist.DiscardMsg:
		m.Calendar.CloseProgress()
		m.Checklist.Close()
		m.State = constants.StateCalendar
		return true, nil
	}
	return false, nil
}

// HandleAddStepState handles the add step form on top of the tracker
func HandleAddStepState(m *state.Model, msg tea.Msg) tea.Cmd {
	if isEsc(msg) {
		m.State = constants.StateProgress
		return nil
	}

	formState, cmd := updateForm(m, msg)
	switch formState {
	case huh.StateCompleted:
		if tracker := m.Checklist.Tracker(); tracker != nil {
			tracker.AddStep(strings.TrimSpace(m.StepForm.Text))
		}
		m.Checklist.Refresh()
		m.State = constants.StateProgress
	case huh.StateAborted:
		m.State = constants.StateProgress
	}
	return cmd
}

// HandleEditCaptionState handles the creative and caption form
func HandleEditCaptionState(m *state.Model, msg tea.Msg) tea.Cmd {
	if isEsc(msg) {
		m.State = constants.StateProgress
		return nil
	}

	formState, cmd := updateForm(m, msg)
	switch formState {
	case huh.StateCompleted:
		if tracker := m.Checklist.Tracker(); tracker != nil {
			tracker.SetCreativeDescription(strings.TrimSpace(m.CaptionForm.CreativeDescription))
			tracker.SetCaption(m.CaptionForm.Caption)
		}
		m.State = constants.StateProgress
	case huh.StateAborted:
		m.State = constants.StateProgress
	}
	return cmd
}
