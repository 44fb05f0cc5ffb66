package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/postboard/internal/calendar"
	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/dnd"
	"github.com/julianstephens/postboard/internal/export"
	"github.com/julianstephens/postboard/internal/ideas"
	"github.com/julianstephens/postboard/internal/models"
	"github.com/julianstephens/postboard/internal/tui/components/checklist"
	"github.com/julianstephens/postboard/internal/tui/components/ideabank"
	"github.com/julianstephens/postboard/internal/tui/components/legend"
	"github.com/julianstephens/postboard/internal/tui/components/monthgrid"
	"github.com/julianstephens/postboard/internal/validation"
)

// PostFormModel represents the form model for adding a post
type PostFormModel struct {
	Day         int
	Type        models.PostType
	Title       string
	Description string
}

// IdeaFormModel represents the form model for adding an idea
type IdeaFormModel struct {
	Category    models.IdeaCategory
	Title       string
	Description string
}

type StepFormModel struct {
	Text string
}

// CaptionFormModel edits the creative description and caption of the open tracker
type CaptionFormModel struct {
	CreativeDescription string
	Caption             string
}

// Model represents the shared state for the TUI
type Model struct {
	Calendar            *calendar.Controller
	Ideas               *ideas.Store
	Board               *dnd.Board
	Export              export.Target
	State               constants.SessionState
	PreviousState       constants.SessionState
	Keys                KeyMap
	Help                help.Model
	Grid                monthgrid.Model
	IdeaList            ideabank.Model
	Checklist           checklist.Model
	Legend              legend.Model
	Form                *huh.Form
	PostForm            *PostFormModel
	IdeaForm            *IdeaFormModel
	StepForm            *StepFormModel
	CaptionForm         *CaptionFormModel
	PostToDeleteID      string
	Notice              string // session-level notice, e.g. another instance running
	StatusMessage       string // result of the last export or move
	FormError           string // Error message to display for form operations
	ValidationWarning   string
	ValidationConflicts []validation.Conflict
	Exporting           bool
	Quitting            bool
	Width               int
	Height              int
}

// New creates a new state Model for the calendar's current month
func New(ctrl *calendar.Controller, store *ideas.Store, target export.Target, notice string) Model {
	board := dnd.NewBoard()
	m := Model{
		Calendar:  ctrl,
		Ideas:     store,
		Board:     board,
		Export:    target,
		State:     constants.StateCalendar,
		Keys:      DefaultKeyMap(),
		Help:      help.New(),
		Grid:      monthgrid.New(ctrl, board),
		IdeaList:  ideabank.New(store.GroupByCategory(), 0, 0),
		Checklist: checklist.New(),
		Legend:    legend.New(0, 0),
		Notice:    notice,
	}
	m.Legend.SetMonth(ctrl)
	m.UpdateValidationStatus()
	return m
}

// Refresh rebuilds every component from the controller and idea store
func (m *Model) Refresh() {
	m.Grid.Sync()
	m.IdeaList.SetGroups(m.Ideas.GroupByCategory())
	m.Legend.SetMonth(m.Calendar)
	m.UpdateValidationStatus()
}

// UpdateValidationStatus re-validates the month and updates the banner
func (m *Model) UpdateValidationStatus() {
	result := validation.New().ValidateMonth(
		m.Calendar.Posts(),
		m.Calendar.Month(),
		m.Calendar.Year(),
		m.Calendar.MaxPostsPerDay(),
	)
	if !result.HasConflicts() {
		m.ValidationWarning = ""
		m.ValidationConflicts = nil
		return
	}
	m.ValidationWarning = "⚠ " + result.Summary()
	m.ValidationConflicts = result.Conflicts
}

// IsBaseState reports whether the model shows one of the tabs without an overlay
func (m *Model) IsBaseState() bool {
	switch m.State {
	case constants.StateCalendar, constants.StateIdeas, constants.StateLegend:
		return true
	}
	return false
}
