package handlers

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/postboard/internal/catalog"
	"github.com/julianstephens/postboard/internal/models"
	"github.com/julianstephens/postboard/internal/tui/state"
)

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// NewPostForm creates the form for scheduling a post on dayLabel
func NewPostForm(fm *state.PostFormModel, dayLabel string) *huh.Form {
	options := make([]huh.Option[models.PostType], 0, len(models.AllPostTypes))
	for _, entry := range catalog.PostTypes() {
		options = append(options, huh.NewOption(entry.Icon+" "+entry.Label, entry.Type))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("New post").
				Description(dayLabel),
			huh.NewSelect[models.PostType]().
				Title("Type").
				Options(options...).
				Value(&fm.Type),
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(required("title")),
			huh.NewText().
				Title("Description").
				Value(&fm.Description).
				Validate(required("description")),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewIdeaForm creates the form for adding an idea to the bank
func NewIdeaForm(fm *state.IdeaFormModel) *huh.Form {
	options := make([]huh.Option[models.IdeaCategory], 0, len(models.AllIdeaCategories))
	for _, c := range catalog.IdeaCategories() {
		options = append(options, huh.NewOption(catalog.IdeaCategoryLabel(c), c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.IdeaCategory]().
				Title("Category").
				Options(options...).
				Value(&fm.Category),
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(required("title")),
			huh.NewText().
				Title("Description").
				Value(&fm.Description).
				Validate(required("description")),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewStepForm(fm *state.StepFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New step").
				Value(&fm.Text).
				Validate(required("step")),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewCaptionForm edits the creative description and caption. The caption
// limit is advisory only.
func NewCaptionForm(fm *state.CaptionFormModel, captionLimit int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Creative description").
				Description("What the image or video shows").
				Value(&fm.CreativeDescription),
			huh.NewText().
				Title("Caption").
				Description(fmt.Sprintf("Aim for %d characters or fewer", captionLimit)).
				Value(&fm.Caption),
		),
	).WithTheme(huh.ThemeDracula())
}

// updateForm feeds msg to the active form and reports its state afterwards
func updateForm(m *state.Model, msg tea.Msg) (huh.FormState, tea.Cmd) {
	if m.Form == nil {
		return huh.StateAborted, nil
	}
	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	return m.Form.State, cmd
}

func isEsc(msg tea.Msg) bool {
	k, ok := msg.(tea.KeyMsg)
	return ok && k.Type == tea.KeyEsc
}

var errNoTracker = errors.New("no progress tracker is open")
