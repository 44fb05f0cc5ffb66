package progress

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/models"
)

// Tracker edits the progress of a single post. Edits stay local until Save.
// A Tracker is not safe for concurrent use.
type Tracker struct {
	postID       string
	draft        models.PostProgress
	open         bool
	captionLimit int
}

// NewTracker creates a closed tracker. A non-positive captionLimit falls back
// to the default soft limit.
func NewTracker(captionLimit int) *Tracker {
	if captionLimit <= 0 {
		captionLimit = constants.CaptionSoftLimit
	}
	return &Tracker{captionLimit: captionLimit}
}

// Open starts editing postID. The initial record is deep-copied; when nil
// the draft is seeded with the default steps.
func (t *Tracker) Open(postID string, initial *models.PostProgress) {
	t.postID = postID
	t.open = true
	if initial != nil {
		t.draft = initial.Clone()
		t.draft.PostID = postID
		if t.draft.Steps == nil {
			t.draft.Steps = []models.Step{}
		}
		return
	}
	t.draft = models.PostProgress{
		PostID: postID,
		Steps:  DefaultSteps(),
	}
}

func (t *Tracker) IsOpen() bool {
	return t.open
}

func (t *Tracker) PostID() string {
	return t.postID
}

// ToggleStep flips the completion of the step with the given id
func (t *Tracker) ToggleStep(id string) {
	for i := range t.draft.Steps {
		if t.draft.Steps[i].ID == id {
			t.draft.Steps[i].Completed = !t.draft.Steps[i].Completed
			return
		}
	}
}

// AddStep appends an incomplete step. Blank text is rejected.
func (t *Tracker) AddStep(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	t.draft.Steps = append(t.draft.Steps, models.Step{
		ID:   uuid.New().String(),
		Text: text,
	})
	return true
}

func (t *Tracker) RemoveStep(id string) {
	for i, s := range t.draft.Steps {
		if s.ID == id {
			t.draft.Steps = append(t.draft.Steps[:i], t.draft.Steps[i+1:]...)
			return
		}
	}
}

func (t *Tracker) SetCreative(ready bool) {
	t.draft.HasCreative = ready
}

func (t *Tracker) SetCreativeDescription(desc string) {
	t.draft.CreativeDescription = desc
}

func (t *Tracker) SetCaption(caption string) {
	t.draft.Caption = caption
}

// Draft returns a copy of the record being edited
func (t *Tracker) Draft() models.PostProgress {
	return t.draft.Clone()
}

func (t *Tracker) Status() models.PostStatus {
	return CalculateStatus(t.draft)
}

// Completion returns completed and total step counts and the completed
// percentage (0 when there are no steps).
func (t *Tracker) Completion() (completed, total int, percent float64) {
	total = len(t.draft.Steps)
	completed = t.draft.CompletedSteps()
	if total > 0 {
		percent = float64(completed) / float64(total) * 100
	}
	return completed, total, percent
}

// CaptionLength returns the caption length in characters
func (t *Tracker) CaptionLength() int {
	return utf8.RuneCountInString(t.draft.Caption)
}

func (t *Tracker) CaptionLimit() int {
	return t.captionLimit
}

// CaptionWarning returns a warning when the caption exceeds the soft limit.
// It never prevents saving.
func (t *Tracker) CaptionWarning() (string, bool) {
	if t.CaptionLength() > t.captionLimit {
		return fmt.Sprintf("Caption exceeds the %d character limit", t.captionLimit), true
	}
	return "", false
}

// Save returns the draft with a freshly computed status and closes the tracker
func (t *Tracker) Save() models.PostProgress {
	out := t.draft.Clone()
	out.Status = CalculateStatus(out)
	t.close()
	return out
}

// Discard drops all edits and closes the tracker
func (t *Tracker) Discard() {
	t.close()
}

func (t *Tracker) close() {
	t.open = false
	t.postID = ""
	t.draft = models.PostProgress{}
}
