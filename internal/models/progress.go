package models

type PostStatus string

const (
	StatusNotStarted PostStatus = "not-started"
	StatusInProgress PostStatus = "in-progress"
	StatusReady      PostStatus = "ready"
)

type Step struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// PostProgress is the production checklist of a single post.
// Status is derived from the other fields whenever the record is saved.
type PostProgress struct {
	PostID              string     `json:"post_id"`
	HasCreative         bool       `json:"has_creative"`
	CreativeDescription string     `json:"creative_description,omitempty"`
	Steps               []Step     `json:"steps"`
	Caption             string     `json:"caption,omitempty"`
	Status              PostStatus `json:"status"`
}

// Clone returns a copy of p that shares no step storage with it
func (p PostProgress) Clone() PostProgress {
	out := p
	if p.Steps != nil {
		out.Steps = make([]Step, len(p.Steps))
		copy(out.Steps, p.Steps)
	}
	return out
}

// CompletedSteps returns the number of completed steps
func (p PostProgress) CompletedSteps() int {
	n := 0
	for _, s := range p.Steps {
		if s.Completed {
			n++
		}
	}
	return n
}
