// Package progress computes post production status and provides the
// editing surface for one post's checklist.
package progress

import (
	"github.com/julianstephens/postboard/internal/models"
)

// CalculateStatus derives the status of a progress record.
// Ready requires a creative, its description, a caption and every step
// completed. Any one of those signals alone makes the post in progress.
func CalculateStatus(p models.PostProgress) models.PostStatus {
	allSteps := true
	anyStep := false
	for _, s := range p.Steps {
		if s.Completed {
			anyStep = true
		} else {
			allSteps = false
		}
	}

	if p.HasCreative && p.CreativeDescription != "" && p.Caption != "" && allSteps {
		return models.StatusReady
	}
	if p.HasCreative || p.CreativeDescription != "" || p.Caption != "" || anyStep {
		return models.StatusInProgress
	}
	return models.StatusNotStarted
}

// DefaultSteps returns the checklist every post starts with
func DefaultSteps() []models.Step {
	return []models.Step{
		{ID: "1", Text: "Create graphic/video"},
		{ID: "2", Text: "Write caption"},
		{ID: "3", Text: "Get approval"},
		{ID: "4", Text: "Schedule post"},
	}
}

func StatusLabel(s models.PostStatus) string {
	switch s {
	case models.StatusReady:
		return "Ready to Post"
	case models.StatusInProgress:
		return "In Progress"
	default:
		return "Not Started"
	}
}
