package models

import "time"

// Snapshot is a point-in-time view of one calendar month, used for exports.
type Snapshot struct {
	ID          string                  `json:"id"`
	Month       time.Month              `json:"month"`
	Year        int                     `json:"year"`
	GeneratedAt time.Time               `json:"generated_at"`
	Posts       []Post                  `json:"posts"`
	Progress    map[string]PostProgress `json:"progress"`
	Ideas       []ContentIdea           `json:"ideas"`
}

// StatusOf returns the saved status for a post, or not-started when none exists
func (s Snapshot) StatusOf(postID string) PostStatus {
	if p, ok := s.Progress[postID]; ok && p.Status != "" {
		return p.Status
	}
	return StatusNotStarted
}
