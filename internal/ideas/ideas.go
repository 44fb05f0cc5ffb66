// Package ideas keeps the backlog of unscheduled content ideas.
//
// A Store is not safe for concurrent use; the TUI mutates it only from its
// update loop.
package ideas

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/postboard/internal/models"
)

var ErrEmptyField = errors.New("category, title and description are required")

// IdeaGroup is one category bucket of ideas
type IdeaGroup struct {
	Category models.IdeaCategory
	Ideas    []models.ContentIdea
}

type Option func(*Store)

// WithClock overrides the time source used for CreatedAt
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

type Store struct {
	ideas []models.ContentIdea
	now   func() time.Time
}

func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new idea. Blank fields or an unknown category are rejected
// with ErrEmptyField and leave the store unchanged.
func (s *Store) Add(category models.IdeaCategory, title, description string) (models.ContentIdea, error) {
	if !category.Valid() || strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return models.ContentIdea{}, ErrEmptyField
	}

	idea := models.ContentIdea{
		ID:          uuid.New().String(),
		Category:    category,
		Title:       title,
		Description: description,
		CreatedAt:   s.now(),
	}
	s.ideas = append(s.ideas, idea)
	return idea, nil
}

// Remove deletes the idea with the given id and reports whether it existed
func (s *Store) Remove(id string) bool {
	for i, idea := range s.ideas {
		if idea.ID == id {
			s.ideas = append(s.ideas[:i], s.ideas[i+1:]...)
			return true
		}
	}
	return false
}

// GroupByCategory returns one bucket per category in display order,
// including empty buckets. Ideas keep insertion order within a bucket.
func (s *Store) GroupByCategory() []IdeaGroup {
	groups := make([]IdeaGroup, len(models.AllIdeaCategories))
	index := make(map[models.IdeaCategory]int, len(models.AllIdeaCategories))
	for i, c := range models.AllIdeaCategories {
		groups[i] = IdeaGroup{Category: c, Ideas: []models.ContentIdea{}}
		index[c] = i
	}

	for _, idea := range s.ideas {
		if i, ok := index[idea.Category]; ok {
			groups[i].Ideas = append(groups[i].Ideas, idea)
		}
	}
	return groups
}

// All returns a copy of the ideas in insertion order
func (s *Store) All() []models.ContentIdea {
	out := make([]models.ContentIdea, len(s.ideas))
	copy(out, s.ideas)
	return out
}

func (s *Store) Len() int {
	return len(s.ideas)
}
