// Package calendar owns the state of the month being planned: the post list,
// per-post progress and the transient add/progress selection.
//
// A Controller is not safe for concurrent use. All mutations are expected to
// happen from the TUI update loop or a single CLI command.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/postboard/internal/catalog"
	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/generator"
	"github.com/julianstephens/postboard/internal/models"
	"github.com/julianstephens/postboard/internal/progress"
)

var (
	ErrDayFull         = errors.New("day already has the maximum number of posts")
	ErrPostNotFound    = errors.New("post not found")
	ErrInvalidDay      = errors.New("day is not in the current month")
	ErrMissingField    = errors.New("type, title and description are required")
	ErrUnknownPostType = errors.New("unknown post type")
)

type Option func(*Controller)

// WithMaxPostsPerDay sets the per-day cap used by CanAddMore and AddPost
func WithMaxPostsPerDay(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxPerDay = n
		}
	}
}

// WithMoveCap makes MovePost reject drops onto a full day
func WithMoveCap(enforce bool) Option {
	return func(c *Controller) {
		c.enforceMoveCap = enforce
	}
}

func WithCaptionLimit(n int) Option {
	return func(c *Controller) {
		c.captionLimit = n
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

type Controller struct {
	month    time.Month
	year     int
	posts    []models.Post
	progress map[string]models.PostProgress

	addDay  int
	tracker *progress.Tracker

	maxPerDay      int
	enforceMoveCap bool
	captionLimit   int
	now            func() time.Time
}

// New creates a controller showing the given month, seeded with its
// generated posts.
func New(month time.Month, year int, opts ...Option) *Controller {
	c := &Controller{
		month:     month,
		year:      year,
		progress:  make(map[string]models.PostProgress),
		maxPerDay: constants.MaxPostsPerDay,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.tracker = progress.NewTracker(c.captionLimit)
	c.posts = generator.Generate(month, year)
	return c
}

func (c *Controller) Month() time.Month { return c.month }

func (c *Controller) Year() int { return c.year }

func (c *Controller) MaxPostsPerDay() int { return c.maxPerDay }

// Posts returns a copy of the current post list
func (c *Controller) Posts() []models.Post {
	out := make([]models.Post, len(c.posts))
	copy(out, c.posts)
	return out
}

// ChangeMonth moves the view by delta months and regenerates the post list.
// User-added and moved posts do not survive navigation. Progress entries for
// posts that are no longer listed are dropped and any open selection is
// cleared.
func (c *Controller) ChangeMonth(delta int) {
	first := time.Date(c.year, c.month+time.Month(delta), 1, 0, 0, 0, 0, time.Local)
	c.month = first.Month()
	c.year = first.Year()
	c.posts = generator.Generate(c.month, c.year)

	listed := make(map[string]bool, len(c.posts))
	for _, p := range c.posts {
		listed[p.ID] = true
	}
	for id := range c.progress {
		if !listed[id] {
			delete(c.progress, id)
		}
	}

	c.CloseAddDialog()
	c.CloseProgress()
}

// PostsOnDay returns the posts scheduled on day of the current month, in list order
func (c *Controller) PostsOnDay(day int) []models.Post {
	var out []models.Post
	for _, p := range c.posts {
		if p.Day() == day && p.InMonth(c.month, c.year) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Controller) countOnDay(day int) int {
	n := 0
	for _, p := range c.posts {
		if p.Day() == day && p.InMonth(c.month, c.year) {
			n++
		}
	}
	return n
}

// Post looks up a post by id
func (c *Controller) Post(id string) (models.Post, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.posts[i], true
	}
	return models.Post{}, false
}

func (c *Controller) SpecialDayOn(day int) (models.SpecialDay, bool) {
	return catalog.SpecialDayOn(c.month, day)
}

// SpecialDays returns the special days of the current month
func (c *Controller) SpecialDays() []models.SpecialDay {
	return catalog.SpecialDaysIn(c.month)
}

// CanAddMore reports whether day has room for another post
func (c *Controller) CanAddMore(day int) bool {
	return c.countOnDay(day) < c.maxPerDay
}

// AddPost schedules a new post on day of the current month. On success the
// add dialog is closed.
func (c *Controller) AddPost(day int, postType models.PostType, title, description string) (models.Post, error) {
	if !c.validDay(day) {
		return models.Post{}, fmt.Errorf("add post on day %d: %w", day, ErrInvalidDay)
	}
	if postType == "" || strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return models.Post{}, ErrMissingField
	}
	if !postType.Valid() {
		return models.Post{}, fmt.Errorf("%w: %q", ErrUnknownPostType, postType)
	}
	if !c.CanAddMore(day) {
		return models.Post{}, fmt.Errorf("add post on day %d: %w", day, ErrDayFull)
	}

	post := models.Post{
		ID:            fmt.Sprintf("%s-%s", postType, uuid.New().String()),
		Type:          postType,
		Title:         title,
		Description:   description,
		ScheduledDate: c.dateOf(day),
	}
	c.posts = append(c.posts, post)
	c.CloseAddDialog()
	return post, nil
}

// DeletePost removes a post and its progress entry. It reports whether the
// post existed.
func (c *Controller) DeletePost(id string) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.posts = append(c.posts[:i], c.posts[i+1:]...)
	delete(c.progress, id)
	if c.tracker.IsOpen() && c.tracker.PostID() == id {
		c.tracker.Discard()
	}
	return true
}

// MovePost reschedules a post to targetDay of the current month, keeping
// every other field. Moving onto a full day is allowed unless the move cap
// is enforced.
func (c *Controller) MovePost(id string, targetDay int) error {
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("move %s: %w", id, ErrPostNotFound)
	}
	if !c.validDay(targetDay) {
		return fmt.Errorf("move %s to day %d: %w", id, targetDay, ErrInvalidDay)
	}

	post := c.posts[i]
	if post.Day() == targetDay && post.InMonth(c.month, c.year) {
		return nil
	}
	if c.enforceMoveCap && !c.CanAddMore(targetDay) {
		return fmt.Errorf("move %s to day %d: %w", id, targetDay, ErrDayFull)
	}

	c.posts[i].ScheduledDate = c.dateOf(targetDay)
	return nil
}

// OpenProgress opens the tracker on a post, seeded with its saved progress
func (c *Controller) OpenProgress(id string) (*progress.Tracker, error) {
	if c.indexOf(id) < 0 {
		return nil, fmt.Errorf("open progress for %s: %w", id, ErrPostNotFound)
	}
	if saved, ok := c.progress[id]; ok {
		c.tracker.Open(id, &saved)
	} else {
		c.tracker.Open(id, nil)
	}
	return c.tracker, nil
}

// ProgressTracker returns the open tracker, or nil when none is open
func (c *Controller) ProgressTracker() *progress.Tracker {
	if c.tracker.IsOpen() {
		return c.tracker
	}
	return nil
}

func (c *Controller) CloseProgress() {
	if c.tracker.IsOpen() {
		c.tracker.Discard()
	}
}

// SaveProgress stores a progress record, replacing any previous one, and
// closes the tracker.
func (c *Controller) SaveProgress(p models.PostProgress) {
	rec := p.Clone()
	rec.Status = progress.CalculateStatus(rec)
	c.progress[rec.PostID] = rec
	c.CloseProgress()
}

func (c *Controller) Progress(id string) (models.PostProgress, bool) {
	p, ok := c.progress[id]
	if !ok {
		return models.PostProgress{}, false
	}
	return p.Clone(), true
}

// StatusOf returns the saved status of a post, not-started when none is saved
func (c *Controller) StatusOf(id string) models.PostStatus {
	if p, ok := c.progress[id]; ok {
		return p.Status
	}
	return models.StatusNotStarted
}

// OpenAddDialog selects day as the target of the next AddPost
func (c *Controller) OpenAddDialog(day int) error {
	if !c.validDay(day) {
		return fmt.Errorf("open add dialog on day %d: %w", day, ErrInvalidDay)
	}
	c.addDay = day
	return nil
}

func (c *Controller) AddDialogDay() (int, bool) {
	return c.addDay, c.addDay > 0
}

func (c *Controller) CloseAddDialog() {
	c.addDay = 0
}

// DaysInMonth returns the number of days in the current month
func (c *Controller) DaysInMonth() int {
	return generator.DaysIn(c.month, c.year)
}

// FirstWeekday returns the weekday of the first of the month (Sunday is 0)
func (c *Controller) FirstWeekday() time.Weekday {
	return time.Date(c.year, c.month, 1, 0, 0, 0, 0, time.Local).Weekday()
}

// MonthTitle returns the month heading, e.g. "January 2025"
func (c *Controller) MonthTitle() string {
	return fmt.Sprintf("%s %d", c.month, c.year)
}

// CountByType returns the number of listed posts per type
func (c *Controller) CountByType() map[models.PostType]int {
	counts := make(map[models.PostType]int, len(models.AllPostTypes))
	for _, p := range c.posts {
		counts[p.Type]++
	}
	return counts
}

// Snapshot captures the current month together with the given ideas
func (c *Controller) Snapshot(ideas []models.ContentIdea) models.Snapshot {
	snap := models.Snapshot{
		ID:          uuid.New().String(),
		Month:       c.month,
		Year:        c.year,
		GeneratedAt: c.now(),
		Posts:       c.Posts(),
		Progress:    make(map[string]models.PostProgress, len(c.progress)),
		Ideas:       make([]models.ContentIdea, len(ideas)),
	}
	for id, p := range c.progress {
		snap.Progress[id] = p.Clone()
	}
	copy(snap.Ideas, ideas)
	return snap
}

func (c *Controller) indexOf(id string) int {
	for i, p := range c.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) validDay(day int) bool {
	return day >= 1 && day <= c.DaysInMonth()
}

func (c *Controller) dateOf(day int) time.Time {
	return time.Date(c.year, c.month, day, 0, 0, 0, 0, time.Local)
}
