package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/postboard/internal/generator"
	"github.com/julianstephens/postboard/internal/models"
)

func newJanuary(opts ...Option) *Controller {
	return New(time.January, 2025, opts...)
}

func TestNew_SeedsGeneratedPosts(t *testing.T) {
	c := newJanuary()

	if got := len(c.Posts()); got != generator.PostsPerMonth {
		t.Fatalf("expected %d posts, got %d", generator.PostsPerMonth, got)
	}
	if c.MonthTitle() != "January 2025" {
		t.Errorf("MonthTitle() = %q", c.MonthTitle())
	}
	if c.DaysInMonth() != 31 {
		t.Errorf("DaysInMonth() = %d, want 31", c.DaysInMonth())
	}
	if c.FirstWeekday() != time.Wednesday {
		t.Errorf("FirstWeekday() = %s, want Wednesday", c.FirstWeekday())
	}
}

func TestPostsOnDay(t *testing.T) {
	c := newJanuary()

	for day := 1; day <= c.DaysInMonth(); day++ {
		var want []string
		for _, p := range c.Posts() {
			if p.ScheduledDate.Day() == day {
				want = append(want, p.ID)
			}
		}
		var got []string
		for _, p := range c.PostsOnDay(day) {
			got = append(got, p.ID)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("day %d mismatch (-want +got):\n%s", day, diff)
		}
	}

	if got := c.PostsOnDay(15); len(got) != 2 {
		t.Errorf("expected 2 posts on the 15th, got %d", len(got))
	}
}

func TestSpecialDays(t *testing.T) {
	c := newJanuary()

	sd, ok := c.SpecialDayOn(1)
	if !ok || sd.Name != "New Year's Day" {
		t.Errorf("SpecialDayOn(1) = %+v, %v", sd, ok)
	}
	if _, ok := c.SpecialDayOn(2); ok {
		t.Error("January 2 should have no special day")
	}
	if got := len(c.SpecialDays()); got != 6 {
		t.Errorf("expected 6 January special days, got %d", got)
	}
}

func TestAddPost(t *testing.T) {
	c := newJanuary()
	if err := c.OpenAddDialog(3); err != nil {
		t.Fatalf("OpenAddDialog: %v", err)
	}

	post, err := c.AddPost(3, models.PostTypeClosure, "Branch closed", "Closed for inventory")
	if err != nil {
		t.Fatalf("AddPost failed: %v", err)
	}
	if post.ID == "" || post.ID[:len("closure-")] != "closure-" {
		t.Errorf("unexpected id %q", post.ID)
	}
	want := time.Date(2025, time.January, 3, 0, 0, 0, 0, time.Local)
	if !post.ScheduledDate.Equal(want) {
		t.Errorf("ScheduledDate = %v, want %v", post.ScheduledDate, want)
	}
	if got := c.PostsOnDay(3); len(got) != 1 || got[0].ID != post.ID {
		t.Errorf("PostsOnDay(3) = %+v", got)
	}
	if _, open := c.AddDialogDay(); open {
		t.Error("add dialog should close after a successful add")
	}
}

func TestAddPost_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		day     int
		typ     models.PostType
		title   string
		desc    string
		wantErr error
	}{
		{"no day", 0, models.PostTypeBlog, "t", "d", ErrInvalidDay},
		{"past month end", 32, models.PostTypeBlog, "t", "d", ErrInvalidDay},
		{"missing type", 3, "", "t", "d", ErrMissingField},
		{"missing title", 3, models.PostTypeBlog, "", "d", ErrMissingField},
		{"missing description", 3, models.PostTypeBlog, "t", " ", ErrMissingField},
		{"unknown type", 3, "meme", "t", "d", ErrUnknownPostType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newJanuary()
			before := c.Posts()

			_, err := c.AddPost(tt.day, tt.typ, tt.title, tt.desc)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if diff := cmp.Diff(before, c.Posts()); diff != "" {
				t.Errorf("posts changed after rejected add (-before +after):\n%s", diff)
			}
		})
	}
}

func TestAddPost_DayFull(t *testing.T) {
	c := newJanuary()

	for i := 0; i < 4; i++ {
		if !c.CanAddMore(2) {
			t.Fatalf("day 2 full after %d posts", i)
		}
		if _, err := c.AddPost(2, models.PostTypeDonation, "Donation", "Photo"); err != nil {
			t.Fatalf("AddPost %d failed: %v", i, err)
		}
	}

	if c.CanAddMore(2) {
		t.Error("CanAddMore(2) should be false with 4 posts")
	}
	if _, err := c.AddPost(2, models.PostTypeDonation, "Fifth", "Photo"); !errors.Is(err, ErrDayFull) {
		t.Errorf("expected ErrDayFull, got %v", err)
	}
}

func TestDeletePost(t *testing.T) {
	c := newJanuary()
	c.SaveProgress(models.PostProgress{PostID: "podcast-1", Caption: "listen"})

	for _, p := range c.PostsOnDay(15) {
		if !c.DeletePost(p.ID) {
			t.Errorf("DeletePost(%s) reported false", p.ID)
		}
	}

	if got := len(c.PostsOnDay(15)); got != 0 {
		t.Errorf("expected no posts on the 15th, got %d", got)
	}
	if !c.CanAddMore(15) {
		t.Error("CanAddMore(15) should be true after deleting every post")
	}
	if _, ok := c.Progress("podcast-1"); ok {
		t.Error("progress of a deleted post should be removed")
	}
	if c.DeletePost("podcast-1") {
		t.Error("deleting an absent post reported true")
	}
}

func TestMovePost_ChangesOnlyTheDay(t *testing.T) {
	c := newJanuary()
	before, _ := c.Post("pet-6")

	if err := c.MovePost("pet-6", 10); err != nil {
		t.Fatalf("MovePost failed: %v", err)
	}

	after, _ := c.Post("pet-6")
	want := before
	want.ScheduledDate = time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local)
	if diff := cmp.Diff(want, after); diff != "" {
		t.Errorf("moved post mismatch (-want +got):\n%s", diff)
	}
	for _, p := range c.PostsOnDay(6) {
		if p.ID == "pet-6" {
			t.Error("pet-6 still listed on day 6")
		}
	}
}

func TestMovePost_CapPolicy(t *testing.T) {
	fill := func(c *Controller) {
		for len(c.PostsOnDay(2)) < 4 {
			if _, err := c.AddPost(2, models.PostTypeBlog, "t", "d"); err != nil {
				t.Fatalf("fill: %v", err)
			}
		}
	}

	t.Run("allowed by default", func(t *testing.T) {
		c := newJanuary()
		fill(c)
		if err := c.MovePost("digital-1", 2); err != nil {
			t.Fatalf("MovePost failed: %v", err)
		}
		if got := len(c.PostsOnDay(2)); got != 5 {
			t.Errorf("expected 5 posts on day 2, got %d", got)
		}
	})

	t.Run("enforced", func(t *testing.T) {
		c := newJanuary(WithMoveCap(true))
		fill(c)
		if err := c.MovePost("digital-1", 2); !errors.Is(err, ErrDayFull) {
			t.Errorf("expected ErrDayFull, got %v", err)
		}
		if p, _ := c.Post("digital-1"); p.Day() != 8 {
			t.Errorf("rejected move changed the day to %d", p.Day())
		}
	})
}

func TestMovePost_Errors(t *testing.T) {
	c := newJanuary()

	if err := c.MovePost("missing", 3); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
	if err := c.MovePost("pet-6", 0); !errors.Is(err, ErrInvalidDay) {
		t.Errorf("expected ErrInvalidDay for day 0, got %v", err)
	}
	if err := c.MovePost("pet-6", 32); !errors.Is(err, ErrInvalidDay) {
		t.Errorf("expected ErrInvalidDay for day 32, got %v", err)
	}
	if err := c.MovePost("pet-6", 6); err != nil {
		t.Errorf("same-day move should be a no-op, got %v", err)
	}
}

func TestProgressLifecycle(t *testing.T) {
	c := newJanuary()

	if c.StatusOf("blog-1") != models.StatusNotStarted {
		t.Error("status without progress should be not-started")
	}
	if _, err := c.OpenProgress("missing"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}

	tr, err := c.OpenProgress("blog-1")
	if err != nil {
		t.Fatalf("OpenProgress failed: %v", err)
	}
	tr.SetCreative(true)
	tr.SetCreativeDescription("Header image")
	tr.SetCaption("New on the blog")
	for _, s := range tr.Draft().Steps {
		tr.ToggleStep(s.ID)
	}
	c.SaveProgress(tr.Save())

	if c.ProgressTracker() != nil {
		t.Error("tracker should be closed after save")
	}
	if c.StatusOf("blog-1") != models.StatusReady {
		t.Errorf("StatusOf(blog-1) = %q, want ready", c.StatusOf("blog-1"))
	}

	tr, _ = c.OpenProgress("blog-1")
	if tr.Draft().Caption != "New on the blog" || !tr.Draft().HasCreative {
		t.Errorf("reopened draft lost saved fields: %+v", tr.Draft())
	}
	tr.SetCaption("")
	c.CloseProgress()

	saved, _ := c.Progress("blog-1")
	if saved.Caption != "New on the blog" {
		t.Error("closing without save changed stored progress")
	}
}

func TestChangeMonth(t *testing.T) {
	c := newJanuary()
	c.AddPost(3, models.PostTypeBlog, "Extra", "Only in January")
	c.MovePost("pet-6", 10)
	c.SaveProgress(models.PostProgress{PostID: "video-1", Caption: "kept"})
	added, _ := c.AddPost(4, models.PostTypeGift, "Gift", "Only in January")
	c.SaveProgress(models.PostProgress{PostID: added.ID, Caption: "dropped"})
	c.OpenAddDialog(5)

	c.ChangeMonth(-1)
	if c.Month() != time.December || c.Year() != 2024 {
		t.Fatalf("ChangeMonth(-1) = %s %d, want December 2024", c.Month(), c.Year())
	}
	if diff := cmp.Diff(generator.Generate(time.December, 2024), c.Posts()); diff != "" {
		t.Errorf("posts not regenerated (-want +got):\n%s", diff)
	}
	if _, ok := c.Progress(added.ID); ok {
		t.Error("progress of an unlisted post should be dropped")
	}
	if _, ok := c.Progress("video-1"); !ok {
		t.Error("progress of a still-listed post id should be kept")
	}
	if _, open := c.AddDialogDay(); open {
		t.Error("add dialog should be closed after navigation")
	}

	c.ChangeMonth(2)
	if c.Month() != time.February || c.Year() != 2025 {
		t.Errorf("ChangeMonth(2) = %s %d, want February 2025", c.Month(), c.Year())
	}
	if c.DaysInMonth() != 28 {
		t.Errorf("DaysInMonth() = %d, want 28", c.DaysInMonth())
	}
}

func TestAddDialog(t *testing.T) {
	c := newJanuary()

	if err := c.OpenAddDialog(0); !errors.Is(err, ErrInvalidDay) {
		t.Errorf("expected ErrInvalidDay, got %v", err)
	}
	if err := c.OpenAddDialog(12); err != nil {
		t.Fatalf("OpenAddDialog: %v", err)
	}
	if day, open := c.AddDialogDay(); !open || day != 12 {
		t.Errorf("AddDialogDay() = %d, %v", day, open)
	}
	c.CloseAddDialog()
	if _, open := c.AddDialogDay(); open {
		t.Error("dialog still open after CloseAddDialog")
	}
}

func TestSnapshot(t *testing.T) {
	at := time.Date(2025, time.January, 31, 12, 0, 0, 0, time.UTC)
	c := newJanuary(WithClock(func() time.Time { return at }))
	c.SaveProgress(models.PostProgress{PostID: "gift-1", Caption: "Enter now"})

	ideas := []models.ContentIdea{{ID: "i1", Category: models.IdeaCategoryVideo, Title: "Reel", Description: "d"}}
	snap := c.Snapshot(ideas)

	if snap.ID == "" || snap.Month != time.January || snap.Year != 2025 || !snap.GeneratedAt.Equal(at) {
		t.Errorf("snapshot header = %+v", snap)
	}
	if len(snap.Posts) != generator.PostsPerMonth || len(snap.Ideas) != 1 {
		t.Errorf("snapshot has %d posts and %d ideas", len(snap.Posts), len(snap.Ideas))
	}
	if snap.StatusOf("gift-1") != models.StatusInProgress {
		t.Errorf("snapshot status of gift-1 = %q", snap.StatusOf("gift-1"))
	}

	c.DeletePost("gift-1")
	if _, ok := snap.Progress["gift-1"]; !ok {
		t.Error("snapshot shares storage with the controller")
	}
}

func TestCountByType(t *testing.T) {
	counts := newJanuary().CountByType()

	want := map[models.PostType]int{
		models.PostTypePet:          4,
		models.PostTypeDigital:      1,
		models.PostTypeFinancial:    2,
		models.PostTypePodcast:      1,
		models.PostTypePodcastPromo: 2,
		models.PostTypeBlog:         1,
		models.PostTypeProduct:      3,
		models.PostTypeVideo:        4,
		models.PostTypeSpecial:      1,
		models.PostTypeGift:         1,
		models.PostTypeTicket:       1,
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("CountByType mismatch (-want +got):\n%s", diff)
	}
}
