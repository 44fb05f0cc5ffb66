package catalog

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/postboard/internal/models"
)

func TestPostTypes_CoverEveryKey(t *testing.T) {
	entries := PostTypes()
	if len(entries) != len(models.AllPostTypes) {
		t.Fatalf("PostTypes() returned %d entries, want %d", len(entries), len(models.AllPostTypes))
	}
	for i, e := range entries {
		if e.Type != models.AllPostTypes[i] {
			t.Errorf("entry %d = %q, want %q", i, e.Type, models.AllPostTypes[i])
		}
		if e.Label == "" || e.Color == "" || e.Icon == "" {
			t.Errorf("entry %q has an incomplete descriptor: %+v", e.Type, e.PostTypeDescriptor)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name      string
		pt        models.PostType
		wantLabel string
		wantOK    bool
	}{
		{"pet", models.PostTypePet, "Pet of the Week", true},
		{"podcast promo", models.PostTypePodcastPromo, "Podcast Promo", true},
		{"closure", models.PostTypeClosure, "Branch Closure/Delay", true},
		{"testimonial", models.PostTypeBusinessTestimonial, "Business Testimonial", true},
		{"unknown", models.PostType("meme"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, ok := Describe(tt.pt)
			if ok != tt.wantOK {
				t.Fatalf("Describe(%q) ok = %v, want %v", tt.pt, ok, tt.wantOK)
			}
			if desc.Label != tt.wantLabel {
				t.Errorf("Describe(%q).Label = %q, want %q", tt.pt, desc.Label, tt.wantLabel)
			}
		})
	}

	if got := Label("meme"); got != "meme" {
		t.Errorf("Label(unknown) = %q, want raw key", got)
	}
}

func TestSpecialDaysIn(t *testing.T) {
	counts := map[time.Month]int{
		time.January:   6,
		time.February:  4,
		time.March:     5,
		time.April:     5,
		time.May:       4,
		time.June:      4,
		time.July:      3,
		time.August:    4,
		time.September: 3,
		time.October:   4,
		time.November:  4,
		time.December:  4,
	}

	total := 0
	for month, want := range counts {
		got := SpecialDaysIn(month)
		if len(got) != want {
			t.Errorf("SpecialDaysIn(%s) returned %d days, want %d", month, len(got), want)
		}
		for _, sd := range got {
			if sd.Month != month {
				t.Errorf("SpecialDaysIn(%s) returned %s %d", month, sd.Month, sd.Day)
			}
		}
		total += want
	}

	if len(SpecialDays()) != total {
		t.Errorf("SpecialDays() returned %d entries, want %d", len(SpecialDays()), total)
	}
}

func TestSpecialDayOn(t *testing.T) {
	sd, ok := SpecialDayOn(time.January, 1)
	if !ok {
		t.Fatal("expected a special day on January 1")
	}
	want := models.SpecialDay{Month: time.January, Day: 1, Name: "New Year's Day", Emoji: "🎉", Kind: models.SpecialDayHoliday}
	if diff := cmp.Diff(want, sd); diff != "" {
		t.Errorf("SpecialDayOn mismatch (-want +got):\n%s", diff)
	}

	if _, ok := SpecialDayOn(time.January, 2); ok {
		t.Error("January 2 should not be a special day")
	}
	if _, ok := SpecialDayOn(time.February, 1); ok {
		t.Error("February 1 should not be a special day")
	}
}

func TestSpecialDays_ReturnsCopy(t *testing.T) {
	days := SpecialDays()
	days[0].Name = "changed"

	if sd, _ := SpecialDayOn(time.January, 1); sd.Name != "New Year's Day" {
		t.Error("mutating the returned slice changed the table")
	}
}

func TestIdeaCategories(t *testing.T) {
	want := []string{"Video Idea", "Photo Set", "Graphic Design", "Copy/Caption", "Other"}

	var got []string
	for _, c := range IdeaCategories() {
		got = append(got, IdeaCategoryLabel(c))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("idea category labels mismatch (-want +got):\n%s", diff)
	}
}
