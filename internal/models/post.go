package models

import "time"

type PostType string

const (
	PostTypePet                 PostType = "pet"
	PostTypeDigital             PostType = "digital"
	PostTypeFinancial           PostType = "financial"
	PostTypePodcast             PostType = "podcast"
	PostTypePodcastPromo        PostType = "podcastPromo"
	PostTypeBlog                PostType = "blog"
	PostTypeProduct             PostType = "product"
	PostTypeVideo               PostType = "video"
	PostTypeSpecial             PostType = "special"
	PostTypeGift                PostType = "gift"
	PostTypeTicket              PostType = "ticket"
	PostTypeClosure             PostType = "closure"
	PostTypeDonation            PostType = "donation"
	PostTypeBusinessTestimonial PostType = "businessTestimonial"
)

// AllPostTypes lists every post type in legend order.
var AllPostTypes = []PostType{
	PostTypePet,
	PostTypeDigital,
	PostTypeFinancial,
	PostTypePodcast,
	PostTypePodcastPromo,
	PostTypeBlog,
	PostTypeProduct,
	PostTypeVideo,
	PostTypeSpecial,
	PostTypeGift,
	PostTypeTicket,
	PostTypeClosure,
	PostTypeDonation,
	PostTypeBusinessTestimonial,
}

// Valid reports whether t is one of the known post types
func (t PostType) Valid() bool {
	for _, known := range AllPostTypes {
		if t == known {
			return true
		}
	}
	return false
}

// PostTypeDescriptor holds the display attributes of a post type.
// Color and Accent are lipgloss-compatible colour strings.
type PostTypeDescriptor struct {
	Label  string `json:"label"`
	Color  string `json:"color"`
	Accent string `json:"accent"`
	Icon   string `json:"icon"`
}

type Post struct {
	ID            string    `json:"id"`
	Type          PostType  `json:"type"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ScheduledDate time.Time `json:"scheduled_date"` // local midnight
}

// Day returns the day of month the post is scheduled on
func (p Post) Day() int {
	return p.ScheduledDate.Day()
}

// InMonth reports whether the post is scheduled in the given month and year
func (p Post) InMonth(month time.Month, year int) bool {
	return p.ScheduledDate.Month() == month && p.ScheduledDate.Year() == year
}

type SpecialDayKind string

const (
	SpecialDayFinancial SpecialDayKind = "financial"
	SpecialDayHoliday   SpecialDayKind = "holiday"
	SpecialDayFun       SpecialDayKind = "fun"
)

type SpecialDay struct {
	Month time.Month     `json:"month"`
	Day   int            `json:"day"`
	Name  string         `json:"name"`
	Emoji string         `json:"emoji"`
	Kind  SpecialDayKind `json:"kind"`
}
