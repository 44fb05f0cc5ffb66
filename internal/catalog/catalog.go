// Package catalog holds the static reference data of the content calendar:
// post type descriptors, the special days table and idea categories.
package catalog

import (
	"time"

	"github.com/julianstephens/postboard/internal/models"
)

var postTypes = map[models.PostType]models.PostTypeDescriptor{
	models.PostTypePet:                 {Label: "Pet of the Week", Color: "#F97316", Accent: "#FFF7ED", Icon: "🐾"},
	models.PostTypeDigital:             {Label: "Digital Services", Color: "#485E27", Accent: "#F0FDF4", Icon: "📱"},
	models.PostTypeFinancial:           {Label: "Financial Services", Color: "#059669", Accent: "#ECFDF5", Icon: "💲"},
	models.PostTypePodcast:             {Label: "Podcast Episode", Color: "#2563EB", Accent: "#EFF6FF", Icon: "🎙"},
	models.PostTypePodcastPromo:        {Label: "Podcast Promo", Color: "#60A5FA", Accent: "#EFF6FF", Icon: "🎧"},
	models.PostTypeBlog:                {Label: "Blog Post", Color: "#0D9488", Accent: "#F0FDFA", Icon: "📝"},
	models.PostTypeProduct:             {Label: "Product Feature", Color: "#65A30D", Accent: "#F7FEE7", Icon: "💳"},
	models.PostTypeVideo:               {Label: "Video Content", Color: "#D97706", Accent: "#FFFBEB", Icon: "📹"},
	models.PostTypeSpecial:             {Label: "Special Event", Color: "#DB2777", Accent: "#FDF2F8", Icon: "✨"},
	models.PostTypeGift:                {Label: "Gift Card Giveaway", Color: "#9333EA", Accent: "#FAF5FF", Icon: "🎁"},
	models.PostTypeTicket:              {Label: "Ticket Giveaway", Color: "#4F46E5", Accent: "#EEF2FF", Icon: "🎟"},
	models.PostTypeClosure:             {Label: "Branch Closure/Delay", Color: "#CA8A04", Accent: "#FEFCE8", Icon: "⚠"},
	models.PostTypeDonation:            {Label: "Donation Photo", Color: "#E11D48", Accent: "#FFF1F2", Icon: "❤"},
	models.PostTypeBusinessTestimonial: {Label: "Business Testimonial", Color: "#475569", Accent: "#F8FAFC", Icon: "💼"},
}

// PostTypeEntry pairs a post type key with its descriptor.
type PostTypeEntry struct {
	Type models.PostType
	models.PostTypeDescriptor
}

// PostTypes returns every post type with its descriptor, in legend order
func PostTypes() []PostTypeEntry {
	entries := make([]PostTypeEntry, 0, len(models.AllPostTypes))
	for _, pt := range models.AllPostTypes {
		desc, ok := postTypes[pt]
		if !ok {
			continue
		}
		entries = append(entries, PostTypeEntry{Type: pt, PostTypeDescriptor: desc})
	}
	return entries
}

// Describe looks up the descriptor for a post type
func Describe(pt models.PostType) (models.PostTypeDescriptor, bool) {
	desc, ok := postTypes[pt]
	return desc, ok
}

// Label returns the display label for a post type, or the raw key if unknown
func Label(pt models.PostType) string {
	if desc, ok := postTypes[pt]; ok {
		return desc.Label
	}
	return string(pt)
}

var specialDays = []models.SpecialDay{
	// January
	{Month: time.January, Day: 1, Name: "New Year's Day", Emoji: "🎉", Kind: models.SpecialDayHoliday},
	{Month: time.January, Day: 13, Name: "Financial Wellness Month", Emoji: "💰", Kind: models.SpecialDayFinancial},
	{Month: time.January, Day: 16, Name: "Get to Know Your Customers Day", Emoji: "🤝", Kind: models.SpecialDayFinancial},
	{Month: time.January, Day: 20, Name: "Martin Luther King Jr. Day", Emoji: "🕊️", Kind: models.SpecialDayHoliday},
	{Month: time.January, Day: 24, Name: "National Compliment Day", Emoji: "💬", Kind: models.SpecialDayFun},
	{Month: time.January, Day: 29, Name: "National Puzzle Day", Emoji: "🧩", Kind: models.SpecialDayFun},

	// February
	{Month: time.February, Day: 2, Name: "Super Bowl Sunday", Emoji: "🏈", Kind: models.SpecialDayFun},
	{Month: time.February, Day: 14, Name: "Valentine's Day", Emoji: "❤️", Kind: models.SpecialDayHoliday},
	{Month: time.February, Day: 17, Name: "Presidents' Day", Emoji: "🇺🇸", Kind: models.SpecialDayHoliday},
	{Month: time.February, Day: 22, Name: "National Walk Your Dog Day", Emoji: "🐕", Kind: models.SpecialDayFun},

	// March
	{Month: time.March, Day: 1, Name: "National Credit Education Month", Emoji: "📚", Kind: models.SpecialDayFinancial},
	{Month: time.March, Day: 8, Name: "International Women's Day", Emoji: "👩", Kind: models.SpecialDayHoliday},
	{Month: time.March, Day: 17, Name: "St. Patrick's Day", Emoji: "🍀", Kind: models.SpecialDayHoliday},
	{Month: time.March, Day: 20, Name: "First Day of Spring", Emoji: "🌸", Kind: models.SpecialDayFun},
	{Month: time.March, Day: 31, Name: "World Backup Day", Emoji: "💾", Kind: models.SpecialDayFun},

	// April
	{Month: time.April, Day: 1, Name: "Financial Literacy Month", Emoji: "📊", Kind: models.SpecialDayFinancial},
	{Month: time.April, Day: 7, Name: "National Beer Day", Emoji: "🍺", Kind: models.SpecialDayFun},
	{Month: time.April, Day: 15, Name: "Tax Day", Emoji: "💸", Kind: models.SpecialDayFinancial},
	{Month: time.April, Day: 22, Name: "Earth Day", Emoji: "🌍", Kind: models.SpecialDayHoliday},
	{Month: time.April, Day: 30, Name: "National Honesty Day", Emoji: "🤝", Kind: models.SpecialDayFun},

	// May
	{Month: time.May, Day: 1, Name: "National Small Business Week", Emoji: "🏢", Kind: models.SpecialDayFinancial},
	{Month: time.May, Day: 4, Name: "Star Wars Day", Emoji: "⭐", Kind: models.SpecialDayFun},
	{Month: time.May, Day: 11, Name: "Mother's Day", Emoji: "👩", Kind: models.SpecialDayHoliday},
	{Month: time.May, Day: 26, Name: "Memorial Day", Emoji: "🇺🇸", Kind: models.SpecialDayHoliday},

	// June
	{Month: time.June, Day: 1, Name: "National Homeownership Month", Emoji: "🏡", Kind: models.SpecialDayFinancial},
	{Month: time.June, Day: 15, Name: "Father's Day", Emoji: "👨", Kind: models.SpecialDayHoliday},
	{Month: time.June, Day: 19, Name: "Juneteenth", Emoji: "✊", Kind: models.SpecialDayHoliday},
	{Month: time.June, Day: 21, Name: "First Day of Summer", Emoji: "☀️", Kind: models.SpecialDayFun},

	// July
	{Month: time.July, Day: 4, Name: "Independence Day", Emoji: "🎆", Kind: models.SpecialDayHoliday},
	{Month: time.July, Day: 17, Name: "World Emoji Day", Emoji: "😊", Kind: models.SpecialDayFun},
	{Month: time.July, Day: 30, Name: "International Friendship Day", Emoji: "🤝", Kind: models.SpecialDayFun},

	// August
	{Month: time.August, Day: 1, Name: "National Financial Awareness Day", Emoji: "💵", Kind: models.SpecialDayFinancial},
	{Month: time.August, Day: 8, Name: "National Dollar Day", Emoji: "💲", Kind: models.SpecialDayFinancial},
	{Month: time.August, Day: 19, Name: "National Aviation Day", Emoji: "✈️", Kind: models.SpecialDayFun},
	{Month: time.August, Day: 26, Name: "National Dog Day", Emoji: "🐶", Kind: models.SpecialDayFun},

	// September
	{Month: time.September, Day: 2, Name: "Labor Day", Emoji: "⚒️", Kind: models.SpecialDayHoliday},
	{Month: time.September, Day: 22, Name: "First Day of Fall", Emoji: "🍂", Kind: models.SpecialDayFun},
	{Month: time.September, Day: 30, Name: "National Savings Day", Emoji: "🐷", Kind: models.SpecialDayFinancial},

	// October
	{Month: time.October, Day: 1, Name: "National Financial Planning Month", Emoji: "📈", Kind: models.SpecialDayFinancial},
	{Month: time.October, Day: 14, Name: "Columbus Day", Emoji: "🗺️", Kind: models.SpecialDayHoliday},
	{Month: time.October, Day: 17, Name: "International Credit Union Day", Emoji: "🏦", Kind: models.SpecialDayFinancial},
	{Month: time.October, Day: 31, Name: "Halloween", Emoji: "🎃", Kind: models.SpecialDayHoliday},

	// November
	{Month: time.November, Day: 1, Name: "National Debt Awareness Month", Emoji: "💳", Kind: models.SpecialDayFinancial},
	{Month: time.November, Day: 11, Name: "Veterans Day", Emoji: "🎖️", Kind: models.SpecialDayHoliday},
	{Month: time.November, Day: 28, Name: "Thanksgiving", Emoji: "🦃", Kind: models.SpecialDayHoliday},
	{Month: time.November, Day: 29, Name: "Black Friday", Emoji: "🛍️", Kind: models.SpecialDayFun},

	// December
	{Month: time.December, Day: 1, Name: "National Write a Check Day", Emoji: "✍️", Kind: models.SpecialDayFinancial},
	{Month: time.December, Day: 2, Name: "Giving Tuesday", Emoji: "🎁", Kind: models.SpecialDayFun},
	{Month: time.December, Day: 25, Name: "Christmas Day", Emoji: "🎄", Kind: models.SpecialDayHoliday},
	{Month: time.December, Day: 31, Name: "New Year's Eve", Emoji: "🥳", Kind: models.SpecialDayHoliday},
}

// SpecialDays returns a copy of the full special days table
func SpecialDays() []models.SpecialDay {
	out := make([]models.SpecialDay, len(specialDays))
	copy(out, specialDays)
	return out
}

// SpecialDaysIn returns the special days of a month in table order
func SpecialDaysIn(month time.Month) []models.SpecialDay {
	var out []models.SpecialDay
	for _, sd := range specialDays {
		if sd.Month == month {
			out = append(out, sd)
		}
	}
	return out
}

// SpecialDayOn returns the first special day registered for (month, day).
// The table is year-agnostic.
func SpecialDayOn(month time.Month, day int) (models.SpecialDay, bool) {
	for _, sd := range specialDays {
		if sd.Month == month && sd.Day == day {
			return sd, true
		}
	}
	return models.SpecialDay{}, false
}

var ideaCategoryLabels = map[models.IdeaCategory]string{
	models.IdeaCategoryVideo:   "Video Idea",
	models.IdeaCategoryPhoto:   "Photo Set",
	models.IdeaCategoryGraphic: "Graphic Design",
	models.IdeaCategoryCopy:    "Copy/Caption",
	models.IdeaCategoryOther:   "Other",
}

// IdeaCategories returns the idea categories in display order
func IdeaCategories() []models.IdeaCategory {
	out := make([]models.IdeaCategory, len(models.AllIdeaCategories))
	copy(out, models.AllIdeaCategories)
	return out
}

func IdeaCategoryLabel(c models.IdeaCategory) string {
	if label, ok := ideaCategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// SpecialDayKindLabel returns a short label used in legends
func SpecialDayKindLabel(k models.SpecialDayKind) string {
	switch k {
	case models.SpecialDayFinancial:
		return "Financial"
	case models.SpecialDayHoliday:
		return "Holiday"
	case models.SpecialDayFun:
		return "Fun"
	default:
		return string(k)
	}
}
