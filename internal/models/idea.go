package models

import "time"

type IdeaCategory string

const (
	IdeaCategoryVideo   IdeaCategory = "video"
	IdeaCategoryPhoto   IdeaCategory = "photo"
	IdeaCategoryGraphic IdeaCategory = "graphic"
	IdeaCategoryCopy    IdeaCategory = "copy"
	IdeaCategoryOther   IdeaCategory = "other"
)

// AllIdeaCategories lists the idea categories in display order.
var AllIdeaCategories = []IdeaCategory{
	IdeaCategoryVideo,
	IdeaCategoryPhoto,
	IdeaCategoryGraphic,
	IdeaCategoryCopy,
	IdeaCategoryOther,
}

func (c IdeaCategory) Valid() bool {
	for _, known := range AllIdeaCategories {
		if c == known {
			return true
		}
	}
	return false
}

type ContentIdea struct {
	ID          string       `json:"id"`
	Category    IdeaCategory `json:"category"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
}
