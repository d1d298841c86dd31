package dto

import (
	"github.com/ryanstpierre/boulder.codes-sub000/internal/models"
)

// TagRef identifies one associated tag in registration responses.
type TagRef struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ToTagRef converts a Tag model to TagRef
func ToTagRef(tag models.Tag) TagRef {
	return TagRef{
		ID:       tag.ID,
		Name:     tag.Name,
		Category: tag.Category,
	}
}

// ToTagRefs converts a slice of tags to TagRefs
func ToTagRefs(tags []models.Tag) []TagRef {
	refs := make([]TagRef, len(tags))
	for i, tag := range tags {
		refs[i] = ToTagRef(tag)
	}
	return refs
}
