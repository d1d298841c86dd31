package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ryanstpierre/boulder.codes-sub000/internal/models"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/repository"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTagNameRequired     = errors.New("tag name is required")
	ErrTagCategoryRequired = errors.New("tag category is required")
	ErrTagIDRequired       = errors.New("tag id is required")
	ErrTagNoFields         = errors.New("no fields to update")
	ErrTagExists           = errors.New("a tag with this name or slug already exists")
	ErrTagNotFound         = errors.New("tag not found")
	ErrTagInUse            = errors.New("tag is linked to registrations; hide it instead of deleting")
)

// TagService owns the canonical tag catalog and its moderation state.
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{
		tagRepo: tagRepo,
	}
}

// ListTagsInput holds the catalog listing filters. Nil booleans lift the
// corresponding filter entirely (moderation views).
type ListTagsInput struct {
	Category string
	Approved *bool
	Hidden   *bool
}

// List returns the filtered catalog ordered by descending usage count, then
// ascending case-insensitive name.
func (s *TagService) List(input ListTagsInput) ([]models.Tag, error) {
	tags, err := s.tagRepo.List(repository.TagFilter{
		Category: input.Category,
		Approved: input.Approved,
		Hidden:   input.Hidden,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// Get retrieves a single tag by ID.
func (s *TagService) Get(id uint64) (*models.Tag, error) {
	if id == 0 {
		return nil, ErrTagIDRequired
	}
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}
	return tag, nil
}

// CreateTagInput holds the fields for a new catalog tag. Approved defaults to
// true when not supplied; admin-created tags are trusted.
type CreateTagInput struct {
	Name     string
	Category string
	Slug     string
	Approved *bool
	Hidden   bool
}

// Create validates, derives the slug when absent, and inserts the tag. A name
// or slug collision yields ErrTagExists whether it is caught by the pre-check
// or by the unique indexes.
func (s *TagService) Create(input CreateTagInput) (*models.Tag, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTagNameRequired
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, ErrTagCategoryRequired
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}

	// Friendlier than waiting for the unique index, but the index is what
	// actually holds under concurrent submissions.
	if _, err := s.tagRepo.FindByNameOrSlug(name, slug); err == nil {
		return nil, ErrTagExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing tag: %w", err)
	}

	approved := true
	if input.Approved != nil {
		approved = *input.Approved
	}

	tag := &models.Tag{
		Name:     name,
		Slug:     slug,
		Category: category,
		Approved: approved,
		Hidden:   input.Hidden,
	}
	if err := s.tagRepo.Create(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagExists
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return tag, nil
}

// UpdateTagInput holds partial tag updates; nil fields are left untouched.
type UpdateTagInput struct {
	Name       *string
	Slug       *string
	Category   *string
	Approved   *bool
	Hidden     *bool
	UsageCount *int64
}

func (in UpdateTagInput) empty() bool {
	return in.Name == nil && in.Slug == nil && in.Category == nil &&
		in.Approved == nil && in.Hidden == nil && in.UsageCount == nil
}

// Update applies a partial update. A name change without an explicit slug
// regenerates the slug from the new name.
func (s *TagService) Update(id uint64, input UpdateTagInput) (*models.Tag, error) {
	if id == 0 {
		return nil, ErrTagIDRequired
	}
	if input.empty() {
		return nil, ErrTagNoFields
	}

	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTagNameRequired
		}
		tag.Name = name
		if input.Slug == nil {
			tag.Slug = utils.Slugify(name)
		}
	}
	if input.Slug != nil {
		tag.Slug = strings.TrimSpace(*input.Slug)
	}
	if input.Category != nil {
		tag.Category = strings.TrimSpace(*input.Category)
	}
	if input.Approved != nil {
		tag.Approved = *input.Approved
	}
	if input.Hidden != nil {
		tag.Hidden = *input.Hidden
	}
	if input.UsageCount != nil {
		tag.UsageCount = *input.UsageCount
	}

	if err := s.tagRepo.Update(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagExists
		}
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	return tag, nil
}

// Delete removes a tag outright. Tags still referenced by registrations are
// refused; organizers hide those instead.
func (s *TagService) Delete(id uint64) error {
	if id == 0 {
		return ErrTagIDRequired
	}

	count, err := s.tagRepo.CountAssociations(id)
	if err != nil {
		return fmt.Errorf("failed to check tag usage: %w", err)
	}
	if count > 0 {
		return ErrTagInUse
	}

	if err := s.tagRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

// ToggleApproved flips the approval gate.
func (s *TagService) ToggleApproved(id uint64) (*models.Tag, error) {
	tag, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	approved := !tag.Approved
	return s.Update(id, UpdateTagInput{Approved: &approved})
}

// ToggleHidden flips the visibility gate.
func (s *TagService) ToggleHidden(id uint64) (*models.Tag, error) {
	tag, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	hidden := !tag.Hidden
	return s.Update(id, UpdateTagInput{Hidden: &hidden})
}
