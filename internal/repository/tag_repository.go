package repository

import (
	"github.com/ryanstpierre/boulder.codes-sub000/internal/models"
	"gorm.io/gorm"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

// Create creates a new tag
func (r *GormTagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// FindByID finds a tag by ID
func (r *GormTagRepository) FindByID(id uint64) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByNameOrSlug finds a tag whose name or slug exactly matches
func (r *GormTagRepository) FindByNameOrSlug(name, slug string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("name = ? OR slug = ?", name, slug).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByNameFold finds a tag by name ignoring case
func (r *GormTagRepository) FindByNameFold(name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// List retrieves tags matching the filter, most-used first, then by
// case-insensitive name.
func (r *GormTagRepository) List(filter TagFilter) ([]models.Tag, error) {
	tags := []models.Tag{}

	query := r.db.Model(&models.Tag{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Approved != nil {
		query = query.Where("approved = ?", *filter.Approved)
	}
	if filter.Hidden != nil {
		query = query.Where("hidden = ?", *filter.Hidden)
	}

	err := query.
		Order("usage_count DESC").
		Order("LOWER(name) ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}

	return tags, nil
}

// Update persists changes to a tag
func (r *GormTagRepository) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

// Delete hard-deletes a tag
func (r *GormTagRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Tag{}, id).Error
}

// CountAssociations counts link rows referencing the tag
func (r *GormTagRepository) CountAssociations(tagID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.RegistrationTag{}).
		Where("tag_id = ?", tagID).
		Count(&count).Error
	return count, err
}
