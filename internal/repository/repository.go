package repository

import (
	"github.com/ryanstpierre/boulder.codes-sub000/internal/models"
)

// TagRepository defines the interface for tag catalog data access
type TagRepository interface {
	// Create creates a new tag
	Create(tag *models.Tag) error

	// FindByID finds a tag by ID
	FindByID(id uint64) (*models.Tag, error)

	// FindByNameOrSlug finds a tag whose name or slug exactly matches
	FindByNameOrSlug(name, slug string) (*models.Tag, error)

	// FindByNameFold finds a tag by name ignoring case
	FindByNameFold(name string) (*models.Tag, error)

	// List retrieves tags matching the filter, ordered by usage then name
	List(filter TagFilter) ([]models.Tag, error)

	// Update persists changes to a tag
	Update(tag *models.Tag) error

	// Delete hard-deletes a tag
	Delete(id uint64) error

	// CountAssociations counts link rows referencing the tag
	CountAssociations(tagID uint64) (int64, error)
}

// TagFilter holds filtering options for listing tags. Nil booleans lift the
// corresponding filter.
type TagFilter struct {
	Category string
	Approved *bool
	Hidden   *bool
}

// RegistrationRepository defines the interface for registration data access
type RegistrationRepository interface {
	// Create creates a new registration
	Create(registration *models.Registration) error

	// FindByEmail finds a registration by email ignoring case
	FindByEmail(email string) (*models.Registration, error)

	// List retrieves registrations with search, sort, and range applied,
	// plus the unpaged total count
	List(filter RegistrationFilter) ([]models.Registration, int64, error)

	// LinkTag inserts one association row; existing pairs are left alone
	LinkTag(registrationID, tagID uint64) error
}

// RegistrationFilter holds options for the admin registration list
type RegistrationFilter struct {
	Search    string
	SortField string
	SortOrder string
	Limit     int
	Offset    int
}
