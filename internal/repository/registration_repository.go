package repository

import (
	"strings"

	"github.com/ryanstpierre/boulder.codes-sub000/internal/database"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/models"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// registrationSortColumns whitelists the sortable columns for the admin list.
// Anything else falls back to created_at.
var registrationSortColumns = map[string]string{
	"created_at": "created_at",
	"email":      "email",
	"first_name": "first_name",
	"last_name":  "last_name",
	"role":       "role",
}

// GormRegistrationRepository is a GORM implementation of RegistrationRepository
type GormRegistrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &GormRegistrationRepository{db: db}
}

// Create creates a new registration
func (r *GormRegistrationRepository) Create(registration *models.Registration) error {
	return r.db.Create(registration).Error
}

// FindByEmail finds a registration by email ignoring case
func (r *GormRegistrationRepository) FindByEmail(email string) (*models.Registration, error) {
	var registration models.Registration
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&registration).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

// List retrieves registrations with search, sort, and range applied
func (r *GormRegistrationRepository) List(filter RegistrationFilter) ([]models.Registration, int64, error) {
	registrations := []models.Registration{}

	query := r.db.Model(&models.Registration{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := registrationSortColumns[filter.SortField]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}

	listQuery := query.Order(column + " " + direction)
	if filter.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PageParams{
			Limit:  filter.Limit,
			Offset: filter.Offset,
		}))
	}

	if err := listQuery.Preload("Tags.Tag").Find(&registrations).Error; err != nil {
		return nil, 0, err
	}

	return registrations, total, nil
}

// LinkTag inserts one association row. The composite primary key plus
// OnConflict DoNothing keeps a resubmitted pair from producing duplicates.
func (r *GormRegistrationRepository) LinkTag(registrationID, tagID uint64) error {
	link := models.RegistrationTag{
		RegistrationID: registrationID,
		TagID:          tagID,
	}
	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}
