package database

import (
	"gorm.io/gorm"

	"github.com/ryanstpierre/boulder.codes-sub000/internal/utils"
)

// Paginate applies a limit/offset range to a GORM query
func Paginate(params utils.PageParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
