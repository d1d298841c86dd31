package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds secondary indexes that AutoMigrate's column tags do not
// cover. Postgres only; the test databases skip this.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Tag listing filters and moderation views
		{"tags", "idx_tags_category", "category"},
		{"tags", "idx_tags_approved_hidden", "approved, hidden"},

		// Association lookups from the delete-guard and admin preloads
		{"registration_tags", "idx_registration_tags_tag_id", "tag_id"},

		// Admin registration list default sort
		{"registrations", "idx_registrations_created_at", "created_at"},
		{"registrations", "idx_registrations_kind", "kind"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
