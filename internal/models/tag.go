package models

import (
	"time"
)

// TagCategoryCustom is assigned to tags proposed by registrants when the
// submission carries no category of its own.
const TagCategoryCustom = "custom"

// Tag is one skill or technology label in the moderated catalog. Tags created
// through the admin endpoints default to approved; tags created implicitly
// during registration start unapproved and stay out of public listings until
// an organizer approves them.
type Tag struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Slug       string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Category   string    `gorm:"type:varchar(50);not null" json:"category"`
	Approved   bool      `gorm:"not null;default:true" json:"approved"`
	Hidden     bool      `gorm:"not null;default:false" json:"hidden"`
	UsageCount int64     `gorm:"not null;default:0" json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Registrations []RegistrationTag `gorm:"foreignKey:TagID" json:"-"`
}
