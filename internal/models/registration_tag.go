package models

import (
	"time"
)

// RegistrationTag links one registration to one catalog tag. The composite
// primary key keeps a given pair unique at the store level.
type RegistrationTag struct {
	RegistrationID uint64    `gorm:"primarykey" json:"registration_id"`
	TagID          uint64    `gorm:"primarykey" json:"tag_id"`
	CreatedAt      time.Time `json:"created_at"`

	// Relations
	Registration Registration `gorm:"foreignKey:RegistrationID" json:"-"`
	Tag          Tag          `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}
