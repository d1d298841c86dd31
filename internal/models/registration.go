package models

import (
	"time"
)

type RegistrationKind string

const (
	KindHackathon RegistrationKind = "hackathon"
	KindCommunity RegistrationKind = "community"
)

// Registration is one submitted sign-up, either a hackathon participant or a
// community member. Rows are written once and never mutated.
type Registration struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	Kind      RegistrationKind `gorm:"type:varchar(20);not null;default:'hackathon'" json:"kind"`
	FirstName string           `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string           `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role      string           `gorm:"type:varchar(100);not null" json:"role"`

	Company     string `gorm:"type:varchar(255)" json:"company"`
	ProjectIdea string `gorm:"type:text" json:"project_idea"`
	Skills      string `gorm:"type:text" json:"skills"`
	Interests   string `gorm:"type:text" json:"interests"`
	Bio         string `gorm:"type:text" json:"bio"`

	OpenToCollaborate     bool `gorm:"not null;default:false" json:"open_to_collaborate"`
	AvailableForMentoring bool `gorm:"not null;default:false" json:"available_for_mentoring"`
	Newsletter            bool `gorm:"not null;default:false" json:"newsletter"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Tags []RegistrationTag `gorm:"foreignKey:RegistrationID" json:"tags,omitempty"`
}
