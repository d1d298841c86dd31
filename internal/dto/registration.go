package dto

import (
	"github.com/ryanstpierre/boulder.codes-sub000/internal/models"
)

// SubmitResponse is the wire shape for registration submissions. The
// registrationId is the numeric row ID, or a random UUID string when the
// server runs in fallback mode without a database.
type SubmitResponse struct {
	Success        bool     `json:"success"`
	RegistrationID any      `json:"registrationId"`
	DBStatus       string   `json:"dbStatus"`
	Tags           []TagRef `json:"tags"`
}

// RegistrationPage is the admin list payload: one page of rows plus the
// unpaged total.
type RegistrationPage struct {
	Registrations []models.Registration `json:"registrations"`
	Total         int64                 `json:"total"`
	Limit         int                   `json:"limit"`
	Offset        int                   `json:"offset"`
}
