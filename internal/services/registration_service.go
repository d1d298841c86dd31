package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ryanstpierre/boulder.codes-sub000/internal/models"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMissingRequiredFields = errors.New("first name, last name, email, and role are required")
	ErrEmailRegistered       = errors.New("this email is already registered")
)

// RegistrationService accepts and persists sign-up submissions.
type RegistrationService struct {
	registrationRepo repository.RegistrationRepository
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(registrationRepo repository.RegistrationRepository) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
	}
}

// SubmitInput holds one registration submission. Optional fields persist as
// explicit zero values, never as absent columns.
type SubmitInput struct {
	Kind      models.RegistrationKind
	FirstName string
	LastName  string
	Email     string
	Role      string

	Company     string
	ProjectIdea string
	Skills      string
	Interests   string
	Bio         string

	OpenToCollaborate     bool
	AvailableForMentoring bool
	Newsletter            bool
}

// Submit validates the required fields, rejects duplicate emails, and inserts
// the registration. The email pre-check is advisory; the unique index on the
// email column is what actually rejects the concurrent duplicate.
func (s *RegistrationService) Submit(input SubmitInput) (*models.Registration, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	role := strings.TrimSpace(input.Role)

	if firstName == "" || lastName == "" || email == "" || role == "" {
		return nil, ErrMissingRequiredFields
	}

	kind := input.Kind
	if kind == "" {
		kind = models.KindHackathon
	}

	if _, err := s.registrationRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing registration: %w", err)
	}

	registration := &models.Registration{
		Kind:      kind,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Role:      role,

		Company:     strings.TrimSpace(input.Company),
		ProjectIdea: input.ProjectIdea,
		Skills:      input.Skills,
		Interests:   input.Interests,
		Bio:         input.Bio,

		OpenToCollaborate:     input.OpenToCollaborate,
		AvailableForMentoring: input.AvailableForMentoring,
		Newsletter:            input.Newsletter,
	}

	if err := s.registrationRepo.Create(registration); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailRegistered
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	return registration, nil
}

// ListRegistrationsInput holds the admin list parameters.
type ListRegistrationsInput struct {
	Search    string
	SortField string
	SortOrder string
	Limit     int
	Offset    int
}

// List returns one page of registrations and the unpaged total.
func (s *RegistrationService) List(input ListRegistrationsInput) ([]models.Registration, int64, error) {
	registrations, total, err := s.registrationRepo.List(repository.RegistrationFilter{
		Search:    input.Search,
		SortField: input.SortField,
		SortOrder: input.SortOrder,
		Limit:     input.Limit,
		Offset:    input.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list registrations: %w", err)
	}
	return registrations, total, nil
}
