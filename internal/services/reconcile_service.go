package services

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/models"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/repository"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/utils"
	"gorm.io/gorm"
)

// TagInput is one submitted tag reference: either an existing catalog tag by
// ID, or a free-text custom entry typed into the form.
type TagInput struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	IsCustom bool   `json:"isCustom"`
}

// TagOutcome records what happened to a single submitted tag.
type TagOutcome struct {
	Input TagInput
	Tag   *models.Tag
	Err   error
}

// ReconcileResult aggregates the per-tag outcomes for one registration. The
// caller decides what counts as success; no outcome aborts the submission.
type ReconcileResult struct {
	RegistrationID uint64
	Outcomes       []TagOutcome
}

// Associated returns the tags that were successfully linked.
func (r ReconcileResult) Associated() []models.Tag {
	tags := make([]models.Tag, 0, len(r.Outcomes))
	for _, outcome := range r.Outcomes {
		if outcome.Err == nil && outcome.Tag != nil {
			tags = append(tags, *outcome.Tag)
		}
	}
	return tags
}

// ReconcileService resolves submitted tags against the catalog and links them
// to a registration. Registration success is the primary criterion; tag
// bookkeeping is best effort, so every failure here is logged and skipped.
type ReconcileService struct {
	tagRepo          repository.TagRepository
	registrationRepo repository.RegistrationRepository
	logger           zerolog.Logger
}

// NewReconcileService creates a new ReconcileService.
func NewReconcileService(tagRepo repository.TagRepository, registrationRepo repository.RegistrationRepository) *ReconcileService {
	return &ReconcileService{
		tagRepo:          tagRepo,
		registrationRepo: registrationRepo,
		logger:           log.With().Str("component", "tag_reconcile").Logger(),
	}
}

// Reconcile resolves every submitted tag to a concrete catalog ID and inserts
// one link row per distinct ID. Custom entries reuse an existing tag when a
// case-insensitive name match exists and are created unapproved otherwise.
func (s *ReconcileService) Reconcile(registrationID uint64, inputs []TagInput) ReconcileResult {
	result := ReconcileResult{RegistrationID: registrationID}
	seen := make(map[uint64]bool)

	for _, input := range inputs {
		outcome := TagOutcome{Input: input}
		outcome.Tag, outcome.Err = s.resolve(input)

		if outcome.Err == nil && outcome.Tag != nil {
			if seen[outcome.Tag.ID] {
				// Same catalog tag referenced twice in one submission.
				continue
			}
			seen[outcome.Tag.ID] = true

			if outcome.Err = s.registrationRepo.LinkTag(registrationID, outcome.Tag.ID); outcome.Err != nil {
				s.logger.Error().Err(outcome.Err).
					Uint64("registration_id", registrationID).
					Uint64("tag_id", outcome.Tag.ID).
					Msg("failed to link tag")
			}
		}

		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result
}

func (s *ReconcileService) resolve(input TagInput) (*models.Tag, error) {
	if input.ID != 0 && !input.IsCustom {
		tag, err := s.tagRepo.FindByID(input.ID)
		if err != nil {
			s.logger.Warn().Err(err).
				Uint64("tag_id", input.ID).
				Msg("submitted tag id not found")
			return nil, err
		}
		return tag, nil
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTagNameRequired
	}

	// Reuse the catalog entry rather than duplicating it under a different
	// casing.
	tag, err := s.tagRepo.FindByNameFold(name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error().Err(err).
			Str("name", name).
			Msg("custom tag lookup failed")
		return nil, err
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = models.TagCategoryCustom
	}

	created := &models.Tag{
		Name:     name,
		Slug:     utils.Slugify(name),
		Category: category,
		Approved: false,
		Hidden:   false,
	}
	if err := s.tagRepo.Create(created); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent submission of the same name.
			if existing, findErr := s.tagRepo.FindByNameFold(name); findErr == nil {
				return existing, nil
			}
		}
		s.logger.Error().Err(err).
			Str("name", name).
			Msg("custom tag create failed")
		return nil, err
	}

	return created, nil
}
