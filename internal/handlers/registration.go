package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/dto"
	apierrors "github.com/ryanstpierre/boulder.codes-sub000/internal/errors"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/models"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/services"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/utils"
)

// RegistrationHandler coordinates the registration HTTP handlers.
type RegistrationHandler struct {
	registrationService *services.RegistrationService
	reconcileService    *services.ReconcileService

	// fallback is set when the server runs without a database and the
	// operator opted into synthetic registration responses. The services
	// are nil in that mode.
	fallback bool
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(registrationService *services.RegistrationService, reconcileService *services.ReconcileService, fallback bool) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		reconcileService:    reconcileService,
		fallback:            fallback,
	}
}

// Submit handles the hackathon registration form.
func (h *RegistrationHandler) Submit(c *gin.Context) {
	h.submit(c, models.KindHackathon)
}

// SubmitCommunity handles the community-member form.
func (h *RegistrationHandler) SubmitCommunity(c *gin.Context) {
	h.submit(c, models.KindCommunity)
}

func (h *RegistrationHandler) submit(c *gin.Context, kind models.RegistrationKind) {
	type SubmitRequest struct {
		FirstName string `json:"firstName" binding:"required"`
		LastName  string `json:"lastName" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Role      string `json:"role" binding:"required"`

		Company     string `json:"company"`
		ProjectIdea string `json:"projectIdea"`
		Skills      string `json:"skills"`
		Interests   string `json:"interests"`
		Bio         string `json:"bio"`

		OpenToCollaborate     bool `json:"openToCollaborate"`
		AvailableForMentoring bool `json:"availableForMentoring"`
		Newsletter            bool `json:"newsletter"`

		Tags []services.TagInput `json:"tags"`
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "First name, last name, email, and role are required")
		return
	}

	if h.fallback {
		// Demo mode: the form still "succeeds" without a database.
		c.JSON(http.StatusCreated, dto.SubmitResponse{
			Success:        true,
			RegistrationID: uuid.NewString(),
			DBStatus:       "fallback",
			Tags:           []dto.TagRef{},
		})
		return
	}

	registration, err := h.registrationService.Submit(services.SubmitInput{
		Kind:      kind,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,

		Company:     req.Company,
		ProjectIdea: req.ProjectIdea,
		Skills:      req.Skills,
		Interests:   req.Interests,
		Bio:         req.Bio,

		OpenToCollaborate:     req.OpenToCollaborate,
		AvailableForMentoring: req.AvailableForMentoring,
		Newsletter:            req.Newsletter,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingRequiredFields):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrEmailRegistered):
			apierrors.Conflict(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to save registration")
		}
		return
	}

	// Best effort from here on: the registration row exists, and partially
	// linked tags are an acceptable outcome.
	result := h.reconcileService.Reconcile(registration.ID, req.Tags)

	c.JSON(http.StatusCreated, dto.SubmitResponse{
		Success:        true,
		RegistrationID: registration.ID,
		DBStatus:       "connected",
		Tags:           dto.ToTagRefs(result.Associated()),
	})
}

// List returns one page of registrations for the admin view.
func (h *RegistrationHandler) List(c *gin.Context) {
	params := utils.GetPageParams(c)

	registrations, total, err := h.registrationService.List(services.ListRegistrationsInput{
		Search:    c.Query("search"),
		SortField: c.DefaultQuery("sortField", "created_at"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Limit:     params.Limit,
		Offset:    params.Offset,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch registrations")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.RegistrationPage{
		Registrations: registrations,
		Total:         total,
		Limit:         params.Limit,
		Offset:        params.Offset,
	}))
}
