package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/dto"
	apierrors "github.com/ryanstpierre/boulder.codes-sub000/internal/errors"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/services"
)

// Action names accepted by the multiplexed moderation endpoint.
const (
	actionApprove = "approve"
	actionHide    = "hide"
	actionUpdate  = "update"
	actionCreate  = "create"
	actionDelete  = "delete"
)

// AdminTagHandler serves the single moderation endpoint the admin dashboard
// posts to.
type AdminTagHandler struct {
	tagService *services.TagService
}

// NewAdminTagHandler creates a new AdminTagHandler.
func NewAdminTagHandler(tagService *services.TagService) *AdminTagHandler {
	return &AdminTagHandler{
		tagService: tagService,
	}
}

// HandleTagAction multiplexes moderation actions over one endpoint. The raw
// action string is decoded into a typed request per action before anything
// touches the service layer.
func (h *AdminTagHandler) HandleTagAction(c *gin.Context) {
	type TagActionRequest struct {
		Action  string          `json:"action" binding:"required"`
		TagData json.RawMessage `json:"tagData"`
	}

	var req TagActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Action is required")
		return
	}

	switch req.Action {
	case actionApprove:
		h.handleApprove(c, req.TagData)
	case actionHide:
		h.handleHide(c, req.TagData)
	case actionCreate:
		h.handleCreate(c, req.TagData)
	case actionUpdate:
		h.handleUpdate(c, req.TagData)
	case actionDelete:
		h.handleDelete(c, req.TagData)
	default:
		apierrors.BadRequest(c, fmt.Sprintf("Unknown action %q", req.Action))
	}
}

func (h *AdminTagHandler) handleApprove(c *gin.Context, data json.RawMessage) {
	type ApproveRequest struct {
		ID uint64 `json:"id"`
	}

	var req ApproveRequest
	if err := json.Unmarshal(data, &req); err != nil {
		apierrors.BadRequest(c, "Invalid tagData")
		return
	}

	tag, err := h.tagService.ToggleApproved(req.ID)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(tag))
}

func (h *AdminTagHandler) handleHide(c *gin.Context, data json.RawMessage) {
	type HideRequest struct {
		ID uint64 `json:"id"`
	}

	var req HideRequest
	if err := json.Unmarshal(data, &req); err != nil {
		apierrors.BadRequest(c, "Invalid tagData")
		return
	}

	tag, err := h.tagService.ToggleHidden(req.ID)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(tag))
}

func (h *AdminTagHandler) handleCreate(c *gin.Context, data json.RawMessage) {
	type CreateRequest struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Slug     string `json:"slug"`
		Approved *bool  `json:"approved"`
		Hidden   bool   `json:"hidden"`
	}

	var req CreateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		apierrors.BadRequest(c, "Invalid tagData")
		return
	}

	tag, err := h.tagService.Create(services.CreateTagInput{
		Name:     req.Name,
		Category: req.Category,
		Slug:     req.Slug,
		Approved: req.Approved,
		Hidden:   req.Hidden,
	})
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(tag))
}

func (h *AdminTagHandler) handleUpdate(c *gin.Context, data json.RawMessage) {
	type UpdateRequest struct {
		ID         uint64  `json:"id"`
		Name       *string `json:"name"`
		Slug       *string `json:"slug"`
		Category   *string `json:"category"`
		Approved   *bool   `json:"approved"`
		Hidden     *bool   `json:"hidden"`
		UsageCount *int64  `json:"usage_count"`
	}

	var req UpdateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		apierrors.BadRequest(c, "Invalid tagData")
		return
	}

	tag, err := h.tagService.Update(req.ID, services.UpdateTagInput{
		Name:       req.Name,
		Slug:       req.Slug,
		Category:   req.Category,
		Approved:   req.Approved,
		Hidden:     req.Hidden,
		UsageCount: req.UsageCount,
	})
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(tag))
}

func (h *AdminTagHandler) handleDelete(c *gin.Context, data json.RawMessage) {
	type DeleteRequest struct {
		ID uint64 `json:"id"`
	}

	var req DeleteRequest
	if err := json.Unmarshal(data, &req); err != nil {
		apierrors.BadRequest(c, "Invalid tagData")
		return
	}

	if err := h.tagService.Delete(req.ID); err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(nil))
}
