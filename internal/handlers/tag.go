package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/dto"
	apierrors "github.com/ryanstpierre/boulder.codes-sub000/internal/errors"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/services"
)

// TagHandler coordinates the tag catalog HTTP handlers.
type TagHandler struct {
	tagService *services.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// ListTags returns the catalog filtered by category, approval, and
// visibility. approved and hidden accept "true", "false", or "all"; the
// defaults show only approved, visible tags.
func (h *TagHandler) ListTags(c *gin.Context) {
	approved, err := parseBoolFilter(c.DefaultQuery("approved", "true"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid approved filter")
		return
	}
	hidden, err := parseBoolFilter(c.DefaultQuery("hidden", "false"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid hidden filter")
		return
	}

	tags, err := h.tagService.List(services.ListTagsInput{
		Category: c.Query("category"),
		Approved: approved,
		Hidden:   hidden,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tags")
		return
	}

	c.JSON(http.StatusOK, dto.OK(tags))
}

// GetTag returns a single tag by ID.
func (h *TagHandler) GetTag(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid tag ID")
		return
	}

	tag, err := h.tagService.Get(id)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(tag))
}

// CreateTag creates a catalog tag (admin).
func (h *TagHandler) CreateTag(c *gin.Context) {
	type CreateTagRequest struct {
		Name     string `json:"name" binding:"required"`
		Category string `json:"category" binding:"required"`
		Slug     string `json:"slug"`
		Approved *bool  `json:"approved"`
		Hidden   bool   `json:"hidden"`
	}

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Name and category are required")
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

// UpdateTag applies a partial update to the tag named by the id query
// parameter (admin).
func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Tag id is required")
		return
	}

	type UpdateTagRequest struct {
		Name       *string `json:"name"`
		Slug       *string `json:"slug"`
		Category   *string `json:"category"`
		Approved   *bool   `json:"approved"`
		Hidden     *bool   `json:"hidden"`
		UsageCount *int64  `json:"usage_count"`
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tag, err := h.tagService.Update(id, services.UpdateTagInput{
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

// DeleteTag removes the tag named by the id query parameter (admin). Tags in
// use are refused; hide them instead.
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Tag id is required")
		return
	}

	if err := h.tagService.Delete(id); err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(nil))
}

func parseBoolFilter(raw string) (*bool, error) {
	if raw == "all" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func respondTagError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTagNameRequired),
		errors.Is(err, services.ErrTagCategoryRequired),
		errors.Is(err, services.ErrTagIDRequired),
		errors.Is(err, services.ErrTagNoFields):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTagExists):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrTagInUse):
		apierrors.UsageConflict(c, err.Error())
	case errors.Is(err, services.ErrTagNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
