package handler

import (
	"errors"
	"net/http"
	"strings"

	"gameportal-backend/internal/domains/tag"
	tagService "gameportal-backend/internal/domains/tag/service"
	"gameportal-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type TagHandler struct {
	service tagService.Service
}

func NewTagHandler(service tagService.Service) *TagHandler {
	return &TagHandler{service: service}
}

type createTagRequest struct {
	Name string `json:"name"`
}

// Create - POST /api/v1/admin/tags
func (h *TagHandler) Create(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		response.BadRequest(c, "name is required")
		return
	}

	created, err := h.service.Create(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, tag.ErrDuplicateSlug) {
			response.Conflict(c, err.Error())
			return
		}
		log.Error().Err(err).Msg("Failed to create tag")
		response.InternalServerError(c, "failed to create tag")
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// List - GET /api/v1/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tags")
		response.InternalServerError(c, "failed to list tags")
		return
	}

	response.Success(c, http.StatusOK, tags)
}

// Delete - DELETE /api/v1/admin/tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tag id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, tag.ErrNotFound) {
			response.NotFound(c, "tag not found")
			return
		}
		log.Error().Err(err).Msg("Failed to delete tag")
		response.InternalServerError(c, "failed to delete tag")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
