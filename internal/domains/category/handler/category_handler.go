package handler

import (
	"errors"
	"net/http"

	"gameportal-backend/internal/domains/category"
	"gameportal-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Create - POST /api/v1/admin/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, category.ErrDuplicateSlug) {
			response.Conflict(c, err.Error())
			return
		}
		log.Error().Err(err).Msg("Failed to create category")
		response.InternalServerError(c, "failed to create category")
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// List - GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories")
		response.InternalServerError(c, "failed to list categories")
		return
	}

	response.Success(c, http.StatusOK, categories)
}

// GetBySlug - GET /api/v1/categories/:slug
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	found, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			response.NotFound(c, "category not found")
			return
		}
		log.Error().Err(err).Msg("Failed to get category")
		response.InternalServerError(c, "failed to get category")
		return
	}

	response.Success(c, http.StatusOK, found)
}

// Update - PUT /api/v1/admin/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	var req category.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, category.ErrNotFound):
			response.NotFound(c, "category not found")
		case errors.Is(err, category.ErrDuplicateSlug):
			response.Conflict(c, err.Error())
		default:
			log.Error().Err(err).Msg("Failed to update category")
			response.InternalServerError(c, "failed to update category")
		}
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete - DELETE /api/v1/admin/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			response.NotFound(c, "category not found")
			return
		}
		log.Error().Err(err).Msg("Failed to delete category")
		response.InternalServerError(c, "failed to delete category")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
