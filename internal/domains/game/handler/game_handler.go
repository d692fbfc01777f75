package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gameportal-backend/internal/domains/game/model"
	gameService "gameportal-backend/internal/domains/game/service"
	"gameportal-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type GameHandler struct {
	service gameService.GameServiceInterface
}

func NewGameHandler(service gameService.GameServiceInterface) *GameHandler {
	return &GameHandler{service: service}
}

// List - GET /api/v1/games?category=&tag=&page=&limit=
func (h *GameHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := model.ListFilter{
		CategoryName: c.Query("category"),
		TagSlug:      c.Query("tag"),
		Page:         page,
		Limit:        limit,
	}

	games, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list games")
		response.InternalServerError(c, "failed to list games")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, games, &response.Meta{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	})
}

// Popular - GET /api/v1/games/popular
func (h *GameHandler) Popular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	games, err := h.service.Popular(c.Request.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list popular games")
		response.InternalServerError(c, "failed to list popular games")
		return
	}

	response.Success(c, http.StatusOK, games)
}

// Newest - GET /api/v1/games/new
func (h *GameHandler) Newest(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	games, err := h.service.Newest(c.Request.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list newest games")
		response.InternalServerError(c, "failed to list newest games")
		return
	}

	response.Success(c, http.StatusOK, games)
}

// GetBySlug - GET /api/v1/games/:slug
func (h *GameHandler) GetBySlug(c *gin.Context) {
	game, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.NotFound(c, "game not found")
			return
		}
		log.Error().Err(err).Msg("Failed to get game")
		response.InternalServerError(c, "failed to get game")
		return
	}

	response.Success(c, http.StatusOK, game)
}

// Create - POST /api/v1/admin/games
func (h *GameHandler) Create(c *gin.Context) {
	var req model.CreateGameRequest
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
		if errors.Is(err, model.ErrDuplicateSlug) {
			response.Conflict(c, err.Error())
			return
		}
		log.Error().Err(err).Msg("Failed to create game")
		response.InternalServerError(c, "failed to create game")
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// Update - PUT /api/v1/admin/games/:id
func (h *GameHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid game id")
		return
	}

	var req model.UpdateGameRequest
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
		if errors.Is(err, model.ErrNotFound) {
			response.NotFound(c, "game not found")
			return
		}
		log.Error().Err(err).Msg("Failed to update game")
		response.InternalServerError(c, "failed to update game")
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete - DELETE /api/v1/admin/games/:id
func (h *GameHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid game id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.NotFound(c, "game not found")
			return
		}
		log.Error().Err(err).Msg("Failed to delete game")
		response.InternalServerError(c, "failed to delete game")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
