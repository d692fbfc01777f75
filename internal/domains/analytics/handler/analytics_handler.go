package handler

import (
	"errors"
	"net/http"

	analyticsService "gameportal-backend/internal/domains/analytics/service"
	"gameportal-backend/internal/domains/game/model"
	"gameportal-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AnalyticsHandler struct {
	service analyticsService.Service
}

func NewAnalyticsHandler(service analyticsService.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// RecordPlay - POST /api/v1/games/:slug/play
func (h *AnalyticsHandler) RecordPlay(c *gin.Context) {
	slug := c.Param("slug")

	if err := h.service.RecordPlay(c.Request.Context(), slug); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.NotFound(c, "game not found")
			return
		}
		log.Error().Err(err).Str("slug", slug).Msg("Failed to record play")
		response.InternalServerError(c, "failed to record play")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"recorded": true})
}

// Summary - GET /api/v1/admin/analytics/summary
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to build analytics summary")
		response.InternalServerError(c, "failed to build analytics summary")
		return
	}

	response.Success(c, http.StatusOK, summary)
}
