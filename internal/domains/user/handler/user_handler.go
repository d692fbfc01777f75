package handler

import (
	"errors"
	"net/http"

	"gameportal-backend/internal/domains/user"
	userService "gameportal-backend/internal/domains/user/service"
	"gameportal-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type UserHandler struct {
	service userService.Service
}

func NewUserHandler(service userService.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Login - POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid email or password")
			return
		}
		log.Error().Err(err).Msg("Login failed")
		response.InternalServerError(c, "login failed")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// List - GET /api/v1/admin/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		response.InternalServerError(c, "failed to list users")
		return
	}

	response.Success(c, http.StatusOK, users)
}
