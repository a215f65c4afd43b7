package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"memoir-backend/internal/domains/user/model"
	"memoir-backend/internal/domains/user/service"
	"memoir-backend/internal/shared/middleware"
	"memoir-backend/internal/shared/response"
)

type UserHandler struct {
	service service.Service
}

func NewUserHandler(service service.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Register POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Login POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Refresh POST /api/v1/auth/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.RefreshTokens(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetProfile GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	resp, err := h.service.GetProfile(c.Request.Context(), userIDFromContext(c))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// UpdateProfile PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), userIDFromContext(c), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ChangePassword PUT /api/v1/users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userIDFromContext(c), req); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"})
}

// =====================================================
// HELPERS
// =====================================================

func (h *UserHandler) mapError(c *gin.Context, err error) {
	var userErr *model.UserError
	if errors.As(err, &userErr) {
		switch userErr.Code {
		case model.ErrCodeUserNotFound:
			response.ErrorResponse(c, http.StatusNotFound, userErr.Code, userErr.Message)
		case model.ErrCodeEmailTaken:
			response.ErrorResponse(c, http.StatusConflict, userErr.Code, userErr.Message)
		case model.ErrCodeInvalidCredentials, model.ErrCodeInvalidToken:
			response.ErrorResponse(c, http.StatusUnauthorized, userErr.Code, userErr.Message)
		default:
			response.ErrorResponse(c, http.StatusBadRequest, userErr.Code, userErr.Message)
		}
		return
	}

	response.InternalServerError(c, "Something went wrong")
}

func userIDFromContext(c *gin.Context) uuid.UUID {
	if v, exists := c.Get(middleware.ContextUserID); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
