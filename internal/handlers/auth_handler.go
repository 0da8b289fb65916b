package handlers

import (
	"context"
	"net/http"

	"github.com/digistore/api/internal/api/dto"
	"github.com/digistore/api/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ==============================================
// SERVICE CONTRACT
// ==============================================

type SessionService interface {
	Register(ctx context.Context, req dto.RegisterRequest, clientIP string) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest, clientIP string) (*dto.TokenPairResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.RefreshResponse, error)
	Logout(ctx context.Context, req dto.LogoutRequest, clientIP string) error
}

type AuthHandler struct {
	service SessionService
	logger  *zap.Logger
}

func NewAuthHandler(service SessionService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

// ==============================================
// ENDPOINTS
// ==============================================

// Register creates a new user account.
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and issues an access/refresh token pair.
// The login_id field accepts either a username or an email address.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	grant, err := h.service.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, grant)
}

// Refresh exchanges a valid, non-revoked refresh token for a new access token.
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented refresh token for the remainder of its life.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	if err := h.service.Logout(c.Request.Context(), req, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}
