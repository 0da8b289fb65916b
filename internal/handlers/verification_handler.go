package handlers

import (
	"context"
	"net/http"

	"github.com/digistore/api/internal/api/dto"
	"github.com/digistore/api/internal/middleware"
	"github.com/digistore/api/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ==============================================
// SERVICE CONTRACTS
// ==============================================

type VerificationFlow interface {
	IssueEmailCode(ctx context.Context, user *models.User, requestedEmail string) (*models.EmailVerification, error)
	IssueSMSCode(ctx context.Context, user *models.User, requestedPhone string) (*models.SMSVerification, error)
	RedeemEmailToken(ctx context.Context, token string) (*models.EmailVerification, error)
	RedeemSMSCode(ctx context.Context, code string) (*models.SMSVerification, error)
}

// UserGetter resolves the authenticated caller to a full user record.
type UserGetter interface {
	GetUserByID(ctx context.Context, userID int) (*models.User, error)
}

type VerificationHandler struct {
	service VerificationFlow
	users   UserGetter
	logger  *zap.Logger
}

func NewVerificationHandler(service VerificationFlow, users UserGetter, logger *zap.Logger) *VerificationHandler {
	return &VerificationHandler{service: service, users: users, logger: logger}
}

// ==============================================
// EMAIL
// ==============================================

// SendEmailVerification creates an email token for the caller and mails it.
// The requested address must match the caller's registered one. A dispatch
// failure still leaves the token issued, so we report it as a 500 without
// suggesting a retry invalidated anything.
// POST /api/auth/verify-email (authenticated)
func (h *VerificationHandler) SendEmailVerification(c *gin.Context) {
	var req dto.SendEmailVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if _, err := h.service.IssueEmailCode(c.Request.Context(), user, req.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerificationSentResponse{
		Message:   "Verification email sent.",
		ExpiresIn: int(models.EmailTokenTTL.Seconds()),
	})
}

// VerifyEmail redeems an email verification token.
// PUT /api/auth/verify-email
func (h *VerificationHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	if _, err := h.service.RedeemEmailToken(c.Request.Context(), req.Token); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifiedResponse{Message: "Email verified successfully."})
}

// ==============================================
// SMS
// ==============================================

// SendSMSVerification creates a 6-digit code for the caller and texts it.
// POST /api/auth/verify-sms (authenticated)
func (h *VerificationHandler) SendSMSVerification(c *gin.Context) {
	var req dto.SendSMSVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if _, err := h.service.IssueSMSCode(c.Request.Context(), user, req.PhoneNumber); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerificationSentResponse{
		Message:   "Verification code sent.",
		ExpiresIn: int(models.SMSCodeTTL.Seconds()),
	})
}

// VerifySMS redeems a 6-digit SMS code.
// PUT /api/auth/verify-sms
func (h *VerificationHandler) VerifySMS(c *gin.Context) {
	var req dto.VerifySMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	if _, err := h.service.RedeemSMSCode(c.Request.Context(), req.Code); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifiedResponse{Message: "Phone number verified successfully."})
}

// ==============================================
// HELPERS
// ==============================================

// currentUser loads the full record for the authenticated caller. Writes
// the error response itself on failure.
func (h *VerificationHandler) currentUser(c *gin.Context) (*models.User, bool) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required", models.ErrCodeInvalidToken)
		return nil, false
	}

	user, err := h.users.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Warn("failed to load authenticated user", zap.Int("user_id", claims.UserID), zap.Error(err))
		respondServiceError(c, err)
		return nil, false
	}
	return user, true
}
