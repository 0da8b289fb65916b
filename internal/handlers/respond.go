package handlers

import (
	"errors"
	"net/http"

	"github.com/digistore/api/internal/api/dto"
	"github.com/digistore/api/internal/models"
	"github.com/digistore/api/internal/repository"
	"github.com/gin-gonic/gin"
)

// ==============================================
// RESPONSE HELPERS
// ==============================================

func respondError(c *gin.Context, status int, detail, code string) {
	c.JSON(status, dto.ErrorResponse{Detail: detail, Code: code})
}

// respondServiceError translates a service error into a client-facing
// status + machine-readable code + human message. Nothing here is fatal to
// the process.
func respondServiceError(c *gin.Context, err error) {
	switch {
	// 401 — authentication
	case errors.Is(err, models.ErrUserNotFound):
		respondError(c, http.StatusUnauthorized, "User not found", models.ErrCodeUserNotFound)
	case errors.Is(err, models.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid password", models.ErrCodeInvalidPassword)
	case errors.Is(err, models.ErrAccountInactive):
		respondError(c, http.StatusUnauthorized, "User account is inactive", models.ErrCodeUserInactive)
	case errors.Is(err, models.ErrTokenRevoked):
		respondError(c, http.StatusUnauthorized, "Token has been revoked", models.ErrCodeTokenRevoked)

	// 400 — verification flow
	case errors.Is(err, models.ErrContactMismatch):
		respondError(c, http.StatusBadRequest, "Contact does not match the registered contact", models.ErrCodeContactMismatch)
	case errors.Is(err, models.ErrVerificationNotFound):
		respondError(c, http.StatusBadRequest, "Invalid code", models.ErrCodeInvalidCode)
	case errors.Is(err, models.ErrCodeExpired):
		respondError(c, http.StatusBadRequest, "Code has expired", models.ErrCodeCodeExpired)
	case errors.Is(err, models.ErrCodeAlreadyConsumed):
		respondError(c, http.StatusBadRequest, "Code already used", models.ErrCodeCodeUsed)

	// 400 — registration conflicts and token shape
	case errors.Is(err, models.ErrUsernameAlreadyExists):
		respondError(c, http.StatusBadRequest, "This username is already taken", models.ErrCodeUsernameTaken)
	case errors.Is(err, models.ErrEmailAlreadyExists):
		respondError(c, http.StatusBadRequest, "This email is already registered", models.ErrCodeEmailTaken)
	case errors.Is(err, models.ErrPhoneAlreadyExists):
		respondError(c, http.StatusBadRequest, "This phone number is already registered", models.ErrCodePhoneTaken)
	case errors.Is(err, models.ErrInvalidToken):
		respondError(c, http.StatusBadRequest, "Invalid or missing token", models.ErrCodeInvalidToken)
	case errors.Is(err, models.ErrInvalidRating), errors.Is(err, models.ErrInvalidStatus), errors.Is(err, models.ErrInvalidQuantity):
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)

	// 404 — CRUD misses
	case errors.Is(err, models.ErrNotFound), errors.Is(err, repository.ErrRecordNotFound), errors.Is(err, repository.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "Record not found", models.ErrCodeNotFound)

	default:
		respondError(c, http.StatusInternalServerError, "An unexpected error occurred", models.ErrCodeInternalError)
	}
}
