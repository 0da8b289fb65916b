package models

import (
	"errors"
)

// ==============================================
// PREDEFINED ERRORS
// ==============================================

// User/Auth errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountInactive       = errors.New("account is inactive")
	ErrUsernameAlreadyExists = errors.New("username already taken")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrPhoneAlreadyExists    = errors.New("phone number already registered")
	ErrInvalidToken          = errors.New("invalid token")
	ErrTokenRevoked          = errors.New("token has been revoked")
)

// Verification errors
var (
	ErrContactMismatch      = errors.New("contact does not match the registered contact")
	ErrVerificationNotFound = errors.New("verification code not found")
	ErrCodeExpired          = errors.New("verification code has expired")
	ErrCodeAlreadyConsumed  = errors.New("verification code already used")
)

// Store errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrInvalidStatus   = errors.New("invalid order status")
)

// ==============================================
// ERROR CODES (for API responses)
// ==============================================
const (
	// Auth
	ErrCodeUserNotFound    = "user_not_found"
	ErrCodeInvalidPassword = "invalid_password"
	ErrCodeUserInactive    = "user_inactive"
	ErrCodeUsernameTaken   = "username_taken"
	ErrCodeEmailTaken      = "email_taken"
	ErrCodePhoneTaken      = "phone_taken"
	ErrCodeInvalidToken    = "invalid_token"
	ErrCodeTokenRevoked    = "token_revoked"

	// Verification
	ErrCodeContactMismatch = "contact_mismatch"
	ErrCodeInvalidCode     = "invalid_code"
	ErrCodeCodeExpired     = "code_expired"
	ErrCodeCodeUsed        = "code_already_used"

	// Generic
	ErrCodeNotFound         = "not_found"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeInternalError    = "internal_error"
)

// IsAuthError checks if error is authentication-related (maps to 401).
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrAccountInactive) ||
		errors.Is(err, ErrTokenRevoked)
}

// IsVerificationError checks if error belongs to the one-time-code flow (maps to 400).
func IsVerificationError(err error) bool {
	return errors.Is(err, ErrContactMismatch) ||
		errors.Is(err, ErrVerificationNotFound) ||
		errors.Is(err, ErrCodeExpired) ||
		errors.Is(err, ErrCodeAlreadyConsumed)
}
