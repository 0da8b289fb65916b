package dto

// ==============================================
// AUTH REQUEST DTOs
// ==============================================

// RegisterRequest creates a new member account.
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=30"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required,min=7,max=11"`
	FirstName   string `json:"first_name" binding:"max=30"`
	LastName    string `json:"last_name" binding:"max=30"`
}

// LoginRequest - username or email + password.
type LoginRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new access token.
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// LogoutRequest revokes the presented refresh token.
type LogoutRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// ==============================================
// VERIFICATION REQUEST DTOs
// ==============================================

// SendEmailVerificationRequest - POST /verify-email (authenticated).
type SendEmailVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyEmailRequest - PUT /verify-email.
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required,uuid"`
}

// SendSMSVerificationRequest - POST /verify-sms (authenticated).
type SendSMSVerificationRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,min=7,max=11"`
}

// VerifySMSRequest - PUT /verify-sms.
type VerifySMSRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// ==============================================
// AUTH RESPONSE DTOs
// ==============================================

// TokenPairResponse mirrors the login contract:
// {access, refresh, username, email}.
type TokenPairResponse struct {
	Access    string `json:"access"`
	Refresh   string `json:"refresh"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	ExpiresIn int    `json:"expires_in"` // seconds
}

// RegisterResponse returns the created user plus a token pair.
type RegisterResponse struct {
	User    *UserDTO           `json:"user"`
	Tokens  *TokenPairResponse `json:"tokens"`
	Message string             `json:"message"`
}

// RefreshResponse carries the newly minted access token.
type RefreshResponse struct {
	Access    string `json:"access"`
	ExpiresIn int    `json:"expires_in"`
}

// VerificationSentResponse - a code/token was created and dispatch attempted.
type VerificationSentResponse struct {
	Message   string `json:"message"`
	ExpiresIn int    `json:"expires_in"` // seconds until the code expires
}

// VerifiedResponse - a code/token was redeemed.
type VerifiedResponse struct {
	Message string `json:"message"`
}

// ==============================================
// SUPPORTING DTOs
// ==============================================

// UserDTO - safe user representation.
type UserDTO struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"` // ISO 8601
}
