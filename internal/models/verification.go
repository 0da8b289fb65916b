package models

import (
	"time"
)

// ==============================================
// VERIFICATION MODELS
// ==============================================

// Verification channels.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Verification lifetimes and code shape.
const (
	EmailTokenTTL = 15 * time.Minute
	SMSCodeTTL    = 5 * time.Minute
	SMSCodeLength = 6
)

// EmailVerification is a single-use, time-boxed UUID token proving control
// of an email address. Rows are retained after consumption for audit.
type EmailVerification struct {
	ID         int       `db:"id"`
	UserID     int       `db:"user_id"`
	Email      string    `db:"email"` // contact value at issuance time
	Token      string    `db:"token"` // UUID v4
	IsVerified bool      `db:"is_verified"`
	CreatedAt  time.Time `db:"created_at"`
	ExpiresAt  time.Time `db:"expires_at"`
}

func (v *EmailVerification) IsExpired() bool {
	return time.Now().After(v.ExpiresAt)
}

// SMSVerification is a single-use, time-boxed 6-digit numeric code proving
// control of a phone number. Codes are random per record; two still-valid
// codes for different users may collide, which is acceptable because a code
// only ever marks its own row consumed.
type SMSVerification struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	PhoneNumber string    `db:"phone_number"`
	Code        string    `db:"code"`
	IsVerified  bool      `db:"is_verified"`
	CreatedAt   time.Time `db:"created_at"`
	ExpiresAt   time.Time `db:"expires_at"`
}

func (v *SMSVerification) IsExpired() bool {
	return time.Now().After(v.ExpiresAt)
}
