package models

import (
	"time"
)

// ==============================================
// USER MODEL (Database mapping)
// ==============================================

// User represents a store member.
// Username, email and phone number are each globally unique;
// username and email lookups are case-insensitive.
type User struct {
	ID           int       `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PhoneNumber  string    `db:"phone_number"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	PasswordHash string    `db:"password_hash"`
	IsActive     bool      `db:"is_active"`
	IsStaff      bool      `db:"is_staff"`
	CreatedAt    time.Time `db:"created_at"`
	ModifiedAt   time.Time `db:"modified_at"`
}

// ==============================================
// SESSION GRANT
// ==============================================

// SessionGrant is the access/refresh token pair issued on successful
// authentication. It is never persisted; the refresh token's jti is the
// revocation handle used by logout.
type SessionGrant struct {
	Access    string
	Refresh   string
	Username  string
	Email     string
	ExpiresIn int // access token lifetime in seconds
}
