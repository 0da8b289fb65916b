package models

import (
	"database/sql"
	"time"
)

// ==============================================
// AUDIT LOG MODEL
// ==============================================

// AuditLog is an append-only record of a security-relevant action.
// UserID is nullable so records survive user deletion.
type AuditLog struct {
	ID        int64          `db:"id"`
	UserID    sql.NullInt32  `db:"user_id"`
	IPAddress sql.NullString `db:"ip_address"`
	Action    string         `db:"action"`
	ModelName string         `db:"model_name"`
	RecordID  int64          `db:"record_id"`
	Details   sql.NullString `db:"details"` // JSON
	CreatedAt time.Time      `db:"created_at"`
}

// ==============================================
// AUDIT ACTION CONSTANTS
// ==============================================
const (
	AuditActionRegister    = "register"
	AuditActionLogin       = "login"
	AuditActionLoginFailed = "login_failed"
	AuditActionLogout      = "logout"
	AuditActionOTPSent     = "otp_sent"
	AuditActionOTPRedeemed = "otp_redeemed"
)
