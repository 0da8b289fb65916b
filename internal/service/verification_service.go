package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/digistore/api/internal/auth"
	"github.com/digistore/api/internal/models"
	"github.com/digistore/api/internal/repository"
	"go.uber.org/zap"
)

// ==============================================
// COLLABORATOR INTERFACES (for testing)
// ==============================================

type VerificationStore interface {
	CreateEmailVerification(ctx context.Context, v *models.EmailVerification) error
	CreateSMSVerification(ctx context.Context, v *models.SMSVerification) error
	ConsumeEmailToken(ctx context.Context, token string) (*models.EmailVerification, error)
	ConsumeSMSCode(ctx context.Context, code string) (*models.SMSVerification, error)
}

type EmailSender interface {
	SendEmail(to, subject, body string) error
}

type SMSSender interface {
	SendSMS(to, body string) error
}

// ==============================================
// VERIFICATION SERVICE
// ==============================================

// VerificationService issues and redeems one-time contact verification
// codes: UUID tokens over email (15 minute expiry) and 6-digit numeric
// codes over SMS (5 minute expiry).
type VerificationService struct {
	store  VerificationStore
	email  EmailSender
	sms    SMSSender
	audit  AuditRecorder
	logger *zap.Logger
}

func NewVerificationService(
	store VerificationStore,
	email EmailSender,
	sms SMSSender,
	audit AuditRecorder,
	logger *zap.Logger,
) *VerificationService {
	return &VerificationService{
		store:  store,
		email:  email,
		sms:    sms,
		audit:  audit,
		logger: logger,
	}
}

// ==============================================
// ISSUE
// ==============================================

// IssueEmailCode creates a verification token for the caller's own email
// address and dispatches it. The requested address must match the caller's
// registered one. Dispatch is attempted exactly once; a dispatch failure is
// returned to the caller but does not roll back the created record.
func (s *VerificationService) IssueEmailCode(ctx context.Context, user *models.User, requestedEmail string) (*models.EmailVerification, error) {
	if !strings.EqualFold(requestedEmail, user.Email) {
		return nil, models.ErrContactMismatch
	}

	v := &models.EmailVerification{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     auth.GenerateEmailToken(),
		ExpiresAt: time.Now().Add(models.EmailTokenTTL),
	}

	if err := s.store.CreateEmailVerification(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to create email verification: %w", err)
	}

	s.recordAudit(ctx, user.ID, models.AuditActionOTPSent, "email_verifications", int64(v.ID))
	s.logger.Info("email verification issued", zap.Int("user_id", user.ID))

	subject, body := emailVerificationContent(v.Token)
	if err := s.email.SendEmail(v.Email, subject, body); err != nil {
		s.logger.Warn("email dispatch failed", zap.Int("user_id", user.ID), zap.Error(err))
		return v, fmt.Errorf("failed to send verification email: %w", err)
	}

	return v, nil
}

// IssueSMSCode is the SMS counterpart of IssueEmailCode: 6-digit code,
// 5 minute expiry, dispatched to the caller's registered phone number.
func (s *VerificationService) IssueSMSCode(ctx context.Context, user *models.User, requestedPhone string) (*models.SMSVerification, error) {
	if requestedPhone != user.PhoneNumber {
		return nil, models.ErrContactMismatch
	}

	code, err := auth.GenerateSMSCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	v := &models.SMSVerification{
		UserID:      user.ID,
		PhoneNumber: user.PhoneNumber,
		Code:        code,
		ExpiresAt:   time.Now().Add(models.SMSCodeTTL),
	}

	if err := s.store.CreateSMSVerification(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to create sms verification: %w", err)
	}

	s.recordAudit(ctx, user.ID, models.AuditActionOTPSent, "sms_verifications", int64(v.ID))
	s.logger.Info("sms verification issued", zap.Int("user_id", user.ID))

	if err := s.sms.SendSMS(v.PhoneNumber, smsVerificationContent(v.Code)); err != nil {
		s.logger.Warn("sms dispatch failed", zap.Int("user_id", user.ID), zap.Error(err))
		return v, fmt.Errorf("failed to send verification sms: %w", err)
	}

	return v, nil
}

// ==============================================
// REDEEM
// ==============================================

// RedeemEmailToken consumes the unconsumed, unexpired record matching
// token. An expired match is reported as ErrCodeExpired and left
// unconsumed; a second redemption of the same token reports
// ErrCodeAlreadyConsumed.
func (s *VerificationService) RedeemEmailToken(ctx context.Context, token string) (*models.EmailVerification, error) {
	v, err := s.store.ConsumeEmailToken(ctx, token)
	if err != nil {
		return nil, mapVerificationErr(err)
	}

	s.recordAudit(ctx, v.UserID, models.AuditActionOTPRedeemed, "email_verifications", int64(v.ID))
	s.logger.Info("email verified", zap.Int("user_id", v.UserID))
	return v, nil
}

// RedeemSMSCode is the SMS counterpart of RedeemEmailToken.
func (s *VerificationService) RedeemSMSCode(ctx context.Context, code string) (*models.SMSVerification, error) {
	v, err := s.store.ConsumeSMSCode(ctx, code)
	if err != nil {
		return nil, mapVerificationErr(err)
	}

	s.recordAudit(ctx, v.UserID, models.AuditActionOTPRedeemed, "sms_verifications", int64(v.ID))
	s.logger.Info("phone verified", zap.Int("user_id", v.UserID))
	return v, nil
}

// ==============================================
// HELPERS
// ==============================================

func mapVerificationErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrVerificationNotFound):
		return models.ErrVerificationNotFound
	case errors.Is(err, repository.ErrVerificationExpired):
		return models.ErrCodeExpired
	case errors.Is(err, repository.ErrVerificationConsumed):
		return models.ErrCodeAlreadyConsumed
	default:
		return fmt.Errorf("failed to redeem verification: %w", err)
	}
}

func (s *VerificationService) recordAudit(ctx context.Context, userID int, action, model string, recordID int64) {
	entry := &models.AuditLog{
		Action:    action,
		ModelName: model,
		RecordID:  recordID,
	}
	entry.UserID.Int32 = int32(userID)
	entry.UserID.Valid = true
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit entry", zap.String("action", action), zap.Error(err))
	}
}

func emailVerificationContent(token string) (subject, body string) {
	subject = "Email Verification"
	body = fmt.Sprintf(`Hello,

Your verification code is: %s

This code will expire in 15 minutes.

If you didn't request this code, please ignore this email.
`, token)
	return subject, body
}

func smsVerificationContent(code string) string {
	return fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)
}
