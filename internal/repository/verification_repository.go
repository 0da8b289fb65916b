package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/digistore/api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ==============================================
// ERRORS
// ==============================================

var (
	ErrVerificationNotFound = errors.New("verification record not found")
	ErrVerificationExpired  = errors.New("verification record has expired")
	ErrVerificationConsumed = errors.New("verification record already consumed")
)

// ==============================================
// VERIFICATION REPOSITORY
// ==============================================

// VerificationRepository persists one-time email tokens and SMS codes.
// Consumption is a single conditional UPDATE so that two concurrent
// redemptions of the same code can never both succeed.
type VerificationRepository struct {
	db *pgxpool.Pool
}

func NewVerificationRepository(db *pgxpool.Pool) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// ==============================================
// CREATE
// ==============================================

func (r *VerificationRepository) CreateEmailVerification(ctx context.Context, v *models.EmailVerification) error {
	query := `
		INSERT INTO email_verifications (user_id, email, token, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, v.UserID, v.Email, v.Token, v.ExpiresAt).
		Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create email verification: %w", err)
	}

	return nil
}

func (r *VerificationRepository) CreateSMSVerification(ctx context.Context, v *models.SMSVerification) error {
	query := `
		INSERT INTO sms_verifications (user_id, phone_number, code, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, v.UserID, v.PhoneNumber, v.Code, v.ExpiresAt).
		Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create sms verification: %w", err)
	}

	return nil
}

// ==============================================
// CONSUME (atomic conditional update)
// ==============================================

// ConsumeEmailToken marks the unconsumed, unexpired record matching token as
// verified and returns it. The guard and the write are one statement, so a
// concurrent redemption of the same token loses the race and gets a miss.
// On a miss the record is left untouched and the error distinguishes
// not-found, expired and already-consumed.
func (r *VerificationRepository) ConsumeEmailToken(ctx context.Context, token string) (*models.EmailVerification, error) {
	query := `
		UPDATE email_verifications
		SET is_verified = true
		WHERE token = $1 AND is_verified = false AND expires_at > now()
		RETURNING id, user_id, email, token, is_verified, created_at, expires_at
	`

	var v models.EmailVerification
	err := r.db.QueryRow(ctx, query, token).Scan(
		&v.ID,
		&v.UserID,
		&v.Email,
		&v.Token,
		&v.IsVerified,
		&v.CreatedAt,
		&v.ExpiresAt,
	)
	if err == nil {
		return &v, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to consume email token: %w", err)
	}

	return nil, r.classifyEmailMiss(ctx, token)
}

// classifyEmailMiss explains why the conditional update matched nothing.
func (r *VerificationRepository) classifyEmailMiss(ctx context.Context, token string) error {
	query := `
		SELECT is_verified, expires_at <= now()
		FROM email_verifications
		WHERE token = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var consumed, expired bool
	err := r.db.QueryRow(ctx, query, token).Scan(&consumed, &expired)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrVerificationNotFound
		}
		return fmt.Errorf("failed to classify email token miss: %w", err)
	}
	if consumed {
		return ErrVerificationConsumed
	}
	if expired {
		return ErrVerificationExpired
	}
	// Lost a race with a concurrent redemption that has not committed yet.
	return ErrVerificationNotFound
}

// ConsumeSMSCode is the SMS counterpart of ConsumeEmailToken. Codes are not
// unique across rows, so the update is pinned to a single record (the most
// recently issued live one); a colliding code held by another user stays
// redeemable.
func (r *VerificationRepository) ConsumeSMSCode(ctx context.Context, code string) (*models.SMSVerification, error) {
	query := `
		UPDATE sms_verifications
		SET is_verified = true
		WHERE id = (
			SELECT id FROM sms_verifications
			WHERE code = $1 AND is_verified = false AND expires_at > now()
			ORDER BY created_at DESC, id DESC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, user_id, phone_number, code, is_verified, created_at, expires_at
	`

	var v models.SMSVerification
	err := r.db.QueryRow(ctx, query, code).Scan(
		&v.ID,
		&v.UserID,
		&v.PhoneNumber,
		&v.Code,
		&v.IsVerified,
		&v.CreatedAt,
		&v.ExpiresAt,
	)
	if err == nil {
		return &v, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to consume sms code: %w", err)
	}

	return nil, r.classifySMSMiss(ctx, code)
}

func (r *VerificationRepository) classifySMSMiss(ctx context.Context, code string) error {
	query := `
		SELECT is_verified, expires_at <= now()
		FROM sms_verifications
		WHERE code = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var consumed, expired bool
	err := r.db.QueryRow(ctx, query, code).Scan(&consumed, &expired)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrVerificationNotFound
		}
		return fmt.Errorf("failed to classify sms code miss: %w", err)
	}
	if consumed {
		return ErrVerificationConsumed
	}
	if expired {
		return ErrVerificationExpired
	}
	return ErrVerificationNotFound
}
