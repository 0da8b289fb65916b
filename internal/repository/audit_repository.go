package repository

import (
	"context"
	"fmt"

	"github.com/digistore/api/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ==============================================
// AUDIT REPOSITORY
// ==============================================

// AuditRepository appends and lists audit log records. Records are never
// updated or deleted.
type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (user_id, ip_address, action, model_name, record_id, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		entry.UserID,
		entry.IPAddress,
		entry.Action,
		entry.ModelName,
		entry.RecordID,
		entry.Details,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, limit, offset int) ([]models.AuditLog, error) {
	query := `
		SELECT id, user_id, ip_address, action, model_name, record_id, details, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditLog
	for rows.Next() {
		var e models.AuditLog
		err := rows.Scan(&e.ID, &e.UserID, &e.IPAddress, &e.Action, &e.ModelName,
			&e.RecordID, &e.Details, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
