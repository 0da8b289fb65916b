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
	ErrUserNotFound = errors.New("user not found")
)

// ==============================================
// USER REPOSITORY
// ==============================================

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, phone_number, first_name, last_name,
	       password_hash, is_active, is_staff, created_at, modified_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PhoneNumber,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.IsActive,
		&user.IsStaff,
		&user.CreatedAt,
		&user.ModifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

// ==============================================
// CREATE USER
// ==============================================

// CreateUser creates a new user. The caller supplies an already hashed password.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, phone_number, first_name, last_name, password_hash, is_active, is_staff)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, modified_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PhoneNumber,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.IsActive,
		user.IsStaff,
	).Scan(&user.ID, &user.CreatedAt, &user.ModifiedAt)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// ==============================================
// GET USER (Read Operations)
// ==============================================

// GetUserByID retrieves a user by ID.
func (r *UserRepository) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, userID))
}

// GetUserByUsername retrieves a user by username, case-insensitively.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

// GetUserByEmail retrieves a user by email, case-insensitively.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// GetUserByPhone retrieves a user by phone number.
func (r *UserRepository) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`
	return scanUser(r.db.QueryRow(ctx, query, phone))
}
