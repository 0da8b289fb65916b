package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/digistore/api/internal/api/dto"
	"github.com/digistore/api/internal/auth"
	"github.com/digistore/api/internal/models"
	"github.com/digistore/api/internal/repository"
	"go.uber.org/zap"
)

// ==============================================
// COLLABORATOR INTERFACES (for testing)
// ==============================================

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
}

type TokenRevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type AuditRecorder interface {
	Append(ctx context.Context, entry *models.AuditLog) error
}

// ==============================================
// AUTH SERVICE
// ==============================================

type AuthService struct {
	users     UserStore
	tokens    *auth.TokenManager
	blacklist TokenRevocationStore
	audit     AuditRecorder
	logger    *zap.Logger
}

func NewAuthService(
	users UserStore,
	tokens *auth.TokenManager,
	blacklist TokenRevocationStore,
	audit AuditRecorder,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		blacklist: blacklist,
		audit:     audit,
		logger:    logger,
	}
}

// ==============================================
// REGISTER
// ==============================================

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest, clientIP string) (*dto.RegisterResponse, error) {
	// Uniqueness checks, clearest error first.
	if existing, err := s.users.GetUserByUsername(ctx, req.Username); err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if existing != nil {
		return nil, models.ErrUsernameAlreadyExists
	}

	if existing, err := s.users.GetUserByEmail(ctx, req.Email); err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if existing != nil {
		return nil, models.ErrEmailAlreadyExists
	}

	if existing, err := s.users.GetUserByPhone(ctx, req.PhoneNumber); err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	} else if existing != nil {
		return nil, models.ErrPhoneAlreadyExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	grant, err := s.issueGrant(user)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, user.ID, clientIP, models.AuditActionRegister, "users", int64(user.ID))
	s.logger.Info("user registered",
		zap.Int("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return &dto.RegisterResponse{
		User:    userToDTO(user),
		Tokens:  grantToDTO(grant),
		Message: "Account created successfully.",
	}, nil
}

// ==============================================
// LOGIN
// ==============================================

// Login resolves the identifier (email when it contains '@', username
// otherwise, both case-insensitive), verifies the password and issues a
// session grant. Neither the password nor its hash is ever logged.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest, clientIP string) (*dto.TokenPairResponse, error) {
	loginID := auth.ClassifyLoginID(req.LoginID)

	var user *models.User
	var err error
	switch loginID.Kind {
	case auth.LoginIDEmail:
		user, err = s.users.GetUserByEmail(ctx, loginID.Value)
	default:
		user, err = s.users.GetUserByUsername(ctx, loginID.Value)
	}

	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Info("login failed: user not found")
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		s.recordAudit(ctx, user.ID, clientIP, models.AuditActionLoginFailed, "users", int64(user.ID))
		s.logger.Info("login failed: password mismatch", zap.Int("user_id", user.ID))
		return nil, models.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.recordAudit(ctx, user.ID, clientIP, models.AuditActionLoginFailed, "users", int64(user.ID))
		s.logger.Info("login failed: account inactive", zap.Int("user_id", user.ID))
		return nil, models.ErrAccountInactive
	}

	grant, err := s.issueGrant(user)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, user.ID, clientIP, models.AuditActionLogin, "users", int64(user.ID))
	s.logger.Info("login succeeded", zap.Int("user_id", user.ID))

	return grantToDTO(grant), nil
}

// ==============================================
// REFRESH
// ==============================================

// Refresh exchanges a valid, non-revoked refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.RefreshResponse, error) {
	claims, err := s.tokens.ParseRefresh(req.Refresh)
	if err != nil {
		return nil, models.ErrInvalidToken
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return nil, models.ErrTokenRevoked
	}

	access, err := s.tokens.IssueAccess(claims.UserID, claims.Username, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &dto.RefreshResponse{
		Access:    access,
		ExpiresIn: s.tokens.AccessTTLSeconds(),
	}, nil
}

// ==============================================
// LOGOUT
// ==============================================

// Logout revokes the presented refresh token by blacklisting its jti until
// the token's own expiry. A malformed token is an ErrInvalidToken, which the
// boundary maps to a 400.
func (s *AuthService) Logout(ctx context.Context, req dto.LogoutRequest, clientIP string) error {
	claims, err := s.tokens.ParseRefresh(req.Refresh)
	if err != nil {
		return models.ErrInvalidToken
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	s.recordAudit(ctx, claims.UserID, clientIP, models.AuditActionLogout, "users", int64(claims.UserID))
	s.logger.Info("logout", zap.Int("user_id", claims.UserID))
	return nil
}

// ==============================================
// HELPERS
// ==============================================

func (s *AuthService) issueGrant(user *models.User) (*models.SessionGrant, error) {
	access, err := s.tokens.IssueAccess(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &models.SessionGrant{
		Access:    access,
		Refresh:   refresh,
		Username:  user.Username,
		Email:     user.Email,
		ExpiresIn: s.tokens.AccessTTLSeconds(),
	}, nil
}

// recordAudit appends an audit entry; failures are logged, never surfaced.
func (s *AuthService) recordAudit(ctx context.Context, userID int, clientIP, action, model string, recordID int64) {
	entry := &models.AuditLog{
		UserID:    sql.NullInt32{Int32: int32(userID), Valid: userID != 0},
		IPAddress: sql.NullString{String: clientIP, Valid: clientIP != ""},
		Action:    action,
		ModelName: model,
		RecordID:  recordID,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit entry", zap.String("action", action), zap.Error(err))
	}
}

func userToDTO(user *models.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
	}
}

func grantToDTO(grant *models.SessionGrant) *dto.TokenPairResponse {
	return &dto.TokenPairResponse{
		Access:    grant.Access,
		Refresh:   grant.Refresh,
		Username:  grant.Username,
		Email:     grant.Email,
		ExpiresIn: grant.ExpiresIn,
	}
}
