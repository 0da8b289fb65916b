package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token lifetimes: 60 minute access, 24 hour refresh.
const (
	DefaultAccessTTL  = 60 * time.Minute
	DefaultRefreshTTL = 24 * time.Hour
)

// Token type claim values. A refresh token is never accepted where an
// access token is expected, and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims represents JWT claims for both token types. Subject carries the
// user ID; jti (RegisteredClaims.ID) is unique per token and is the handle
// the revocation list keys on.
type Claims struct {
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256 access/refresh token pairs.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTLSeconds returns the access token lifetime in whole seconds.
func (m *TokenManager) AccessTTLSeconds() int {
	return int(m.accessTTL.Seconds())
}

// IssueAccess issues a short-lived access token for the user.
func (m *TokenManager) IssueAccess(userID int, username, email string) (string, error) {
	return m.issue(userID, username, email, TokenTypeAccess, m.accessTTL)
}

// IssueRefresh issues a long-lived refresh token for the user.
func (m *TokenManager) IssueRefresh(userID int, username, email string) (string, error) {
	return m.issue(userID, username, email, TokenTypeRefresh, m.refreshTTL)
}

func (m *TokenManager) issue(userID int, username, email, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		Username:  username,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseAccess validates an access token and returns its claims.
func (m *TokenManager) ParseAccess(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenTypeAccess)
}

// ParseRefresh validates a refresh token and returns its claims.
func (m *TokenManager) ParseRefresh(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenTypeRefresh)
}

func (m *TokenManager) parse(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
