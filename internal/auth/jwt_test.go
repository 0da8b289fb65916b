package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager("test-secret", time.Hour, 24*time.Hour)
}

func TestIssueAndParseAccess(t *testing.T) {
	m := newTestManager()

	token, err := m.IssueAccess(42, "alice", "alice@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID, "jti must be set for revocation")
}

func TestIssueAndParseRefresh(t *testing.T) {
	m := newTestManager()

	token, err := m.IssueRefresh(42, "alice", "alice@x.com")
	require.NoError(t, err)

	claims, err := m.ParseRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.True(t, claims.ExpiresAt.After(time.Now().Add(23*time.Hour)))
}

func TestParse_RejectsWrongTokenType(t *testing.T) {
	m := newTestManager()

	refresh, err := m.IssueRefresh(1, "bob", "bob@x.com")
	require.NoError(t, err)

	_, err = m.ParseAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, err := m.IssueAccess(1, "bob", "bob@x.com")
	require.NoError(t, err)

	_, err = m.ParseRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewTokenManager("other-secret", time.Hour, 24*time.Hour)

	token, err := m.IssueAccess(1, "bob", "bob@x.com")
	require.NoError(t, err)

	_, err = other.ParseAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsExpired(t *testing.T) {
	// Non-positive TTLs fall back to defaults, so build one directly.
	m := &TokenManager{secret: []byte("test-secret"), accessTTL: time.Nanosecond, refreshTTL: time.Nanosecond}

	token, err := m.IssueAccess(1, "bob", "bob@x.com")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = m.ParseAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsGarbage(t *testing.T) {
	m := newTestManager()
	_, err := m.ParseAccess("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJTIUniquePerToken(t *testing.T) {
	m := newTestManager()

	t1, err := m.IssueRefresh(1, "bob", "bob@x.com")
	require.NoError(t, err)
	t2, err := m.IssueRefresh(1, "bob", "bob@x.com")
	require.NoError(t, err)

	c1, err := m.ParseRefresh(t1)
	require.NoError(t, err)
	c2, err := m.ParseRefresh(t2)
	require.NoError(t, err)

	assert.NotEqual(t, c1.ID, c2.ID)
}
