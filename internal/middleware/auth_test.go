package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/digistore/api/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(tokens), func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	return r
}

func TestRequireAuth_NoHeader(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour, 24*time.Hour)
	r := protectedRouter(tokens)

	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour, 24*time.Hour)
	r := protectedRouter(tokens)

	for _, header := range []string{"Basic abc", "Bearer", "bearer-token"} {
		req, _ := http.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireAuth_RejectsRefreshToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour, 24*time.Hour)
	r := protectedRouter(tokens)

	refresh, err := tokens.IssueRefresh(7, "alice", "alice@x.com")
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ValidAccessToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour, 24*time.Hour)
	r := protectedRouter(tokens)

	access, err := tokens.IssueAccess(7, "alice", "alice@x.com")
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}
