package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/digistore/api/internal/api/dto"
	"github.com/digistore/api/internal/auth"
	"github.com/digistore/api/internal/middleware"
	"github.com/digistore/api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==============================================
// STUBS
// ==============================================

type stubVerificationFlow struct {
	IssueEmailCodeFunc   func(ctx context.Context, user *models.User, requestedEmail string) (*models.EmailVerification, error)
	IssueSMSCodeFunc     func(ctx context.Context, user *models.User, requestedPhone string) (*models.SMSVerification, error)
	RedeemEmailTokenFunc func(ctx context.Context, token string) (*models.EmailVerification, error)
	RedeemSMSCodeFunc    func(ctx context.Context, code string) (*models.SMSVerification, error)
}

func (s *stubVerificationFlow) IssueEmailCode(ctx context.Context, user *models.User, requestedEmail string) (*models.EmailVerification, error) {
	return s.IssueEmailCodeFunc(ctx, user, requestedEmail)
}

func (s *stubVerificationFlow) IssueSMSCode(ctx context.Context, user *models.User, requestedPhone string) (*models.SMSVerification, error) {
	return s.IssueSMSCodeFunc(ctx, user, requestedPhone)
}

func (s *stubVerificationFlow) RedeemEmailToken(ctx context.Context, token string) (*models.EmailVerification, error) {
	return s.RedeemEmailTokenFunc(ctx, token)
}

func (s *stubVerificationFlow) RedeemSMSCode(ctx context.Context, code string) (*models.SMSVerification, error) {
	return s.RedeemSMSCodeFunc(ctx, code)
}

type stubUserGetter struct {
	user *models.User
}

func (s *stubUserGetter) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	if s.user != nil && s.user.ID == userID {
		return s.user, nil
	}
	return nil, models.ErrUserNotFound
}

func verificationRouter(svc VerificationFlow, users UserGetter, tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewVerificationHandler(svc, users, zap.NewNop())
	authed := middleware.RequireAuth(tokens)
	r.POST("/api/auth/verify-email", authed, h.SendEmailVerification)
	r.PUT("/api/auth/verify-email", h.VerifyEmail)
	r.POST("/api/auth/verify-sms", authed, h.SendSMSVerification)
	r.PUT("/api/auth/verify-sms", h.VerifySMS)
	return r
}

func putJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req, _ := http.NewRequest(http.MethodPut, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==============================================
// ISSUE (authenticated)
// ==============================================

func TestSendSMSVerification_RequiresBearerToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	r := verificationRouter(&stubVerificationFlow{}, &stubUserGetter{}, tokens)

	w := postJSON(t, r, "/api/auth/verify-sms", gin.H{"phone_number": "08012345678"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, models.ErrCodeInvalidToken, decodeError(t, w).Code)
}

func TestSendSMSVerification_Success(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	alice := &models.User{ID: 7, Username: "alice", Email: "alice@x.com", PhoneNumber: "08012345678"}

	svc := &stubVerificationFlow{
		IssueSMSCodeFunc: func(ctx context.Context, user *models.User, requestedPhone string) (*models.SMSVerification, error) {
			assert.Equal(t, 7, user.ID)
			assert.Equal(t, "08012345678", requestedPhone)
			return &models.SMSVerification{ID: 1, UserID: 7, Code: "123456"}, nil
		},
	}
	r := verificationRouter(svc, &stubUserGetter{user: alice}, tokens)

	access, err := tokens.IssueAccess(7, "alice", "alice@x.com")
	require.NoError(t, err)

	body, _ := json.Marshal(gin.H{"phone_number": "08012345678"})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/verify-sms", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.VerificationSentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 300, resp.ExpiresIn)
}

func TestSendEmailVerification_ContactMismatch(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	alice := &models.User{ID: 7, Username: "alice", Email: "alice@x.com"}

	svc := &stubVerificationFlow{
		IssueEmailCodeFunc: func(ctx context.Context, user *models.User, requestedEmail string) (*models.EmailVerification, error) {
			return nil, models.ErrContactMismatch
		},
	}
	r := verificationRouter(svc, &stubUserGetter{user: alice}, tokens)

	access, err := tokens.IssueAccess(7, "alice", "alice@x.com")
	require.NoError(t, err)

	body, _ := json.Marshal(gin.H{"email": "other@x.com"})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/verify-email", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrCodeContactMismatch, decodeError(t, w).Code)
}

// ==============================================
// REDEEM (unauthenticated)
// ==============================================

func TestVerifySMS_Success(t *testing.T) {
	svc := &stubVerificationFlow{
		RedeemSMSCodeFunc: func(ctx context.Context, code string) (*models.SMSVerification, error) {
			assert.Equal(t, "123456", code)
			return &models.SMSVerification{ID: 1, UserID: 7, Code: code, IsVerified: true}, nil
		},
	}
	r := verificationRouter(svc, &stubUserGetter{}, testTokens())

	w := putJSON(t, r, "/api/auth/verify-sms", gin.H{"code": "123456"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifySMS_RejectsBadCodeShape(t *testing.T) {
	called := false
	svc := &stubVerificationFlow{
		RedeemSMSCodeFunc: func(ctx context.Context, code string) (*models.SMSVerification, error) {
			called = true
			return nil, nil
		},
	}
	r := verificationRouter(svc, &stubUserGetter{}, testTokens())

	// Too short and non-numeric both fail binding before the service runs.
	w := putJSON(t, r, "/api/auth/verify-sms", gin.H{"code": "12345"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = putJSON(t, r, "/api/auth/verify-sms", gin.H{"code": "abcdef"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.False(t, called)
}

func TestVerifySMS_ErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name     string
		svcErr   error
		wantCode string
	}{
		{"unknown code", models.ErrVerificationNotFound, models.ErrCodeInvalidCode},
		{"expired code", models.ErrCodeExpired, models.ErrCodeCodeExpired},
		{"already used", models.ErrCodeAlreadyConsumed, models.ErrCodeCodeUsed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubVerificationFlow{
				RedeemSMSCodeFunc: func(ctx context.Context, code string) (*models.SMSVerification, error) {
					return nil, tc.svcErr
				},
			}
			r := verificationRouter(svc, &stubUserGetter{}, testTokens())

			w := putJSON(t, r, "/api/auth/verify-sms", gin.H{"code": "123456"})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.wantCode, decodeError(t, w).Code)
		})
	}
}

func TestVerifyEmail_Success(t *testing.T) {
	token := uuid.NewString()
	svc := &stubVerificationFlow{
		RedeemEmailTokenFunc: func(ctx context.Context, got string) (*models.EmailVerification, error) {
			assert.Equal(t, token, got)
			return &models.EmailVerification{ID: 1, UserID: 7, Token: got, IsVerified: true}, nil
		},
	}
	r := verificationRouter(svc, &stubUserGetter{}, testTokens())

	w := putJSON(t, r, "/api/auth/verify-email", gin.H{"token": token})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyEmail_RejectsNonUUIDToken(t *testing.T) {
	called := false
	svc := &stubVerificationFlow{
		RedeemEmailTokenFunc: func(ctx context.Context, token string) (*models.EmailVerification, error) {
			called = true
			return nil, nil
		},
	}
	r := verificationRouter(svc, &stubUserGetter{}, testTokens())

	w := putJSON(t, r, "/api/auth/verify-email", gin.H{"token": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour, 24*time.Hour)
}
