package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/digistore/api/internal/models"
	"github.com/digistore/api/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==============================================
// MOCKS
// ==============================================

type MockVerificationStore struct {
	CreateEmailVerificationFunc func(ctx context.Context, v *models.EmailVerification) error
	CreateSMSVerificationFunc   func(ctx context.Context, v *models.SMSVerification) error
	ConsumeEmailTokenFunc       func(ctx context.Context, token string) (*models.EmailVerification, error)
	ConsumeSMSCodeFunc          func(ctx context.Context, code string) (*models.SMSVerification, error)
}

func (m *MockVerificationStore) CreateEmailVerification(ctx context.Context, v *models.EmailVerification) error {
	if m.CreateEmailVerificationFunc != nil {
		return m.CreateEmailVerificationFunc(ctx, v)
	}
	v.ID = 1
	return nil
}

func (m *MockVerificationStore) CreateSMSVerification(ctx context.Context, v *models.SMSVerification) error {
	if m.CreateSMSVerificationFunc != nil {
		return m.CreateSMSVerificationFunc(ctx, v)
	}
	v.ID = 1
	return nil
}

func (m *MockVerificationStore) ConsumeEmailToken(ctx context.Context, token string) (*models.EmailVerification, error) {
	if m.ConsumeEmailTokenFunc != nil {
		return m.ConsumeEmailTokenFunc(ctx, token)
	}
	return nil, repository.ErrVerificationNotFound
}

func (m *MockVerificationStore) ConsumeSMSCode(ctx context.Context, code string) (*models.SMSVerification, error) {
	if m.ConsumeSMSCodeFunc != nil {
		return m.ConsumeSMSCodeFunc(ctx, code)
	}
	return nil, repository.ErrVerificationNotFound
}

type MockEmailSender struct {
	SendEmailFunc func(to, subject, body string) error
	Sent          []string // recipients
}

func (m *MockEmailSender) SendEmail(to, subject, body string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	m.Sent = append(m.Sent, to)
	return nil
}

type MockSMSSender struct {
	SendSMSFunc func(to, body string) error
	Sent        []string
}

func (m *MockSMSSender) SendSMS(to, body string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, body)
	}
	m.Sent = append(m.Sent, to)
	return nil
}

// fakeSMSStore replays the database consume semantics in memory against a
// controllable clock: a single conditional consume, with misses classified
// as unknown, expired, or already used.
type fakeSMSStore struct {
	MockVerificationStore
	records []*models.SMSVerification
	now     func() time.Time
}

func (f *fakeSMSStore) CreateSMSVerification(ctx context.Context, v *models.SMSVerification) error {
	v.ID = len(f.records) + 1
	v.CreatedAt = f.now()
	f.records = append(f.records, v)
	return nil
}

func (f *fakeSMSStore) ConsumeSMSCode(ctx context.Context, code string) (*models.SMSVerification, error) {
	var match *models.SMSVerification
	for _, r := range f.records {
		if r.Code == code {
			match = r
		}
	}
	if match == nil {
		return nil, repository.ErrVerificationNotFound
	}
	if match.IsVerified {
		return nil, repository.ErrVerificationConsumed
	}
	if !f.now().Before(match.ExpiresAt) {
		return nil, repository.ErrVerificationExpired
	}
	match.IsVerified = true
	return match, nil
}

// ==============================================
// FIXTURES
// ==============================================

func verificationUser() *models.User {
	return &models.User{
		ID:          7,
		Username:    "alice",
		Email:       "alice@x.com",
		PhoneNumber: "08012345678",
		IsActive:    true,
	}
}

func newVerificationService(store VerificationStore, email EmailSender, sms SMSSender) *VerificationService {
	return NewVerificationService(store, email, sms, &MockAudit{}, zap.NewNop())
}

// ==============================================
// EMAIL ISSUE
// ==============================================

func TestIssueEmailCode_CreatesAndDispatches(t *testing.T) {
	var created *models.EmailVerification
	store := &MockVerificationStore{
		CreateEmailVerificationFunc: func(ctx context.Context, v *models.EmailVerification) error {
			v.ID = 10
			created = v
			return nil
		},
	}
	email := &MockEmailSender{}
	svc := newVerificationService(store, email, &MockSMSSender{})

	before := time.Now()
	v, err := svc.IssueEmailCode(context.Background(), verificationUser(), "alice@x.com")
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, 7, created.UserID)
	assert.Equal(t, "alice@x.com", created.Email)
	assert.False(t, created.IsVerified)

	_, err = uuid.Parse(v.Token)
	require.NoError(t, err, "email token must be a UUID")

	// 15 minute expiry window.
	assert.WithinDuration(t, before.Add(15*time.Minute), v.ExpiresAt, 2*time.Second)

	require.Len(t, email.Sent, 1)
	assert.Equal(t, "alice@x.com", email.Sent[0])
}

func TestIssueEmailCode_CaseInsensitiveMatch(t *testing.T) {
	email := &MockEmailSender{}
	svc := newVerificationService(&MockVerificationStore{}, email, &MockSMSSender{})

	_, err := svc.IssueEmailCode(context.Background(), verificationUser(), "ALICE@X.COM")
	require.NoError(t, err)
	require.Len(t, email.Sent, 1)
	// Dispatch goes to the registered address, not the requested casing.
	assert.Equal(t, "alice@x.com", email.Sent[0])
}

func TestIssueEmailCode_ContactMismatch(t *testing.T) {
	createCalled := false
	store := &MockVerificationStore{
		CreateEmailVerificationFunc: func(ctx context.Context, v *models.EmailVerification) error {
			createCalled = true
			return nil
		},
	}
	svc := newVerificationService(store, &MockEmailSender{}, &MockSMSSender{})

	_, err := svc.IssueEmailCode(context.Background(), verificationUser(), "other@x.com")
	assert.ErrorIs(t, err, models.ErrContactMismatch)
	assert.False(t, createCalled, "no record should be created on mismatch")
}

func TestIssueEmailCode_DispatchFailureKeepsRecord(t *testing.T) {
	email := &MockEmailSender{
		SendEmailFunc: func(to, subject, body string) error {
			return errors.New("smtp down")
		},
	}
	svc := newVerificationService(&MockVerificationStore{}, email, &MockSMSSender{})

	v, err := svc.IssueEmailCode(context.Background(), verificationUser(), "alice@x.com")
	require.Error(t, err)
	// The record survives the dispatch failure; the token is redeemable.
	require.NotNil(t, v)
	assert.NotEmpty(t, v.Token)
}

// ==============================================
// SMS ISSUE
// ==============================================

func TestIssueSMSCode_CreatesAndDispatches(t *testing.T) {
	sms := &MockSMSSender{}
	svc := newVerificationService(&MockVerificationStore{}, &MockEmailSender{}, sms)

	before := time.Now()
	v, err := svc.IssueSMSCode(context.Background(), verificationUser(), "08012345678")
	require.NoError(t, err)

	assert.Len(t, v.Code, 6)
	assert.WithinDuration(t, before.Add(5*time.Minute), v.ExpiresAt, 2*time.Second)

	require.Len(t, sms.Sent, 1)
	assert.Equal(t, "08012345678", sms.Sent[0])
}

func TestIssueSMSCode_PhoneMismatch(t *testing.T) {
	svc := newVerificationService(&MockVerificationStore{}, &MockEmailSender{}, &MockSMSSender{})

	_, err := svc.IssueSMSCode(context.Background(), verificationUser(), "08099999999")
	assert.ErrorIs(t, err, models.ErrContactMismatch)
}

// ==============================================
// REDEEM
// ==============================================

func TestRedeemSMSCode_LifecycleAgainstClock(t *testing.T) {
	issuedAt := time.Now()
	clock := issuedAt
	store := &fakeSMSStore{now: func() time.Time { return clock }}
	svc := newVerificationService(store, &MockEmailSender{}, &MockSMSSender{})

	v, err := svc.IssueSMSCode(context.Background(), verificationUser(), "08012345678")
	require.NoError(t, err)
	v.ExpiresAt = issuedAt.Add(5 * time.Minute) // pin the window to the fake clock

	// Redeem at T0+4m: inside the window, succeeds.
	clock = issuedAt.Add(4 * time.Minute)
	got, err := svc.RedeemSMSCode(context.Background(), v.Code)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)

	// Second redemption of the same code fails.
	_, err = svc.RedeemSMSCode(context.Background(), v.Code)
	assert.ErrorIs(t, err, models.ErrCodeAlreadyConsumed)
}

func TestRedeemSMSCode_ExpiredLeavesRecordUnconsumed(t *testing.T) {
	issuedAt := time.Now()
	clock := issuedAt
	store := &fakeSMSStore{now: func() time.Time { return clock }}
	svc := newVerificationService(store, &MockEmailSender{}, &MockSMSSender{})

	v, err := svc.IssueSMSCode(context.Background(), verificationUser(), "08012345678")
	require.NoError(t, err)
	v.ExpiresAt = issuedAt.Add(5 * time.Minute)

	// Redeem at T0+6m: expired.
	clock = issuedAt.Add(6 * time.Minute)
	_, err = svc.RedeemSMSCode(context.Background(), v.Code)
	assert.ErrorIs(t, err, models.ErrCodeExpired)

	// Expiry never flips the consumed flag.
	assert.False(t, store.records[0].IsVerified)
}

func TestRedeemSMSCode_Unknown(t *testing.T) {
	svc := newVerificationService(&MockVerificationStore{}, &MockEmailSender{}, &MockSMSSender{})

	_, err := svc.RedeemSMSCode(context.Background(), "000000")
	assert.ErrorIs(t, err, models.ErrVerificationNotFound)
}

func TestRedeemEmailToken_MapsStoreErrors(t *testing.T) {
	cases := []struct {
		name    string
		stored  error
		wantErr error
	}{
		{"unknown token", repository.ErrVerificationNotFound, models.ErrVerificationNotFound},
		{"expired token", repository.ErrVerificationExpired, models.ErrCodeExpired},
		{"consumed token", repository.ErrVerificationConsumed, models.ErrCodeAlreadyConsumed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &MockVerificationStore{
				ConsumeEmailTokenFunc: func(ctx context.Context, token string) (*models.EmailVerification, error) {
					return nil, tc.stored
				},
			}
			svc := newVerificationService(store, &MockEmailSender{}, &MockSMSSender{})

			_, err := svc.RedeemEmailToken(context.Background(), uuid.NewString())
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRedeemEmailToken_Success(t *testing.T) {
	store := &MockVerificationStore{
		ConsumeEmailTokenFunc: func(ctx context.Context, token string) (*models.EmailVerification, error) {
			return &models.EmailVerification{ID: 3, UserID: 7, Token: token, IsVerified: true}, nil
		},
	}
	audit := &MockAudit{}
	svc := NewVerificationService(store, &MockEmailSender{}, &MockSMSSender{}, audit, zap.NewNop())

	v, err := svc.RedeemEmailToken(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.True(t, v.IsVerified)

	require.Len(t, audit.Entries, 1)
	assert.Equal(t, models.AuditActionOTPRedeemed, audit.Entries[0].Action)
}
