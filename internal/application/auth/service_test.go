package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/inventory-dashboard-api/internal/domain"
	"github.com/inventory-dashboard-api/internal/pkg/events"
	"github.com/inventory-dashboard-api/internal/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockOTPStore struct{ mock.Mock }

func (m *mockOTPStore) Put(ctx context.Context, o *domain.OTP) error {
	return m.Called(ctx, o).Error(0)
}
func (m *mockOTPStore) Get(ctx context.Context, email string) (*domain.OTP, error) {
	args := m.Called(ctx, email)
	if o, _ := args.Get(0).(*domain.OTP); o != nil {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockOTPStore) Delete(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

// --- builder ---

func newService(os *mockOTPStore, us *mockUserStore, ml *mockMailer, bus *events.Bus) Service {
	return NewService(ServiceDeps{
		OTPRepo:  os,
		UserRepo: us,
		Mailer:   ml,
		Bus:      bus,
	})
}

func pendingOTP(email, code string) *domain.OTP {
	now := time.Now().UTC()
	return &domain.OTP{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(domain.OTPValidity).Unix(),
		CreatedAt: now,
	}
}

// --- RequestOTP ---

func TestRequestOTP_MissingEmail(t *testing.T) {
	svc := newService(nil, nil, nil, nil)
	err := svc.RequestOTP(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	assert.Equal(t, "Email is required", err.Error())
}

func TestRequestOTP_HappyPath_StoresAndMails6DigitCode(t *testing.T) {
	os := &mockOTPStore{}
	ml := &mockMailer{}

	var stored *domain.OTP
	os.On("Put", mock.Anything, mock.AnythingOfType("*domain.OTP")).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.OTP)
	}).Return(nil)
	ml.On("SendEmail", "a@b.com", "Your Verification Code", mock.Anything).Return(nil)

	svc := newService(os, nil, ml, nil)
	require.NoError(t, svc.RequestOTP(context.Background(), "a@b.com"))

	require.NotNil(t, stored)
	assert.Equal(t, "a@b.com", stored.Email)
	assert.Len(t, stored.Code, 6)
	assert.GreaterOrEqual(t, stored.Code, "100000")
	assert.LessOrEqual(t, stored.Code, "999999")
	assert.InDelta(t, time.Now().Add(domain.OTPValidity).Unix(), stored.ExpiresAt, 5)

	// The emailed body embeds the stored code.
	body := ml.Calls[0].Arguments.String(2)
	assert.Contains(t, body, stored.Code)

	os.AssertExpectations(t)
	ml.AssertExpectations(t)
}

func TestRequestOTP_StoreFailure(t *testing.T) {
	os := &mockOTPStore{}
	os.On("Put", mock.Anything, mock.Anything).Return(fmt.Errorf("dynamo down"))

	svc := newService(os, nil, nil, nil)
	err := svc.RequestOTP(context.Background(), "a@b.com")
	assert.ErrorContains(t, err, "store otp")
}

func TestRequestOTP_MailFailure_RecordStaysValid(t *testing.T) {
	os := &mockOTPStore{}
	ml := &mockMailer{}
	os.On("Put", mock.Anything, mock.Anything).Return(nil)
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(fmt.Errorf("smtp down"))

	svc := newService(os, nil, ml, nil)
	err := svc.RequestOTP(context.Background(), "a@b.com")

	// The upsert happened before dispatch; resend overwrites it, so the
	// failure is reported but nothing is rolled back.
	assert.ErrorContains(t, err, "send otp email")
	os.AssertNumberOfCalls(t, "Put", 1)
	os.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// --- VerifyOTP ---

func TestVerifyOTP_MissingFields(t *testing.T) {
	svc := newService(nil, nil, nil, nil)

	for _, tc := range []struct{ email, code string }{
		{"", ""},
		{"a@b.com", ""},
		{"", "123456"},
	} {
		_, err := svc.VerifyOTP(context.Background(), tc.email, tc.code)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrBadRequest))
		assert.Equal(t, "Email and OTP are required", err.Error())
	}
}

func TestVerifyOTP_NoRecord(t *testing.T) {
	os := &mockOTPStore{}
	os.On("Get", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)

	svc := newService(os, nil, nil, nil)
	_, err := svc.VerifyOTP(context.Background(), "a@b.com", "123456")

	require.Error(t, err)
	assert.Equal(t, "OTP not found", err.Error())
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestVerifyOTP_StoreOutage_IsNotAClientError(t *testing.T) {
	os := &mockOTPStore{}
	os.On("Get", mock.Anything, "a@b.com").Return(nil, fmt.Errorf("dynamo unavailable: connection refused"))

	svc := newService(os, nil, nil, nil)
	_, err := svc.VerifyOTP(context.Background(), "a@b.com", "123456")

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrBadRequest))
	assert.NotEqual(t, "OTP not found", err.Error())
	assert.ErrorContains(t, err, "lookup otp")
}

func TestVerifyOTP_Expired_EvenWithCorrectCode_RecordKept(t *testing.T) {
	os := &mockOTPStore{}
	o := pendingOTP("a@b.com", "123456")
	o.ExpiresAt = time.Now().Add(-time.Minute).Unix()
	os.On("Get", mock.Anything, "a@b.com").Return(o, nil)

	svc := newService(os, nil, nil, nil)
	_, err := svc.VerifyOTP(context.Background(), "a@b.com", "123456")

	require.Error(t, err)
	assert.Equal(t, "OTP has expired", err.Error())
	// Expired records are not cleaned up here; only a fresh issue overwrites them.
	os.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestVerifyOTP_Mismatch_RecordUntouched(t *testing.T) {
	os := &mockOTPStore{}
	os.On("Get", mock.Anything, "a@b.com").Return(pendingOTP("a@b.com", "123456"), nil)

	svc := newService(os, nil, nil, nil)
	_, err := svc.VerifyOTP(context.Background(), "a@b.com", "654321")

	require.Error(t, err)
	assert.Equal(t, "Invalid OTP", err.Error())
	os.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	os.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestVerifyOTP_Match_NewUser_CreatesVerifiedAndConsumesCode(t *testing.T) {
	os := &mockOTPStore{}
	us := &mockUserStore{}
	os.On("Get", mock.Anything, "a@b.com").Return(pendingOTP("a@b.com", "123456"), nil)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)

	var created *domain.User
	us.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.User)
	}).Return(nil)
	os.On("Delete", mock.Anything, "a@b.com").Return(nil)

	svc := newService(os, us, nil, nil)
	tok, err := svc.VerifyOTP(context.Background(), "a@b.com", "123456")
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.True(t, created.Verified)
	assert.Equal(t, "a@b.com", created.Email)
	assert.NotEmpty(t, created.UserID)

	email, issuedAt, err := token.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)
	assert.WithinDuration(t, time.Now(), issuedAt, 5*time.Second)

	os.AssertCalled(t, "Delete", mock.Anything, "a@b.com")
}

func TestVerifyOTP_Match_ExistingUser_UpdatesVerifiedAndLastLogin(t *testing.T) {
	os := &mockOTPStore{}
	us := &mockUserStore{}
	os.On("Get", mock.Anything, "a@b.com").Return(pendingOTP("a@b.com", "123456"), nil)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{UserID: "u1", Email: "a@b.com"}, nil)
	us.On("Update", mock.Anything, "u1", mock.Anything).Return(nil)
	os.On("Delete", mock.Anything, "a@b.com").Return(nil)

	svc := newService(os, us, nil, nil)
	_, err := svc.VerifyOTP(context.Background(), "a@b.com", "123456")
	require.NoError(t, err)

	updates := us.Calls[1].Arguments.Get(2).(map[string]interface{})
	assert.Equal(t, true, updates["verified"])
	assert.NotEmpty(t, updates["last_login"])
	us.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestVerifyOTP_SecondVerifyWithSameCode_NotFound(t *testing.T) {
	// After consumption the record is gone; the same code must not verify twice.
	os := &mockOTPStore{}
	us := &mockUserStore{}
	os.On("Get", mock.Anything, "a@b.com").Return(pendingOTP("a@b.com", "123456"), nil).Once()
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.Anything).Return(nil)
	os.On("Delete", mock.Anything, "a@b.com").Return(nil)
	os.On("Get", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)

	svc := newService(os, us, nil, nil)
	_, err := svc.VerifyOTP(context.Background(), "a@b.com", "123456")
	require.NoError(t, err)

	_, err = svc.VerifyOTP(context.Background(), "a@b.com", "123456")
	require.Error(t, err)
	assert.Equal(t, "OTP not found", err.Error())
}

func TestVerifyOTP_WelcomeEmailFailure_DoesNotAffectResult(t *testing.T) {
	os := &mockOTPStore{}
	us := &mockUserStore{}
	ml := &mockMailer{}
	os.On("Get", mock.Anything, "a@b.com").Return(pendingOTP("a@b.com", "123456"), nil)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.Anything).Return(nil)
	os.On("Delete", mock.Anything, "a@b.com").Return(nil)
	ml.On("SendEmail", "a@b.com", "Welcome to Dashboard App!", mock.Anything).Return(fmt.Errorf("smtp down"))

	bus := events.NewBus()
	bus.Subscribe(TopicUserVerified, WelcomeEmailListener(ml))

	svc := newService(os, us, ml, bus)
	tok, err := svc.VerifyOTP(context.Background(), "a@b.com", "123456")

	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	ml.AssertCalled(t, "SendEmail", "a@b.com", "Welcome to Dashboard App!", mock.Anything)
}

func TestVerifyOTP_WelcomeEmailSent_AfterUserUpsert(t *testing.T) {
	os := &mockOTPStore{}
	us := &mockUserStore{}
	ml := &mockMailer{}

	var order []string
	os.On("Get", mock.Anything, "a@b.com").Return(pendingOTP("a@b.com", "123456"), nil)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		order = append(order, "user-upsert")
	}).Return(nil)
	os.On("Delete", mock.Anything, "a@b.com").Run(func(mock.Arguments) {
		order = append(order, "otp-delete")
	}).Return(nil)
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		order = append(order, "welcome-email")
	}).Return(nil)

	bus := events.NewBus()
	bus.Subscribe(TopicUserVerified, WelcomeEmailListener(ml))

	svc := newService(os, us, ml, bus)
	_, err := svc.VerifyOTP(context.Background(), "a@b.com", "123456")
	require.NoError(t, err)

	// The valuable state change lands before the best-effort notification.
	assert.Equal(t, []string{"user-upsert", "otp-delete", "welcome-email"}, order)
}

func TestVerifyOTP_DeleteFailure_SurfacesError(t *testing.T) {
	os := &mockOTPStore{}
	us := &mockUserStore{}
	os.On("Get", mock.Anything, "a@b.com").Return(pendingOTP("a@b.com", "123456"), nil)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{UserID: "u1"}, nil)
	us.On("Update", mock.Anything, "u1", mock.Anything).Return(nil)
	os.On("Delete", mock.Anything, "a@b.com").Return(fmt.Errorf("dynamo down"))

	svc := newService(os, us, nil, nil)
	_, err := svc.VerifyOTP(context.Background(), "a@b.com", "123456")
	assert.ErrorContains(t, err, "consume otp")
}

// --- reissue semantics, against a real upsert store ---

type memOTPStore struct{ records map[string]domain.OTP }

func (m *memOTPStore) Put(_ context.Context, o *domain.OTP) error {
	m.records[o.Email] = *o
	return nil
}
func (m *memOTPStore) Get(_ context.Context, email string) (*domain.OTP, error) {
	o, ok := m.records[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}
func (m *memOTPStore) Delete(_ context.Context, email string) error {
	delete(m.records, email)
	return nil
}

func TestReissue_OnlyLatestCodeVerifies(t *testing.T) {
	store := &memOTPStore{records: map[string]domain.OTP{}}
	us := &mockUserStore{}
	ml := &mockMailer{}
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.Anything).Return(nil)
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewService(ServiceDeps{OTPRepo: store, UserRepo: us, Mailer: ml})

	require.NoError(t, svc.RequestOTP(context.Background(), "a@b.com"))
	first := store.records["a@b.com"].Code
	require.NoError(t, svc.RequestOTP(context.Background(), "a@b.com"))
	second := store.records["a@b.com"].Code

	if first != second {
		_, err := svc.VerifyOTP(context.Background(), "a@b.com", first)
		require.Error(t, err)
		assert.Equal(t, "Invalid OTP", err.Error())
	}

	tok, err := svc.VerifyOTP(context.Background(), "a@b.com", second)
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	_, ok := store.records["a@b.com"]
	assert.False(t, ok, "record must be consumed")
}

// --- generateCode ---

func TestGenerateCode_RangeAndWidth(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}
