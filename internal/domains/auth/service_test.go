package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pharmacy-backend/internal/domains/user"
	"pharmacy-backend/internal/infrastructure/queue"
	"pharmacy-backend/pkg/jwt"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) GetByDocumentID(ctx context.Context, documentID string) (*user.User, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context, offset, limit int) ([]*user.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *mockUserRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) (*user.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *mockUserRepository) SetValidated(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockOTPRepository struct {
	mock.Mock
}

func (m *mockOTPRepository) Upsert(ctx context.Context, otp *user.OTP) (*user.OTP, error) {
	args := m.Called(ctx, otp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.OTP), args.Error(1)
}

func (m *mockOTPRepository) GetByUserAndType(ctx context.Context, userID uuid.UUID, otpType string) (*user.OTP, error) {
	args := m.Called(ctx, userID, otpType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.OTP), args.Error(1)
}

func (m *mockOTPRepository) GetByCodeAndType(ctx context.Context, code, otpType string) (*user.OTP, error) {
	args := m.Called(ctx, code, otpType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.OTP), args.Error(1)
}

func (m *mockOTPRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOTPRepository) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}

const (
	testSecret      = "test-secret"
	testAdminOrigin = "http://admin.pharmacy.test"
	storeOrigin     = "http://store.pharmacy.test"
)

func newTestService(userRepo *mockUserRepository, otpRepo *mockOTPRepository, now time.Time) (Service, *jwt.Manager) {
	manager := jwt.NewManager(testSecret, time.Hour)
	svc := NewService(
		userRepo,
		otpRepo,
		manager,
		queue.NewClient("127.0.0.1:6379", "", 0),
		[]string{testAdminOrigin},
		5*time.Minute,
	).(*authService)
	svc.now = func() time.Time { return now }
	return svc, manager
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginRequiresOrigin(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestService(userRepo, new(mockOTPRepository), time.Now())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ana@example.com",
		Password: "password123",
	}, "")

	assert.ErrorIs(t, err, ErrOriginRequired)
	userRepo.AssertNotCalled(t, "GetByEmail")
}

func TestLoginUnknownEmail(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestService(userRepo, new(mockOTPRepository), time.Now())

	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, nil)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "Ana@Example.com",
		Password: "password123",
	}, storeOrigin)

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestService(userRepo, new(mockOTPRepository), time.Now())

	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(&user.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: hashPassword(t, "password123"),
		Role:         user.RoleCustomer,
	}, nil)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong-password",
	}, storeOrigin)

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginNormalizesEmail(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestService(userRepo, new(mockOTPRepository), time.Now())

	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(&user.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: hashPassword(t, "password123"),
		Role:         user.RoleCustomer,
	}, nil)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "  Ana@Example.COM ",
		Password: "password123",
	}, storeOrigin)

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	userRepo.AssertExpectations(t)
}

func TestLoginCustomerBlockedFromAdminOrigin(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestService(userRepo, new(mockOTPRepository), time.Now())

	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(&user.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: hashPassword(t, "password123"),
		Role:         user.RoleCustomer,
	}, nil)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ana@example.com",
		Password: "password123",
	}, testAdminOrigin)

	assert.ErrorIs(t, err, ErrOriginForbidden)
}

func TestLoginAdminFromDashboard(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, manager := newTestService(userRepo, new(mockOTPRepository), time.Now())

	id := uuid.New()
	userRepo.On("GetByEmail", mock.Anything, "admin@example.com").Return(&user.User{
		ID:           id,
		Email:        "admin@example.com",
		PasswordHash: hashPassword(t, "password123"),
		Role:         user.RoleAdmin,
	}, nil)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	}, testAdminOrigin)

	require.NoError(t, err)
	claims, err := manager.ValidateSessionToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.Subject)
	assert.Equal(t, user.RoleAdmin, claims.Role)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestService(userRepo, new(mockOTPRepository), time.Now())

	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(&user.User{ID: uuid.New()}, nil)

	_, err := svc.SignUp(context.Background(), &SignUpRequest{
		FirstName:   "Ana",
		LastName:    "Diaz",
		Email:       "ANA@example.com",
		DocumentID:  "V-12345678",
		PhoneNumber: "+58 412 5551234",
		Password:    "password123",
	})

	assert.ErrorIs(t, err, user.ErrEmailTaken)
	userRepo.AssertNotCalled(t, "Create")
}

func TestSignUpDuplicateDocument(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestService(userRepo, new(mockOTPRepository), time.Now())

	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, nil)
	userRepo.On("GetByDocumentID", mock.Anything, "V-12345678").Return(&user.User{ID: uuid.New()}, nil)

	_, err := svc.SignUp(context.Background(), &SignUpRequest{
		FirstName:   "Ana",
		LastName:    "Diaz",
		Email:       "ana@example.com",
		DocumentID:  "V-12345678",
		PhoneNumber: "+58 412 5551234",
		Password:    "password123",
	})

	assert.ErrorIs(t, err, user.ErrDocumentTaken)
	userRepo.AssertNotCalled(t, "Create")
}

func TestSignUpLowercasesEmail(t *testing.T) {
	userRepo := new(mockUserRepository)
	otpRepo := new(mockOTPRepository)
	svc, _ := newTestService(userRepo, otpRepo, time.Now())

	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, nil)
	userRepo.On("GetByDocumentID", mock.Anything, "V-12345678").Return(nil, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
		return u.Email == "ana@example.com"
	})).Return(&user.User{ID: uuid.New(), FirstName: "Ana", Email: "ana@example.com"}, nil)
	otpRepo.On("GetByUserAndType", mock.Anything, mock.Anything, user.OTPTypeEmailValidation).Return(nil, nil)
	otpRepo.On("Upsert", mock.Anything, mock.Anything).Return(&user.OTP{
		ID:        uuid.New(),
		Code:      "482913",
		Type:      user.OTPTypeEmailValidation,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil)

	resp, err := svc.SignUp(context.Background(), &SignUpRequest{
		FirstName:  "Ana",
		LastName:   "Diaz",
		Email:      "Ana@Example.com",
		DocumentID: "V-12345678",
		Password:   "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", resp.Email)
	userRepo.AssertExpectations(t)
}

func TestResetPasswordExpiredCode(t *testing.T) {
	userRepo := new(mockUserRepository)
	otpRepo := new(mockOTPRepository)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(userRepo, otpRepo, now)

	otpRepo.On("GetByCodeAndType", mock.Anything, "482913", user.OTPTypePasswordRecovery).Return(&user.OTP{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Code:      "482913",
		Type:      user.OTPTypePasswordRecovery,
		ExpiresAt: now.Add(-time.Second),
	}, nil)

	_, err := svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Code:        "482913",
		NewPassword: "new-password-1",
	})

	assert.ErrorIs(t, err, user.ErrOTPExpired)
	userRepo.AssertNotCalled(t, "UpdatePassword")
}

func TestResetPasswordConsumesCode(t *testing.T) {
	userRepo := new(mockUserRepository)
	otpRepo := new(mockOTPRepository)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(userRepo, otpRepo, now)

	userID := uuid.New()
	otpID := uuid.New()

	otpRepo.On("GetByCodeAndType", mock.Anything, "482913", user.OTPTypePasswordRecovery).Return(&user.OTP{
		ID:        otpID,
		UserID:    userID,
		Code:      "482913",
		Type:      user.OTPTypePasswordRecovery,
		ExpiresAt: now.Add(time.Minute),
	}, nil)
	userRepo.On("GetByID", mock.Anything, userID).Return(&user.User{
		ID:    userID,
		Email: "ana@example.com",
		Role:  user.RoleCustomer,
	}, nil)
	userRepo.On("UpdatePassword", mock.Anything, userID, mock.AnythingOfType("string")).Return(nil)
	otpRepo.On("Delete", mock.Anything, otpID).Return(nil)

	resp, err := svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Code:        "482913",
		NewPassword: "new-password-1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	otpRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestService(userRepo, new(mockOTPRepository), time.Now())

	id := uuid.New()
	userRepo.On("GetByID", mock.Anything, id).Return(&user.User{
		ID:           id,
		PasswordHash: hashPassword(t, "password123"),
	}, nil)

	err := svc.ChangePassword(context.Background(), id, &ChangePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "new-password-1",
	})

	assert.ErrorIs(t, err, ErrWrongPassword)
	userRepo.AssertNotCalled(t, "UpdatePassword")
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	userRepo := new(mockUserRepository)
	otpRepo := new(mockOTPRepository)
	svc, _ := newTestService(userRepo, otpRepo, time.Now())

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	err := svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "ghost@example.com"})

	require.NoError(t, err)
	otpRepo.AssertNotCalled(t, "Upsert")
}

func TestGenerateOTPCode(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := generateOTPCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
