package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pharmacy-backend/internal/domains/branch"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, u *User) (*User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepository) GetByDocumentID(ctx context.Context, documentID string) (*User, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, offset, limit int) ([]*User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func (m *mockRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, u *User) (*User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *mockRepository) SetValidated(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockOTPRepository struct {
	mock.Mock
}

func (m *mockOTPRepository) Upsert(ctx context.Context, otp *OTP) (*OTP, error) {
	args := m.Called(ctx, otp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OTP), args.Error(1)
}

func (m *mockOTPRepository) GetByUserAndType(ctx context.Context, userID uuid.UUID, otpType string) (*OTP, error) {
	args := m.Called(ctx, userID, otpType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OTP), args.Error(1)
}

func (m *mockOTPRepository) GetByCodeAndType(ctx context.Context, code, otpType string) (*OTP, error) {
	args := m.Called(ctx, code, otpType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OTP), args.Error(1)
}

func (m *mockOTPRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOTPRepository) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}

type mockBranchRepository struct {
	mock.Mock
}

func (m *mockBranchRepository) Create(ctx context.Context, b *branch.Branch) (*branch.Branch, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*branch.Branch), args.Error(1)
}

func (m *mockBranchRepository) GetByID(ctx context.Context, id uuid.UUID) (*branch.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*branch.Branch), args.Error(1)
}

func (m *mockBranchRepository) List(ctx context.Context, cityID *uuid.UUID, offset, limit int) ([]*branch.Branch, error) {
	args := m.Called(ctx, cityID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*branch.Branch), args.Error(1)
}

func (m *mockBranchRepository) Count(ctx context.Context, cityID *uuid.UUID) (int, error) {
	args := m.Called(ctx, cityID)
	return args.Int(0), args.Error(1)
}

func (m *mockBranchRepository) Update(ctx context.Context, b *branch.Branch) (*branch.Branch, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*branch.Branch), args.Error(1)
}

func (m *mockBranchRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo *mockRepository, otpRepo *mockOTPRepository, branchRepo *mockBranchRepository, now time.Time) Service {
	svc := NewService(repo, otpRepo, branchRepo).(*userService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestValidateOTP(t *testing.T) {
	repo := new(mockRepository)
	otpRepo := new(mockOTPRepository)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc := newTestService(repo, otpRepo, new(mockBranchRepository), now)

	userID := uuid.New()
	otp := &OTP{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      "482913",
		Type:      OTPTypeEmailValidation,
		ExpiresAt: now.Add(2 * time.Minute),
	}

	otpRepo.On("GetByCodeAndType", mock.Anything, "482913", OTPTypeEmailValidation).Return(otp, nil)
	repo.On("SetValidated", mock.Anything, userID).Return(nil)
	otpRepo.On("Delete", mock.Anything, otp.ID).Return(nil)

	err := svc.ValidateOTP(context.Background(), &ValidateOTPRequest{Code: "482913"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
	otpRepo.AssertExpectations(t)
}

func TestValidateOTPUnknownCode(t *testing.T) {
	repo := new(mockRepository)
	otpRepo := new(mockOTPRepository)
	svc := newTestService(repo, otpRepo, new(mockBranchRepository), time.Now())

	otpRepo.On("GetByCodeAndType", mock.Anything, "000000", OTPTypeEmailValidation).Return(nil, nil)

	err := svc.ValidateOTP(context.Background(), &ValidateOTPRequest{Code: "000000"})

	assert.ErrorIs(t, err, ErrOTPNotFound)
	repo.AssertNotCalled(t, "SetValidated")
}

func TestValidateOTPExpiredDoesNotValidate(t *testing.T) {
	repo := new(mockRepository)
	otpRepo := new(mockOTPRepository)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc := newTestService(repo, otpRepo, new(mockBranchRepository), now)

	otp := &OTP{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Code:      "482913",
		Type:      OTPTypeEmailValidation,
		ExpiresAt: now.Add(-time.Minute),
	}
	otpRepo.On("GetByCodeAndType", mock.Anything, "482913", OTPTypeEmailValidation).Return(otp, nil)

	err := svc.ValidateOTP(context.Background(), &ValidateOTPRequest{Code: "482913"})

	assert.ErrorIs(t, err, ErrOTPExpired)
	repo.AssertNotCalled(t, "SetValidated")
	otpRepo.AssertNotCalled(t, "Delete")
}

func TestValidateOTPMalformedCode(t *testing.T) {
	repo := new(mockRepository)
	otpRepo := new(mockOTPRepository)
	svc := newTestService(repo, otpRepo, new(mockBranchRepository), time.Now())

	for _, code := range []string{"", "12345", "abcdef", "1234567"} {
		err := svc.ValidateOTP(context.Background(), &ValidateOTPRequest{Code: code})
		require.Error(t, err, "code %q should be rejected", code)
	}

	otpRepo.AssertNotCalled(t, "GetByCodeAndType")
}

func TestUpdateRejectsInvalidRole(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockOTPRepository), new(mockBranchRepository), time.Now())

	_, err := svc.Update(context.Background(), uuid.New(), &UpdateUserRequest{Role: "SUPERUSER"})

	require.Error(t, err)
	repo.AssertNotCalled(t, "Update")
}

func TestUpdateUnknownBranch(t *testing.T) {
	repo := new(mockRepository)
	branchRepo := new(mockBranchRepository)
	svc := newTestService(repo, new(mockOTPRepository), branchRepo, time.Now())

	id := uuid.New()
	branchID := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(&User{ID: id, Role: RoleCustomer}, nil)
	branchRepo.On("GetByID", mock.Anything, branchID).Return(nil, nil)

	_, err := svc.Update(context.Background(), id, &UpdateUserRequest{BranchID: branchID.String()})

	assert.ErrorIs(t, err, branch.ErrBranchNotFound)
	repo.AssertNotCalled(t, "Update")
}

func TestUpdateBuildsProfileWhenMissing(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockOTPRepository), new(mockBranchRepository), time.Now())

	id := uuid.New()
	existing := &User{ID: id, Role: RoleCustomer}

	repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.Profile != nil && u.Profile.Gender == "F"
	})).Return(existing, nil)

	_, err := svc.Update(context.Background(), id, &UpdateUserRequest{Gender: "F"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
