package coupon

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, c *Coupon) (*Coupon, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Coupon), args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Coupon), args.Error(1)
}

func (m *mockRepository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Coupon), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, offset, limit int) ([]*Coupon, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Coupon), args.Error(1)
}

func (m *mockRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, c *Coupon) (*Coupon, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Coupon), args.Error(1)
}

func (m *mockRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo *mockRepository, now time.Time) Service {
	svc := NewService(repo).(*couponService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestParseDiscount(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		discountType string
		wantErr      bool
		want         string
	}{
		{name: "percent in range", raw: "15.5", discountType: DiscountTypePercent, want: "15.5"},
		{name: "percent at cap", raw: "100", discountType: DiscountTypePercent, want: "100"},
		{name: "percent over cap", raw: "100.01", discountType: DiscountTypePercent, wantErr: true},
		{name: "fixed over 100 allowed", raw: "250", discountType: DiscountTypeFixed, want: "250"},
		{name: "zero rejected", raw: "0", discountType: DiscountTypeFixed, wantErr: true},
		{name: "negative rejected", raw: "-5", discountType: DiscountTypePercent, wantErr: true},
		{name: "garbage rejected", raw: "ten", discountType: DiscountTypeFixed, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := parseDiscount(tt.raw, tt.discountType)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDiscount)
				return
			}
			require.NoError(t, err)
			assert.True(t, d.Equal(decimal.RequireFromString(tt.want)))
		})
	}
}

func TestCreateUppercasesCode(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, time.Now())

	expiration := time.Now().Add(24 * time.Hour)

	repo.On("GetByCode", mock.Anything, "SUMMER20").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Coupon) bool {
		return c.Code == "SUMMER20" && c.DiscountType == DiscountTypePercent
	})).Return(&Coupon{ID: uuid.New(), Code: "SUMMER20"}, nil)

	resp, err := svc.Create(context.Background(), &CreateCouponRequest{
		Code:           "  summer20 ",
		DiscountType:   DiscountTypePercent,
		Discount:       "20",
		ExpirationDate: expiration,
	})

	require.NoError(t, err)
	assert.Equal(t, "SUMMER20", resp.Code)
	repo.AssertExpectations(t)
}

func TestCreateDuplicateCode(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, time.Now())

	repo.On("GetByCode", mock.Anything, "SUMMER20").Return(&Coupon{ID: uuid.New(), Code: "SUMMER20"}, nil)

	_, err := svc.Create(context.Background(), &CreateCouponRequest{
		Code:           "summer20",
		DiscountType:   DiscountTypePercent,
		Discount:       "20",
		ExpirationDate: time.Now().Add(24 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrCodeTaken)
	repo.AssertNotCalled(t, "Create")
}

func TestGetByCodeRejectsExpired(t *testing.T) {
	repo := new(mockRepository)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	repo.On("GetByCode", mock.Anything, "SUMMER20").Return(&Coupon{
		ID:             uuid.New(),
		Code:           "SUMMER20",
		DiscountType:   DiscountTypePercent,
		Discount:       decimal.NewFromInt(20),
		ExpirationDate: now.Add(-time.Hour),
	}, nil)

	_, err := svc.GetByCode(context.Background(), "summer20")

	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestGetByCodeNormalizesInput(t *testing.T) {
	repo := new(mockRepository)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	repo.On("GetByCode", mock.Anything, "SUMMER20").Return(&Coupon{
		ID:             uuid.New(),
		Code:           "SUMMER20",
		DiscountType:   DiscountTypePercent,
		Discount:       decimal.NewFromInt(20),
		ExpirationDate: now.Add(time.Hour),
	}, nil)

	resp, err := svc.GetByCode(context.Background(), "  summer20  ")

	require.NoError(t, err)
	assert.Equal(t, "SUMMER20", resp.Code)
}

func TestGetByCodeUnknown(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, time.Now())

	repo.On("GetByCode", mock.Anything, "NOPE42").Return(nil, nil)

	_, err := svc.GetByCode(context.Background(), "nope42")

	assert.ErrorIs(t, err, ErrCouponNotFound)
}
