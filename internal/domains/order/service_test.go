package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pharmacy-backend/internal/domains/branch"
	"pharmacy-backend/internal/domains/product"
	"pharmacy-backend/internal/domains/user"
	"pharmacy-backend/internal/shared/apperr"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, o *Order) (*Order, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter, offset, limit int) ([]*Order, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *mockRepository) ListAll(ctx context.Context, filter ListFilter) ([]*Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *mockRepository) Count(ctx context.Context, filter ListFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *mockRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, p *product.Product) (*product.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, filter product.ListFilter, offset, limit int) ([]*product.Product, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *mockProductRepository) Count(ctx context.Context, filter product.ListFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *mockProductRepository) Update(ctx context.Context, p *product.Product) (*product.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *mockProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepository) AddImage(ctx context.Context, productID uuid.UUID, url string) (*product.ProductImage, error) {
	args := m.Called(ctx, productID, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.ProductImage), args.Error(1)
}

func (m *mockProductRepository) GetPresentationByID(ctx context.Context, id uuid.UUID) (*product.ProductPresentation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.ProductPresentation), args.Error(1)
}

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) Export(orders []*Order) ([]byte, error) {
	args := m.Called(orders)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type testDeps struct {
	repo        *mockRepository
	userRepo    *mockUserRepository
	branchRepo  *mockBranchRepository
	productRepo *mockProductRepository
	exporter    *mockExporter
}

func newTestService() (Service, testDeps) {
	deps := testDeps{
		repo:        new(mockRepository),
		userRepo:    new(mockUserRepository),
		branchRepo:  new(mockBranchRepository),
		productRepo: new(mockProductRepository),
		exporter:    new(mockExporter),
	}
	svc := NewService(deps.repo, deps.userRepo, deps.branchRepo, deps.productRepo, deps.exporter)
	return svc, deps
}

func TestCreateSnapshotsPrices(t *testing.T) {
	svc, deps := newTestService()

	userID := uuid.New()
	branchID := uuid.New()
	ppA := uuid.New()
	ppB := uuid.New()

	deps.userRepo.On("GetByID", mock.Anything, userID).Return(&user.User{ID: userID}, nil)
	deps.branchRepo.On("GetByID", mock.Anything, branchID).Return(&branch.Branch{ID: branchID}, nil)
	deps.productRepo.On("GetPresentationByID", mock.Anything, ppA).Return(&product.ProductPresentation{
		ID:    ppA,
		Price: decimal.RequireFromString("12.50"),
	}, nil)
	deps.productRepo.On("GetPresentationByID", mock.Anything, ppB).Return(&product.ProductPresentation{
		ID:    ppB,
		Price: decimal.RequireFromString("3.25"),
	}, nil)

	deps.repo.On("Create", mock.Anything, mock.MatchedBy(func(o *Order) bool {
		if o.Status != StatusPending || len(o.Details) != 2 {
			return false
		}
		// 2 * 12.50 + 4 * 3.25 = 38.00
		return o.Total.Equal(decimal.RequireFromString("38.00")) &&
			o.Details[0].UnitPrice.Equal(decimal.RequireFromString("12.50")) &&
			o.Details[0].Subtotal.Equal(decimal.RequireFromString("25.00"))
	})).Return(&Order{
		ID:       uuid.New(),
		UserID:   userID,
		BranchID: branchID,
		Status:   StatusPending,
		Total:    decimal.RequireFromString("38.00"),
	}, nil)

	resp, err := svc.Create(context.Background(), &CreateOrderRequest{
		UserID:   userID.String(),
		BranchID: branchID.String(),
		Details: []DetailInput{
			{ProductPresentationID: ppA.String(), Quantity: 2},
			{ProductPresentationID: ppB.String(), Quantity: 4},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	deps.repo.AssertExpectations(t)
}

func TestCreateUnknownPresentation(t *testing.T) {
	svc, deps := newTestService()

	userID := uuid.New()
	branchID := uuid.New()
	ppID := uuid.New()

	deps.userRepo.On("GetByID", mock.Anything, userID).Return(&user.User{ID: userID}, nil)
	deps.branchRepo.On("GetByID", mock.Anything, branchID).Return(&branch.Branch{ID: branchID}, nil)
	deps.productRepo.On("GetPresentationByID", mock.Anything, ppID).Return(nil, nil)

	_, err := svc.Create(context.Background(), &CreateOrderRequest{
		UserID:   userID.String(),
		BranchID: branchID.String(),
		Details:  []DetailInput{{ProductPresentationID: ppID.String(), Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, 404, apperr.Status(err))
	deps.repo.AssertNotCalled(t, "Create")
}

func TestCreateUnknownUser(t *testing.T) {
	svc, deps := newTestService()

	userID := uuid.New()
	deps.userRepo.On("GetByID", mock.Anything, userID).Return(nil, nil)

	_, err := svc.Create(context.Background(), &CreateOrderRequest{
		UserID:   userID.String(),
		BranchID: uuid.New().String(),
		Details:  []DetailInput{{ProductPresentationID: uuid.New().String(), Quantity: 1}},
	})

	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusCanceled, true},
		{StatusPending, StatusDelivered, false},
		{StatusPending, StatusInTransit, false},
		{StatusApproved, StatusInTransit, true},
		{StatusApproved, StatusCanceled, true},
		{StatusApproved, StatusDelivered, false},
		{StatusInTransit, StatusDelivered, true},
		{StatusInTransit, StatusCanceled, false},
		{StatusDelivered, StatusCanceled, false},
		{StatusCanceled, StatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestUpdateStatusRejectsIllegalJump(t *testing.T) {
	svc, deps := newTestService()

	id := uuid.New()
	deps.repo.On("GetByID", mock.Anything, id).Return(&Order{ID: id, Status: StatusPending}, nil)

	_, err := svc.UpdateStatus(context.Background(), id, &UpdateStatusRequest{Status: StatusDelivered})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	deps.repo.AssertNotCalled(t, "UpdateStatus")
}

func TestUpdateStatusApprovesPending(t *testing.T) {
	svc, deps := newTestService()

	id := uuid.New()
	deps.repo.On("GetByID", mock.Anything, id).Return(&Order{ID: id, Status: StatusPending}, nil)
	deps.repo.On("UpdateStatus", mock.Anything, id, StatusApproved).Return(&Order{ID: id, Status: StatusApproved}, nil)

	resp, err := svc.UpdateStatus(context.Background(), id, &UpdateStatusRequest{Status: StatusApproved})

	require.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	deps.repo.AssertExpectations(t)
}

func TestExportDelegatesToExporter(t *testing.T) {
	svc, deps := newTestService()

	status := StatusDelivered
	filter := ListFilter{Status: &status}
	orders := []*Order{{ID: uuid.New(), Status: StatusDelivered, CreatedAt: time.Now()}}

	deps.repo.On("ListAll", mock.Anything, filter).Return(orders, nil)
	deps.exporter.On("Export", orders).Return([]byte("xlsx-bytes"), nil)

	data, err := svc.Export(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx-bytes"), data)
	deps.exporter.AssertExpectations(t)
}
