package country

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, c *Country) (*Country, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Country), args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Country), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, offset, limit int) ([]*Country, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Country), args.Error(1)
}

func (m *mockRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, c *Country) (*Country, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Country), args.Error(1)
}

func (m *mockRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateTrimsName(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Country) bool {
		return c.Name == "Colombia"
	})).Return(&Country{ID: uuid.New(), Name: "Colombia"}, nil)

	resp, err := svc.Create(context.Background(), &CreateCountryRequest{Name: "  Colombia  "})

	require.NoError(t, err)
	assert.Equal(t, "Colombia", resp.Name)
	repo.AssertExpectations(t)
}

func TestCreateRejectsBlankName(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), &CreateCountryRequest{Name: ""})

	require.Error(t, err)
	repo.AssertNotCalled(t, "Create")
}

func TestGetByIDNotFound(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, ErrCountryNotFound)
}

func TestGetByIDNilID(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	_, err := svc.GetByID(context.Background(), uuid.Nil)

	assert.ErrorIs(t, err, ErrInvalidID)
	repo.AssertNotCalled(t, "GetByID")
}

func TestListNormalizesPagination(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	countries := []*Country{
		{ID: uuid.New(), Name: "Argentina", CreatedAt: time.Now()},
		{ID: uuid.New(), Name: "Brazil", CreatedAt: time.Now()},
	}

	repo.On("Count", mock.Anything).Return(12, nil)
	repo.On("List", mock.Anything, 0, 10).Return(countries, nil)

	results, total, err := svc.List(context.Background(), 0, -1)

	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Len(t, results, 2)
	repo.AssertExpectations(t)
}

func TestListOffset(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	repo.On("Count", mock.Anything).Return(50, nil)
	repo.On("List", mock.Anything, 40, 20).Return([]*Country{}, nil)

	_, _, err := svc.List(context.Background(), 3, 20)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateKeepsNameWhenBlank(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	id := uuid.New()
	existing := &Country{ID: id, Name: "Peru"}

	repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *Country) bool {
		return c.Name == "Peru"
	})).Return(existing, nil)

	resp, err := svc.Update(context.Background(), id, &UpdateCountryRequest{Name: "   "})

	require.NoError(t, err)
	assert.Equal(t, "Peru", resp.Name)
	repo.AssertExpectations(t)
}

func TestUpdateNotFound(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.Update(context.Background(), id, &UpdateCountryRequest{Name: "Chile"})

	assert.ErrorIs(t, err, ErrCountryNotFound)
	repo.AssertNotCalled(t, "Update")
}

func TestDeletePropagatesRepoError(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	id := uuid.New()
	repoErr := errors.New("connection reset")
	repo.On("SoftDelete", mock.Anything, id).Return(repoErr)

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, repoErr)
}
