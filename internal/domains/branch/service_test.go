package branch

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pharmacy-backend/internal/domains/city"
	"pharmacy-backend/internal/shared/apperr"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, b *Branch) (*Branch, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Branch), args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Branch), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, cityID *uuid.UUID, offset, limit int) ([]*Branch, error) {
	args := m.Called(ctx, cityID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Branch), args.Error(1)
}

func (m *mockRepository) Count(ctx context.Context, cityID *uuid.UUID) (int, error) {
	args := m.Called(ctx, cityID)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, b *Branch) (*Branch, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Branch), args.Error(1)
}

func (m *mockRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockCityRepository struct {
	mock.Mock
}

func (m *mockCityRepository) Create(ctx context.Context, c *city.City) (*city.City, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*city.City), args.Error(1)
}

func (m *mockCityRepository) GetByID(ctx context.Context, id uuid.UUID) (*city.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*city.City), args.Error(1)
}

func (m *mockCityRepository) List(ctx context.Context, stateID *uuid.UUID, offset, limit int) ([]*city.City, error) {
	args := m.Called(ctx, stateID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*city.City), args.Error(1)
}

func (m *mockCityRepository) Count(ctx context.Context, stateID *uuid.UUID) (int, error) {
	args := m.Called(ctx, stateID)
	return args.Int(0), args.Error(1)
}

func (m *mockCityRepository) Update(ctx context.Context, c *city.City) (*city.City, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*city.City), args.Error(1)
}

func (m *mockCityRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func floatPtr(f float64) *float64 { return &f }

func validCreateRequest(cityID uuid.UUID) *CreateBranchRequest {
	return &CreateBranchRequest{
		Name:      "Main Branch",
		Address:   "Av. Libertador 1234",
		Latitude:  floatPtr(10.491),
		Longitude: floatPtr(-66.902),
		CityID:    cityID.String(),
	}
}

func TestCreateBranch(t *testing.T) {
	repo := new(mockRepository)
	cityRepo := new(mockCityRepository)
	svc := NewService(repo, cityRepo)

	cityID := uuid.New()
	cityRepo.On("GetByID", mock.Anything, cityID).Return(&city.City{ID: cityID}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *Branch) bool {
		return b.Name == "Main Branch" && b.CityID == cityID
	})).Return(&Branch{ID: uuid.New(), Name: "Main Branch", CityID: cityID}, nil)

	resp, err := svc.Create(context.Background(), validCreateRequest(cityID))

	require.NoError(t, err)
	assert.Equal(t, cityID, resp.CityID)
	repo.AssertExpectations(t)
}

func TestCreateBranchUnknownCity(t *testing.T) {
	repo := new(mockRepository)
	cityRepo := new(mockCityRepository)
	svc := NewService(repo, cityRepo)

	cityID := uuid.New()
	cityRepo.On("GetByID", mock.Anything, cityID).Return(nil, nil)

	_, err := svc.Create(context.Background(), validCreateRequest(cityID))

	assert.ErrorIs(t, err, city.ErrCityNotFound)
	assert.Equal(t, 404, apperr.Status(err))
	repo.AssertNotCalled(t, "Create")
}

func TestCreateBranchCoordinateBounds(t *testing.T) {
	repo := new(mockRepository)
	cityRepo := new(mockCityRepository)
	svc := NewService(repo, cityRepo)

	tests := []struct {
		name      string
		latitude  float64
		longitude float64
	}{
		{name: "latitude above range", latitude: 90.5, longitude: 0},
		{name: "latitude below range", latitude: -91, longitude: 0},
		{name: "longitude above range", latitude: 0, longitude: 180.1},
		{name: "longitude below range", latitude: 0, longitude: -181},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest(uuid.New())
			req.Latitude = floatPtr(tt.latitude)
			req.Longitude = floatPtr(tt.longitude)

			_, err := svc.Create(context.Background(), req)

			require.Error(t, err)
			assert.Equal(t, 400, apperr.Status(err))
		})
	}

	repo.AssertNotCalled(t, "Create")
}

func TestUpdateBranchMovesCity(t *testing.T) {
	repo := new(mockRepository)
	cityRepo := new(mockCityRepository)
	svc := NewService(repo, cityRepo)

	id := uuid.New()
	oldCity := uuid.New()
	newCity := uuid.New()
	existing := &Branch{ID: id, Name: "North", Address: "Somewhere 1", CityID: oldCity}

	repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	cityRepo.On("GetByID", mock.Anything, newCity).Return(&city.City{ID: newCity}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(b *Branch) bool {
		return b.CityID == newCity
	})).Return(&Branch{ID: id, Name: "North", CityID: newCity}, nil)

	resp, err := svc.Update(context.Background(), id, &UpdateBranchRequest{CityID: newCity.String()})

	require.NoError(t, err)
	assert.Equal(t, newCity, resp.CityID)
	repo.AssertExpectations(t)
}

func TestUpdateBranchNotFound(t *testing.T) {
	repo := new(mockRepository)
	cityRepo := new(mockCityRepository)
	svc := NewService(repo, cityRepo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.Update(context.Background(), id, &UpdateBranchRequest{Name: "West"})

	assert.ErrorIs(t, err, ErrBranchNotFound)
}
