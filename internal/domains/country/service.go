package country

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"pharmacy-backend/internal/shared/apperr"
)

type Service interface {
	Create(ctx context.Context, req *CreateCountryRequest) (*CountryResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CountryResponse, error)
	List(ctx context.Context, page, pageSize int) ([]CountryResponse, int, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateCountryRequest) (*CountryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type countryService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &countryService{repo: repo}
}

func (s *countryService) Create(ctx context.Context, req *CreateCountryRequest) (*CountryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	created, err := s.repo.Create(ctx, &Country{Name: strings.TrimSpace(req.Name)})
	if err != nil {
		return nil, err
	}

	resp := created.ToResponse()
	return &resp, nil
}

func (s *countryService) GetByID(ctx context.Context, id uuid.UUID) (*CountryResponse, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCountryNotFound
	}

	resp := c.ToResponse()
	return &resp, nil
}

func (s *countryService) List(ctx context.Context, page, pageSize int) ([]CountryResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	countries, err := s.repo.List(ctx, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CountryResponse, len(countries))
	for i, c := range countries {
		responses[i] = c.ToResponse()
	}

	return responses, total, nil
}

func (s *countryService) Update(ctx context.Context, id uuid.UUID, req *UpdateCountryRequest) (*CountryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCountryNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		existing.Name = name
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *countryService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}
	return s.repo.SoftDelete(ctx, id)
}
