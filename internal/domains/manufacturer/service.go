package manufacturer

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"pharmacy-backend/internal/domains/country"
	"pharmacy-backend/internal/shared/apperr"
)

type Service interface {
	Create(ctx context.Context, req *CreateManufacturerRequest) (*ManufacturerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ManufacturerResponse, error)
	List(ctx context.Context, countryID *uuid.UUID, page, pageSize int) ([]ManufacturerResponse, int, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateManufacturerRequest) (*ManufacturerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type manufacturerService struct {
	repo        Repository
	countryRepo country.Repository
}

func NewService(repo Repository, countryRepo country.Repository) Service {
	return &manufacturerService{repo: repo, countryRepo: countryRepo}
}

func (s *manufacturerService) resolveCountry(ctx context.Context, id uuid.UUID) error {
	c, err := s.countryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return country.ErrCountryNotFound
	}
	return nil
}

func (s *manufacturerService) Create(ctx context.Context, req *CreateManufacturerRequest) (*ManufacturerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	countryID, err := uuid.Parse(req.CountryID)
	if err != nil {
		return nil, apperr.BadRequest("invalid country id")
	}

	if err := s.resolveCountry(ctx, countryID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &Manufacturer{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		CountryID:   countryID,
	})
	if err != nil {
		return nil, err
	}

	resp := created.ToResponse()
	return &resp, nil
}

func (s *manufacturerService) GetByID(ctx context.Context, id uuid.UUID) (*ManufacturerResponse, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrManufacturerNotFound
	}

	resp := m.ToResponse()
	return &resp, nil
}

func (s *manufacturerService) List(ctx context.Context, countryID *uuid.UUID, page, pageSize int) ([]ManufacturerResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	total, err := s.repo.Count(ctx, countryID)
	if err != nil {
		return nil, 0, err
	}

	manufacturers, err := s.repo.List(ctx, countryID, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ManufacturerResponse, len(manufacturers))
	for i, m := range manufacturers {
		responses[i] = m.ToResponse()
	}

	return responses, total, nil
}

func (s *manufacturerService) Update(ctx context.Context, id uuid.UUID, req *UpdateManufacturerRequest) (*ManufacturerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrManufacturerNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		existing.Name = name
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		existing.Description = desc
	}

	if req.CountryID != "" {
		countryID, err := uuid.Parse(req.CountryID)
		if err != nil {
			return nil, apperr.BadRequest("invalid country id")
		}
		if err := s.resolveCountry(ctx, countryID); err != nil {
			return nil, err
		}
		existing.CountryID = countryID
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *manufacturerService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}
	return s.repo.SoftDelete(ctx, id)
}
