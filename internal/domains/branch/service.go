package branch

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"pharmacy-backend/internal/domains/city"
	"pharmacy-backend/internal/shared/apperr"
)

type Service interface {
	Create(ctx context.Context, req *CreateBranchRequest) (*BranchResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BranchResponse, error)
	List(ctx context.Context, cityID *uuid.UUID, page, pageSize int) ([]BranchResponse, int, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateBranchRequest) (*BranchResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type branchService struct {
	repo     Repository
	cityRepo city.Repository
}

func NewService(repo Repository, cityRepo city.Repository) Service {
	return &branchService{repo: repo, cityRepo: cityRepo}
}

func (s *branchService) resolveCity(ctx context.Context, id uuid.UUID) error {
	c, err := s.cityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return city.ErrCityNotFound
	}
	return nil
}

func (s *branchService) Create(ctx context.Context, req *CreateBranchRequest) (*BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	cityID, err := uuid.Parse(req.CityID)
	if err != nil {
		return nil, apperr.BadRequest("invalid city id")
	}

	if err := s.resolveCity(ctx, cityID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &Branch{
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		CityID:    cityID,
	})
	if err != nil {
		return nil, err
	}

	resp := created.ToResponse()
	return &resp, nil
}

func (s *branchService) GetByID(ctx context.Context, id uuid.UUID) (*BranchResponse, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBranchNotFound
	}

	resp := b.ToResponse()
	return &resp, nil
}

func (s *branchService) List(ctx context.Context, cityID *uuid.UUID, page, pageSize int) ([]BranchResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	total, err := s.repo.Count(ctx, cityID)
	if err != nil {
		return nil, 0, err
	}

	branches, err := s.repo.List(ctx, cityID, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BranchResponse, len(branches))
	for i, b := range branches {
		responses[i] = b.ToResponse()
	}

	return responses, total, nil
}

func (s *branchService) Update(ctx context.Context, id uuid.UUID, req *UpdateBranchRequest) (*BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrBranchNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		existing.Name = name
	}
	if addr := strings.TrimSpace(req.Address); addr != "" {
		existing.Address = addr
	}
	if req.Latitude != nil {
		existing.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		existing.Longitude = *req.Longitude
	}

	if req.CityID != "" {
		cityID, err := uuid.Parse(req.CityID)
		if err != nil {
			return nil, apperr.BadRequest("invalid city id")
		}
		if err := s.resolveCity(ctx, cityID); err != nil {
			return nil, err
		}
		existing.CityID = cityID
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *branchService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}
	return s.repo.SoftDelete(ctx, id)
}
