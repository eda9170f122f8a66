package city

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"pharmacy-backend/internal/domains/state"
	"pharmacy-backend/internal/shared/apperr"
)

type Service interface {
	Create(ctx context.Context, req *CreateCityRequest) (*CityResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CityResponse, error)
	List(ctx context.Context, stateID *uuid.UUID, page, pageSize int) ([]CityResponse, int, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateCityRequest) (*CityResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type cityService struct {
	repo      Repository
	stateRepo state.Repository
}

func NewService(repo Repository, stateRepo state.Repository) Service {
	return &cityService{repo: repo, stateRepo: stateRepo}
}

func (s *cityService) resolveState(ctx context.Context, id uuid.UUID) error {
	st, err := s.stateRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if st == nil {
		return state.ErrStateNotFound
	}
	return nil
}

func (s *cityService) Create(ctx context.Context, req *CreateCityRequest) (*CityResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	stateID, err := uuid.Parse(req.StateID)
	if err != nil {
		return nil, apperr.BadRequest("invalid state id")
	}

	if err := s.resolveState(ctx, stateID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &City{
		Name:    strings.TrimSpace(req.Name),
		StateID: stateID,
	})
	if err != nil {
		return nil, err
	}

	resp := created.ToResponse()
	return &resp, nil
}

func (s *cityService) GetByID(ctx context.Context, id uuid.UUID) (*CityResponse, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCityNotFound
	}

	resp := c.ToResponse()
	return &resp, nil
}

func (s *cityService) List(ctx context.Context, stateID *uuid.UUID, page, pageSize int) ([]CityResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	total, err := s.repo.Count(ctx, stateID)
	if err != nil {
		return nil, 0, err
	}

	cities, err := s.repo.List(ctx, stateID, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CityResponse, len(cities))
	for i, c := range cities {
		responses[i] = c.ToResponse()
	}

	return responses, total, nil
}

func (s *cityService) Update(ctx context.Context, id uuid.UUID, req *UpdateCityRequest) (*CityResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCityNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		existing.Name = name
	}

	if req.StateID != "" {
		stateID, err := uuid.Parse(req.StateID)
		if err != nil {
			return nil, apperr.BadRequest("invalid state id")
		}
		if err := s.resolveState(ctx, stateID); err != nil {
			return nil, err
		}
		existing.StateID = stateID
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *cityService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}
	return s.repo.SoftDelete(ctx, id)
}
