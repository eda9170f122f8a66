package state

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"pharmacy-backend/internal/domains/country"
	"pharmacy-backend/internal/shared/apperr"
)

type Service interface {
	Create(ctx context.Context, req *CreateStateRequest) (*StateResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StateResponse, error)
	List(ctx context.Context, countryID *uuid.UUID, page, pageSize int) ([]StateResponse, int, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateStateRequest) (*StateResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type stateService struct {
	repo        Repository
	countryRepo country.Repository
}

func NewService(repo Repository, countryRepo country.Repository) Service {
	return &stateService{repo: repo, countryRepo: countryRepo}
}

// resolveCountry verifies the referenced country exists and is not
// soft-deleted. The country's own not-found error is surfaced so the
// caller sees which relation failed.
func (s *stateService) resolveCountry(ctx context.Context, id uuid.UUID) error {
	c, err := s.countryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return country.ErrCountryNotFound
	}
	return nil
}

func (s *stateService) Create(ctx context.Context, req *CreateStateRequest) (*StateResponse, error) {
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

	created, err := s.repo.Create(ctx, &State{
		Name:      strings.TrimSpace(req.Name),
		CountryID: countryID,
	})
	if err != nil {
		return nil, err
	}

	resp := created.ToResponse()
	return &resp, nil
}

func (s *stateService) GetByID(ctx context.Context, id uuid.UUID) (*StateResponse, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}

	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrStateNotFound
	}

	resp := st.ToResponse()
	return &resp, nil
}

func (s *stateService) List(ctx context.Context, countryID *uuid.UUID, page, pageSize int) ([]StateResponse, int, error) {
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

	states, err := s.repo.List(ctx, countryID, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StateResponse, len(states))
	for i, st := range states {
		responses[i] = st.ToResponse()
	}

	return responses, total, nil
}

func (s *stateService) Update(ctx context.Context, id uuid.UUID, req *UpdateStateRequest) (*StateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrStateNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		existing.Name = name
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

func (s *stateService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}
	return s.repo.SoftDelete(ctx, id)
}
