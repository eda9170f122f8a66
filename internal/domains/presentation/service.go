package presentation

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"pharmacy-backend/internal/shared/apperr"
)

type Service interface {
	Create(ctx context.Context, req *CreatePresentationRequest) (*PresentationResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PresentationResponse, error)
	List(ctx context.Context, page, pageSize int) ([]PresentationResponse, int, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdatePresentationRequest) (*PresentationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type presentationService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &presentationService{repo: repo}
}

func (s *presentationService) Create(ctx context.Context, req *CreatePresentationRequest) (*PresentationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	created, err := s.repo.Create(ctx, &Presentation{
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		Quantity:        req.Quantity,
		MeasurementUnit: strings.TrimSpace(req.MeasurementUnit),
	})
	if err != nil {
		return nil, err
	}

	resp := created.ToResponse()
	return &resp, nil
}

func (s *presentationService) GetByID(ctx context.Context, id uuid.UUID) (*PresentationResponse, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPresentationNotFound
	}

	resp := p.ToResponse()
	return &resp, nil
}

func (s *presentationService) List(ctx context.Context, page, pageSize int) ([]PresentationResponse, int, error) {
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

	presentations, err := s.repo.List(ctx, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PresentationResponse, len(presentations))
	for i, p := range presentations {
		responses[i] = p.ToResponse()
	}

	return responses, total, nil
}

func (s *presentationService) Update(ctx context.Context, id uuid.UUID, req *UpdatePresentationRequest) (*PresentationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrPresentationNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		existing.Name = name
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		existing.Description = desc
	}
	if req.Quantity != nil {
		existing.Quantity = *req.Quantity
	}
	if unit := strings.TrimSpace(req.MeasurementUnit); unit != "" {
		existing.MeasurementUnit = unit
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *presentationService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}
	return s.repo.SoftDelete(ctx, id)
}
