package category

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"pharmacy-backend/internal/shared/apperr"
)

type Service interface {
	Create(ctx context.Context, req *CreateCategoryRequest) (*CategoryResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error)
	List(ctx context.Context, page, pageSize int) ([]CategoryResponse, int, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest) (*CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req *CreateCategoryRequest) (*CategoryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	created, err := s.repo.Create(ctx, &Category{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		return nil, err
	}

	resp := created.ToResponse()
	return &resp, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}

	resp := c.ToResponse()
	return &resp, nil
}

func (s *categoryService) List(ctx context.Context, page, pageSize int) ([]CategoryResponse, int, error) {
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

	categories, err := s.repo.List(ctx, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = c.ToResponse()
	}

	return responses, total, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest) (*CategoryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCategoryNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		existing.Name = name
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		existing.Description = desc
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}
	return s.repo.SoftDelete(ctx, id)
}
