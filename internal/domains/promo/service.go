package promo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pharmacy-backend/internal/domains/product"
	"pharmacy-backend/internal/shared/apperr"
)

type Service interface {
	Create(ctx context.Context, req *CreatePromoRequest) (*PromoResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PromoResponse, error)
	List(ctx context.Context, page, pageSize int) ([]PromoResponse, int, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdatePromoRequest) (*PromoResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type promoService struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &promoService{repo: repo, productRepo: productRepo}
}

func parseDiscountPercent(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() || d.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, ErrInvalidDiscount
	}
	return d, nil
}

func (s *promoService) resolveProducts(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return []uuid.UUID{}, nil
	}

	ids := make([]uuid.UUID, len(raw))
	for i, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, apperr.BadRequest("invalid product id")
		}
		p, err := s.productRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, product.ErrProductNotFound
		}
		ids[i] = id
	}

	return ids, nil
}

func (s *promoService) Create(ctx context.Context, req *CreatePromoRequest) (*PromoResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	if !req.StartAt.Before(req.ExpiredAt) {
		return nil, ErrInvalidWindow
	}

	discount, err := parseDiscountPercent(req.DiscountPercent)
	if err != nil {
		return nil, err
	}

	productIDs, err := s.resolveProducts(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &Promo{
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		DiscountPercent: discount,
		StartAt:         req.StartAt,
		ExpiredAt:       req.ExpiredAt,
		ProductIDs:      productIDs,
	})
	if err != nil {
		return nil, err
	}

	resp := created.ToResponse()
	return &resp, nil
}

func (s *promoService) GetByID(ctx context.Context, id uuid.UUID) (*PromoResponse, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPromoNotFound
	}

	resp := p.ToResponse()
	return &resp, nil
}

func (s *promoService) List(ctx context.Context, page, pageSize int) ([]PromoResponse, int, error) {
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

	promos, err := s.repo.List(ctx, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PromoResponse, len(promos))
	for i, p := range promos {
		responses[i] = p.ToResponse()
	}

	return responses, total, nil
}

func (s *promoService) Update(ctx context.Context, id uuid.UUID, req *UpdatePromoRequest) (*PromoResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrPromoNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		existing.Name = name
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		existing.Description = desc
	}
	if req.DiscountPercent != "" {
		discount, err := parseDiscountPercent(req.DiscountPercent)
		if err != nil {
			return nil, err
		}
		existing.DiscountPercent = discount
	}
	if req.StartAt != nil {
		existing.StartAt = *req.StartAt
	}
	if req.ExpiredAt != nil {
		existing.ExpiredAt = *req.ExpiredAt
	}
	if !existing.StartAt.Before(existing.ExpiredAt) {
		return nil, ErrInvalidWindow
	}

	if req.ProductIDs != nil {
		productIDs, err := s.resolveProducts(ctx, req.ProductIDs)
		if err != nil {
			return nil, err
		}
		existing.ProductIDs = productIDs
	} else {
		existing.ProductIDs = nil
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *promoService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}
	return s.repo.SoftDelete(ctx, id)
}
