package coupon

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pharmacy-backend/internal/shared/apperr"
)

type Service interface {
	Create(ctx context.Context, req *CreateCouponRequest) (*CouponResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CouponResponse, error)
	GetByCode(ctx context.Context, code string) (*CouponResponse, error)
	List(ctx context.Context, page, pageSize int) ([]CouponResponse, int, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateCouponRequest) (*CouponResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type couponService struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &couponService{repo: repo, now: time.Now}
}

// parseDiscount accepts a positive decimal; percent discounts are also
// capped at 100.
func parseDiscount(raw, discountType string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, ErrInvalidDiscount
	}
	if discountType == DiscountTypePercent && d.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, ErrInvalidDiscount
	}
	return d, nil
}

func (s *couponService) Create(ctx context.Context, req *CreateCouponRequest) (*CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	existing, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCodeTaken
	}

	discount, err := parseDiscount(req.Discount, req.DiscountType)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &Coupon{
		Code:           code,
		DiscountType:   req.DiscountType,
		Discount:       discount,
		ExpirationDate: req.ExpirationDate,
	})
	if err != nil {
		return nil, err
	}

	resp := created.ToResponse()
	return &resp, nil
}

func (s *couponService) GetByID(ctx context.Context, id uuid.UUID) (*CouponResponse, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCouponNotFound
	}

	resp := c.ToResponse()
	return &resp, nil
}

// GetByCode is the redemption lookup; expired coupons are rejected.
func (s *couponService) GetByCode(ctx context.Context, code string) (*CouponResponse, error) {
	c, err := s.repo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCouponNotFound
	}
	if c.Expired(s.now()) {
		return nil, ErrCouponExpired
	}

	resp := c.ToResponse()
	return &resp, nil
}

func (s *couponService) List(ctx context.Context, page, pageSize int) ([]CouponResponse, int, error) {
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

	coupons, err := s.repo.List(ctx, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CouponResponse, len(coupons))
	for i, c := range coupons {
		responses[i] = c.ToResponse()
	}

	return responses, total, nil
}

func (s *couponService) Update(ctx context.Context, id uuid.UUID, req *UpdateCouponRequest) (*CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCouponNotFound
	}

	if code := strings.ToUpper(strings.TrimSpace(req.Code)); code != "" && code != existing.Code {
		other, err := s.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrCodeTaken
		}
		existing.Code = code
	}

	if req.DiscountType != "" {
		existing.DiscountType = req.DiscountType
	}
	if req.Discount != "" {
		discount, err := parseDiscount(req.Discount, existing.DiscountType)
		if err != nil {
			return nil, err
		}
		existing.Discount = discount
	}
	if req.ExpirationDate != nil {
		existing.ExpirationDate = *req.ExpirationDate
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *couponService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}
	return s.repo.SoftDelete(ctx, id)
}
