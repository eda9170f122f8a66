package promo

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Promo applies a percentage discount to a set of products during a
// time window.
type Promo struct {
	ID              uuid.UUID
	Name            string
	Description     string
	DiscountPercent decimal.Decimal
	StartAt         time.Time
	ExpiredAt       time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time

	ProductIDs []uuid.UUID
}

func (p *Promo) Active(now time.Time) bool {
	return !now.Before(p.StartAt) && now.Before(p.ExpiredAt)
}

type CreatePromoRequest struct {
	Name            string    `json:"name" binding:"required"`
	Description     string    `json:"description"`
	DiscountPercent string    `json:"discountPercent" binding:"required"`
	StartAt         time.Time `json:"startAt" binding:"required"`
	ExpiredAt       time.Time `json:"expiredAt" binding:"required"`
	ProductIDs      []string  `json:"productIds"`
}

func (r CreatePromoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.DiscountPercent, validation.Required),
		validation.Field(&r.StartAt, validation.Required),
		validation.Field(&r.ExpiredAt, validation.Required),
		validation.Field(&r.ProductIDs, validation.Each(is.UUID)),
	)
}

type UpdatePromoRequest struct {
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	DiscountPercent string     `json:"discountPercent"`
	StartAt         *time.Time `json:"startAt"`
	ExpiredAt       *time.Time `json:"expiredAt"`
	ProductIDs      []string   `json:"productIds"`
}

func (r UpdatePromoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.When(r.Name != "", validation.Length(1, 255))),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.ProductIDs, validation.Each(is.UUID)),
	)
}

type PromoResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	StartAt         time.Time       `json:"startAt"`
	ExpiredAt       time.Time       `json:"expiredAt"`
	ProductIDs      []uuid.UUID     `json:"productIds"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (p *Promo) ToResponse() PromoResponse {
	productIDs := p.ProductIDs
	if productIDs == nil {
		productIDs = []uuid.UUID{}
	}
	return PromoResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		DiscountPercent: p.DiscountPercent,
		StartAt:         p.StartAt,
		ExpiredAt:       p.ExpiredAt,
		ProductIDs:      productIDs,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
