package coupon

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DiscountTypePercent = "PERCENT"
	DiscountTypeFixed   = "FIXED"
)

type Coupon struct {
	ID             uuid.UUID
	Code           string
	DiscountType   string
	Discount       decimal.Decimal
	ExpirationDate time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

func (c *Coupon) Expired(now time.Time) bool {
	return now.After(c.ExpirationDate)
}

type CreateCouponRequest struct {
	Code           string    `json:"code" binding:"required"`
	DiscountType   string    `json:"discountType" binding:"required"`
	Discount       string    `json:"discount" binding:"required"`
	ExpirationDate time.Time `json:"expirationDate" binding:"required"`
}

func (r CreateCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(3, 50)),
		validation.Field(&r.DiscountType, validation.Required, validation.In(DiscountTypePercent, DiscountTypeFixed)),
		validation.Field(&r.Discount, validation.Required),
		validation.Field(&r.ExpirationDate, validation.Required),
	)
}

type UpdateCouponRequest struct {
	Code           string     `json:"code"`
	DiscountType   string     `json:"discountType"`
	Discount       string     `json:"discount"`
	ExpirationDate *time.Time `json:"expirationDate"`
}

func (r UpdateCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.When(r.Code != "", validation.Length(3, 50))),
		validation.Field(&r.DiscountType, validation.When(r.DiscountType != "", validation.In(DiscountTypePercent, DiscountTypeFixed))),
	)
}

type CouponResponse struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	DiscountType   string          `json:"discountType"`
	Discount       decimal.Decimal `json:"discount"`
	ExpirationDate time.Time       `json:"expirationDate"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (c *Coupon) ToResponse() CouponResponse {
	return CouponResponse{
		ID:             c.ID,
		Code:           c.Code,
		DiscountType:   c.DiscountType,
		Discount:       c.Discount,
		ExpirationDate: c.ExpirationDate,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
