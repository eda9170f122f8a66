package coupon

import "pharmacy-backend/internal/shared/apperr"

var (
	ErrCouponNotFound  = apperr.NotFound("coupon not found")
	ErrInvalidID       = apperr.BadRequest("invalid coupon id")
	ErrCodeTaken       = apperr.BadRequest("coupon code is already in use")
	ErrCouponExpired   = apperr.BadRequest("coupon has expired")
	ErrInvalidDiscount = apperr.BadRequest("invalid discount value")
)
