package promo

import "pharmacy-backend/internal/shared/apperr"

var (
	ErrPromoNotFound   = apperr.NotFound("promo not found")
	ErrInvalidID       = apperr.BadRequest("invalid promo id")
	ErrInvalidDiscount = apperr.BadRequest("invalid discount percent")
	ErrInvalidWindow   = apperr.BadRequest("promo window must start before it expires")
)
