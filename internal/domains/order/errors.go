package order

import "pharmacy-backend/internal/shared/apperr"

var (
	ErrOrderNotFound     = apperr.NotFound("order not found")
	ErrInvalidID         = apperr.BadRequest("invalid order id")
	ErrInvalidStatus     = apperr.BadRequest("invalid order status")
	ErrInvalidTransition = apperr.BadRequest("order status transition is not allowed")
	ErrEmptyOrder        = apperr.BadRequest("order must contain at least one item")
)
