package product

import "pharmacy-backend/internal/shared/apperr"

var (
	ErrProductNotFound = apperr.NotFound("product not found")
	ErrInvalidID       = apperr.BadRequest("invalid product id")
	ErrInvalidPrice    = apperr.BadRequest("invalid presentation price")
	ErrImageTooLarge   = apperr.BadRequest("image exceeds the maximum allowed size")
)
