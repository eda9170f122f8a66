package country

import "pharmacy-backend/internal/shared/apperr"

var (
	ErrCountryNotFound = apperr.NotFound("country not found")
	ErrInvalidID       = apperr.BadRequest("invalid country id")
)
