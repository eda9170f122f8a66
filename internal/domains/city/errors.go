package city

import "pharmacy-backend/internal/shared/apperr"

var (
	ErrCityNotFound = apperr.NotFound("city not found")
	ErrInvalidID    = apperr.BadRequest("invalid city id")
)
