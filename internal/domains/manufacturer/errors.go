package manufacturer

import "pharmacy-backend/internal/shared/apperr"

var (
	ErrManufacturerNotFound = apperr.NotFound("manufacturer not found")
	ErrInvalidID            = apperr.BadRequest("invalid manufacturer id")
)
