package category

import "pharmacy-backend/internal/shared/apperr"

var (
	ErrCategoryNotFound = apperr.NotFound("category not found")
	ErrInvalidID        = apperr.BadRequest("invalid category id")
)
