package presentation

import "pharmacy-backend/internal/shared/apperr"

var (
	ErrPresentationNotFound = apperr.NotFound("presentation not found")
	ErrInvalidID            = apperr.BadRequest("invalid presentation id")
)
