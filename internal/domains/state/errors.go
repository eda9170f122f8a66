package state

import "pharmacy-backend/internal/shared/apperr"

var (
	ErrStateNotFound = apperr.NotFound("state not found")
	ErrInvalidID     = apperr.BadRequest("invalid state id")
)
