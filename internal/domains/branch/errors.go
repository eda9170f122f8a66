package branch

import "pharmacy-backend/internal/shared/apperr"

var (
	ErrBranchNotFound = apperr.NotFound("branch not found")
	ErrInvalidID      = apperr.BadRequest("invalid branch id")
)
