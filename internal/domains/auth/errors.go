package auth

import "pharmacy-backend/internal/shared/apperr"

var (
	ErrInvalidCredentials = apperr.Unauthorized("invalid email or password")
	ErrOriginRequired     = apperr.Unauthorized("origin header is required")
	ErrOriginForbidden    = apperr.Forbidden("role is not allowed to log in from this origin")
	ErrWrongPassword      = apperr.Unauthorized("current password is incorrect")
)
