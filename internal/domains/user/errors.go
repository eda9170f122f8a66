package user

import "pharmacy-backend/internal/shared/apperr"

var (
	ErrUserNotFound  = apperr.NotFound("user not found")
	ErrInvalidID     = apperr.BadRequest("invalid user id")
	ErrOTPNotFound   = apperr.BadRequest("invalid otp code")
	ErrOTPExpired    = apperr.BadRequest("otp code has expired")
	ErrInvalidRole   = apperr.BadRequest("invalid user role")
	ErrEmailTaken    = apperr.BadRequest("email is already registered")
	ErrDocumentTaken = apperr.BadRequest("document id is already registered")
)
