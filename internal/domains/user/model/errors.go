package model

import "infinite-ideas-hub/internal/shared/result"

var (
	ErrUserNotFound       = result.NotFound("user not found")
	ErrEmailTaken         = result.Conflict("email already registered")
	ErrInvalidCredentials = result.Unauthenticated("invalid email or password")
	ErrInvalidRole        = result.Invalid("role must be one of user, author, admin")
	ErrInvalidRefresh     = result.Unauthenticated("invalid or expired refresh token")
)
