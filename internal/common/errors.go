// Package common defines shared constants and sentinel errors used across
// the layers of the catalog service. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrorUserDisabled marks a valid credential whose account is disabled.
	// Distinct from ErrorUnauthorized: the HTTP layer maps it to 400, not 401.
	ErrorUserDisabled = errors.New("user disabled")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
