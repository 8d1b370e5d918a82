// Package common defines shared constants and sentinel errors used across
// the Threadhub backend. Callers should use errors.Is to match these values:
// repositories and services wrap them with fmt.Errorf("...: %w", ...) so the
// kind survives while the message accumulates operation context.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrorConflict marks a uniqueness violation (duplicate email or
	// username on create).
	ErrorConflict = errors.New("already exists")

	// Operation-kind errors. Each mutation/query family wraps unexpected
	// persistence failures into exactly one of these so callers can match
	// the kind without parsing messages.
	ErrorValidation   = errors.New("validation failure")
	ErrorSubscription = errors.New("subscription failure")
	ErrorLookup       = errors.New("lookup failure")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
