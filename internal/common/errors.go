// Package common defines shared constants and sentinel errors used across
// the client and server layers of TaskKeeper. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Input validation errors. Wrap with field detail where available.
	ErrValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Transport-level routing signal: the remote backend is not reachable.
	// Not surfaced to users; the dispatcher treats it as "go local".
	ErrUnavailable = errors.New("backend unavailable")
)
