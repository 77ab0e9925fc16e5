// Package common defines shared constants and sentinel errors used across
// client and server layers of the admin console. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth flow errors. ErrInvalidCredentials deliberately covers both an
	// unknown email and a wrong password so that the two are indistinguishable
	// to a caller.
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrorUnauthenticated  = errors.New("unauthenticated")

	// Token lifecycle errors. The session resolver collapses all three into
	// ErrorUnauthenticated; they exist so logs can state which one happened.
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature mismatch")
)
