package auth

import "errors"

// Every collaborator failure is mapped to one of these before it
// leaves the authority; no raw database or cache error reaches the
// transport layer.
var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password. The message is deliberately uniform to avoid username
	// enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized covers a token absent from the registry, a bad
	// signature, and an elapsed expiry. Callers never learn which.
	ErrUnauthorized = errors.New("invalid or expired token")

	// ErrNotFound is logout of an already-absent token.
	ErrNotFound = errors.New("unknown token")

	// ErrBackendUnavailable means the registry or credential store is
	// unreachable. Distinct from the auth failures above so callers
	// can retry instead of treating it as a permanent rejection.
	ErrBackendUnavailable = errors.New("auth backend unavailable")
)
