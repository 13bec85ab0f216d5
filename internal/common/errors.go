// Package common defines shared constants and sentinel errors used across
// client and server layers of gophledger. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrNicknameTaken = errors.New("nickname already taken")

	// Service-level errors.
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrInvalidArgument = errors.New("invalid argument")
)

var (
	// ErrFailedPrecondition reports an operation refused because of the
	// current state, e.g. deleting a user that still owns entries.
	ErrFailedPrecondition = errors.New("failed precondition")
)
