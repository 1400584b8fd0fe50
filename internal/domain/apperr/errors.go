// Package apperr defines the sentinel errors shared across services and
// handlers. Handlers translate them into HTTP status codes at the request
// boundary; nothing below the boundary knows about status codes.
package apperr

import "errors"

var (
	// ErrValidation covers missing or malformed input.
	ErrValidation = errors.New("invalid input")

	// ErrUsernameTaken is raised by the credential store on a duplicate
	// username, backed by the unique constraint rather than a prior read.
	ErrUsernameTaken = errors.New("user already exists")

	// ErrInvalidCredentials is deliberately shared between unknown-user and
	// wrong-password so responses cannot be used for username enumeration.
	ErrInvalidCredentials = errors.New("invalid user or password")

	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrMissingToken = errors.New("missing authorization token")
	ErrInvalidToken = errors.New("invalid token")
)
