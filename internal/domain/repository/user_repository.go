package repository

import (
	"context"

	"gomarket/internal/domain/entity"
)

// UserRepository defines the credential store operations.
type UserRepository interface {
	// Create persists a new user and fills in the store-assigned fields.
	// Returns apperr.ErrUsernameTaken when the username is already in use.
	Create(ctx context.Context, u *entity.User) error

	// GetByUsername returns (nil, nil) when no such account exists;
	// absence is a normal outcome, not an error.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
