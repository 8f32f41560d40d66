package repositories

import (
	"context"

	"scribbly/internal/domain/models"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	// Create persists a new user. Returns ErrConflict when the normalized
	// username is already taken.
	Create(ctx context.Context, user *models.User) error

	// GetByUsername retrieves a user by normalized username
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*models.User, error)
}
