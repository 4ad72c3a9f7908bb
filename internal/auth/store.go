package auth

import (
	"context"

	"github.com/google/uuid"
)

// Store is an interface for user storage operations.
type Store interface {
	// FindByEmail retrieves a user by email.
	// Returns ErrUserNotFound if no user exists with the given email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID retrieves a user by its unique identifier.
	// Returns ErrUserNotFound if no user exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindAll returns all users.
	FindAll(ctx context.Context) ([]User, error)

	// Create adds a new user.
	// Returns ErrDuplicateEmail if the email is already taken.
	Create(ctx context.Context, u *User) (*User, error)
}
