// Package auth manages sales force accounts and mobile session tokens.
package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrDuplicateEmail = errors.New("a user with this email already exists")

// Roles assignable to an account.
const (
	RoleAdmin    = "admin"
	RoleSalesRep = "sales_rep"
)

// User is a sales force account. PasswordHash is a bcrypt hash and is never
// serialized.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
