package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service implements authentication and account management. Passwords are
// stored as bcrypt hashes and compared in constant time; the stored hash
// never leaves this package.
type Service struct {
	store  Store
	tokens *TokenIssuer
	logger *slog.Logger
}

// NewService creates a new auth Service with the provided store and token issuer.
func NewService(store Store, tokens *TokenIssuer, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		logger: logger.With("component", "auth"),
	}
}

// LoginDto represents the data transfer object for a login request.
type LoginDto struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// CreateUserDto represents the data transfer object for creating a new account.
type CreateUserDto struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=200"`
	Role     string `json:"role" validate:"required,oneof=admin sales_rep"`
	Password string `json:"password" validate:"required,min=8"`
}

// Session is a successful login result: the user record sans password plus
// a signed token.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Login validates the credentials and returns a session.
// Returns ErrInvalidCredentials for an unknown email, a wrong password or a
// deactivated account; the three cases are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, dto LoginDto) (*Session, error) {
	user, err := s.store.FindByEmail(ctx, dto.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	s.logger.InfoContext(ctx, "User logged in", "user_id", user.ID, "role", user.Role)
	return &Session{User: user, Token: token}, nil
}

// CreateUser hashes the password and stores a new account.
func (s *Service) CreateUser(ctx context.Context, dto CreateUserDto) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return s.store.Create(ctx, &User{
		Email:        dto.Email,
		Name:         dto.Name,
		Role:         dto.Role,
		PasswordHash: string(hash),
		IsActive:     true,
	})
}

// FindByID retrieves a user by id.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.store.FindByID(ctx, id)
}

// FindAll retrieves all users for the admin panel.
func (s *Service) FindAll(ctx context.Context) ([]User, error) {
	return s.store.FindAll(ctx)
}
