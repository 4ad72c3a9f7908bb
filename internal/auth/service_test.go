package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/baigojahanzaib/ajj-sales/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockStore is a mock implementation of the Store interface.
type mockStore struct {
	users   map[string]*User
	created *User
}

func (m *mockStore) FindByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *mockStore) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockStore) FindAll(_ context.Context) ([]User, error) {
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockStore) Create(_ context.Context, u *User) (*User, error) {
	if _, exists := m.users[u.Email]; exists {
		return nil, ErrDuplicateEmail
	}
	u.ID = uuid.New()
	m.created = u
	return u, nil
}

func testTokenIssuer() *TokenIssuer {
	return NewTokenIssuer(config.TokenConfig{
		Secret: "0123456789abcdef0123456789abcdef",
		Issuer: "ajj-sales",
		TTL:    time.Hour,
	})
}

func newTestService(store Store) *Service {
	return NewService(store, testTokenIssuer(), slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func Test_Service_Login(t *testing.T) {
	activeRep := &User{
		ID:       uuid.New(),
		Email:    "rep@ajj.example",
		Name:     "Active Rep",
		Role:     RoleSalesRep,
		IsActive: true,
	}
	deactivated := &User{
		ID:       uuid.New(),
		Email:    "gone@ajj.example",
		Name:     "Former Rep",
		Role:     RoleSalesRep,
		IsActive: false,
	}

	testCases := []struct {
		name        string
		dto         LoginDto
		expectError error
	}{
		{
			name: "Valid credentials",
			dto:  LoginDto{Email: "rep@ajj.example", Password: "correct-horse"},
		},
		{
			name:        "Wrong password",
			dto:         LoginDto{Email: "rep@ajj.example", Password: "wrong-horse"},
			expectError: ErrInvalidCredentials,
		},
		{
			name:        "Unknown email",
			dto:         LoginDto{Email: "nobody@ajj.example", Password: "correct-horse"},
			expectError: ErrInvalidCredentials,
		},
		{
			name:        "Deactivated account",
			dto:         LoginDto{Email: "gone@ajj.example", Password: "correct-horse"},
			expectError: ErrInvalidCredentials,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			activeRep.PasswordHash = hashOf(t, "correct-horse")
			deactivated.PasswordHash = hashOf(t, "correct-horse")
			svc := newTestService(&mockStore{users: map[string]*User{
				activeRep.Email:   activeRep,
				deactivated.Email: deactivated,
			}})

			// when
			session, err := svc.Login(context.Background(), tc.dto)

			// then
			if tc.expectError != nil {
				require.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, session)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, activeRep, session.User)

			// the issued token round-trips through the verifier
			userID, role, err := testTokenIssuer().Verify(session.Token)
			require.NoError(t, err)
			assert.Equal(t, activeRep.ID, userID)
			assert.Equal(t, RoleSalesRep, role)
		})
	}
}

func Test_Service_CreateUser(t *testing.T) {
	t.Run("Password is stored as a verifiable hash", func(t *testing.T) {
		// given
		store := &mockStore{users: map[string]*User{}}
		svc := newTestService(store)

		// when
		created, err := svc.CreateUser(context.Background(), CreateUserDto{
			Email:    "new@ajj.example",
			Name:     "New Rep",
			Role:     RoleSalesRep,
			Password: "opensesame",
		})

		// then
		require.NoError(t, err)
		assert.True(t, created.IsActive)
		assert.Equal(t, RoleSalesRep, created.Role)
		assert.NotEqual(t, "opensesame", store.created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.created.PasswordHash), []byte("opensesame")))
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		// given
		store := &mockStore{users: map[string]*User{
			"taken@ajj.example": {Email: "taken@ajj.example"},
		}}
		svc := newTestService(store)

		// when
		_, err := svc.CreateUser(context.Background(), CreateUserDto{
			Email:    "taken@ajj.example",
			Name:     "Someone",
			Role:     RoleAdmin,
			Password: "opensesame",
		})

		// then
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func Test_TokenIssuer_Verify(t *testing.T) {
	userID := uuid.New()

	t.Run("Issued token verifies", func(t *testing.T) {
		// given
		issuer := testTokenIssuer()
		token, err := issuer.Issue(userID, RoleAdmin)
		require.NoError(t, err)

		// when
		gotID, gotRole, err := issuer.Verify(token)

		// then
		require.NoError(t, err)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, RoleAdmin, gotRole)
	})

	t.Run("Token signed with a different secret is rejected", func(t *testing.T) {
		// given
		other := NewTokenIssuer(config.TokenConfig{
			Secret: "ffffffffffffffffffffffffffffffff",
			Issuer: "ajj-sales",
			TTL:    time.Hour,
		})
		token, err := other.Issue(userID, RoleSalesRep)
		require.NoError(t, err)

		// when
		_, _, err = testTokenIssuer().Verify(token)

		// then
		require.Error(t, err)
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		// given
		expired := NewTokenIssuer(config.TokenConfig{
			Secret: "0123456789abcdef0123456789abcdef",
			Issuer: "ajj-sales",
			TTL:    -time.Minute,
		})
		token, err := expired.Issue(userID, RoleSalesRep)
		require.NoError(t, err)

		// when
		_, _, err = testTokenIssuer().Verify(token)

		// then
		require.Error(t, err)
	})

	t.Run("Garbage input is rejected", func(t *testing.T) {
		_, _, err := testTokenIssuer().Verify("not-a-token")
		require.Error(t, err)
	})
}
