package auth

import (
	"fmt"
	"time"

	"github.com/baigojahanzaib/ajj-sales/pkg/config"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// TokenIssuer signs and verifies mobile session tokens with an HMAC secret.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer from the token configuration.
func NewTokenIssuer(cfg config.TokenConfig) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
	}
}

// Issue builds and signs a token for the given user.
func (t *TokenIssuer) Issue(userID uuid.UUID, role string) (string, error) {
	now := time.Now()
	tok, err := jwt.NewBuilder().
		Issuer(t.issuer).
		Subject(userID.String()).
		IssuedAt(now).
		Expiration(now.Add(t.ttl)).
		Claim("role", role).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), t.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}

// Verify parses and validates a token string, returning the user id and role.
func (t *TokenIssuer) Verify(tokenString string) (uuid.UUID, string, error) {
	tok, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), t.secret),
		// Standard validation checks - expiration, not before, etc.
		jwt.WithValidate(true),
		// Validate the issuer
		jwt.WithIssuer(t.issuer),
	)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to verify token: %w", err)
	}

	sub, ok := tok.Subject()
	if !ok {
		return uuid.Nil, "", fmt.Errorf("token has no subject")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("token subject is not a user id: %w", err)
	}
	var role string
	if err := tok.Get("role", &role); err != nil {
		return uuid.Nil, "", fmt.Errorf("token has no role claim: %w", err)
	}
	return userID, role, nil
}
