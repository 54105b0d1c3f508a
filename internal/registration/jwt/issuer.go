// Package jwt issues signed session tokens for registered users.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bissquit/signup-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Config contains token issuance configuration.
type Config struct {
	SecretKey string
	TokenTTL  time.Duration
}

// UserClaims are the claims embedded in a session token.
type UserClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Issuer signs session tokens with a symmetric key (HS256).
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates a token issuer. A missing secret or non-positive TTL
// is a process-level misconfiguration and fails construction, not
// individual requests.
func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("jwt token ttl must be positive")
	}

	return &Issuer{
		secret: []byte(cfg.SecretKey),
		ttl:    cfg.TokenTTL,
	}, nil
}

// Issue signs a token for the user. Claims carry the user id, email, and
// name; the registered claims carry the id as subject plus issued-at and
// expiry timestamps. Two calls for the same user produce different tokens
// because the issued-at instant differs.
func (i *Issuer) Issue(_ context.Context, user *domain.User) (string, error) {
	now := time.Now()

	claims := UserClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
