// Package registration implements the user registration transaction:
// format validation, email uniqueness, aggregate construction, token
// issuance, and persistence, in that order.
package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bissquit/signup-service/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer produces a signed session token for a fully identified user.
type TokenIssuer interface {
	Issue(ctx context.Context, user *domain.User) (string, error)
}

// PhoneInput is a single phone entry of a registration request.
type PhoneInput struct {
	Number      string
	CityCode    string
	CountryCode string
}

// RegisterInput carries the fields of a registration request. Field-level
// presence validation happens at the transport layer; the service assumes
// the fields are non-blank and checks formats and uniqueness.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phones   []PhoneInput
}

// RegisteredUser is the caller-facing view of a persisted user. It never
// exposes the password.
type RegisteredUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Created   time.Time `json:"created"`
	Modified  time.Time `json:"modified"`
	LastLogin time.Time `json:"last_login"`
	Token     string    `json:"token"`
	IsActive  bool      `json:"is_active"`
}

// Service orchestrates the registration pipeline.
type Service struct {
	repo   Repository
	issuer TokenIssuer
}

// NewService creates a new registration service.
func NewService(repo Repository, issuer TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		issuer: issuer,
	}
}

// Register runs the registration transaction. The checks short-circuit:
// email format, then password format, then uniqueness. No token is issued
// and nothing is written for a request that fails any check.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*RegisteredUser, error) {
	if !IsValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}

	if !IsValidPassword(in.Password) {
		return nil, ErrInvalidPassword
	}

	existing, err := s.repo.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	user := newUser(in)

	token, err := s.issuer.Issue(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	user.Token = token

	// Stored credentials must never be recoverable, so the password is
	// hashed before the write; the format check above already ran against
	// the plain text.
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailExists) {
			// Lost the race against a concurrent registration; the unique
			// constraint is the authoritative check.
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return toRegisteredUser(user), nil
}

// newUser builds the aggregate from the request: name and email verbatim,
// one owned phone per entry, a fresh identifier, and a single captured
// instant reused for created, modified, and last login.
func newUser(in RegisterInput) *domain.User {
	now := time.Now().UTC()

	phones := make([]domain.Phone, 0, len(in.Phones))
	for _, p := range in.Phones {
		phones = append(phones, domain.Phone{
			Number:      p.Number,
			CityCode:    p.CityCode,
			CountryCode: p.CountryCode,
		})
	}

	return &domain.User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  in.Password,
		Phones:    phones,
		Created:   now,
		Modified:  now,
		LastLogin: now,
		IsActive:  true,
	}
}

func toRegisteredUser(user *domain.User) *RegisteredUser {
	return &RegisteredUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Created:   user.Created,
		Modified:  user.Modified,
		LastLogin: user.LastLogin,
		Token:     user.Token,
		IsActive:  user.IsActive,
	}
}
