package registration

import (
	"context"

	"github.com/bissquit/signup-service/internal/domain"
)

// Repository defines storage operations for registered users.
//
// CreateUser persists the user and its phones atomically and must return
// ErrEmailExists on a unique-constraint violation: the database constraint
// is the real uniqueness guarantee, the service-level lookup is only a
// fast path for the common case.
type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
}
