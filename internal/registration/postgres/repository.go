// Package postgres provides the PostgreSQL implementation of the
// registration repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/bissquit/signup-service/internal/domain"
	"github.com/bissquit/signup-service/internal/registration"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the registration.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetUserByEmail retrieves a user and its phones by exact email match.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password, token, created, modified, last_login, is_active
		FROM users
		WHERE email = $1
	`
	var user domain.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Token,
		&user.Created,
		&user.Modified,
		&user.LastLogin,
		&user.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, registration.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	phones, err := r.getUserPhones(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get user phones: %w", err)
	}
	user.Phones = phones

	return &user, nil
}

// CreateUser persists the user and its phones in a single transaction.
// A unique-constraint violation on the email column maps to
// registration.ErrEmailExists: the constraint, not the service-level
// lookup, is what actually enforces uniqueness under concurrency.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userQuery := `
		INSERT INTO users (id, name, email, password, token, created, modified, last_login, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = tx.Exec(ctx, userQuery,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		user.Token,
		user.Created,
		user.Modified,
		user.LastLogin,
		user.IsActive,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return registration.ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	phoneQuery := `
		INSERT INTO phones (user_id, number, citycode, countrycode)
		VALUES ($1, $2, $3, $4)
	`
	for _, phone := range user.Phones {
		_, err = tx.Exec(ctx, phoneQuery,
			user.ID,
			phone.Number,
			phone.CityCode,
			phone.CountryCode,
		)
		if err != nil {
			return fmt.Errorf("insert phone: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *Repository) getUserPhones(ctx context.Context, userID string) ([]domain.Phone, error) {
	query := `
		SELECT number, citycode, countrycode
		FROM phones
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	phones := make([]domain.Phone, 0)
	for rows.Next() {
		var phone domain.Phone
		if err := rows.Scan(&phone.Number, &phone.CityCode, &phone.CountryCode); err != nil {
			return nil, err
		}
		phones = append(phones, phone)
	}

	return phones, rows.Err()
}
