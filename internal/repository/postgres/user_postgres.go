package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/repository"
)

// PostgresUserRepository implements UserRepository on a pgx pool.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &PostgresUserRepository{pool: pool}
}

// uniqueViolation is the Postgres error code raised by duplicate keys.
const uniqueViolation = "23505"

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func (r *PostgresUserRepository) GetByEmailAndProvider(ctx context.Context, email string, provider models.Provider) (*models.User, error) {
	return r.scanUser(ctx,
		`SELECT id, email, oauth_provider FROM users WHERE email = $1 AND oauth_provider = $2 LIMIT 1`,
		email, provider.String())
}

func (r *PostgresUserRepository) Create(ctx context.Context, email string, provider models.Provider) (*models.User, error) {
	user, err := r.scanUser(ctx,
		`INSERT INTO users (email, oauth_provider) VALUES ($1, $2) RETURNING id, email, oauth_provider`,
		nullableEmail(email), provider.String())
	if err != nil {
		if isUniqueViolation(err, "users_email_provider_key") {
			return nil, repository.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.scanUser(ctx,
		`SELECT id, email, oauth_provider FROM users WHERE id = $1`, id)
}

func (r *PostgresUserRepository) scanUser(ctx context.Context, query string, args ...any) (*models.User, error) {
	var (
		u        models.User
		email    sql.NullString
		provider string
	)
	err := r.pool.QueryRow(ctx, query, args...).Scan(&u.ID, &email, &provider)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Email = email.String
	u.Provider = models.Provider(provider)
	return &u, nil
}

// nullableEmail stores a missing provider email as NULL rather than the
// empty string so the partial unique index does not collide distinct
// users whose provider withheld the address.
func nullableEmail(email string) any {
	if email == "" {
		return nil
	}
	return email
}
