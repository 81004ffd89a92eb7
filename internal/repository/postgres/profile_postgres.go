package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/repository"
)

// PostgresProfileRepository implements ProfileRepository on a pgx pool.
// Owner and username uniqueness are enforced by database constraints;
// violations surface as the repository sentinel errors.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresProfileRepository(pool *pgxpool.Pool) repository.ProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

const profileColumns = `id, owner, username, display_name, bio`

func (r *PostgresProfileRepository) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	created, err := r.scanProfile(ctx,
		`INSERT INTO profiles (owner, username, display_name, bio)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+profileColumns,
		profile.Owner, profile.Username, profile.DisplayName, profile.Bio)
	if err != nil {
		switch {
		case isUniqueViolation(err, "profiles_owner_key"):
			return nil, repository.ErrProfileExists
		case isUniqueViolation(err, "profiles_username_key"):
			return nil, repository.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return created, nil
}

func (r *PostgresProfileRepository) GetByOwner(ctx context.Context, ownerID string) (*models.Profile, error) {
	return r.scanProfile(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE owner = $1`, ownerID)
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return r.scanProfile(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

func (r *PostgresProfileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return r.scanProfile(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE username = $1`, username)
}

func (r *PostgresProfileRepository) UpdateByOwner(ctx context.Context, ownerID string, update repository.ProfileUpdate) (*models.Profile, error) {
	updated, err := r.scanProfile(ctx,
		`UPDATE profiles
		 SET username     = COALESCE($2::varchar, username),
		     display_name = COALESCE($3::text, display_name),
		     bio          = COALESCE($4::text, bio)
		 WHERE owner = $1
		 RETURNING `+profileColumns,
		ownerID, update.Username, update.DisplayName, update.Bio)
	if err != nil {
		if isUniqueViolation(err, "profiles_username_key") {
			return nil, repository.ErrUsernameTaken
		}
		return nil, err
	}
	return updated, nil
}

func (r *PostgresProfileRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE owner = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrProfileNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) SearchByUsername(ctx context.Context, query string, limit int) ([]*models.Profile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE username ILIKE '%' || $1 || '%' ORDER BY username LIMIT $2`,
		query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}
	defer rows.Close()

	profiles := []*models.Profile{}
	for rows.Next() {
		p, err := scanProfileRow(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *PostgresProfileRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

func (r *PostgresProfileRepository) scanProfile(ctx context.Context, query string, args ...any) (*models.Profile, error) {
	return scanProfileRow(r.pool.QueryRow(ctx, query, args...))
}

func scanProfileRow(row pgx.Row) (*models.Profile, error) {
	var (
		p   models.Profile
		bio sql.NullString
	)
	err := row.Scan(&p.ID, &p.Owner, &p.Username, &p.DisplayName, &bio)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Bio = bio.String
	return &p, nil
}
