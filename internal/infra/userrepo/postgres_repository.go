package userrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/astromaster/internal/domain/auth"
	"github.com/yanqian/astromaster/internal/domain/locale"
)

const uniqueViolation = "23505"

const userColumns = `id, username, email, password_hash, birthdate, zodiac, language, created_at, updated_at`

// PostgresRepository persists users in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new user row.
func (r *PostgresRepository) Create(ctx context.Context, user auth.User) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, username, email, password_hash, birthdate, zodiac, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+userColumns,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Birthdate,
		signColumn(user.Zodiac), languageColumn(user.Language), user.CreatedAt, user.UpdatedAt)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.User{}, auth.ErrUsernameExists
		}
		return auth.User{}, err
	}
	return created, nil
}

// GetByUsername fetches a user by username.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (auth.User, bool, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1 LIMIT 1`, username)
}

// GetByEmail fetches a user by email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (auth.User, bool, error) {
	if email == "" {
		return auth.User{}, false, nil
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 ORDER BY created_at LIMIT 1`, email)
}

// GetByID fetches by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (auth.User, bool, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 LIMIT 1`, id)
}

// Update writes the mutable profile fields.
func (r *PostgresRepository) Update(ctx context.Context, user auth.User) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET email = $2, birthdate = $3, zodiac = $4, language = $5,
		    password_hash = COALESCE(NULLIF($6, ''), password_hash), updated_at = $7
		WHERE id = $1
		RETURNING `+userColumns,
		user.ID, user.Email, user.Birthdate, signColumn(user.Zodiac), languageColumn(user.Language),
		user.PasswordHash, user.UpdatedAt)
	updated, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.User{}, auth.ErrUserNotFound
	}
	return updated, err
}

// Delete removes the user row; identities cascade.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

const identityColumns = `id, user_id, provider, provider_subject, provider_email, refresh_token, created_at, updated_at`

// GetIdentity returns an identity by provider and subject.
func (r *PostgresRepository) GetIdentity(ctx context.Context, provider, providerSubject string) (auth.Identity, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+identityColumns+`
		FROM user_identities
		WHERE provider = $1 AND provider_subject = $2
	`, provider, providerSubject)
	return scanIdentityRow(row)
}

// GetIdentityByUser returns an identity by user and provider.
func (r *PostgresRepository) GetIdentityByUser(ctx context.Context, userID, provider string) (auth.Identity, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+identityColumns+`
		FROM user_identities
		WHERE user_id = $1 AND provider = $2
	`, userID, provider)
	return scanIdentityRow(row)
}

// UpsertIdentity stores or updates the identity mapping. Empty refresh tokens
// and emails keep the stored values.
func (r *PostgresRepository) UpsertIdentity(ctx context.Context, identity auth.Identity) (auth.Identity, error) {
	now := time.Now().UTC()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO user_identities (id, user_id, provider, provider_subject, provider_email, refresh_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (provider, provider_subject) DO UPDATE
		SET provider_email = COALESCE(NULLIF(EXCLUDED.provider_email, ''), user_identities.provider_email),
		    refresh_token = COALESCE(NULLIF(EXCLUDED.refresh_token, ''), user_identities.refresh_token),
		    updated_at = EXCLUDED.updated_at
		RETURNING `+identityColumns,
		identity.ID, identity.UserID, identity.Provider, identity.ProviderSubject,
		identity.ProviderEmail, identity.RefreshToken, now)
	stored, found, err := scanIdentityRow(row)
	if err != nil {
		return auth.Identity{}, err
	}
	if !found {
		return auth.Identity{}, errors.New("upsert identity returned no row")
	}
	return stored, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (auth.User, bool, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return auth.User{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return auth.User{}, false, rows.Err()
	}
	user, err := scanUser(rows)
	if err != nil {
		return auth.User{}, false, err
	}
	return user, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (auth.User, error) {
	var (
		user            auth.User
		sign, language  string
		created, update time.Time
	)
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Birthdate,
		&sign, &language, &created, &update); err != nil {
		return auth.User{}, err
	}
	user.Zodiac = parseSignColumn(sign)
	user.Language = locale.Language(language).OrDefault()
	user.CreatedAt = created.UTC()
	user.UpdatedAt = update.UTC()
	return user, nil
}

func scanIdentityRow(row rowScanner) (auth.Identity, bool, error) {
	var identity auth.Identity
	var created, updated time.Time
	err := row.Scan(&identity.ID, &identity.UserID, &identity.Provider, &identity.ProviderSubject,
		&identity.ProviderEmail, &identity.RefreshToken, &created, &updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.Identity{}, false, nil
	}
	if err != nil {
		return auth.Identity{}, false, err
	}
	identity.CreatedAt = created.UTC()
	identity.UpdatedAt = updated.UTC()
	return identity, true, nil
}

var _ auth.Repository = (*PostgresRepository)(nil)
