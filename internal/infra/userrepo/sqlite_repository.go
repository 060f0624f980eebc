package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/astromaster/internal/domain/auth"
	"github.com/yanqian/astromaster/internal/domain/locale"
)

// SQLiteRepository persists users in the local SQLite database opened by
// sqlitedb.Open.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository wraps an open, migrated database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new user row.
func (r *SQLiteRepository) Create(ctx context.Context, user auth.User) (auth.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}
	user.Language = user.Language.OrDefault()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, birthdate, zodiac, language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Birthdate,
		signColumn(user.Zodiac), languageColumn(user.Language),
		formatTime(user.CreatedAt), formatTime(user.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return auth.User{}, auth.ErrUsernameExists
		}
		return auth.User{}, fmt.Errorf("insert user: %w", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return user, nil
}

// GetByUsername fetches a user by username.
func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (auth.User, bool, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ? LIMIT 1`, username)
}

// GetByEmail fetches a user by email.
func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (auth.User, bool, error) {
	if email == "" {
		return auth.User{}, false, nil
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ? ORDER BY created_at LIMIT 1`, email)
}

// GetByID fetches by primary key.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (auth.User, bool, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id)
}

// Update writes the mutable profile fields.
func (r *SQLiteRepository) Update(ctx context.Context, user auth.User) (auth.User, error) {
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET email = ?, birthdate = ?, zodiac = ?, language = ?,
		    password_hash = COALESCE(NULLIF(?, ''), password_hash), updated_at = ?
		WHERE id = ?`,
		user.Email, user.Birthdate, signColumn(user.Zodiac), languageColumn(user.Language),
		user.PasswordHash, formatTime(user.UpdatedAt), user.ID)
	if err != nil {
		return auth.User{}, fmt.Errorf("update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return auth.User{}, auth.ErrUserNotFound
	}
	updated, found, err := r.GetByID(ctx, user.ID)
	if err != nil {
		return auth.User{}, err
	}
	if !found {
		return auth.User{}, auth.ErrUserNotFound
	}
	return updated, nil
}

// Delete removes the user row; identities cascade.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// GetIdentity returns an identity by provider and subject.
func (r *SQLiteRepository) GetIdentity(ctx context.Context, provider, providerSubject string) (auth.Identity, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+identityColumns+`
		FROM identities
		WHERE provider = ? AND provider_subject = ?`, provider, providerSubject)
	return scanSQLiteIdentity(row)
}

// GetIdentityByUser returns an identity by user and provider.
func (r *SQLiteRepository) GetIdentityByUser(ctx context.Context, userID, provider string) (auth.Identity, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+identityColumns+`
		FROM identities
		WHERE user_id = ? AND provider = ?`, userID, provider)
	return scanSQLiteIdentity(row)
}

// UpsertIdentity stores or updates the identity mapping. Empty refresh tokens
// and emails keep the stored values.
func (r *SQLiteRepository) UpsertIdentity(ctx context.Context, identity auth.Identity) (auth.Identity, error) {
	if identity.UserID == "" {
		return auth.Identity{}, errors.New("userID is required")
	}
	if identity.ID == "" {
		identity.ID = uuid.NewString()
	}
	now := formatTime(time.Now().UTC())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO identities (id, user_id, provider, provider_subject, provider_email, refresh_token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (provider, provider_subject) DO UPDATE
		SET provider_email = COALESCE(NULLIF(excluded.provider_email, ''), identities.provider_email),
		    refresh_token = COALESCE(NULLIF(excluded.refresh_token, ''), identities.refresh_token),
		    updated_at = excluded.updated_at`,
		identity.ID, identity.UserID, identity.Provider, identity.ProviderSubject,
		identity.ProviderEmail, identity.RefreshToken, now, now)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("upsert identity: %w", err)
	}
	stored, found, err := r.GetIdentity(ctx, identity.Provider, identity.ProviderSubject)
	if err != nil {
		return auth.Identity{}, err
	}
	if !found {
		return auth.Identity{}, errors.New("upsert identity returned no row")
	}
	return stored, nil
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (auth.User, bool, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	var (
		user                   auth.User
		sign, language         string
		createdRaw, updatedRaw string
	)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Birthdate,
		&sign, &language, &createdRaw, &updatedRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.User{}, false, nil
	}
	if err != nil {
		return auth.User{}, false, err
	}
	user.Zodiac = parseSignColumn(sign)
	user.Language = locale.Language(language).OrDefault()
	if user.CreatedAt, err = parseTime(createdRaw); err != nil {
		return auth.User{}, false, err
	}
	if user.UpdatedAt, err = parseTime(updatedRaw); err != nil {
		return auth.User{}, false, err
	}
	return user, true, nil
}

func scanSQLiteIdentity(row *sql.Row) (auth.Identity, bool, error) {
	var identity auth.Identity
	var createdRaw, updatedRaw string
	err := row.Scan(&identity.ID, &identity.UserID, &identity.Provider, &identity.ProviderSubject,
		&identity.ProviderEmail, &identity.RefreshToken, &createdRaw, &updatedRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Identity{}, false, nil
	}
	if err != nil {
		return auth.Identity{}, false, err
	}
	if identity.CreatedAt, err = parseTime(createdRaw); err != nil {
		return auth.Identity{}, false, err
	}
	if identity.UpdatedAt, err = parseTime(updatedRaw); err != nil {
		return auth.Identity{}, false, err
	}
	return identity, true, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return t.UTC(), nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var _ auth.Repository = (*SQLiteRepository)(nil)
