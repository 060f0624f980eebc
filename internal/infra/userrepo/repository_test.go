package userrepo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/astromaster/internal/domain/auth"
	"github.com/yanqian/astromaster/internal/domain/locale"
	"github.com/yanqian/astromaster/internal/domain/zodiac"
	"github.com/yanqian/astromaster/internal/infra/sqlitedb"
)

func repositories(t *testing.T) map[string]auth.Repository {
	t.Helper()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return map[string]auth.Repository{
		"memory": NewMemoryRepository(),
		"sqlite": NewSQLiteRepository(db),
	}
}

func newUser(id, username string) auth.User {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	return auth.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Birthdate:    "1990-04-01",
		Zodiac:       zodiac.Aries,
		Language:     locale.English,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestRepositoryUserLifecycle(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := repo.Create(ctx, newUser("u-1", "stargazer"))
			require.NoError(t, err)
			require.Equal(t, "u-1", created.ID)

			_, err = repo.Create(ctx, newUser("u-2", "stargazer"))
			require.ErrorIs(t, err, auth.ErrUsernameExists)

			byName, found, err := repo.GetByUsername(ctx, "stargazer")
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, zodiac.Aries, byName.Zodiac)
			require.Equal(t, locale.English, byName.Language)
			require.Equal(t, "1990-04-01", byName.Birthdate)
			require.True(t, byName.CreatedAt.Equal(created.CreatedAt))

			byEmail, found, err := repo.GetByEmail(ctx, "stargazer@example.com")
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, "u-1", byEmail.ID)

			_, found, err = repo.GetByEmail(ctx, "")
			require.NoError(t, err)
			require.False(t, found)

			_, found, err = repo.GetByID(ctx, "missing")
			require.NoError(t, err)
			require.False(t, found)

			byName.Email = ""
			byName.Birthdate = "1990-08-01"
			byName.Zodiac = zodiac.Leo
			byName.Language = locale.Chinese
			byName.PasswordHash = ""
			byName.UpdatedAt = byName.UpdatedAt.Add(time.Hour)
			updated, err := repo.Update(ctx, byName)
			require.NoError(t, err)
			require.Equal(t, zodiac.Leo, updated.Zodiac)
			require.Equal(t, locale.Chinese, updated.Language)
			require.Empty(t, updated.Email)
			require.Equal(t, "hash", updated.PasswordHash)

			_, err = repo.Update(ctx, newUser("missing", "ghost"))
			require.ErrorIs(t, err, auth.ErrUserNotFound)
		})
	}
}

func TestRepositoryUnknownSignRoundTrip(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user := newUser("u-9", "nobirthday")
			user.Birthdate = ""
			user.Zodiac = zodiac.Unknown
			_, err := repo.Create(ctx, user)
			require.NoError(t, err)

			stored, found, err := repo.GetByID(ctx, "u-9")
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, zodiac.Unknown, stored.Zodiac)
			require.Empty(t, stored.Birthdate)
		})
	}
}

func TestRepositoryIdentities(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := repo.Create(ctx, newUser("u-1", "oauthuser"))
			require.NoError(t, err)

			_, found, err := repo.GetIdentity(ctx, "google", "sub-1")
			require.NoError(t, err)
			require.False(t, found)

			first, err := repo.UpsertIdentity(ctx, auth.Identity{
				ID:              "id-1",
				UserID:          "u-1",
				Provider:        "google",
				ProviderSubject: "sub-1",
				ProviderEmail:   "oauth@example.com",
				RefreshToken:    "sealed-1",
			})
			require.NoError(t, err)
			require.Equal(t, "id-1", first.ID)

			second, err := repo.UpsertIdentity(ctx, auth.Identity{
				ID:              "id-2",
				UserID:          "u-1",
				Provider:        "google",
				ProviderSubject: "sub-1",
			})
			require.NoError(t, err)
			require.Equal(t, "id-1", second.ID)
			require.Equal(t, "sealed-1", second.RefreshToken)
			require.Equal(t, "oauth@example.com", second.ProviderEmail)

			byUser, found, err := repo.GetIdentityByUser(ctx, "u-1", "google")
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, "sub-1", byUser.ProviderSubject)

			_, err = repo.UpsertIdentity(ctx, auth.Identity{Provider: "google", ProviderSubject: "sub-2"})
			require.Error(t, err)
		})
	}
}

func TestRepositoryDeleteCascades(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := repo.Create(ctx, newUser("u-1", "leaving"))
			require.NoError(t, err)
			_, err = repo.UpsertIdentity(ctx, auth.Identity{
				ID: "id-1", UserID: "u-1", Provider: "google", ProviderSubject: "sub-1",
			})
			require.NoError(t, err)

			require.NoError(t, repo.Delete(ctx, "u-1"))
			require.ErrorIs(t, repo.Delete(ctx, "u-1"), auth.ErrUserNotFound)

			_, found, err := repo.GetByUsername(ctx, "leaving")
			require.NoError(t, err)
			require.False(t, found)
			_, found, err = repo.GetIdentity(ctx, "google", "sub-1")
			require.NoError(t, err)
			require.False(t, found)

			_, err = repo.Create(ctx, newUser("u-2", "leaving"))
			require.NoError(t, err)
		})
	}
}
