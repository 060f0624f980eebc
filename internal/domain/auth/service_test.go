package auth

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/astromaster/internal/domain/locale"
	apperrors "github.com/yanqian/astromaster/pkg/errors"
)

const testEncryptionKey = "0123456789abcdef0123456789abcdef"

func newTestService(repo Repository) *service {
	return NewService(Config{
		Secret:          "test-secret",
		TokenTTL:        time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		Google: GoogleConfig{
			ClientID:           "client",
			ClientSecret:       "secret",
			RedirectURL:        "http://localhost/callback",
			TokenEncryptionKey: testEncryptionKey,
		},
	}, repo, newTestLogger()).(*service)
}

func TestService_RegisterLoginAndRefresh(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	view, err := svc.Register(context.Background(), RegisterRequest{
		Username:  "StarGazer",
		Password:  "pass1234",
		Email:     "User@Example.com",
		Birthdate: "1995-04-20",
		Language:  "en-US",
	})
	require.NoError(t, err)
	require.Equal(t, "stargazer", view.Username)
	require.Equal(t, "user@example.com", view.Email)
	require.Equal(t, "taurus", view.Zodiac)
	require.Equal(t, "Taurus", view.ZodiacName)
	require.Equal(t, locale.English, view.Language)
	require.NotEmpty(t, view.ID)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "stargazer", Password: "pass1234"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, view.ID, resp.User.ID)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	require.Equal(t, view.ID, claims.UserID)
	require.Equal(t, "stargazer", claims.Username)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)

	_, err = svc.ValidateToken(context.Background(), resp.RefreshToken)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidToken))

	refreshed, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, resp.Token, refreshed.Token)
	require.Equal(t, view.ID, refreshed.User.ID)

	_, err = svc.Refresh(context.Background(), resp.Token)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidToken))
}

func TestService_RegisterMinimal(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	view, err := svc.Register(context.Background(), RegisterRequest{Username: "星座迷", Password: "pass1234"})
	require.NoError(t, err)
	require.Empty(t, view.Email)
	require.Empty(t, view.Zodiac)
	require.Equal(t, locale.Chinese, view.Language)
}

func TestService_RegisterValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	tests := []RegisterRequest{
		{Username: "ab", Password: "pass1234"},
		{Username: strings.Repeat("a", 33), Password: "pass1234"},
		{Username: "bad name", Password: "pass1234"},
		{Username: "valid", Password: "short"},
		{Username: "valid", Password: "pass1234", Email: "not-an-email"},
		{Username: "valid", Password: "pass1234", Birthdate: "1995/04/20"},
		{Username: "valid", Password: "pass1234", Language: "fr"},
	}
	for _, req := range tests {
		_, err := svc.Register(context.Background(), req)
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput), "%+v: %v", req, err)
	}
}

func TestService_DuplicateUsername(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	_, err := svc.Register(context.Background(), RegisterRequest{Username: "leo_fan", Password: "pass1234"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{Username: "LEO_FAN", Password: "pass12345"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeUsernameExists))
}

func TestService_LoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	_, err := svc.Register(context.Background(), RegisterRequest{Username: "virgo", Password: "pass1234"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Username: "virgo", Password: "wrongpass"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidCredentials))
	_, err = svc.Login(context.Background(), LoginRequest{Username: "nobody", Password: "pass1234"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidCredentials))
	_, err = svc.Login(context.Background(), LoginRequest{Username: "virgo", Password: " "})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func ptr(s string) *string { return &s }

func TestService_UpdateProfile(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	view, err := svc.Register(context.Background(), RegisterRequest{Username: "aquarius", Password: "pass1234"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), view.ID, ProfileUpdate{
		Email:     ptr("me@example.com"),
		Birthdate: ptr("2000-01-20"),
		Zodiac:    ptr("leo"),
	})
	require.NoError(t, err)
	require.Equal(t, "me@example.com", updated.Email)
	require.Equal(t, "2000-01-20", updated.Birthdate)
	require.Equal(t, "aquarius", updated.Zodiac)

	updated, err = svc.UpdateProfile(context.Background(), view.ID, ProfileUpdate{Zodiac: ptr("天蝎座"), Language: ptr("en")})
	require.NoError(t, err)
	require.Equal(t, "scorpio", updated.Zodiac)
	require.Equal(t, "Scorpio", updated.ZodiacName)
	require.Equal(t, "2000-01-20", updated.Birthdate)

	updated, err = svc.UpdateProfile(context.Background(), view.ID, ProfileUpdate{Email: ptr(""), Birthdate: ptr(""), Zodiac: ptr("")})
	require.NoError(t, err)
	require.Empty(t, updated.Email)
	require.Empty(t, updated.Birthdate)
	require.Empty(t, updated.Zodiac)

	_, err = svc.UpdateProfile(context.Background(), view.ID, ProfileUpdate{Zodiac: ptr("ophiuchus")})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.UpdateProfile(context.Background(), "missing", ProfileUpdate{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeUserNotFound))

	profile, err := svc.Profile(context.Background(), view.ID)
	require.NoError(t, err)
	require.Equal(t, locale.English, profile.Language)
}

func TestService_DeleteAccount(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	view, err := svc.Register(context.Background(), RegisterRequest{Username: "pisces", Password: "pass1234"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(context.Background(), view.ID))
	_, err = svc.Profile(context.Background(), view.ID)
	require.True(t, apperrors.IsCode(err, apperrors.CodeUserNotFound))
	err = svc.DeleteAccount(context.Background(), view.ID)
	require.True(t, apperrors.IsCode(err, apperrors.CodeUserNotFound))

	_, err = svc.Register(context.Background(), RegisterRequest{Username: "pisces", Password: "pass1234"})
	require.NoError(t, err)
}

func TestService_GoogleLoginCreatesAndReusesAccount(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	claims := googleClaims{Subject: "sub-1", Email: "Star.Child@gmail.com", EmailVerified: true, Locale: "en"}

	first, err := svc.completeGoogleLogin(context.Background(), claims, "google-refresh")
	require.NoError(t, err)
	require.Equal(t, "star_child", first.User.Username)
	require.Equal(t, locale.English, first.User.Language)

	identity, found, err := repo.GetIdentityByUser(context.Background(), first.User.ID, googleProviderName)
	require.NoError(t, err)
	require.True(t, found)
	require.NotEqual(t, "google-refresh", identity.RefreshToken)
	sealer, err := newTokenSealer(testEncryptionKey)
	require.NoError(t, err)
	plain, err := sealer.open(identity.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "google-refresh", plain)

	second, err := svc.completeGoogleLogin(context.Background(), claims, "")
	require.NoError(t, err)
	require.Equal(t, first.User.ID, second.User.ID)
}

func TestService_GoogleLoginRules(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	_, err := svc.Register(context.Background(), RegisterRequest{Username: "taken", Password: "pass1234", Email: "taken@example.com"})
	require.NoError(t, err)

	_, err = svc.completeGoogleLogin(context.Background(), googleClaims{Subject: "s", Email: "taken@example.com", EmailVerified: true}, "")
	require.True(t, apperrors.IsCode(err, apperrors.CodeLinkingDisabled))

	_, err = svc.completeGoogleLogin(context.Background(), googleClaims{Subject: "s", Email: "x@example.com"}, "")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidCredentials))

	resp, err := svc.completeGoogleLogin(context.Background(), googleClaims{Subject: "s2", Email: "taken@other.com", EmailVerified: true}, "")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.User.Username, "taken-"), resp.User.Username)
}

func TestService_GoogleNotConfigured(t *testing.T) {
	svc := NewService(Config{Secret: "s", TokenTTL: time.Hour}, newMemoryRepo(), newTestLogger())
	_, err := svc.GoogleAuthURL(context.Background(), "state", "challenge")
	require.True(t, apperrors.IsCode(err, apperrors.CodeAuthNotConfigured))

	url, err := newTestService(newMemoryRepo()).GoogleAuthURL(context.Background(), "state", "challenge")
	require.NoError(t, err)
	require.Contains(t, url, "code_challenge=challenge")
	require.Contains(t, url, "state=state")
}

func TestService_LogoutWithoutIdentity(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	require.NoError(t, svc.Logout(context.Background(), "nobody"))
}

func TestTokenSealer(t *testing.T) {
	_, err := newTokenSealer("short")
	require.Error(t, err)

	sealer, err := newTokenSealer(testEncryptionKey)
	require.NoError(t, err)
	sealed, err := sealer.seal("secret")
	require.NoError(t, err)
	opened, err := sealer.open(sealed)
	require.NoError(t, err)
	require.Equal(t, "secret", opened)

	empty, err := sealer.seal("")
	require.NoError(t, err)
	require.Empty(t, empty)
	_, err = sealer.open("AAAA")
	require.Error(t, err)
}

func TestNewOAuthState(t *testing.T) {
	state, verifier, challenge, err := NewOAuthState()
	require.NoError(t, err)
	require.NotEmpty(t, state)
	require.Equal(t, CodeChallengeFromVerifier(verifier), challenge)
}

func TestGoogleUsername(t *testing.T) {
	require.Equal(t, "a__", googleUsername(googleClaims{Email: "a@x.com"}))
	require.Equal(t, "john_doe", googleUsername(googleClaims{Email: "John.Doe@x.com"}))
	_, err := normalizeUsername(googleUsername(googleClaims{Email: strings.Repeat("z", 60) + "@x.com"}))
	require.NoError(t, err)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type memoryRepo struct {
	mu         sync.Mutex
	users      map[string]User
	identities map[string]Identity
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]User), identities: make(map[string]Identity)}
}

func (m *memoryRepo) Create(_ context.Context, user User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return User{}, ErrUsernameExists
		}
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryRepo) GetByUsername(_ context.Context, username string) (User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			return user, true, nil
		}
	}
	return User{}, false, nil
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if email != "" && user.Email == email {
			return user, true, nil
		}
	}
	return User{}, false, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	return user, ok, nil
}

func (m *memoryRepo) Update(_ context.Context, user User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return User{}, ErrUserNotFound
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memoryRepo) GetIdentity(_ context.Context, provider, subject string) (Identity, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, ok := m.identities[provider+":"+subject]
	return identity, ok, nil
}

func (m *memoryRepo) GetIdentityByUser(_ context.Context, userID, provider string) (Identity, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, identity := range m.identities {
		if identity.UserID == userID && identity.Provider == provider {
			return identity, true, nil
		}
	}
	return Identity{}, false, nil
}

func (m *memoryRepo) UpsertIdentity(_ context.Context, identity Identity) (Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identities[identity.Provider+":"+identity.ProviderSubject] = identity
	return identity, nil
}
