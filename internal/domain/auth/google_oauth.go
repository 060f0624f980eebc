package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/yanqian/astromaster/internal/domain/locale"
	apperrors "github.com/yanqian/astromaster/pkg/errors"
)

const (
	googleProviderName = "google"
	googleIssuerURL    = "https://accounts.google.com"
	googleRevokeURL    = "https://oauth2.googleapis.com/revoke"

	usernameAttempts = 5
)

type googleClaims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Locale        string `json:"locale"`
}

func (s *service) GoogleAuthURL(ctx context.Context, state, codeChallenge string) (string, error) {
	cfg, err := s.googleOAuthConfig()
	if err != nil {
		return "", err
	}
	opts := []oauth2.AuthCodeOption{
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	}
	return cfg.AuthCodeURL(state, opts...), nil
}

func (s *service) GoogleCallback(ctx context.Context, code, codeVerifier string) (LoginResponse, error) {
	cfg, err := s.googleOAuthConfig()
	if err != nil {
		return LoginResponse{}, err
	}
	if strings.TrimSpace(code) == "" || strings.TrimSpace(codeVerifier) == "" {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "missing oauth code or verifier", nil)
	}
	token, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeOAuthExchange, "failed to exchange oauth code", err)
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeOAuthExchange, "missing id_token in oauth response", nil)
	}
	claims, err := s.verifyGoogleIDToken(ctx, rawIDToken)
	if err != nil {
		return LoginResponse{}, err
	}
	return s.completeGoogleLogin(ctx, claims, token.RefreshToken)
}

// completeGoogleLogin signs in the account linked to the Google subject, or
// creates one when neither the subject nor the email is known yet.
func (s *service) completeGoogleLogin(ctx context.Context, claims googleClaims, refreshToken string) (LoginResponse, error) {
	if claims.Subject == "" {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeAuth, "missing google subject", nil)
	}
	if !claims.EmailVerified {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidCredentials, "google account email not verified", nil)
	}
	email, err := optionalEmail(claims.Email)
	if err != nil || email == "" {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid email address", err)
	}

	identity, found, err := s.repo.GetIdentity(ctx, googleProviderName, claims.Subject)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeAuth, "failed to fetch identity", err)
	}
	if found {
		user, err := s.loadUser(ctx, identity.UserID)
		if err != nil {
			return LoginResponse{}, err
		}
		if refreshToken != "" {
			if err := s.upsertGoogleIdentity(ctx, user.ID, claims, refreshToken); err != nil {
				return LoginResponse{}, err
			}
		}
		return s.buildLoginResponse(user)
	}

	if _, exists, err := s.repo.GetByEmail(ctx, email); err != nil {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeAuth, "failed to check existing user", err)
	} else if exists {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeLinkingDisabled, "account linking by email is not enabled", nil)
	}

	passwordHash, err := hashRandomPassword()
	if err != nil {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeAuth, "failed to generate password hash", err)
	}
	lang, err := locale.ParseLanguage(claims.Locale)
	if err != nil {
		lang = locale.Default
	}
	now := s.now()
	base := googleUsername(claims)
	var user User
	for attempt := 0; attempt < usernameAttempts; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = withSuffix(base)
		}
		user, err = s.repo.Create(ctx, User{
			ID:           uuid.NewString(),
			Username:     candidate,
			Email:        email,
			PasswordHash: passwordHash,
			Language:     lang,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if !errors.Is(err, ErrUsernameExists) {
			break
		}
	}
	if err != nil {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeAuth, "failed to create user", err)
	}

	if err := s.upsertGoogleIdentity(ctx, user.ID, claims, refreshToken); err != nil {
		return LoginResponse{}, err
	}
	s.logger.Info("user registered via google", "userId", user.ID)
	return s.buildLoginResponse(user)
}

func (s *service) Logout(ctx context.Context, userID string) error {
	identity, found, err := s.repo.GetIdentityByUser(ctx, userID, googleProviderName)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeAuth, "failed to fetch identity", err)
	}
	if !found || identity.RefreshToken == "" {
		return nil
	}
	sealer, err := newTokenSealer(s.cfg.Google.TokenEncryptionKey)
	if err != nil {
		s.logger.Warn("google token key unusable", "error", err)
		return nil
	}
	refreshToken, err := sealer.open(identity.RefreshToken)
	if err != nil || refreshToken == "" {
		if err != nil {
			s.logger.Warn("failed to decrypt google refresh token", "error", err)
		}
		return nil
	}
	if err := revokeGoogleToken(ctx, refreshToken); err != nil {
		s.logger.Warn("failed to revoke google refresh token", "error", err)
	}
	return nil
}

func (s *service) googleOAuthConfig() (*oauth2.Config, error) {
	googleCfg := s.cfg.Google
	if strings.TrimSpace(googleCfg.ClientID) == "" || strings.TrimSpace(googleCfg.ClientSecret) == "" || strings.TrimSpace(googleCfg.RedirectURL) == "" {
		return nil, apperrors.Wrap(apperrors.CodeAuthNotConfigured, "google oauth is not configured", nil)
	}
	if strings.TrimSpace(googleCfg.TokenEncryptionKey) == "" {
		return nil, apperrors.Wrap(apperrors.CodeAuthNotConfigured, "google token encryption key is missing", nil)
	}
	return &oauth2.Config{
		ClientID:     googleCfg.ClientID,
		ClientSecret: googleCfg.ClientSecret,
		RedirectURL:  googleCfg.RedirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		Endpoint:     google.Endpoint,
	}, nil
}

func (s *service) verifyGoogleIDToken(ctx context.Context, rawToken string) (googleClaims, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuerURL)
	if err != nil {
		return googleClaims{}, apperrors.Wrap(apperrors.CodeAuth, "failed to initialize oidc provider", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: s.cfg.Google.ClientID})
	idToken, err := verifier.Verify(ctx, rawToken)
	if err != nil {
		return googleClaims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "failed to verify id token", err)
	}
	var claims googleClaims
	if err := idToken.Claims(&claims); err != nil {
		return googleClaims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "failed to parse id token claims", err)
	}
	if claims.Email == "" {
		return googleClaims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "missing email in id token", nil)
	}
	return claims, nil
}

func (s *service) upsertGoogleIdentity(ctx context.Context, userID string, claims googleClaims, refreshToken string) error {
	sealed := ""
	if refreshToken != "" {
		sealer, err := newTokenSealer(s.cfg.Google.TokenEncryptionKey)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeAuthNotConfigured, "google token encryption key is invalid", err)
		}
		if sealed, err = sealer.seal(refreshToken); err != nil {
			return apperrors.Wrap(apperrors.CodeAuth, "failed to encrypt refresh token", err)
		}
	}
	_, err := s.repo.UpsertIdentity(ctx, Identity{
		ID:              uuid.NewString(),
		UserID:          userID,
		Provider:        googleProviderName,
		ProviderSubject: claims.Subject,
		ProviderEmail:   claims.Email,
		RefreshToken:    sealed,
	})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeAuth, "failed to persist identity", err)
	}
	return nil
}

// googleUsername derives a valid username from the email local part.
func googleUsername(claims googleClaims) string {
	local, _, _ := strings.Cut(strings.ToLower(claims.Email), "@")
	var b strings.Builder
	for _, r := range local {
		if b.Len() >= maxUsernameLength-5 {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r == '.' || r == '+':
			b.WriteRune('_')
		}
	}
	name := b.String()
	for len(name) < minUsernameLength {
		name += "_"
	}
	return name
}

func withSuffix(base string) string {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return base + "-" + fmt.Sprint(time.Now().UnixNano()%10000)
	}
	return base + "-" + hex.EncodeToString(buf)
}

func hashRandomPassword() (string, error) {
	raw, err := randomString(32)
	if err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func randomString(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CodeChallengeFromVerifier computes the PKCE S256 code challenge for a verifier.
func CodeChallengeFromVerifier(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

func revokeGoogleToken(ctx context.Context, refreshToken string) error {
	form := url.Values{"token": {refreshToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleRevokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("google revoke returned status %d", resp.StatusCode)
}

// NewOAuthState returns a state, code verifier, and code challenge for PKCE.
func NewOAuthState() (state string, codeVerifier string, codeChallenge string, err error) {
	state, err = randomString(32)
	if err != nil {
		return "", "", "", err
	}
	codeVerifier, err = randomString(32)
	if err != nil {
		return "", "", "", err
	}
	codeChallenge = CodeChallengeFromVerifier(codeVerifier)
	return state, codeVerifier, codeChallenge, nil
}
