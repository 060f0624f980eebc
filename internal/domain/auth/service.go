package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yanqian/astromaster/internal/domain/locale"
	"github.com/yanqian/astromaster/internal/domain/zodiac"
	apperrors "github.com/yanqian/astromaster/pkg/errors"
	"github.com/yanqian/astromaster/pkg/util"
)

// Service exposes account workflows.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (UserView, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	GoogleAuthURL(ctx context.Context, state, codeChallenge string) (string, error)
	GoogleCallback(ctx context.Context, code, codeVerifier string) (LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (Claims, error)
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)
	Profile(ctx context.Context, userID string) (UserView, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (UserView, error)
	DeleteAccount(ctx context.Context, userID string) error
	Logout(ctx context.Context, userID string) error
}

type service struct {
	cfg    Config
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	minUsernameLength = 3
	maxUsernameLength = 32
	minPasswordLength = 8
)

// NewService constructs a Service instance.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		logger: logger.With("component", "auth.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (UserView, error) {
	username, err := normalizeUsername(req.Username)
	if err != nil {
		return UserView{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	if err := validatePassword(req.Password); err != nil {
		return UserView{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	email, err := optionalEmail(req.Email)
	if err != nil {
		return UserView{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid email address", err)
	}
	birthdate, sign, err := optionalBirthdate(req.Birthdate)
	if err != nil {
		return UserView{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	lang, err := locale.ParseLanguage(req.Language)
	if err != nil {
		return UserView{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}

	_, exists, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return UserView{}, apperrors.Wrap(apperrors.CodeAuth, "failed to check user", err)
	}
	if exists {
		return UserView{}, apperrors.Wrap(apperrors.CodeUsernameExists, "username already registered", nil)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserView{}, apperrors.Wrap(apperrors.CodeAuth, "failed to hash password", err)
	}

	now := s.now()
	user, err := s.repo.Create(ctx, User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Birthdate:    birthdate,
		Zodiac:       sign,
		Language:     lang,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, ErrUsernameExists) {
			return UserView{}, apperrors.Wrap(apperrors.CodeUsernameExists, "username already registered", err)
		}
		return UserView{}, apperrors.Wrap(apperrors.CodeAuth, "failed to create user", err)
	}
	s.logger.Info("user registered", "userId", user.ID)
	return toView(user), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	username, err := normalizeUsername(req.Username)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidCredentials, "invalid username or password", nil)
	}
	if strings.TrimSpace(req.Password) == "" {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "password cannot be empty", nil)
	}
	user, found, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeAuth, "failed to fetch user", err)
	}
	if !found {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidCredentials, "invalid username or password", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidCredentials, "invalid username or password", nil)
	}
	return s.buildLoginResponse(user)
}

func (s *service) ValidateToken(ctx context.Context, token string) (Claims, error) {
	if strings.TrimSpace(token) == "" {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token missing", nil)
	}
	claims, err := s.parseToken(token)
	if err != nil {
		return Claims{}, err
	}
	if claims.TokenType != tokenTypeAccess {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token type mismatch", nil)
	}
	return claims, nil
}

func (s *service) Profile(ctx context.Context, userID string) (UserView, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return UserView{}, err
	}
	return toView(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (UserView, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return UserView{}, err
	}

	if update.Email != nil {
		email, err := optionalEmail(*update.Email)
		if err != nil {
			return UserView{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid email address", err)
		}
		user.Email = email
	}
	birthdateSet := false
	if update.Birthdate != nil {
		birthdate, sign, err := optionalBirthdate(*update.Birthdate)
		if err != nil {
			return UserView{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
		}
		user.Birthdate = birthdate
		if birthdate != "" {
			user.Zodiac = sign
			birthdateSet = true
		}
	}
	if update.Zodiac != nil && !birthdateSet {
		if strings.TrimSpace(*update.Zodiac) == "" {
			user.Zodiac = zodiac.Unknown
		} else {
			sign, err := zodiac.ParseSign(*update.Zodiac)
			if err != nil {
				return UserView{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
			}
			user.Zodiac = sign
		}
	}
	if update.Language != nil {
		lang, err := locale.ParseLanguage(*update.Language)
		if err != nil {
			return UserView{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
		}
		user.Language = lang
	}

	user.UpdatedAt = s.now()
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return UserView{}, apperrors.Wrap(apperrors.CodeUserNotFound, "user not found", nil)
		}
		return UserView{}, apperrors.Wrap(apperrors.CodeAuth, "failed to update profile", err)
	}
	return toView(updated), nil
}

func (s *service) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperrors.Wrap(apperrors.CodeUserNotFound, "user not found", nil)
		}
		return apperrors.Wrap(apperrors.CodeAuth, "failed to delete account", err)
	}
	s.logger.Info("user deleted", "userId", userID)
	return nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (LoginResponse, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return LoginResponse{}, err
	}
	if claims.TokenType != tokenTypeRefresh {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token type mismatch", nil)
	}
	user, err := s.loadUser(ctx, claims.UserID)
	if err != nil {
		return LoginResponse{}, err
	}
	return s.buildLoginResponse(user)
}

func (s *service) loadUser(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, apperrors.Wrap(apperrors.CodeUserNotFound, "user not found", nil)
	}
	user, found, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, apperrors.Wrap(apperrors.CodeAuth, "failed to load user", err)
	}
	if !found {
		return User{}, apperrors.Wrap(apperrors.CodeUserNotFound, "user not found", nil)
	}
	return user, nil
}

func (s *service) buildLoginResponse(user User) (LoginResponse, error) {
	access, err := s.generateToken(user, tokenTypeAccess, s.cfg.TokenTTL)
	if err != nil {
		return LoginResponse{}, err
	}
	refresh, err := s.generateToken(user, tokenTypeRefresh, s.cfg.RefreshTokenTTL)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		Token:        access,
		RefreshToken: refresh,
		User:         toView(user),
	}, nil
}

func (s *service) generateToken(user User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        newTokenID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeAuth, "failed to sign token", err)
	}
	return signed, nil
}

func (s *service) parseToken(token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token validation failed", err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token invalid", nil)
	}
	return Claims{
		UserID:    claims.UserID,
		Username:  claims.Username,
		TokenType: claims.TokenType,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func toView(user User) UserView {
	view := UserView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Birthdate: user.Birthdate,
		Language:  user.Language.OrDefault(),
		CreatedAt: user.CreatedAt,
	}
	if user.Zodiac.Valid() {
		view.Zodiac = user.Zodiac.Key()
		view.ZodiacName = user.Zodiac.Name(view.Language)
	}
	return view
}

// normalizeUsername lowercases the name so uniqueness ignores case.
func normalizeUsername(raw string) (string, error) {
	username := strings.ToLower(strings.TrimSpace(raw))
	length := utf8.RuneCountInString(username)
	if length < minUsernameLength || length > maxUsernameLength {
		return "", fmt.Errorf("username must be %d-%d characters", minUsernameLength, maxUsernameLength)
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return "", errors.New("username may only contain letters, digits, _ and -")
		}
	}
	return username, nil
}

func optionalEmail(raw string) (string, error) {
	email := strings.TrimSpace(strings.ToLower(raw))
	if email == "" {
		return "", nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", err
	}
	if addr.Address != email {
		return "", errors.New("email must be a bare address")
	}
	return email, nil
}

func optionalBirthdate(raw string) (string, zodiac.Sign, error) {
	if strings.TrimSpace(raw) == "" {
		return "", zodiac.Unknown, nil
	}
	date, err := util.ParseDate(raw)
	if err != nil {
		return "", zodiac.Unknown, fmt.Errorf("birthdate must use YYYY-MM-DD")
	}
	return util.FormatDate(date), zodiac.Classify(date), nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	TokenType string `json:"type"`
}

func newTokenID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return hex.EncodeToString(buf)
}
