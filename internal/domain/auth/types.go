package auth

import (
	"time"

	"github.com/yanqian/astromaster/internal/domain/locale"
	"github.com/yanqian/astromaster/internal/domain/zodiac"
)

// Config drives authentication behavior.
type Config struct {
	Secret          string
	TokenTTL        time.Duration
	RefreshTokenTTL time.Duration
	Google          GoogleConfig
}

// GoogleConfig holds OAuth settings for Google sign-in.
type GoogleConfig struct {
	ClientID             string
	ClientSecret         string
	RedirectURL          string
	TokenEncryptionKey   string
	PostLoginRedirectURL string
}

// User represents a persisted account. Birthdate is YYYY-MM-DD or empty.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Birthdate    string
	Zodiac       zodiac.Sign
	Language     locale.Language
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity represents an external auth provider linkage.
type Identity struct {
	ID              string
	UserID          string
	Provider        string
	ProviderSubject string
	ProviderEmail   string
	RefreshToken    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RegisterRequest captures the registration payload. Email, Birthdate and
// Language are optional.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	Birthdate string `json:"birthdate"`
	Language  string `json:"language"`
}

// LoginRequest captures login details.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returns the signed tokens.
type LoginResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	User         UserView `json:"user"`
}

// UserView trims sensitive fields.
type UserView struct {
	ID         string          `json:"id"`
	Username   string          `json:"username"`
	Email      string          `json:"email,omitempty"`
	Birthdate  string          `json:"birthdate,omitempty"`
	Zodiac     string          `json:"zodiac,omitempty"`
	ZodiacName string          `json:"zodiacName,omitempty"`
	Language   locale.Language `json:"language"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ProfileUpdate changes the fields that are non-nil. An empty string clears
// the field. A new birthdate recomputes the zodiac sign and wins over Zodiac.
type ProfileUpdate struct {
	Email     *string `json:"email"`
	Birthdate *string `json:"birthdate"`
	Zodiac    *string `json:"zodiac"`
	Language  *string `json:"language"`
}

// Claims are extracted from the JWT token.
type Claims struct {
	UserID    string
	Username  string
	TokenType string
	ExpiresAt time.Time
}

// RefreshRequest encapsulates refresh token payload.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
