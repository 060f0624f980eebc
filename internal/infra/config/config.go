package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
	Auth      AuthConfig      `yaml:"auth"`
	Horoscope HoroscopeConfig `yaml:"horoscope"`
	Storage   StorageConfig   `yaml:"storage"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// LogConfig selects the minimum log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// AuthConfig holds token signing and Google sign-in settings.
type AuthConfig struct {
	Secret          string        `yaml:"secret"`
	TokenTTL        time.Duration `yaml:"tokenTtl"`
	RefreshTokenTTL time.Duration `yaml:"refreshTokenTtl"`
	Google          GoogleConfig  `yaml:"google"`
}

// GoogleConfig holds OAuth client settings. Sign-in is disabled while
// ClientID is empty.
type GoogleConfig struct {
	ClientID             string `yaml:"clientId"`
	ClientSecret         string `yaml:"clientSecret"`
	RedirectURL          string `yaml:"redirectUrl"`
	TokenEncryptionKey   string `yaml:"tokenEncryptionKey"`
	PostLoginRedirectURL string `yaml:"postLoginRedirectUrl"`
}

// HoroscopeConfig controls the horoscope service.
type HoroscopeConfig struct {
	CacheTTL        time.Duration `yaml:"cacheTtl"`
	DefaultLanguage string        `yaml:"defaultLanguage"`
	// Timezone is an IANA name deciding which calendar day "today" is.
	Timezone string `yaml:"timezone"`
	// PrewarmOnLogin enqueues today's bundle for users with a known sign.
	PrewarmOnLogin bool `yaml:"prewarmOnLogin"`
}

// StorageConfig selects where users and generated bundles are persisted.
type StorageConfig struct {
	// Driver is one of memory, postgres or sqlite.
	Driver   string         `yaml:"driver"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Object   ObjectConfig   `yaml:"object"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// SQLiteConfig points at the local database file.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// ObjectConfig configures the S3 compatible archive of generated bundles.
// When enabled it replaces the SQL store for horoscopes.
type ObjectConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// CacheConfig contains the Valkey connection used for the horoscope cache
// and the prewarm queue.
type CacheConfig struct {
	Valkey ValkeyConfig `yaml:"valkey"`
}

// ValkeyConfig contains connection information for cache storage.
type ValkeyConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Prefix   string `yaml:"prefix"`
	QueueKey string `yaml:"queueKey"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg, os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if v := getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv("AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := getenv("AUTH_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = parsed
		}
	}
	if v := getenv("AUTH_REFRESH_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.RefreshTokenTTL = parsed
		}
	}
	if v := getenv("GOOGLE_CLIENT_ID"); v != "" {
		cfg.Auth.Google.ClientID = v
	}
	if v := getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		cfg.Auth.Google.ClientSecret = v
	}
	if v := getenv("GOOGLE_REDIRECT_URL"); v != "" {
		cfg.Auth.Google.RedirectURL = v
	}
	if v := getenv("GOOGLE_TOKEN_ENCRYPTION_KEY"); v != "" {
		cfg.Auth.Google.TokenEncryptionKey = v
	}
	if v := getenv("GOOGLE_POST_LOGIN_REDIRECT_URL"); v != "" {
		cfg.Auth.Google.PostLoginRedirectURL = v
	}
	if v := getenv("HOROSCOPE_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Horoscope.CacheTTL = parsed
		}
	}
	if v := getenv("HOROSCOPE_DEFAULT_LANGUAGE"); v != "" {
		cfg.Horoscope.DefaultLanguage = v
	}
	if v := getenv("HOROSCOPE_TIMEZONE"); v != "" {
		cfg.Horoscope.Timezone = v
	}
	if v := getenv("HOROSCOPE_PREWARM_ON_LOGIN"); v != "" {
		cfg.Horoscope.PrewarmOnLogin = parseBool(v)
	}
	if v := getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = strings.ToLower(v)
	}
	if v := getenv("POSTGRES_DSN"); v != "" {
		cfg.Storage.Postgres.DSN = v
	}
	if v := getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Storage.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Storage.Postgres.MinConns = int32(parsed)
		}
	}
	if v := getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLite.Path = v
	}
	if v := getenv("OBJECT_STORAGE_ENABLED"); v != "" {
		cfg.Storage.Object.Enabled = parseBool(v)
	}
	if v := getenv("OBJECT_STORAGE_ENDPOINT"); v != "" {
		cfg.Storage.Object.Endpoint = v
	}
	if v := getenv("OBJECT_STORAGE_ACCESS_KEY"); v != "" {
		cfg.Storage.Object.AccessKey = v
	}
	if v := getenv("OBJECT_STORAGE_SECRET_KEY"); v != "" {
		cfg.Storage.Object.SecretKey = v
	}
	if v := getenv("OBJECT_STORAGE_BUCKET"); v != "" {
		cfg.Storage.Object.Bucket = v
	}
	if v := getenv("OBJECT_STORAGE_REGION"); v != "" {
		cfg.Storage.Object.Region = v
	}
	if v := getenv("VALKEY_ENABLED"); v != "" {
		cfg.Cache.Valkey.Enabled = parseBool(v)
	}
	if v := getenv("VALKEY_ADDR"); v != "" {
		cfg.Cache.Valkey.Addr = v
	}
	if v := getenv("METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := getenv("METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/auth/google/callback",
				},
			},
		},
		Log: LogConfig{Level: "info"},
		Auth: AuthConfig{
			Secret:          "dev-secret-change-me",
			TokenTTL:        time.Hour,
			RefreshTokenTTL: 30 * 24 * time.Hour,
		},
		Horoscope: HoroscopeConfig{
			CacheTTL:        24 * time.Hour,
			DefaultLanguage: "zh",
			Timezone:        "Asia/Shanghai",
			PrewarmOnLogin:  true,
		},
		Storage: StorageConfig{
			Driver: "memory",
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
			SQLite: SQLiteConfig{
				Path: "data/astromaster.db",
			},
		},
		Cache: CacheConfig{
			Valkey: ValkeyConfig{
				Prefix:   "astro",
				QueueKey: "astro:jobs",
			},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret cannot be empty")
	}
	if c.Auth.TokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return errors.New("auth token ttls must be positive")
	}
	if key := c.Auth.Google.TokenEncryptionKey; key != "" {
		switch len(key) {
		case 16, 24, 32:
		default:
			return errors.New("auth.google.tokenEncryptionKey must be 16, 24, or 32 bytes")
		}
	}
	if c.Horoscope.CacheTTL < 0 {
		return errors.New("horoscope.cacheTtl cannot be negative")
	}
	switch strings.ToLower(c.Horoscope.DefaultLanguage) {
	case "", "zh", "en":
	default:
		return fmt.Errorf("horoscope.defaultLanguage %q is not supported", c.Horoscope.DefaultLanguage)
	}
	if c.Horoscope.Timezone != "" {
		if _, err := time.LoadLocation(c.Horoscope.Timezone); err != nil {
			return fmt.Errorf("horoscope.timezone: %w", err)
		}
	}
	switch c.Storage.Driver {
	case "", "memory":
	case "postgres":
		if strings.TrimSpace(c.Storage.Postgres.DSN) == "" {
			return errors.New("storage.postgres.dsn cannot be empty when driver is postgres")
		}
	case "sqlite":
		if strings.TrimSpace(c.Storage.SQLite.Path) == "" {
			return errors.New("storage.sqlite.path cannot be empty when driver is sqlite")
		}
	default:
		return fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver)
	}
	if c.Storage.Object.Enabled && strings.TrimSpace(c.Storage.Object.Bucket) == "" {
		return errors.New("storage.object.bucket cannot be empty when object storage is enabled")
	}
	if c.Cache.Valkey.Enabled && strings.TrimSpace(c.Cache.Valkey.Addr) == "" {
		return errors.New("cache.valkey.addr cannot be empty when valkey is enabled")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("metrics.path must start with /")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}
