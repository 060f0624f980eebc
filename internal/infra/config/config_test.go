package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "memory", cfg.Storage.Driver)
	require.Equal(t, 24*time.Hour, cfg.Horoscope.CacheTTL)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
horoscope:
  cacheTtl: 2h
  defaultLanguage: en
  timezone: UTC
storage:
  driver: sqlite
  sqlite:
    path: /tmp/astro.db
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_ADDRESS", ":7070")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.HTTP.Address)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, 2*time.Hour, cfg.Horoscope.CacheTTL)
	require.Equal(t, "en", cfg.Horoscope.DefaultLanguage)
	require.Equal(t, "sqlite", cfg.Storage.Driver)
	require.Equal(t, "/tmp/astro.db", cfg.Storage.SQLite.Path)
	require.False(t, cfg.Metrics.Enabled)
}

func TestExampleConfigLoads(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join("..", "..", "..", "configs", "config.example.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Storage.Driver)
	require.Equal(t, 720*time.Hour, cfg.Auth.RefreshTokenTTL)
	require.Equal(t, 150*time.Millisecond, cfg.HTTP.Retry.BaseBackoff)
	require.Equal(t, "astro:jobs", cfg.Cache.Valkey.QueueKey)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: ["), 0o600))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
}

func TestEnvOverridesIgnoreMalformedNumbers(t *testing.T) {
	cfg := defaultConfig()
	env := map[string]string{
		"HTTP_RATE_LIMIT_RPM":   "lots",
		"HOROSCOPE_CACHE_TTL":   "30m",
		"STORAGE_DRIVER":        "Postgres",
		"POSTGRES_DSN":          "postgres://localhost/astro",
		"VALKEY_ENABLED":        "1",
		"VALKEY_ADDR":           "localhost:6379",
		"OBJECT_STORAGE_BUCKET": "horoscopes",
	}
	applyEnvOverrides(cfg, func(key string) string { return env[key] })

	require.Equal(t, 120, cfg.HTTP.RateLimit.RequestsPerMinute)
	require.Equal(t, 30*time.Minute, cfg.Horoscope.CacheTTL)
	require.Equal(t, "postgres", cfg.Storage.Driver)
	require.True(t, cfg.Cache.Valkey.Enabled)
	require.Equal(t, "horoscopes", cfg.Storage.Object.Bucket)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty address":       func(c *Config) { c.HTTP.Address = "" },
		"empty secret":        func(c *Config) { c.Auth.Secret = " " },
		"bad key length":      func(c *Config) { c.Auth.Google.TokenEncryptionKey = "short" },
		"negative ttl":        func(c *Config) { c.Horoscope.CacheTTL = -time.Second },
		"bad language":        func(c *Config) { c.Horoscope.DefaultLanguage = "fr" },
		"bad timezone":        func(c *Config) { c.Horoscope.Timezone = "Mars/Olympus" },
		"unknown driver":      func(c *Config) { c.Storage.Driver = "mongo" },
		"postgres no dsn":     func(c *Config) { c.Storage.Driver = "postgres" },
		"sqlite no path":      func(c *Config) { c.Storage.Driver = "sqlite"; c.Storage.SQLite.Path = "" },
		"object no bucket":    func(c *Config) { c.Storage.Object.Enabled = true },
		"valkey no addr":      func(c *Config) { c.Cache.Valkey.Enabled = true },
		"metrics path":        func(c *Config) { c.Metrics.Path = "metrics" },
		"rate limit rpm":      func(c *Config) { c.HTTP.RateLimit.RequestsPerMinute = 0 },
		"retry attempts zero": func(c *Config) { c.HTTP.Retry.MaxAttempts = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
