package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/astromaster/internal/domain/auth"
	"github.com/yanqian/astromaster/internal/domain/horoscope"
	"github.com/yanqian/astromaster/internal/domain/locale"
	"github.com/yanqian/astromaster/internal/infra/config"
	"github.com/yanqian/astromaster/internal/infra/horoscopecache"
	"github.com/yanqian/astromaster/internal/infra/horoscoperepo"
	"github.com/yanqian/astromaster/internal/infra/queue"
	"github.com/yanqian/astromaster/internal/infra/sqlitedb"
	"github.com/yanqian/astromaster/internal/infra/userrepo"
	"github.com/yanqian/astromaster/pkg/logger"
	"github.com/yanqian/astromaster/pkg/metrics"
)

// databases holds whichever SQL backend the storage driver selected. Both
// fields are nil when running on the memory driver or after a failed connect.
type databases struct {
	pool   *pgxpool.Pool
	sqlite *sql.DB
}

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.NewWithWriter(os.Stdout, cfg.Log.Level)
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
		Google: auth.GoogleConfig{
			ClientID:             cfg.Auth.Google.ClientID,
			ClientSecret:         cfg.Auth.Google.ClientSecret,
			RedirectURL:          cfg.Auth.Google.RedirectURL,
			TokenEncryptionKey:   cfg.Auth.Google.TokenEncryptionKey,
			PostLoginRedirectURL: cfg.Auth.Google.PostLoginRedirectURL,
		},
	}
}

func provideHoroscopeConfig(cfg *config.Config) (horoscope.Config, error) {
	lang, err := locale.ParseLanguage(cfg.Horoscope.DefaultLanguage)
	if err != nil {
		return horoscope.Config{}, err
	}
	loc, err := time.LoadLocation(cfg.Horoscope.Timezone)
	if err != nil {
		return horoscope.Config{}, err
	}
	return horoscope.Config{
		CacheTTL:        cfg.Horoscope.CacheTTL,
		DefaultLanguage: lang,
		Location:        loc,
	}, nil
}

func provideDatabases(cfg *config.Config, logger *slog.Logger) (*databases, func()) {
	dbs := &databases{}
	switch cfg.Storage.Driver {
	case "postgres":
		dbs.pool = openPostgres(cfg.Storage.Postgres, logger)
	case "sqlite":
		db, err := sqlitedb.Open(cfg.Storage.SQLite.Path)
		if err != nil {
			logger.Error("failed to open sqlite database, using memory repositories", "path", cfg.Storage.SQLite.Path, "error", err)
			break
		}
		logger.Info("sqlite storage enabled", "path", cfg.Storage.SQLite.Path)
		dbs.sqlite = db
	default:
		logger.Info("storage driver is memory, data is lost on restart")
	}
	cleanup := func() {
		if dbs.pool != nil {
			dbs.pool.Close()
		}
		if dbs.sqlite != nil {
			if err := dbs.sqlite.Close(); err != nil {
				logger.Error("sqlite close failed", "error", err)
			}
		}
	}
	return dbs, cleanup
}

func openPostgres(cfg config.PostgresConfig, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres storage enabled")
	return pool
}

func provideAuthRepository(dbs *databases) auth.Repository {
	switch {
	case dbs.pool != nil:
		return userrepo.NewPostgresRepository(dbs.pool)
	case dbs.sqlite != nil:
		return userrepo.NewSQLiteRepository(dbs.sqlite)
	default:
		return userrepo.NewMemoryRepository()
	}
}

func provideHoroscopeRepository(cfg *config.Config, dbs *databases, logger *slog.Logger) horoscope.Repository {
	if obj := cfg.Storage.Object; obj.Enabled {
		repo, err := horoscoperepo.NewObjectRepository(horoscoperepo.ObjectConfig{
			Endpoint:  obj.Endpoint,
			AccessKey: obj.AccessKey,
			SecretKey: obj.SecretKey,
			Bucket:    obj.Bucket,
			Region:    obj.Region,
		}, logger)
		if err == nil {
			logger.Info("object storage enabled for horoscopes", "bucket", obj.Bucket)
			return repo
		}
		logger.Error("object storage unavailable, falling back to storage driver", "error", err)
	}
	switch {
	case dbs.pool != nil:
		return horoscoperepo.NewPostgresRepository(dbs.pool)
	case dbs.sqlite != nil:
		return horoscoperepo.NewSQLiteRepository(dbs.sqlite)
	default:
		return horoscoperepo.NewMemoryRepository()
	}
}

// provideValkeyClient returns a nil client when Valkey is disabled or
// unreachable; dependents fall back to in-process implementations.
func provideValkeyClient(cfg *config.Config, logger *slog.Logger) (valkey.Client, func()) {
	noop := func() {}
	if !cfg.Cache.Valkey.Enabled {
		return nil, noop
	}
	opt, err := buildValkeyOptions(cfg.Cache.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return nil, noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return nil, noop
	}
	logger.Info("valkey enabled", "addr", cfg.Cache.Valkey.Addr)
	return client, client.Close
}

func provideHoroscopeCache(cfg *config.Config, client valkey.Client) horoscope.Cache {
	if client == nil {
		return horoscopecache.NewMemoryCache()
	}
	return horoscopecache.NewValkeyCache(client, cfg.Cache.Valkey.Prefix)
}

func provideJobQueue(cfg *config.Config, client valkey.Client, logger *slog.Logger) queue.HandlerQueue {
	if client == nil {
		return queue.NewImmediateQueue(nil)
	}
	return queue.NewValkeyQueue(client, cfg.Cache.Valkey.QueueKey, logger)
}

func provideMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideRecorder(reg *prometheus.Registry) metrics.Recorder {
	return metrics.NewPrometheusRecorder(reg)
}

// provideHoroscopeService builds the service and attaches it as the job
// handler so prewarm jobs land back on the same instance.
func provideHoroscopeService(cfg horoscope.Config, repo horoscope.Repository, cache horoscope.Cache, jobs queue.HandlerQueue, recorder metrics.Recorder, logger *slog.Logger) horoscope.Service {
	svc := horoscope.NewService(cfg, repo, cache, jobs, recorder, logger)
	jobs.SetHandler(svc.HandleJob)
	return svc
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
