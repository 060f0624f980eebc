package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/astromaster/internal/infra/config"
	"github.com/yanqian/astromaster/internal/infra/queue"
)

const shutdownTimeout = 10 * time.Second

// App encapsulates the HTTP server lifecycle and the background job worker.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
	jobs   queue.HandlerQueue
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, jobs queue.HandlerQueue) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, jobs: jobs}
}

// Run starts the HTTP server and blocks until shutdown. Pending prewarm jobs
// are drained after the server stops accepting requests.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutdown signal received")
		serverErr := a.server.Shutdown(shutdownCtx)
		return errors.Join(serverErr, a.closeJobs())
	case err := <-errCh:
		closeErr := a.closeJobs()
		if errors.Is(err, http.ErrServerClosed) {
			return closeErr
		}
		return errors.Join(err, closeErr)
	}
}

func (a *App) closeJobs() error {
	if a.jobs == nil {
		return nil
	}
	if err := a.jobs.Close(); err != nil {
		a.logger.Error("job queue close failed", "error", err)
		return err
	}
	return nil
}
