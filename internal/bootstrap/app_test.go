package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yanqian/astromaster/internal/infra/config"
	"github.com/yanqian/astromaster/internal/infra/queue"
)

func TestAppRunDrainsJobsOnShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	var handled atomic.Int32
	jobs := queue.NewImmediateQueue(func(context.Context, string, map[string]any) {
		handled.Add(1)
	})
	require.NoError(t, jobs.Enqueue(context.Background(), "prewarm", map[string]string{"sign": "leo"}))

	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "127.0.0.1:0"}}
	server := &http.Server{Addr: cfg.HTTP.Address, Handler: http.NotFoundHandler()}
	app := NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), server, jobs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, app.Run(ctx))
	require.EqualValues(t, 1, handled.Load())
}

func TestAppRunReportsListenErrors(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "127.0.0.1:-1"}}
	server := &http.Server{Addr: cfg.HTTP.Address, Handler: http.NotFoundHandler()}
	app := NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), server, nil)

	require.Error(t, app.Run(context.Background()))
}
