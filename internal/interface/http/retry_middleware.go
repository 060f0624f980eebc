package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/astromaster/internal/infra/config"
)

const maxRetryBackoff = 2 * time.Second

// retrier replays GET and HEAD requests whose handler answered 5xx. Responses
// are buffered and only the final attempt reaches the client. Lookups are
// idempotent, so a replay at worst regenerates the same bundle.
type retrier struct {
	next     http.Handler
	attempts int
	backoff  time.Duration
	skip     map[string]struct{}
	logger   *slog.Logger
}

func withRetry(next http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return next
	}
	skip := make(map[string]struct{}, len(cfg.Exclude))
	for _, path := range cfg.Exclude {
		skip[path] = struct{}{}
	}
	return &retrier{next: next, attempts: cfg.MaxAttempts, backoff: cfg.BaseBackoff, skip: skip, logger: logger}
}

func (rt *retrier) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !rt.eligible(r) {
		rt.next.ServeHTTP(w, r)
		return
	}
	for attempt := 1; ; attempt++ {
		buf := newBufferedResponse()
		rt.next.ServeHTTP(buf, r)
		if buf.status < http.StatusInternalServerError || attempt >= rt.attempts {
			buf.flushTo(w)
			return
		}
		rt.logger.Warn("transient failure, retrying request", "path", r.URL.Path, "status", buf.status, "attempt", attempt)
		if !sleepContext(r.Context(), rt.delay(attempt)) {
			buf.flushTo(w)
			return
		}
	}
}

func (rt *retrier) eligible(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	_, skipped := rt.skip[r.URL.Path]
	return !skipped
}

// delay doubles from the base backoff and is capped at maxRetryBackoff.
func (rt *retrier) delay(attempt int) time.Duration {
	d := rt.backoff << (attempt - 1)
	if d <= 0 || d > maxRetryBackoff {
		return maxRetryBackoff
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

type bufferedResponse struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}
	b.status = status
	b.wroteHeader = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.wroteHeader = true
	return b.body.Write(p)
}

func (b *bufferedResponse) Flush() {}

func (b *bufferedResponse) flushTo(w http.ResponseWriter) {
	dst := w.Header()
	for key, values := range b.header {
		dst[key] = append([]string(nil), values...)
	}
	w.WriteHeader(b.status)
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}
