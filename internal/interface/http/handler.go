package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/astromaster/internal/domain/auth"
	"github.com/yanqian/astromaster/internal/domain/horoscope"
	"github.com/yanqian/astromaster/internal/domain/locale"
	"github.com/yanqian/astromaster/internal/infra/config"
	"github.com/yanqian/astromaster/pkg/metrics"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	authSvc      auth.Service
	horoscopeSvc horoscope.Service
	metrics      metrics.Recorder
	defaultLang  locale.Language
	prewarm      bool
	postLoginURL string
	oauthState   *oauthStateCodec
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(cfg *config.Config, authSvc auth.Service, horoscopeSvc horoscope.Service, recorder metrics.Recorder, logger *slog.Logger) *Handler {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	defaultLang, err := locale.ParseLanguage(cfg.Horoscope.DefaultLanguage)
	if err != nil {
		defaultLang = locale.Default
	}
	return &Handler{
		authSvc:      authSvc,
		horoscopeSvc: horoscopeSvc,
		metrics:      recorder,
		defaultLang:  defaultLang,
		prewarm:      cfg.Horoscope.PrewarmOnLogin,
		postLoginURL: cfg.Auth.Google.PostLoginRedirectURL,
		oauthState:   newOAuthStateCodec(cfg.Auth.Secret),
		logger:       logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestLanguage prefers the lang query parameter and falls back to the first
// supported Accept-Language tag. Empty means the service default.
func requestLanguage(c *gin.Context) string {
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return lang
	}
	for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if lang, err := locale.ParseLanguage(tag); err == nil && tag != "" {
			return string(lang)
		}
	}
	return ""
}

// language resolves raw, then the request's own hints, then the configured
// default.
func (h *Handler) language(c *gin.Context, raw string) (locale.Language, error) {
	if strings.TrimSpace(raw) == "" {
		raw = requestLanguage(c)
	}
	if raw == "" {
		return h.defaultLang, nil
	}
	return locale.ParseLanguage(raw)
}
