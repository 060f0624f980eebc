package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanqian/astromaster/internal/domain/auth"
	"github.com/yanqian/astromaster/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
// registry may be nil when metrics are disabled.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service, registry *prometheus.Registry) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Health)
	if cfg.Metrics.Enabled && registry != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))
	}

	requireAuth := authMiddleware(authSvc)

	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
		authGroup.GET("/google/login", handler.GoogleLogin)
		authGroup.GET("/google/callback", handler.GoogleCallback)
		authGroup.POST("/logout", requireAuth, handler.Logout)

		me := api.Group("/me", requireAuth)
		me.GET("", handler.Me)
		me.PATCH("", handler.UpdateMe)
		me.DELETE("", handler.DeleteMe)
		me.GET("/horoscopes/:period", handler.MyHoroscope)

		api.POST("/zodiac/classify", handler.Classify)
		api.GET("/zodiac/signs", handler.ListSigns)
		api.GET("/zodiac/signs/:sign", handler.GetSign)

		api.GET("/horoscopes/:sign", handler.Forecast)
		api.GET("/horoscopes/:sign/:period", handler.GetHoroscope)
		api.GET("/horoscopes/:sign/:period/share", handler.ShareHoroscope)
		api.DELETE("/horoscopes/cache", requireAuth, handler.ClearCache)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
