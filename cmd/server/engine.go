package main

import (
	"context"

	"github.com/bookkeeping/backend/internal/infrastructure/auth"
	"github.com/bookkeeping/backend/internal/infrastructure/config"
	"github.com/bookkeeping/backend/internal/infrastructure/logger"
	"github.com/bookkeeping/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// newEngine builds the gin engine with the global middleware chain.
// The rate limiter's sweeper stops with ctx.
func newEngine(ctx context.Context, cfg *config.Config, log *zap.Logger, meter metric.Meter) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.TracingAttributeInjector(),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(meter, log),
		middleware.Secure(),
		middleware.CORSWithConfig(cors),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	if cfg.JWT.Enabled {
		engine.Use(middleware.JWTAuth(middleware.JWTMiddlewareConfig{
			Validator: auth.NewValidator(cfg.JWT),
			SkipPaths: []string{"/health", "/api/v1/health"},
			Logger:    log,
		}))
		log.Info("JWT authentication enabled")
	}
	if cfg.HTTP.RateLimit > 0 {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(ctx, cfg.HTTP.RateLimit, cfg.HTTP.RateWindow)))
		log.Info("Rate limiting enabled",
			zap.Int("limit", cfg.HTTP.RateLimit),
			zap.Duration("window", cfg.HTTP.RateWindow),
		)
	}
	return engine
}
