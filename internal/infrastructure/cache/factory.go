package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/bookkeeping/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// sweepInterval is how often the in-memory store drops expired keys
const sweepInterval = 5 * time.Minute

// Option configures NewIdempotencyStore
type Option func(*options)

type options struct {
	logger        *zap.Logger
	allowFallback bool
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMemoryFallback controls whether an unreachable Redis degrades to the
// in-memory store instead of failing. Defaults to true.
func WithMemoryFallback(allow bool) Option {
	return func(o *options) { o.allowFallback = allow }
}

// NewIdempotencyStore returns a Redis store when Redis is enabled and
// reachable, and an in-memory store otherwise
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, opts ...Option) (shared.IdempotencyStore, error) {
	o := options{logger: zap.NewNop(), allowFallback: true}
	for _, opt := range opts {
		opt(&o)
	}

	if !cfg.Enabled {
		o.logger.Info("Using in-memory idempotency store")
		return NewMemoryStore(sweepInterval), nil
	}

	client, err := DialRedis(ctx, cfg.Addr(), cfg.Password, cfg.DB)
	if err == nil {
		o.logger.Info("Using Redis idempotency store", zap.String("addr", cfg.Addr()))
		return NewRedisStore(client, ""), nil
	}
	if !o.allowFallback {
		return nil, fmt.Errorf("redis required for idempotency: %w", err)
	}
	o.logger.Warn("Redis unavailable, falling back to in-memory idempotency store",
		zap.String("addr", cfg.Addr()),
		zap.Error(err),
	)
	return NewMemoryStore(sweepInterval), nil
}
