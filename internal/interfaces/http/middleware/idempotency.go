package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/bookkeeping/backend/internal/infrastructure/logger"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader carries the client's request key
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 200

// IdempotencyConfig configures the Idempotency middleware
type IdempotencyConfig struct {
	Store shared.IdempotencyStore
	TTL   time.Duration
	// Required rejects writes that carry no key
	Required bool
}

// Idempotency admits a keyed write once. A repeat of a key that is still
// remembered is answered with DUPLICATE_REQUEST. When the write fails the
// key is released so the client can retry it. Requests without a key pass
// through unless Required is set.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = shared.DefaultIdempotencyTTL
	}

	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			if cfg.Required {
				abortWithCode(c, dto.ErrCodeMissingKey, IdempotencyKeyHeader+" header is required")
				return
			}
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			abortWithCode(c, dto.ErrCodeValidation, IdempotencyKeyHeader+" header is too long")
			return
		}

		ctx := c.Request.Context()
		scoped := scopeKey(c, key)
		fresh, err := cfg.Store.MarkProcessed(ctx, scoped, cfg.TTL)
		if err != nil {
			logger.L(ctx).Error("Idempotency store unavailable", zap.Error(err))
			abortWithCode(c, dto.ErrCodeServiceUnavail, "Request could not be checked for duplicates")
			return
		}
		if !fresh {
			logger.L(ctx).Info("Duplicate request rejected", zap.String("idempotency_key", key))
			abortWithCode(c, dto.ErrCodeDuplicateRequest, shared.ErrDuplicateRequest.Message)
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			// the request context may already be cancelled
			relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if err := cfg.Store.Release(relCtx, scoped); err != nil {
				logger.L(ctx).Warn("Failed to release idempotency key", zap.String("idempotency_key", key), zap.Error(err))
			}
		}
	}
}

// scopeKey ties a client key to the caller and route, so equal keys sent to
// different endpoints do not collide
func scopeKey(c *gin.Context, key string) string {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	return GetJWTUser(c) + "|" + c.Request.Method + " " + route + "|" + key
}
