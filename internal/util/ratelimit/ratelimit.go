// Package ratelimit throttles requests per client IP using TTL-expiring
// counters in the shared cache, so counter state is bounded and evicted
// automatically instead of growing per-IP forever.
package ratelimit

import (
	"net/http"
	"time"

	"etude-backend/internal/util/cache"

	"github.com/gin-gonic/gin"
)

type Limiter struct {
	cache     *cache.Cache
	keyPrefix string
	limit     int64
	window    time.Duration
}

func NewLimiter(c *cache.Cache, keyPrefix string, limit int64, window time.Duration) *Limiter {
	return &Limiter{
		cache:     c,
		keyPrefix: keyPrefix,
		limit:     limit,
		window:    window,
	}
}

func (l *Limiter) Allow(clientIP string) bool {
	return l.cache.Increment(l.keyPrefix+clientIP, l.window) <= l.limit
}

// PerIP is a gin middleware rejecting requests over the per-window budget
// with 429.
func (l *Limiter) PerIP() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !l.Allow(ctx.ClientIP()) {
			ctx.AbortWithStatusJSON(
				http.StatusTooManyRequests,
				gin.H{"error": "too many requests"},
			)
			return
		}

		ctx.Next()
	}
}
