package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rankten/rankten-backend/internal/config"
	"github.com/rankten/rankten-backend/internal/response"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimiter is a Redis-backed fixed-window limiter keyed by
// (endpoint scope, client identity). Keeping the counters in a shared
// store makes the quota hold across multiple server instances, which an
// in-process map cannot.
type RateLimiter struct {
	rdb    *redis.Client
	scope  string
	quota  int
	window time.Duration
	log    zerolog.Logger
}

// NewRateLimiter creates a limiter allowing quota requests per window for
// the given endpoint scope.
func NewRateLimiter(rdb *redis.Client, scope string, quota int, window time.Duration, log zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		scope:  scope,
		quota:  quota,
		window: window,
		log:    log.With().Str("component", "ratelimit").Str("scope", scope).Logger(),
	}
}

// Middleware returns a Gin middleware enforcing the quota. Authenticated
// requests are counted per user, anonymous ones per client IP. Redis
// outages fail open: admission control is protection, not a dependency.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.ClientIP()
		if claims := GetClaims(c); claims != nil {
			clientID = claims.Subject
		}

		key := config.CacheKey.RateLimitKey(rl.scope, clientID)

		count, err := rl.rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			rl.log.Warn().Err(err).Msg("Rate limit counter unavailable, allowing request")
			c.Next()
			return
		}
		if count == 1 {
			// First hit opens the window.
			rl.rdb.Expire(c.Request.Context(), key, rl.window)
		}

		if count > int64(rl.quota) {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}
