package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/berkeley-decal/decal-portal/internal/app/models/dto"
	"github.com/berkeley-decal/decal-portal/internal/pkg/logger"
)

// RateLimiter throttles requests per client IP with a fixed Redis window.
// The limiter fails open: when Redis is unreachable or not configured, the
// request proceeds.
type RateLimiter struct {
	redisClient *redis.Client
}

// NewRateLimiter creates a new RateLimiter. A nil client disables limiting.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{redisClient: client}
}

// Limit enforces at most limit requests per window, keyed by bucket and
// client IP.
func (rl *RateLimiter) Limit(bucket string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.redisClient == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", bucket, c.ClientIP())

		count, err := rl.redisClient.Incr(c, key).Result()
		if err != nil {
			logger.Warn().Err(err).Str("bucket", bucket).Msg("Rate limit check failed, allowing request")
			c.Next()
			return
		}

		if count == 1 {
			rl.redisClient.Expire(c, key, window)
		}

		if count > int64(limit) {
			ttl, _ := rl.redisClient.TTL(c, key).Result()
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse("Too many requests").
					WithDetails(fmt.Sprintf("retry after %.0f seconds", ttl.Seconds())))
			return
		}

		c.Next()
	}
}
