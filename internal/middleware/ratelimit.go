package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	apierrors "github.com/yukikurage/warbler/internal/errors"
	"github.com/yukikurage/warbler/internal/logger"
	"github.com/yukikurage/warbler/internal/metrics"
	"go.uber.org/zap"
)

// RateLimit allows limit requests per window for each client IP and route.
// Without redis, or when redis fails, requests pass through.
// A non-positive limit disables the check.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		route := c.FullPath()
		key := fmt.Sprintf("warbler:rl:%s:%s", route, c.ClientIP())
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limit check failed, allowing request", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				logger.Warn("rate limit expiry failed", zap.String("key", key), zap.Error(err))
			}
		}

		if count > int64(limit) {
			metrics.RateLimited.WithLabelValues(route).Inc()
			apierrors.TooManyRequests(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
