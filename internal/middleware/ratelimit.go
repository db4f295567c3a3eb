package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	rateLimitMax    = 50
	rateLimitWindow = time.Second
)

// RateLimit returns a middleware that enforces a sliding-window rate limit
// per client IP. Authenticated requests are exempt.
func RateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAuthenticated(c) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		windowKey := time.Now().Unix()
		key := fmt.Sprintf("nexus:rate_limit:%s:%d", ip, windowKey)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}

		if count == 1 {
			rdb.PExpire(ctx, key, rateLimitWindow+time.Second)
		}

		if count > rateLimitMax {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":      0,
				"code":    http.StatusTooManyRequests,
				"message": "too many requests, slow down",
			})
			return
		}

		c.Next()
	}
}
