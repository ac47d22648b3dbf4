package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	redispkg "github.com/hillcrest-academy/core/internal/pkg/redis"
)

const (
	rateLimitWindow = time.Second
	rateLimitMax    = 50
)

// RateLimit caps each client IP at rateLimitMax requests per second using a
// Redis counter window. Fails open if Redis is unavailable.
func RateLimit(rdb *redispkg.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix())
		ctx := c.Request.Context()

		count, err := rdb.Raw().Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.Raw().Expire(ctx, key, rateLimitWindow*2)
		}

		if count > rateLimitMax {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":    0,
				"code":  http.StatusTooManyRequests,
				"error": "too many requests",
			})
			return
		}

		c.Next()
	}
}
