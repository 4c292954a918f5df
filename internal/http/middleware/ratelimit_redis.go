package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// UseRedis shares the application redis client with the rate limiters.
// With a nil client the limiters fall back to per-process counters.
func UseRedis(rdb *redis.Client) {
	redisClient = rdb
}

// RedisRateLimit implements a fixed-window rate limiter per client IP using
// Redis INCR/EXPIRE. Limiters with different scopes count separately.
// key format: rl:<scope>:<window_seconds>:<ip>
func RedisRateLimit(scope string, maxRequests int, period time.Duration) gin.HandlerFunc {
	local := newLocalLimiter(maxRequests, period)
	return func(c *gin.Context) {
		if redisClient == nil {
			local.handle(c)
			return
		}

		key := ipKey(scope, period, c.ClientIP())
		allowFixedWindow(c, key, maxRequests, period, c.FullPath(), "rate limit exceeded")
	}
}

func ipKey(scope string, period time.Duration, ip string) string {
	return "rl:" + scope + ":" + strconv.FormatInt(int64(period.Seconds()), 10) + ":" + ip
}

// allowFixedWindow counts one hit on key and aborts with 429 once the
// window holds more than limit. Redis errors fail open.
func allowFixedWindow(c *gin.Context, key string, limit int, window time.Duration, endpoint, msg string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	pipe := redisClient.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		c.Header("X-RateLimit-Error", "redis-error")
		c.Next()
		return
	}
	val := incr.Val()

	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(int64(limit)-val, 0), 10))

	if val > int64(limit) {
		retry := ttl.Val()
		if retry <= 0 {
			retry = window
		}
		RLBlocked.WithLabelValues(endpoint).Inc()
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       "rate_limited",
			"message":     msg,
			"retry_after": int((retry + time.Second - 1) / time.Second),
		})
		return
	}

	RLRequests.WithLabelValues(endpoint).Inc()
	c.Next()
}
