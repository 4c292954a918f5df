package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ActionRateLimit limits state-changing game actions per user, not per IP.
// Requires JWT middleware to run before this.
func ActionRateLimit(maxActions int, period time.Duration) gin.HandlerFunc {
	local := newLocalLimiter(maxActions, period)
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		key := "action_rl:" + strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(int64(period.Seconds()), 10)
		endpoint := "action:" + c.FullPath()
		if redisClient == nil {
			local.handleKey(c, key, endpoint, "too many actions")
			return
		}
		allowFixedWindow(c, key, maxActions, period, endpoint, "too many actions")
	}
}
