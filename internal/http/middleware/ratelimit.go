package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// localSweepThreshold is the number of tracked keys past which expired
// windows are dropped.
const localSweepThreshold = 10000

type fixedWindow struct {
	start time.Time
	count int
}

// localLimiter is the in-process fixed window used when redis is absent.
// Counters are per instance, so limits multiply with replicas.
type localLimiter struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	windows map[string]*fixedWindow
	now     func() time.Time
}

func newLocalLimiter(limit int, period time.Duration) *localLimiter {
	return &localLimiter{limit: limit, period: period, windows: make(map[string]*fixedWindow), now: time.Now}
}

// SimpleRateLimit blocks clients that send more than maxRequests per window.
func SimpleRateLimit(maxRequests int, period time.Duration) gin.HandlerFunc {
	return newLocalLimiter(maxRequests, period).handle
}

func (l *localLimiter) handle(c *gin.Context) {
	l.handleKey(c, c.ClientIP(), c.FullPath(), "rate limit exceeded")
}

// hit counts one request on key and returns whether it is over the limit and
// how long until its window resets.
func (l *localLimiter) hit(key string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.period {
		if len(l.windows) > localSweepThreshold {
			l.sweep(now)
		}
		w = &fixedWindow{start: now}
		l.windows[key] = w
	}
	w.count++
	return w.count > l.limit, l.period - now.Sub(w.start)
}

func (l *localLimiter) handleKey(c *gin.Context, key, endpoint, msg string) {
	blocked, reset := l.hit(key)
	if blocked {
		RLBlocked.WithLabelValues(endpoint).Inc()
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       "rate_limited",
			"message":     msg,
			"retry_after": int((reset + time.Second - 1) / time.Second),
		})
		return
	}
	RLRequests.WithLabelValues(endpoint).Inc()
	c.Next()
}

// sweep drops expired windows; caller holds mu.
func (l *localLimiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if now.Sub(w.start) >= l.period {
			delete(l.windows, k)
		}
	}
}
