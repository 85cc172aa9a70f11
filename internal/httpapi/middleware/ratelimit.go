package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bromolabs/bromo-server/internal/common"
)

// RateLimiter is an advisory in-process counter with a rolling window,
// keyed by caller identity. A restart resets all counters; that is accepted.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	exempt map[string]struct{}
	counts map[string]*windowCount
	now    func() time.Time
}

type windowCount struct {
	start time.Time
	n     int
}

func NewRateLimiter(limitPerWindow int, window time.Duration, exempt []string) *RateLimiter {
	ex := make(map[string]struct{}, len(exempt))
	for _, e := range exempt {
		ex[e] = struct{}{}
	}
	return &RateLimiter{
		limit:  limitPerWindow,
		window: window,
		exempt: ex,
		counts: make(map[string]*windowCount),
		now:    time.Now,
	}
}

// Allow reports whether the caller may proceed and counts the attempt.
func (l *RateLimiter) Allow(key string) bool {
	if l.limit <= 0 {
		return true
	}
	if _, ok := l.exempt[key]; ok {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	wc, ok := l.counts[key]
	if !ok || now.Sub(wc.start) >= l.window {
		l.counts[key] = &windowCount{start: now, n: 1}
		return true
	}
	wc.n++
	return wc.n <= l.limit
}

// RateLimit must run after AuthRequired so the user id is available.
func RateLimit(l *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(UserIDKey)
		if !ok {
			c.Next()
			return
		}
		uid, _ := v.(uint64)
		if !l.Allow(strconv.FormatUint(uid, 10)) {
			common.Fail(c, http.StatusTooManyRequests, "rate limit exceeded")
			c.Abort()
			return
		}
		c.Next()
	}
}
