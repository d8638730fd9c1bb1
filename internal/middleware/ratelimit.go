package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/codesprint-backend/internal/response"
)

// RateLimiter implements a per-IP fixed-window request cap.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int           // Requests per window
	window   time.Duration // Window length
	now      func() time.Time
}

type visitor struct {
	count   int
	resetAt time.Time
}

// NewRateLimiter creates a RateLimiter (e.g., 5 requests per 15 minutes).
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}

	// Cleanup expired windows every minute.
	go func() {
		for range time.Tick(time.Minute) {
			rl.cleanup()
		}
	}()

	return rl
}

// Middleware returns a Gin middleware that rate-limits requests by IP.
// Rejected requests never reach the handler.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := rl.now()

		rl.mu.Lock()
		v, exists := rl.visitors[ip]
		if !exists || !now.Before(v.resetAt) {
			v = &visitor{resetAt: now.Add(rl.window)}
			rl.visitors[ip] = v
		}
		v.count++
		count, resetAt := v.count, v.resetAt
		rl.mu.Unlock()

		remaining := rl.limit - count
		if remaining < 0 {
			remaining = 0
		}
		resetSeconds := int(resetAt.Sub(now).Round(time.Second) / time.Second)

		c.Header("RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("RateLimit-Reset", strconv.Itoa(resetSeconds))

		if count > rl.limit {
			c.Header("Retry-After", strconv.Itoa(resetSeconds))
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) cleanup() {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if !now.Before(v.resetAt) {
			delete(rl.visitors, ip)
		}
	}
}
