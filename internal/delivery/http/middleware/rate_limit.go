package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/pkg/audit"
	"go-jobboard-backend/pkg/redis"

	"github.com/gin-gonic/gin"
)

// RateLimiter throttles requests per client IP over a fixed window.
// Counters live in Redis when available so limits hold across
// replicas; otherwise an in-memory map serves as fallback.
type RateLimiter struct {
	window    time.Duration
	threshold int

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(window time.Duration, threshold int) *RateLimiter {
	return &RateLimiter{
		window:    window,
		threshold: threshold,
		buckets:   make(map[string]*bucket),
	}
}

// Limit returns a middleware enforcing the limiter on a named scope.
// Scope keeps counters for different endpoints separate.
func (rl *RateLimiter) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		key := fmt.Sprintf("ratelimit:%s:%s", scope, ip)

		count, err := rl.incr(c, key)
		if err != nil {
			// Counting failures must not take down the endpoint.
			c.Next()
			return
		}

		if count > rl.threshold {
			audit.Event(audit.EventRateLimited, "", ip, scope)
			response.Error(c, http.StatusTooManyRequests, "Too many requests, try again later", "RATE_LIMITED")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) incr(c *gin.Context, key string) (int, error) {
	if redis.IsAvailable() {
		client := redis.Client()
		ctx := c.Request.Context()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			return rl.incrLocal(key), nil
		}
		if count == 1 {
			client.Expire(ctx, key, rl.window)
		}
		return int(count), nil
	}

	return rl.incrLocal(key), nil
}

func (rl *RateLimiter) incrLocal(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &bucket{resetAt: now.Add(rl.window)}
		rl.buckets[key] = b
	}
	b.count++

	// Opportunistic cleanup keeps the fallback map bounded.
	if len(rl.buckets) > 10000 {
		for k, v := range rl.buckets {
			if now.After(v.resetAt) {
				delete(rl.buckets, k)
			}
		}
	}

	return b.count
}
