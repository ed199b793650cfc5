package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles requests per key (normally the caller IP).
// Concurrent requests sharing a key draw from the same bucket. Each
// middleware instance owns its buckets, so two routes limiting by the same
// key never inherit each other's limits.
func RateLimitMiddleware(r rate.Limit, b int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	limiters := make(map[string]*rate.Limiter)
	var mu sync.Mutex

	getLimiter := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		limiter, exists := limiters[key]
		if !exists {
			limiter = rate.NewLimiter(r, b)
			limiters[key] = limiter
		}
		return limiter
	}

	return func(c *gin.Context) {
		limiter := getLimiter(keyFunc(c))

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please slow down."})
			return
		}

		c.Next()
	}
}

// SubscribeRateLimit caps newsletter signups at 5 per minute per key. The
// bucket refills a single token per minute, so a sixth request inside the
// window is rejected no matter when in the window it lands.
func SubscribeRateLimit(keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return RateLimitMiddleware(rate.Every(time.Minute), 5, keyFunc)
}
