package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jstittsworth/topdog-adp/pkg/utils"
)

// RateLimit applies a per-client token bucket keyed by client IP. Used on
// the pick ingest endpoint so a misbehaving draft room cannot flood the
// store.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[key]
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[key] = l
		}
		return l
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			utils.SendTooManyRequests(c, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
