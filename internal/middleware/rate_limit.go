package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/eliezerb2/presence/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type keyedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter holds one token bucket per key. Buckets idle for longer
// than limiterIdleTTL are dropped on the next lookup sweep.
type KeyedRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*keyedLimiter
	r         rate.Limit
	b         int
	now       func() time.Time
	lastSweep time.Time
}

func NewKeyedRateLimiter(r rate.Limit, b int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: make(map[string]*keyedLimiter),
		r:        r,
		b:        b,
		now:      time.Now,
	}
}

func (k *KeyedRateLimiter) Allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if now.Sub(k.lastSweep) > limiterIdleTTL {
		for id, l := range k.limiters {
			if now.Sub(l.lastSeen) > limiterIdleTTL {
				delete(k.limiters, id)
			}
		}
		k.lastSweep = now
	}

	l, ok := k.limiters[key]
	if !ok {
		l = &keyedLimiter{limiter: rate.NewLimiter(k.r, k.b)}
		k.limiters[key] = l
	}
	l.lastSeen = now
	return l.limiter.AllowN(now, 1)
}

func (k *KeyedRateLimiter) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}

// RateLimitByParam limits per value of a path parameter, e.g. one kiosk
// student hammering the check-in button.
func RateLimitByParam(param string, r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		key := c.Param(param)
		if key == "" {
			c.Next()
			return
		}
		if !limiter.Allow(key) {
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests for this student", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
