package middleware

import (
	"go-nexushr/internal/shared/apperror"
	"go-nexushr/internal/shared/response"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const defaultSweepInterval = time.Minute

// KeyRateLimiter holds one token bucket per key (client IP or user id).
// Buckets that have refilled completely are dropped on the next sweep, which
// loses nothing: a new bucket starts full.
type KeyRateLimiter struct {
	limiters  map[string]*rate.Limiter
	mu        sync.Mutex
	r         rate.Limit // tokens per second
	b         int        // burst
	sweep     time.Duration
	lastSweep time.Time
}

type LimiterOption func(*KeyRateLimiter)

// WithSweepInterval sets how often idle buckets are pruned.
func WithSweepInterval(d time.Duration) LimiterOption {
	return func(l *KeyRateLimiter) { l.sweep = d }
}

func NewKeyRateLimiter(r rate.Limit, b int, opts ...LimiterOption) *KeyRateLimiter {
	l := &KeyRateLimiter{
		limiters:  make(map[string]*rate.Limiter),
		r:         r,
		b:         b,
		sweep:     defaultSweepInterval,
		lastSweep: time.Now(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *KeyRateLimiter) GetLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastSweep) >= l.sweep {
		l.pruneLocked(now)
	}

	limiter, exists := l.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limiters[key] = limiter
	}

	return limiter
}

// Len reports the number of tracked keys.
func (l *KeyRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *KeyRateLimiter) pruneLocked(now time.Time) {
	for key, limiter := range l.limiters {
		if limiter.TokensAt(now) >= float64(l.b) {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			response.AbortError(c, http.StatusTooManyRequests, apperror.CodeTooMany, "Too many requests from this IP")
			return
		}
		c.Next()
	}
}

// RateLimitByUser skips anonymous requests; run it after AuthMiddleware.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyRateLimiter(r, b)
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.GetLimiter(userID).Allow() {
			response.AbortError(c, http.StatusTooManyRequests, apperror.CodeTooMany, "Too many requests from this user")
			return
		}
		c.Next()
	}
}
