package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// sweepThreshold is how many bucket lookups pass between idle sweeps.
	sweepThreshold = 5000
	// bucketIdleTTL is how long a bucket may sit untouched before a sweep
	// may drop it.
	bucketIdleTTL = 10 * time.Minute
)

// keyFunc maps a request to the identity that owns its token bucket.
// Keys should be prefixed per namespace so user ids and IPs cannot collide.
type keyFunc func(*gin.Context) string

// KeyByUserOrIP keys buckets by the authenticated user when one is present
// ("userID" in the Gin context) and by client IP otherwise.
func KeyByUserOrIP() keyFunc {
	return func(c *gin.Context) string {
		if v, ok := c.Get("userID"); ok {
			if s, ok := v.(string); ok && s != "" {
				return "user:" + s
			}
		}
		return "ip:" + c.ClientIP()
	}
}

type bucket struct {
	lim     *rate.Limiter
	touched time.Time
}

// RateLimiter is a process-local token-bucket limiter with one bucket per
// identity. Buckets appear on first use and idle ones are swept
// opportunistically during lookups, so memory stays proportional to the
// set of recently active callers. Safe for concurrent use.
//
// For multi-replica deployments a shared store would be needed to make the
// limit global; this limiter only protects a single process.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	keyFn keyFunc

	mu         sync.Mutex
	buckets    map[string]*bucket
	idleTTL    time.Duration
	sinceSweep uint64
}

// NewRateLimiter builds a limiter replenishing rps tokens per second with
// the given burst capacity. A burst below 1 is raised to 1 so the limiter
// can ever admit a request.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		keyFn:   keyFn,
		buckets: make(map[string]*bucket),
		idleTTL: bucketIdleTTL,
	}
}

// sweepLocked drops buckets idle for idleTTL or longer. Callers hold mu.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	for k, b := range rl.buckets {
		if now.Sub(b.touched) >= rl.idleTTL {
			delete(rl.buckets, k)
		}
	}
}

// take returns the bucket limiter for key, creating it on first use.
// The sweep runs before the fetch so that a stale bucket is evicted even
// when it is the one being asked for, and comes back with a fresh burst.
func (rl *RateLimiter) take(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sinceSweep++
	if rl.sinceSweep >= sweepThreshold {
		rl.sweepLocked(now)
		rl.sinceSweep = 0
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rl.rps, rl.burst)}
		rl.buckets[key] = b
	}
	b.touched = now
	return b.lim
}

// IsRateBypass reports whether IdempotencyValidator flagged this request as
// a replay of an already completed call. Replays skip the limiter so a
// client retrying for a lost response is never pushed into 429.
func IsRateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Handler enforces the per-key limit. Rejected requests get a 429 with
// Retry-After and the standard error envelope:
//
//	{"request_id": "...", "code": "rate_limited", "message": "rate limit exceeded"}
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}

		if rl.take(rl.keyFn(c)).Allow() {
			c.Next()
			return
		}

		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": c.Writer.Header().Get(requestIDHeader),
			"code":       "rate_limited",
			"message":    "rate limit exceeded",
		})
	}
}
