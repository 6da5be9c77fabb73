package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oatlas/oatlas/internal/httputil"
)

// maxTrackedIPs caps the bucket table to bound memory under address churn.
const maxTrackedIPs = 100_000

// RateLimiter applies a per-IP token bucket.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	burst   int
}

// bucket holds the remaining tokens for one client IP.
type bucket struct {
	tokens   int
	lastFill time.Time
}

// NewRateLimiter creates a RateLimiter allowing ratePerSec requests with the
// given burst size. A background goroutine evicts idle buckets until ctx is
// cancelled.
func NewRateLimiter(ctx context.Context, ratePerSec, burst int) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    ratePerSec,
		burst:   burst,
	}
	go rl.evictLoop(ctx)

	return rl
}

// take refills b according to elapsed time and consumes one token if any
// remain. Callers hold rl.mu.
func (rl *RateLimiter) take(b *bucket) bool {
	now := time.Now()

	if refill := int(now.Sub(b.lastFill).Seconds() * float64(rl.rate)); refill > 0 {
		b.tokens += refill
		if b.tokens > rl.burst {
			b.tokens = rl.burst
		}
		b.lastFill = now
	}

	if b.tokens == 0 {
		return false
	}
	b.tokens--

	return true
}

func (rl *RateLimiter) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	const maxIdle = 10 * time.Minute

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				if now.Sub(b.lastFill) > maxIdle {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Handler returns gin middleware enforcing the limit per client IP.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// c.ClientIP() is safe from X-Forwarded-For spoofing because
		// SetTrustedProxies(nil) in router.go disables proxy header trust.
		ip := c.ClientIP()

		rl.mu.Lock()
		b, ok := rl.buckets[ip]
		if !ok {
			if len(rl.buckets) >= maxTrackedIPs {
				rl.mu.Unlock()
				httputil.RespondError(c, http.StatusTooManyRequests, "rate_limited", "too many clients")

				return
			}

			b = &bucket{tokens: rl.burst, lastFill: time.Now()}
			rl.buckets[ip] = b
		}

		allowed := rl.take(b)
		rl.mu.Unlock()

		if !allowed {
			httputil.RespondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")

			return
		}

		c.Next()
	}
}
