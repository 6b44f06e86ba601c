package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// limiterIdleTTL is how long an IP may stay quiet before its bucket is
	// dropped. A full bucket refills well within it.
	limiterIdleTTL = 10 * time.Minute
	sweepInterval  = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore holds one token bucket per client IP. Idle entries are
// swept at most once per sweepInterval, on the request path.
type rateLimiterStore struct {
	visitors  map[string]*visitor
	perMin    int
	mu        sync.Mutex
	lastSweep time.Time
	now       func() time.Time
}

func newRateLimiterStore(perMin int) *rateLimiterStore {
	return &rateLimiterStore{
		visitors:  make(map[string]*visitor),
		perMin:    perMin,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= sweepInterval {
		s.sweep(now)
	}

	v, exists := s.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep drops visitors idle for longer than limiterIdleTTL. Callers hold mu.
func (s *rateLimiterStore) sweep(now time.Time) {
	for ip, v := range s.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(s.visitors, ip)
		}
	}
	s.lastSweep = now
}

func (s *rateLimiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

// RateLimit allows perMin requests per minute from each client IP, with a
// burst of the same size.
func RateLimit(perMin int, log *zap.Logger) gin.HandlerFunc {
	if perMin <= 0 {
		perMin = 100
	}
	return rateLimit(newRateLimiterStore(perMin), log)
}

func rateLimit(store *rateLimiterStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.getLimiter(ip).Allow() {
			log.Warn("Rate limit exceeded", zap.String("ip", ip), zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
