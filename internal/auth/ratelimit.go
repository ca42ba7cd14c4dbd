package auth

import (
	"fmt"
	"sync"
	"time"

	"gamelist/backend/internal/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const maxTrackedClients = 10000

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP.
type RateLimiter struct {
	limiters map[string]*clientLimiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	logger   logger.Logger
	now      func() time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests with the given burst per client.
func NewRateLimiter(perSecond float64, burst int, log logger.Logger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		logger:   log,
		now:      time.Now,
	}
}

// refillTime is how long an idle client takes to get its full burst back.
func (rl *RateLimiter) refillTime() time.Duration {
	return time.Duration(float64(rl.burst) / float64(rl.rate) * float64(time.Second))
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, exists := rl.limiters[key]
	if !exists {
		if len(rl.limiters) >= maxTrackedClients {
			rl.evict(now)
		}
		entry = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// evict drops clients whose bucket is full again. When none qualify the
// least recently seen client is dropped. Callers hold mu.
func (rl *RateLimiter) evict(now time.Time) {
	refill := rl.refillTime()
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) >= refill {
			delete(rl.limiters, key)
			continue
		}
		if oldestKey == "" || entry.lastSeen.Before(oldest) {
			oldestKey, oldest = key, entry.lastSeen
		}
	}
	if len(rl.limiters) >= maxTrackedClients {
		delete(rl.limiters, oldestKey)
	}
}

// Cleanup removes clients whose bucket has refilled.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	refill := rl.refillTime()
	for key, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) >= refill {
			delete(rl.limiters, key)
		}
	}
}

// StartCleanup runs Cleanup every interval until done is closed.
func (rl *RateLimiter) StartCleanup(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.Cleanup()
			case <-done:
				return
			}
		}
	}()
}

// Allow reports whether a request from key may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Middleware rejects requests over the limit through deny.
func (rl *RateLimiter) Middleware(deny gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !rl.Allow(key) {
			rl.logger.Warn(fmt.Sprintf("rate limit exceeded for %s on %s %s", key, c.Request.Method, c.Request.URL.Path))
			deny(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
