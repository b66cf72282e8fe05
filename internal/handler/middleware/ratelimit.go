package middleware

import (
	"net/http"
	"sync"
	"time"

	"commerce-booking/internal/pkg/clock"
	"commerce-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const defaultLimiterIdleTTL = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than the idle ttl are dropped, checked at most once per ttl.
type RateLimiter struct {
	ips       map[string]*client
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	clock     clock.Clock
	lastSweep time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig, clk clock.Clock) *RateLimiter {
	perMinute := cfg.PerMinute
	if perMinute <= 0 {
		perMinute = 1
	}
	idleTTL := cfg.IdleTTL
	if idleTTL <= 0 {
		idleTTL = defaultLimiterIdleTTL
	}
	return &RateLimiter{
		ips:       make(map[string]*client),
		rate:      rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     cfg.Burst,
		idleTTL:   idleTTL,
		clock:     clk,
		lastSweep: clk.Now(),
	}
}

// Clients counts the IPs currently tracked.
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.ips)
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	rl.sweep(now)

	if c, exists := rl.ips[ip]; exists {
		c.lastSeen = now
		return c.limiter
	}
	c := &client{limiter: rate.NewLimiter(rl.rate, rl.burst), lastSeen: now}
	rl.ips[ip] = c
	return c.limiter
}

// sweep must be called with rl.mu held.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.idleTTL {
		return
	}
	for ip, c := range rl.ips {
		if now.Sub(c.lastSeen) >= rl.idleTTL {
			delete(rl.ips, ip)
		}
	}
	rl.lastSweep = now
}

// Middleware limits requests per client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			abortJSON(c, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		c.Next()
	}
}
