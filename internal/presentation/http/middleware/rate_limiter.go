package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/togay-aytemiz/lumiso-sub014/internal/presentation/http/dto/response"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/apperror"
	"golang.org/x/time/rate"
)

// TenantRateLimiter provides per-tenant rate limiting to prevent noisy neighbor issues
type TenantRateLimiter struct {
	limiters    map[uuid.UUID]*rateLimiterEntry
	mu          sync.Mutex
	rate        rate.Limit // requests per second
	burst       int        // maximum burst size
	cleanupTick time.Duration
	entryTTL    time.Duration
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterConfig holds configuration for the rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64       // Rate of requests allowed per second
	BurstSize         int           // Maximum burst size
	CleanupInterval   time.Duration // How often to clean up stale entries
	EntryTTL          time.Duration // How long to keep unused entries
}

// DefaultRateLimiterConfig returns sensible defaults
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	}
}

// NewTenantRateLimiter creates a new per-tenant rate limiter. Stale entries
// are swept until ctx is done.
func NewTenantRateLimiter(ctx context.Context, cfg RateLimiterConfig) *TenantRateLimiter {
	rl := &TenantRateLimiter{
		limiters:    make(map[uuid.UUID]*rateLimiterEntry),
		rate:        rate.Limit(cfg.RequestsPerSecond),
		burst:       cfg.BurstSize,
		cleanupTick: cfg.CleanupInterval,
		entryTTL:    cfg.EntryTTL,
	}

	if rl.cleanupTick > 0 {
		go rl.cleanupLoop(ctx)
	}

	return rl
}

// getLimiter returns the rate limiter for a specific tenant
func (rl *TenantRateLimiter) getLimiter(tenantID uuid.UUID) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if entry, exists := rl.limiters[tenantID]; exists {
		entry.lastSeen = time.Now()
		return entry.limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[tenantID] = &rateLimiterEntry{
		limiter:  limiter,
		lastSeen: time.Now(),
	}
	return limiter
}

// cleanupLoop periodically removes stale rate limiter entries
func (rl *TenantRateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(rl.cleanupTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup(time.Now())
		}
	}
}

// cleanup removes entries that haven't been used since now minus the TTL
func (rl *TenantRateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.entryTTL)
	for tenantID, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, tenantID)
		}
	}
}

// ActiveTenants returns how many tenants currently hold a limiter
func (rl *TenantRateLimiter) ActiveTenants() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Middleware returns a Gin middleware that applies per-tenant rate limiting.
// Requests without a tenant are not limited.
func (rl *TenantRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := GetTenantID(c)
		if tenantID == uuid.Nil {
			c.Next()
			return
		}

		limiter := rl.getLimiter(tenantID)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))

		if !limiter.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			response.Error(c, apperror.ErrTooManyRequests)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		c.Next()
	}
}
