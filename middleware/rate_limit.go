package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"golang.org/x/time/rate"
)

const defaultLimiterExpiry = 3 * time.Minute

var ErrRateLimited = echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")

type RateLimitConfig struct {
	Skipper middleware.Skipper
	// Rate is the sustained number of requests per second per key.
	Rate  float64
	Burst int
	// KeyFunc identifies the caller. Defaults to the client IP.
	KeyFunc func(*echo.Context) string
	// ExpiresIn is how long an idle caller's limiter is kept.
	ExpiresIn time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	expiresIn time.Duration
	lastSweep time.Time
	entries   map[string]*limiterEntry
	now       func() time.Time
}

func (s *limiterStore) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	entry, ok := s.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.limit, s.burst), lastSeen: now}
		s.entries[key] = entry
	}

	entry.lastSeen = now

	if now.Sub(s.lastSweep) > s.expiresIn {
		for k, e := range s.entries {
			if now.Sub(e.lastSeen) > s.expiresIn {
				delete(s.entries, k)
			}
		}

		s.lastSweep = now
	}

	return entry.limiter.AllowN(now, 1)
}

// RateLimit rejects callers exceeding rps requests per second, with bursts up
// to burst, with 429.
func RateLimit(rps float64, burst int) echo.MiddlewareFunc {
	return RateLimitWithConfig(RateLimitConfig{
		Skipper:   middleware.DefaultSkipper,
		Rate:      rps,
		Burst:     burst,
		KeyFunc:   nil,
		ExpiresIn: defaultLimiterExpiry,
	})
}

func RateLimitWithConfig(config RateLimitConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	if config.KeyFunc == nil {
		config.KeyFunc = func(c *echo.Context) string { return c.RealIP() }
	}

	if config.ExpiresIn <= 0 {
		config.ExpiresIn = defaultLimiterExpiry
	}

	if config.Burst <= 0 {
		config.Burst = 1
	}

	store := &limiterStore{
		mu:        sync.Mutex{},
		limit:     rate.Limit(config.Rate),
		burst:     config.Burst,
		expiresIn: config.ExpiresIn,
		lastSweep: time.Now(),
		entries:   make(map[string]*limiterEntry),
		now:       time.Now,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx *echo.Context) error {
			if config.Skipper(ctx) {
				return next(ctx)
			}

			if !store.allow(config.KeyFunc(ctx)) {
				return ErrRateLimited
			}

			return next(ctx)
		}
	}
}
