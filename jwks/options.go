package jwks

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) {
		cfg.httpClient = client
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

func WithRateLimitBurst(burst int) Option {
	return func(cfg *config) {
		if burst > 0 {
			cfg.rateLimitBurst = burst
		}
	}
}

func WithRefreshTimeout(timeout time.Duration) Option {
	return func(cfg *config) {
		if timeout > 0 {
			cfg.refreshTimeout = timeout
		}
	}
}

func WithRefreshInterval(interval time.Duration) Option {
	return func(cfg *config) {
		if interval > 0 {
			cfg.refreshInterval = interval
		}
	}
}

// WithRateLimitWaitMax bounds how long a lookup for an unknown kid waits for
// the refresh limiter. Zero means do not wait.
func WithRateLimitWaitMax(maxWait time.Duration) Option {
	return func(cfg *config) {
		cfg.rateLimitWaitMax = maxWait
	}
}
