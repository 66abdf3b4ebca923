// Package jwks loads the signing keys used to verify session access tokens
// from one or more JWK Set endpoints and keeps them refreshed.
package jwks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultRateLimitBurst  = 5
	DefaultRefreshTimeout  = 10 * time.Second
	DefaultRefreshInterval = 60 * time.Minute
)

var (
	ErrNoURLs  = errors.New("jwks: at least one JWK Set URL is required")
	ErrKeyfunc = errors.New("jwks: failed to initialize keyfunc")
)

// KeyFunc verifies token signatures against the keys of the configured sets.
type KeyFunc struct {
	keyfunc.Keyfunc

	urls []string
}

type config struct {
	httpClient       *http.Client
	logger           zerolog.Logger
	rateLimitBurst   int
	refreshTimeout   time.Duration
	refreshInterval  time.Duration
	rateLimitWaitMax time.Duration
}

type Option func(*config)

// New fetches every set once before returning. Keys with an unknown kid
// trigger a refresh, limited to one per second with a small burst.
func New(ctx context.Context, urls []string, opts ...Option) (*KeyFunc, error) {
	if len(urls) == 0 {
		return nil, ErrNoURLs
	}

	cfg := &config{
		httpClient:       nil,
		logger:           log.Logger,
		rateLimitBurst:   DefaultRateLimitBurst,
		refreshTimeout:   DefaultRefreshTimeout,
		refreshInterval:  DefaultRefreshInterval,
		rateLimitWaitMax: 0,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	override := keyfunc.Override{
		Client:                  cfg.httpClient,
		HTTPTimeout:             cfg.refreshTimeout,
		RefreshInterval:         cfg.refreshInterval,
		RefreshUnknownKID:       rate.NewLimiter(rate.Every(time.Second), cfg.rateLimitBurst),
		RefreshErrorHandlerFunc: refreshErrorHandler(cfg.logger),
		RateLimitWaitMax:        cfg.rateLimitWaitMax,
		ValidationSkipAll:       false,
	}

	kf, err := keyfunc.NewDefaultOverrideCtx(ctx, urls, override)
	if err != nil {
		cfg.logger.Error().
			Err(err).
			Strs("jwks_urls", urls).
			Msg("Failed to initialize JWKS keyfunc")

		return nil, fmt.Errorf("%w: %w", ErrKeyfunc, err)
	}

	cfg.logger.Info().
		Strs("jwks_urls", urls).
		Dur("refresh_interval", cfg.refreshInterval).
		Msg("JWKS keyfunc initialized")

	return &KeyFunc{Keyfunc: kf, urls: urls}, nil
}

func (k *KeyFunc) URLs() []string {
	return append([]string(nil), k.urls...)
}

func refreshErrorHandler(logger zerolog.Logger) func(url string) func(ctx context.Context, err error) {
	return func(url string) func(ctx context.Context, err error) {
		return func(_ context.Context, err error) {
			logger.Error().
				Err(err).
				Str("jwks_url", url).
				Msg("JWKS key refresh failed")
		}
	}
}
