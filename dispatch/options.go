package dispatch

import (
	"github.com/andyle182810/apicaller/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	logger  zerolog.Logger
	metrics *Metrics
	store   session.Store
}

func newOptions(opts []Option) options {
	cfg := options{
		logger:  log.Logger,
		metrics: nil,
		store:   nil,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type Option func(*options)

// WithLogger sets the logger absorbed failures are written to.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// WithStore pins the session store used by the authenticated dispatcher.
// Without it the store is taken from the call context.
func WithStore(store session.Store) Option {
	return func(o *options) {
		o.store = store
	}
}
