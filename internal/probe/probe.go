// Package probe polls the health endpoint of every backend and keeps the last
// result of each. A Prober is an Executor meant to be driven by a worker pool.
package probe

import (
	"context"
	"errors"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/andyle182810/apicaller/transport"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const DefaultPath = "/health"

var ErrNotChecked = errors.New("probe: not checked yet")

// Checker is the part of a backend transport the prober needs.
type Checker interface {
	Get(ctx context.Context, endpoint string, params, headers map[string]string) (*transport.Response, error)
}

type Status struct {
	Ready     bool      `json:"ready"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

type Prober struct {
	targets  map[string]Checker
	path     string
	timeout  time.Duration
	logger   zerolog.Logger
	now      func() time.Time
	mu       sync.RWMutex
	statuses map[string]Status
}

type Option func(*Prober)

// WithPath sets the endpoint requested on each backend.
func WithPath(path string) Option {
	return func(p *Prober) {
		if path != "" {
			p.path = path
		}
	}
}

// WithTimeout bounds a single backend check.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Prober) {
		p.logger = logger
	}
}

func New(targets map[string]Checker, opts ...Option) *Prober {
	prober := &Prober{
		targets:  maps.Clone(targets),
		path:     DefaultPath,
		timeout:  0,
		logger:   log.Logger,
		now:      time.Now,
		mu:       sync.RWMutex{},
		statuses: make(map[string]Status, len(targets)),
	}

	for _, opt := range opts {
		opt(prober)
	}

	for name := range prober.targets {
		prober.statuses[name] = Status{Ready: false, Error: ErrNotChecked.Error(), CheckedAt: time.Time{}}
	}

	return prober
}

// Execute checks every backend concurrently and records the outcome. A
// failing backend is recorded, not returned; only ctx ending is an error.
func (p *Prober) Execute(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)

	for name, target := range p.targets {
		group.Go(func() error {
			p.record(name, p.check(groupCtx, target))

			return nil
		})
	}

	_ = group.Wait()

	return ctx.Err()
}

func (p *Prober) check(ctx context.Context, target Checker) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	_, err := target.Get(ctx, p.path, nil, nil)

	return err
}

func (p *Prober) record(name string, err error) {
	status := Status{Ready: err == nil, Error: "", CheckedAt: p.now()}
	if err != nil {
		status.Error = err.Error()
	}

	p.mu.Lock()
	previous := p.statuses[name]
	p.statuses[name] = status
	p.mu.Unlock()

	if previous.Ready == status.Ready && !previous.CheckedAt.IsZero() {
		return
	}

	if status.Ready {
		p.logger.Info().Str("backend", name).Msg("Backend is ready")

		return
	}

	p.logger.Warn().Str("backend", name).Err(err).Msg("Backend is not ready")
}

// Snapshot returns a copy of the latest status of every backend.
func (p *Prober) Snapshot() map[string]Status {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return maps.Clone(p.statuses)
}

// Ready reports whether every backend passed its latest check.
func (p *Prober) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, status := range p.statuses {
		if !status.Ready {
			return false
		}
	}

	return true
}

// NotReady lists the backends that failed their latest check, sorted.
func (p *Prober) NotReady() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0)

	for name, status := range p.statuses {
		if !status.Ready {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}
