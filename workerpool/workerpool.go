// Package workerpool runs an Executor on a fixed tick with a bounded number
// of workers. A tick that finds every worker busy waits for one to free up.
package workerpool

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrAlreadyRunning = errors.New("workerpool: already running")

type Executor interface {
	Execute(ctx context.Context) error
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context) error

func (f ExecutorFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

type WorkerPool struct {
	name         string
	executor     Executor
	workerCount  int
	tickInterval time.Duration
	execTimeout  time.Duration
	runOnStart   bool
	logger       zerolog.Logger
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	mu           sync.Mutex
	running      bool
}

type Option func(*WorkerPool)

func New(executor Executor, opts ...Option) *WorkerPool {
	pool := &WorkerPool{
		name:         "worker-pool",
		executor:     executor,
		workerCount:  1,
		tickInterval: time.Second,
		execTimeout:  0,
		runOnStart:   false,
		logger:       log.Logger,
		cancel:       nil,
		wg:           sync.WaitGroup{},
		mu:           sync.Mutex{},
		running:      false,
	}

	for _, opt := range opts {
		opt(pool)
	}

	pool.logger = pool.logger.With().Str("pool", pool.name).Logger()

	return pool
}

func WithWorkerCount(count int) Option {
	return func(pool *WorkerPool) {
		if count > 0 {
			pool.workerCount = count
		}
	}
}

func WithTickInterval(duration time.Duration) Option {
	return func(pool *WorkerPool) {
		if duration > 0 {
			pool.tickInterval = duration
		}
	}
}

func WithExecutionTimeout(timeout time.Duration) Option {
	return func(pool *WorkerPool) {
		if timeout > 0 {
			pool.execTimeout = timeout
		}
	}
}

func WithName(name string) Option {
	return func(pool *WorkerPool) {
		if name != "" {
			pool.name = name
		}
	}
}

// WithRunOnStart queues one execution as soon as the pool starts instead of
// waiting for the first tick.
func WithRunOnStart() Option {
	return func(pool *WorkerPool) {
		pool.runOnStart = true
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(pool *WorkerPool) {
		pool.logger = logger
	}
}

func (pool *WorkerPool) Name() string {
	return pool.name
}

func (pool *WorkerPool) Start(ctx context.Context) error {
	pool.mu.Lock()
	if pool.running {
		pool.mu.Unlock()

		return ErrAlreadyRunning
	}

	pool.running = true
	jobs := make(chan struct{})

	workerCtx, cancel := context.WithCancel(ctx)
	pool.cancel = cancel
	// Counted under the lock so a concurrent Stop always waits for them.
	pool.wg.Add(pool.workerCount + 1)
	pool.mu.Unlock()

	pool.logger.Info().
		Int("worker_count", pool.workerCount).
		Dur("tick_interval", pool.tickInterval).
		Dur("exec_timeout", pool.execTimeout).
		Msg("Worker pool is starting")

	for workerID := range pool.workerCount {
		go pool.worker(workerCtx, workerID, jobs)
	}

	go pool.dispatch(workerCtx, jobs)

	return nil
}

func (pool *WorkerPool) Stop() error {
	pool.mu.Lock()
	if !pool.running {
		pool.mu.Unlock()

		return nil
	}

	pool.running = false
	cancel := pool.cancel
	pool.mu.Unlock()

	pool.logger.Info().Msg("Worker pool is stopping")

	if cancel != nil {
		cancel()
	}

	pool.wg.Wait()

	pool.logger.Info().Msg("Worker pool has stopped")

	return nil
}

func (pool *WorkerPool) dispatch(ctx context.Context, jobs chan<- struct{}) {
	defer pool.wg.Done()
	defer close(jobs)

	ticker := time.NewTicker(pool.tickInterval)
	defer ticker.Stop()

	if pool.runOnStart && !pool.enqueue(ctx, jobs) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !pool.enqueue(ctx, jobs) {
				return
			}
		}
	}
}

// enqueue hands one job to a free worker. It reports false when ctx ended
// first.
func (pool *WorkerPool) enqueue(ctx context.Context, jobs chan<- struct{}) bool {
	select {
	case jobs <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

func (pool *WorkerPool) worker(ctx context.Context, id int, jobs <-chan struct{}) {
	defer pool.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-jobs:
			if !ok || ctx.Err() != nil {
				return
			}

			pool.execute(ctx, id)
		}
	}
}

func (pool *WorkerPool) execute(ctx context.Context, workerID int) {
	var (
		execCtx context.Context
		cancel  context.CancelFunc
	)

	if pool.execTimeout > 0 {
		execCtx, cancel = context.WithTimeout(ctx, pool.execTimeout)
	} else {
		execCtx, cancel = context.WithCancel(ctx)
	}

	defer cancel()

	if err := pool.executor.Execute(execCtx); err != nil {
		pool.logger.Error().
			Err(err).
			Int("worker_id", workerID).
			Msg("Executor failed")
	}
}
