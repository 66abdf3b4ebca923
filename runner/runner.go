package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultShutdownTimeout = 30 * time.Second
	defaultStartupWindow   = 250 * time.Millisecond
)

var (
	ErrServicePanic    = errors.New("runner: service panicked")
	ErrServiceFailed   = errors.New("runner: service failed to start")
	ErrShutdownTimeout = errors.New("runner: shutdown timeout exceeded")
)

type Service interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}

type Runner struct {
	coreServices           []Service
	infrastructureServices []Service
	shutdownTimeout        time.Duration
	startupWindow          time.Duration
	logger                 zerolog.Logger
}

type Option func(*Runner)

func New(opts ...Option) *Runner {
	runner := &Runner{
		coreServices:           make([]Service, 0),
		infrastructureServices: make([]Service, 0),
		shutdownTimeout:        defaultShutdownTimeout,
		startupWindow:          defaultStartupWindow,
		logger:                 log.Logger,
	}

	for _, opt := range opts {
		opt(runner)
	}

	for _, svc := range runner.infrastructureServices {
		runner.logger.Info().
			Str("service_type", "infrastructure").
			Str("service_name", svc.Name()).
			Msg("Infrastructure service registered")
	}

	for _, svc := range runner.coreServices {
		runner.logger.Info().
			Str("service_type", "core").
			Str("service_name", svc.Name()).
			Msg("Core service registered")
	}

	return runner
}

func WithCoreService(svc Service) Option {
	return func(r *Runner) {
		r.coreServices = append(r.coreServices, svc)
	}
}

func WithInfrastructureService(svc Service) Option {
	return func(r *Runner) {
		r.infrastructureServices = append(r.infrastructureServices, svc)
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.shutdownTimeout = d
	}
}

// WithStartupWindow bounds how long Run waits for Start calls to report an
// error before considering the services up.
func WithStartupWindow(d time.Duration) Option {
	return func(r *Runner) {
		r.startupWindow = d
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// Run starts the infrastructure services, then the core services, and blocks
// until ctx is cancelled or the process receives SIGINT or SIGTERM. Services
// are stopped in reverse order.
func (r *Runner) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info().Msg("Starting infrastructure services")

	if err := r.startServices(ctx, r.infrastructureServices); err != nil {
		r.logger.Error().Err(err).Msg("Infrastructure services failed to start")

		return errors.Join(err, r.shutdownWithTimeout(r.infrastructureServices))
	}

	r.logger.Info().Msg("Starting core services")

	if err := r.startServices(ctx, r.coreServices); err != nil {
		r.logger.Error().Err(err).Msg("Core services failed to start")

		return errors.Join(
			err,
			r.shutdownWithTimeout(r.coreServices),
			r.shutdownWithTimeout(r.infrastructureServices),
		)
	}

	r.logger.Info().
		Int("pid", os.Getpid()).
		Int("core_services", len(r.coreServices)).
		Int("infra_services", len(r.infrastructureServices)).
		Msg("All services started, waiting for shutdown signal")

	<-ctx.Done()
	r.logger.Warn().Msg("Shutdown signal received")

	err := errors.Join(
		r.shutdownWithTimeout(r.coreServices),
		r.shutdownWithTimeout(r.infrastructureServices),
	)

	r.logger.Info().Msg("Graceful shutdown completed")

	return err
}

func (r *Runner) startServices(ctx context.Context, services []Service) error {
	if len(services) == 0 {
		return nil
	}

	errCh := make(chan error, len(services))

	var wg sync.WaitGroup

	for _, svc := range services {
		wg.Add(1)

		go func(service Service) {
			defer wg.Done()

			defer func() {
				if rec := recover(); rec != nil {
					errCh <- fmt.Errorf("%w: %s: %v", ErrServicePanic, service.Name(), rec)
				}
			}()

			r.logger.Info().Str("service_name", service.Name()).Msg("Starting service")

			if err := service.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("%w: %s: %w", ErrServiceFailed, service.Name(), err)
			}
		}(svc)
	}

	done := make(chan struct{})

	go func() {
		wg.Wait()
		close(done)
	}()

	// Start may block for long-running services, so only failures reported
	// within the startup window are caught here.
	select {
	case <-done:
	case <-time.After(r.startupWindow):
	case <-ctx.Done():
	}

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

func (r *Runner) shutdownWithTimeout(services []Service) error {
	if len(services) == 0 {
		return nil
	}

	done := make(chan struct{})

	go func() {
		r.concurrentStop(services)
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(r.shutdownTimeout):
		r.logger.Error().
			Dur("timeout", r.shutdownTimeout).
			Msg("Shutdown timeout exceeded, some services may not have stopped cleanly")

		return ErrShutdownTimeout
	}
}

func (r *Runner) concurrentStop(services []Service) {
	var wg sync.WaitGroup

	for _, svc := range services {
		wg.Add(1)

		go func(service Service) {
			defer wg.Done()

			r.logger.Info().Str("service_name", service.Name()).Msg("Stopping service")

			if err := service.Stop(); err != nil {
				r.logger.Error().
					Err(err).
					Str("service_name", service.Name()).
					Msg("Service failed to stop")
			} else {
				r.logger.Info().
					Str("service_name", service.Name()).
					Msg("Service stopped")
			}
		}(svc)
	}

	wg.Wait()
}
