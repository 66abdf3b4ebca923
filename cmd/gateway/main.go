package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/andyle182810/apicaller/cache"
	"github.com/andyle182810/apicaller/dispatch"
	"github.com/andyle182810/apicaller/goredis"
	"github.com/andyle182810/apicaller/httpserver"
	"github.com/andyle182810/apicaller/internal/config"
	"github.com/andyle182810/apicaller/internal/probe"
	"github.com/andyle182810/apicaller/internal/service"
	"github.com/andyle182810/apicaller/jwks"
	"github.com/andyle182810/apicaller/logutil"
	"github.com/andyle182810/apicaller/metricserver"
	"github.com/andyle182810/apicaller/middleware"
	"github.com/andyle182810/apicaller/runner"
	"github.com/andyle182810/apicaller/transport"
	"github.com/andyle182810/apicaller/workerpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const metricsSubsystem = "gateway"

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Application exited with an error")
	}

	log.Info().Msg("Application shutdown complete")
}

func run(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.Logger = logutil.New(cfg.LogLevel, cfg.LogPretty, os.Stderr)
	zerolog.SetGlobalLevel(logutil.ParseZerologLevel(cfg.LogLevel))

	registry := newRegistry(cfg)

	transports := make(map[string]dispatch.PatchTransport, registry.Count())
	checkers := make(map[string]probe.Checker, registry.Count())

	for _, name := range registry.Names() {
		transports[name] = registry.Client(name)
		checkers[name] = registry.Client(name)
	}

	var (
		readiness service.Readiness
		pool      *workerpool.WorkerPool
	)

	if cfg.ProbeEnabled() {
		var prober *probe.Prober

		prober, pool = newProbePool(cfg, checkers)
		readiness = prober
	}

	var (
		redisClient *goredis.Client
		responses   service.ResponseCache
	)

	if cfg.CacheEnabled() {
		redisClient, err = newRedisClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize response cache: %w", err)
		}

		responses = cache.New(redisClient, cache.WithTTL(cfg.CacheTTL), cache.WithPrefix(cfg.CachePrefix))
	}

	params := service.Params{
		Transports:     transports,
		ForwardHeaders: cfg.ForwardHeaders,
		Readiness:      readiness,
		Cache:          responses,
	}

	svc := service.New(params,
		dispatch.WithLogger(log.Logger),
		dispatch.WithMetrics(dispatch.NewMetrics(prometheus.DefaultRegisterer)),
	)

	app := &application{cfg: cfg, svc: svc, keyFunc: nil}

	if cfg.TokenVerificationEnabled() {
		app.keyFunc, err = jwks.New(ctx, cfg.JWKSURLs, jwks.WithLogger(log.Logger))
		if err != nil {
			return fmt.Errorf("failed to initialize access token verification: %w", err)
		}
	}

	log.Info().
		Strs("backends", registry.Names()).
		Bool("token_verification", cfg.TokenVerificationEnabled()).
		Bool("rate_limit", cfg.RateLimitEnabled()).
		Bool("probe", cfg.ProbeEnabled()).
		Bool("cache", cfg.CacheEnabled()).
		Msg("Gateway configured")

	runnerOpts := []runner.Option{
		runner.WithLogger(log.Logger),
		runner.WithInfrastructureService(app.newMetricServer()),
		runner.WithCoreService(app.newHTTPServer()),
		runner.WithShutdownTimeout(cfg.GracefulShutdownPeriod),
	}

	if redisClient != nil {
		runnerOpts = append(runnerOpts, runner.WithInfrastructureService(redisClient))
	}

	if pool != nil {
		runnerOpts = append(runnerOpts, runner.WithCoreService(pool))
	}

	appRunner := runner.New(runnerOpts...)

	return appRunner.Run(ctx)
}

type application struct {
	cfg     *config.Config
	svc     *service.Service
	keyFunc *jwks.KeyFunc
}

func newRegistry(cfg *config.Config) *transport.Registry {
	registry := transport.NewRegistry(
		transport.WithTimeout(cfg.BackendTimeout),
		transport.WithRetry(cfg.BackendRetryCount, cfg.BackendRetryWait),
		transport.WithRequestIDKey(middleware.RequestIDContextKey),
	)

	for name, baseURL := range cfg.BackendURLs {
		registry.Register(name, baseURL)
	}

	return registry
}

// newProbePool checks every backend once at startup and then on each tick.
func newProbePool(cfg *config.Config, checkers map[string]probe.Checker) (*probe.Prober, *workerpool.WorkerPool) {
	prober := probe.New(
		checkers,
		probe.WithPath(cfg.BackendHealthPath),
		probe.WithTimeout(cfg.ProbeTimeout),
		probe.WithLogger(log.Logger),
	)

	pool := workerpool.New(
		prober,
		workerpool.WithName("backend-probe"),
		workerpool.WithTickInterval(cfg.ProbeInterval),
		workerpool.WithExecutionTimeout(cfg.ProbeTimeout+time.Second),
		workerpool.WithRunOnStart(),
		workerpool.WithLogger(log.Logger),
	)

	return prober, pool
}

func newRedisClient(cfg *config.Config) (*goredis.Client, error) {
	return goredis.New(&goredis.Config{ //nolint:exhaustruct
		Host:          cfg.RedisHost,
		Port:          cfg.RedisPort,
		Password:      cfg.RedisPassword,
		DB:            cfg.RedisDB,
		TLSEnabled:    cfg.RedisTLSEnabled,
		TLSSkipVerify: cfg.RedisTLSSkipVerify,
		TLSCAFile:     cfg.RedisTLSCAFile,
	}, goredis.WithLogger(log.Logger))
}

func (app *application) newHTTPServer() *httpserver.Server {
	httpCfg := &httpserver.Config{
		Host:                  app.cfg.HTTPServerHost,
		Port:                  app.cfg.HTTPServerPort,
		EnableCors:            app.cfg.HTTPEnableCORS,
		AllowOrigins:          app.cfg.HTTPAllowOrigins,
		BodyLimit:             app.cfg.HTTPBodyLimit,
		ReadTimeout:           app.cfg.HTTPServerReadTimeout,
		WriteTimeout:          app.cfg.HTTPServerWriteTimeout,
		GracePeriod:           app.cfg.GracefulShutdownPeriod,
		EnableMetrics:         true,
		MetricsSubsystem:      metricsSubsystem,
		IncludeInternalErrors: app.cfg.HTTPIncludeInternal,
		RequireRequestID:      app.cfg.HTTPRequireRequestID,
		Logger:                &log.Logger,
	}

	svr := httpserver.New(httpCfg)
	app.registerRoutes(svr.Root)

	return svr
}

func (app *application) newMetricServer() *metricserver.Server {
	metricCfg := &metricserver.Config{
		Host:         app.cfg.MetricServerHost,
		Port:         app.cfg.MetricServerPort,
		ReadTimeout:  app.cfg.MetricServerReadTimeout,
		WriteTimeout: app.cfg.MetricServerWriteTimeout,
		GracePeriod:  app.cfg.GracefulShutdownPeriod,
		Gatherer:     prometheus.DefaultGatherer,
	}

	return metricserver.New(metricCfg)
}

func (app *application) registerRoutes(root *echo.Group) {
	root.GET("/health", app.svc.CheckHealth)
	root.GET("/ready", app.svc.CheckReadiness)

	v1 := root.Group("/api/v1")

	if app.cfg.RateLimitEnabled() {
		v1.Use(middleware.RateLimit(app.cfg.RateLimitRPS, app.cfg.RateLimitBurst))
	}

	public := v1.Group("/public")
	public.Any("/:service/*", app.svc.CallPublic)

	private := v1.Group("/private")
	if app.keyFunc != nil {
		private.Use(middleware.AccessToken(app.keyFunc.Keyfunc))
	}

	private.Any("/:service/*", app.svc.CallPrivate)
}
