package metricserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const (
	metricsPath = "/metrics"
	statusPath  = "/status"
)

var ErrNotRunning = errors.New("metricserver: server is not running")

type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	GracePeriod  time.Duration
	// Gatherer defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

type Server struct {
	gracePeriod  time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	address      string
	echo         *echo.Echo
	httpServer   *http.Server
}

func New(cfg *Config) *Server {
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	ech := echo.New()

	ech.GET(statusPath, func(ctx *echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]any{"status": "ok"})
	})

	ech.GET(metricsPath, echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{ //nolint:exhaustruct
		Gatherer: gatherer,
	}))

	return &Server{ //nolint:exhaustruct
		gracePeriod:  cfg.GracePeriod,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
		address:      net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		echo:         ech,
	}
}

// Handler exposes the routes without a listener.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(_ context.Context) error {
	s.httpServer = &http.Server{ //nolint:exhaustruct
		Addr:         s.address,
		Handler:      s.echo,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	log.Info().Str("address", s.address).Msg("Starting metrics server")

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Metrics server encountered a fatal error")
		}
	}()

	return nil
}

func (s *Server) Stop() error {
	if s.httpServer == nil {
		return ErrNotRunning
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.gracePeriod)
	defer cancel()

	log.Info().Msg("Initiating graceful shutdown of metrics server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to gracefully shut down metrics server")

		return fmt.Errorf("failed to stop metrics server: %w", err)
	}

	log.Info().Msg("Metrics server shutdown complete")

	return nil
}

func (s *Server) Name() string {
	return "metric"
}
