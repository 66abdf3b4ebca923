package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/andyle182810/apicaller/middleware"
	"github.com/andyle182810/apicaller/validator"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v5"
	echomiddleware "github.com/labstack/echo/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	kilobyte         = 1 << 10
	megabyte         = 1 << 20
	gigabyte         = 1 << 30
	defaultBodyLimit = 10 * megabyte
)

type Config struct {
	Host         string
	Port         int
	EnableCors   bool
	AllowOrigins []string
	BodyLimit    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	GracePeriod  time.Duration
	// EnableMetrics registers the echoprometheus request metrics under
	// MetricsSubsystem. Only one server per process should enable it.
	EnableMetrics    bool
	MetricsSubsystem string
	// IncludeInternalErrors adds the wrapped error text to error responses.
	IncludeInternalErrors bool
	// RequireRequestID rejects requests without an X-Request-ID header
	// instead of generating one.
	RequireRequestID bool
	Logger                *zerolog.Logger
}

type Server struct {
	address      string
	gracePeriod  time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       zerolog.Logger
	Echo         *echo.Echo
	Root         *echo.Group
	httpServer   *http.Server
}

func New(cfg *Config) *Server {
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(
		echo.DefaultHTTPErrorHandler(false),
		&middleware.ErrorHandlerConfig{ //nolint:exhaustruct
			Logger:                &logger,
			LogErrors:             false,
			IncludeInternalErrors: cfg.IncludeInternalErrors,
		},
	)

	requestID := middleware.DefaultRequestIDConfig()
	requestID.AutoGenerate = !cfg.RequireRequestID

	e.Pre(middleware.RequestLogger(logger, SafeLogFieldsExtractor))
	e.Pre(middleware.RequestIDWithConfig(requestID))
	e.Pre(echomiddleware.BodyLimit(parseBodyLimit(cfg.BodyLimit)))

	if cfg.EnableMetrics {
		e.Use(echoprometheus.NewMiddleware(cfg.MetricsSubsystem))
	}

	if cfg.EnableCors {
		e.Use(echomiddleware.CORS(cfg.AllowOrigins...))
	}

	e.Use(middleware.Session())

	root := e.Group("")
	address := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	return &Server{ //nolint:exhaustruct
		gracePeriod:  cfg.GracePeriod,
		address:      address,
		logger:       logger,
		Echo:         e,
		Root:         root,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}
}

func parseBodyLimit(limit string) int64 {
	if limit == "" {
		return defaultBodyLimit
	}

	multiplier := int64(1)
	unit := limit[len(limit)-1:]

	switch unit {
	case "K", "k":
		multiplier = kilobyte
		limit = limit[:len(limit)-1]
	case "M", "m":
		multiplier = megabyte
		limit = limit[:len(limit)-1]
	case "G", "g":
		multiplier = gigabyte
		limit = limit[:len(limit)-1]
	}

	size, err := strconv.ParseInt(limit, 10, 64)
	if err != nil {
		return defaultBodyLimit
	}

	return size * multiplier
}

func (s *Server) Address() string {
	return s.address
}

func (s *Server) Start(_ context.Context) error {
	s.httpServer = &http.Server{ //nolint:exhaustruct
		Addr:         s.address,
		Handler:      s.Echo,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	s.logger.Info().
		Str("address", s.address).
		Msg("The HTTP server is being started")

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("HTTP server failed to start")
		}
	}()

	return nil
}

func (s *Server) Stop() error {
	s.logger.Info().
		Msg("The graceful shutdown of HTTP server is being initiated")

	if s.httpServer == nil {
		return ErrNotRunning
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.gracePeriod)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Failed to gracefully stop HTTP server")

		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}

	s.logger.Info().
		Msg("The HTTP server shutdown has been completed successfully")

	return nil
}

func (s *Server) Name() string {
	return "http"
}

// SafeLogFieldsExtractor reports whether a request body was bound, never its
// content, and the handler that served the request.
func SafeLogFieldsExtractor(ctx *echo.Context) map[string]any {
	fields := make(map[string]any)

	if req := ctx.Get(middleware.ContextKeyBody); req != nil {
		fields["has_body"] = true
		fields["body_type"] = fmt.Sprintf("%T", req)
	} else {
		fields["has_body"] = false
	}

	if handler := middleware.GetHandler(ctx); handler != "" {
		fields["handler"] = handler
	}

	return fields
}
