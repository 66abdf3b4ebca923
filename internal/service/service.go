package service

import (
	"context"
	"net/http"
	"sort"

	"github.com/andyle182810/apicaller/cache"
	"github.com/andyle182810/apicaller/dispatch"
	"github.com/andyle182810/apicaller/internal/probe"
	"github.com/labstack/echo/v5"
)

const (
	ParamService  = "service"
	ParamEndpoint = "*"
)

var ErrUnknownService = echo.NewHTTPError(http.StatusNotFound, "Unknown backend service")

type backend struct {
	public  *dispatch.Dispatcher
	private *dispatch.AuthDispatcher
}

// Service serves the gateway routes. Each backend gets its own pair of
// dispatchers over the same transport.
type Service struct {
	backends       map[string]backend
	forwardHeaders []string
	readiness      Readiness
	cache          ResponseCache
}

// Readiness reports the latest backend checks. A nil Readiness makes the
// gateway always ready.
type Readiness interface {
	Ready() bool
	Snapshot() map[string]probe.Status
}

// ResponseCache holds public GET results. Writes through either route
// invalidate the backend's entries.
type ResponseCache interface {
	Get(ctx context.Context, key cache.Key) (any, cache.Generation, error)
	Set(ctx context.Context, key cache.Key, gen cache.Generation, data any) error
	Invalidate(ctx context.Context, service string) error
}

type Params struct {
	Transports     map[string]dispatch.PatchTransport
	ForwardHeaders []string
	Readiness      Readiness     // optional
	Cache          ResponseCache // optional
}

func New(params Params, opts ...dispatch.Option) *Service {
	backends := make(map[string]backend, len(params.Transports))

	for name, tr := range params.Transports {
		backends[name] = backend{
			public:  dispatch.New(tr, opts...),
			private: dispatch.NewAuth(tr, opts...),
		}
	}

	return &Service{
		backends:       backends,
		forwardHeaders: append([]string(nil), params.ForwardHeaders...),
		readiness:      params.Readiness,
		cache:          params.Cache,
	}
}

func (s *Service) Backends() []string {
	names := make([]string, 0, len(s.backends))
	for name := range s.backends {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (s *Service) backend(ctx *echo.Context) (backend, error) {
	b, ok := s.backends[ctx.Param(ParamService)]
	if !ok {
		return backend{}, ErrUnknownService
	}

	return b, nil
}
