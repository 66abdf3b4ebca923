package service

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/andyle182810/apicaller/cache"
	"github.com/andyle182810/apicaller/dispatch"
	"github.com/andyle182810/apicaller/httpserver"
	"github.com/andyle182810/apicaller/middleware"
	"github.com/labstack/echo/v5"
	"github.com/rs/zerolog/log"
)

const (
	HeaderXCache = "X-Cache"
	CacheHit     = "HIT"
	CacheMiss    = "MISS"
)

var (
	ErrMalformedBody = errors.New("request body is not valid JSON")
	ErrTrailingBody  = errors.New("unexpected data after JSON value")
)

// outboundCall is the part of an incoming request that is passed on to a
// backend.
type outboundCall struct {
	verb     dispatch.Verb
	endpoint string
	headers  map[string]string
	params   map[string]string
	body     any
}

// CallPublic forwards the request to the backend named in the path and
// returns its data. Backend failures are returned to the error handler, which
// keeps the backend status code.
func (s *Service) CallPublic(ctx *echo.Context) error {
	ctx.Set(middleware.ContextKeyHandler, "CallPublic")

	b, err := s.backend(ctx)
	if err != nil {
		return err
	}

	call, err := s.readCall(ctx)
	if err != nil {
		return err
	}

	if s.cache != nil && call.verb == dispatch.VerbGet {
		return s.callPublicCached(ctx, b, call)
	}

	data, err := b.public.Call(ctx.Request().Context(), call.verb, call.endpoint, call.headers, call.params, call.body)
	if err != nil {
		return err
	}

	s.invalidateAfterWrite(ctx, call.verb)

	return httpserver.Respond(ctx, http.StatusOK, data)
}

// invalidateAfterWrite drops the backend's cached GET results once a write
// verb has been sent to it.
func (s *Service) invalidateAfterWrite(ctx *echo.Context, verb dispatch.Verb) {
	if s.cache == nil || !verb.Valid() || verb == dispatch.VerbGet {
		return
	}

	name := ctx.Param(ParamService)

	if err := s.cache.Invalidate(ctx.Request().Context(), name); err != nil {
		log.Warn().Err(err).Str("service", name).Msg("Failed to invalidate cached responses")
	}
}

// callPublicCached serves a GET from the cache when it can. Cache failures
// never fail the request.
func (s *Service) callPublicCached(ctx *echo.Context, b backend, call outboundCall) error {
	reqCtx := ctx.Request().Context()
	key := cache.Key{
		Service:  ctx.Param(ParamService),
		Endpoint: call.endpoint,
		Params:   call.params,
		Headers:  call.headers,
	}

	data, gen, err := s.cache.Get(reqCtx, key)
	if err == nil {
		ctx.Response().Header().Set(HeaderXCache, CacheHit)

		return httpserver.Respond(ctx, http.StatusOK, data)
	}

	missed := errors.Is(err, cache.ErrKeyNotFound)
	if !missed {
		log.Warn().Err(err).Str("service", key.Service).Msg("Failed to read cached response")
	}

	data, err = b.public.Call(reqCtx, call.verb, call.endpoint, call.headers, call.params, call.body)
	if err != nil {
		return err
	}

	// The fill goes to the generation read before the call, so a write that
	// invalidated the backend in the meantime hides it.
	if missed {
		if err := s.cache.Set(reqCtx, key, gen, data); err != nil {
			log.Warn().Err(err).Str("service", key.Service).Msg("Failed to cache response")
		}
	}

	ctx.Response().Header().Set(HeaderXCache, CacheMiss)

	return httpserver.Respond(ctx, http.StatusOK, data)
}

// CallPrivate forwards the request with the session's bearer token instead of
// the caller's headers. A failed backend call yields 200 with null data.
func (s *Service) CallPrivate(ctx *echo.Context) error {
	ctx.Set(middleware.ContextKeyHandler, "CallPrivate")

	b, err := s.backend(ctx)
	if err != nil {
		return err
	}

	call, err := s.readCall(ctx)
	if err != nil {
		return err
	}

	data := b.private.Call(ctx.Request().Context(), call.verb, call.endpoint, call.params, call.body, call.headers)

	// Failures are absorbed into null data, so a private write invalidates
	// whether or not the backend accepted it.
	s.invalidateAfterWrite(ctx, call.verb)

	return httpserver.Respond(ctx, http.StatusOK, data)
}

func (s *Service) readCall(ctx *echo.Context) (outboundCall, error) {
	req := ctx.Request()

	verb, err := dispatch.ParseVerb(req.Method)
	if err != nil {
		log.Debug().
			Str("method", req.Method).
			Str("request_id", middleware.GetRequestID(ctx)).
			Msg("Method has no dispatch verb and is sent as GET")
	}

	body, err := decodeBody(req)
	if err != nil {
		return outboundCall{}, httpserver.HTTPError(http.StatusBadRequest, ErrMalformedBody, err.Error())
	}

	if body != nil {
		ctx.Set(middleware.ContextKeyBody, body)
	}

	return outboundCall{
		verb:     verb,
		endpoint: "/" + ctx.Param(ParamEndpoint),
		headers:  s.forwardedHeaders(req),
		params:   queryParams(ctx),
		body:     body,
	}, nil
}

func (s *Service) forwardedHeaders(req *http.Request) map[string]string {
	headers := make(map[string]string, len(s.forwardHeaders))

	for _, name := range s.forwardHeaders {
		if value := req.Header.Get(name); value != "" {
			headers[http.CanonicalHeaderKey(name)] = value
		}
	}

	return headers
}

// queryParams keeps the first value of each query parameter.
func queryParams(ctx *echo.Context) map[string]string {
	values := ctx.QueryParams()
	params := make(map[string]string, len(values))

	for key := range values {
		params[key] = values.Get(key)
	}

	return params
}

// decodeBody returns nil for an empty body. Anything after the first JSON value
// is rejected.
func decodeBody(req *http.Request) (any, error) {
	if req.Body == nil {
		return nil, nil //nolint:nilnil
	}

	var body any

	dec := json.NewDecoder(req.Body)

	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil //nolint:nilnil
		}

		return nil, err
	}

	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingBody
	}

	return body, nil
}
