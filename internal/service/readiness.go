package service

import (
	"net/http"

	"github.com/andyle182810/apicaller/httpserver"
	"github.com/andyle182810/apicaller/internal/probe"
	"github.com/andyle182810/apicaller/middleware"
	"github.com/labstack/echo/v5"
)

const (
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
)

type ReadinessCheckResponse struct {
	Status   string                  `example:"ready" json:"status"`
	Services map[string]probe.Status `json:"services"`
}

// CheckReadiness answers 503 with the same envelope while any backend failed
// its latest check.
func (s *Service) CheckReadiness(ctx *echo.Context) error {
	ctx.Set(middleware.ContextKeyHandler, "CheckReadiness")

	if s.readiness == nil {
		return httpserver.Respond(ctx, http.StatusOK, ReadinessCheckResponse{
			Status:   StatusReady,
			Services: map[string]probe.Status{},
		})
	}

	resp := ReadinessCheckResponse{
		Status:   StatusReady,
		Services: s.readiness.Snapshot(),
	}

	if !s.readiness.Ready() {
		resp.Status = StatusNotReady

		return httpserver.Respond(ctx, http.StatusServiceUnavailable, resp)
	}

	return httpserver.Respond(ctx, http.StatusOK, resp)
}
