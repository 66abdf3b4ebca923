package service

import (
	"net/http"

	"github.com/andyle182810/apicaller/httpserver"
	"github.com/andyle182810/apicaller/middleware"
	"github.com/labstack/echo/v5"
)

type HealthCheckResponse struct {
	Status   string   `example:"healthy" json:"status"`
	Services []string `json:"services"`
}

func (s *Service) CheckHealth(ctx *echo.Context) error {
	ctx.Set(middleware.ContextKeyHandler, "CheckHealth")

	return httpserver.Respond(ctx, http.StatusOK, HealthCheckResponse{
		Status:   "healthy",
		Services: s.Backends(),
	})
}
