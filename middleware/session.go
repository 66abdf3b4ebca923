package middleware

import (
	"github.com/andyle182810/apicaller/session"
	"github.com/labstack/echo/v5"
)

// Session exposes the cookies of the incoming request as a session.Store on
// the request context, where the authenticated dispatcher looks for the
// access token.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx *echo.Context) error {
			req := ctx.Request()
			store := session.NewCookieStore(req)

			ctx.SetRequest(req.WithContext(session.WithStore(req.Context(), store)))

			return next(ctx)
		}
	}
}
