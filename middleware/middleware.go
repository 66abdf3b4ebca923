package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

const (
	ContextKeyRequestID string = "requestID"
	ContextKeyBody      string = "body"
	ContextKeyHandler   string = "handler"
	ContextKeyClaims    string = "claims"

	contextKeyJWT = "jwt"
)

const (
	HeaderXRequestID = "X-Request-ID"
)

type contextKey string

// RequestIDContextKey is the key the request ID is stored under in the
// request's context.Context. Pass it to transport.WithRequestIDKey so outbound
// calls carry the same ID.
const RequestIDContextKey = contextKey("requestID")

func GetRequestID(c *echo.Context) string {
	if requestID, ok := c.Get(ContextKeyRequestID).(string); ok {
		return requestID
	}

	return uuid.NewString()
}

func GetHandler(c *echo.Context) string {
	if handler, ok := c.Get(ContextKeyHandler).(string); ok {
		return handler
	}

	return ""
}
