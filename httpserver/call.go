package httpserver

import (
	"net/http"

	"github.com/andyle182810/apicaller/middleware"
	"github.com/labstack/echo/v5"
)

// Respond writes data wrapped in an APIResponse carrying the request ID. A
// zero status means 200.
func Respond[T any](ctx *echo.Context, status int, data T) error {
	if status == 0 {
		status = http.StatusOK
	}

	requestID, ok := ctx.Get(middleware.ContextKeyRequestID).(string)
	if !ok {
		requestID = ""
	}

	return ctx.JSON(status, &APIResponse[T]{
		RequestID: requestID,
		Data:      data,
	})
}
