package httpserver

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v5"
)

var ErrNotRunning = errors.New("httpserver: server is not running")

// HTTPError builds an echo error whose message is err's text, optionally
// followed by a detail, and which keeps err as the wrapped cause.
func HTTPError(code int, err error, details ...string) error {
	message := err.Error()

	if len(details) > 0 {
		message = fmt.Sprintf("%s: %s", message, details[0])
	}

	return echo.NewHTTPError(code, message).Wrap(err)
}
