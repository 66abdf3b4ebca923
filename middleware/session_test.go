package middleware_test

import (
	"net/http"
	"testing"

	"github.com/andyle182810/apicaller/middleware"
	"github.com/andyle182810/apicaller/session"
	"github.com/andyle182810/apicaller/testutil"
	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/require"
)

func TestSession_ExposesCookiesOnRequestContext(t *testing.T) {
	t.Parallel()

	ctx, _, _ := testutil.SetupEchoContext(t, &testutil.Options{ //nolint:exhaustruct
		Method:  http.MethodGet,
		Path:    "/test",
		Cookies: map[string]string{session.AccessTokenCookie: "abc"},
	})

	var (
		token string
		found bool
	)

	handler := func(c *echo.Context) error {
		token, found = session.Token(session.FromContext(c.Request().Context()))

		return c.NoContent(http.StatusOK)
	}

	require.NoError(t, middleware.Session()(handler)(ctx))
	require.True(t, found)
	require.Equal(t, "abc", token)
}

func TestSession_MissingCookie(t *testing.T) {
	t.Parallel()

	ctx, _, _ := testutil.SetupEchoContext(t, &testutil.Options{ //nolint:exhaustruct
		Method: http.MethodGet,
		Path:   "/test",
	})

	var (
		store session.Store
		found bool
	)

	handler := func(c *echo.Context) error {
		store = session.FromContext(c.Request().Context())
		_, found = session.Token(store)

		return nil
	}

	require.NoError(t, middleware.Session()(handler)(ctx))
	require.NotNil(t, store)
	require.False(t, found)
}
