package middleware

import (
	"errors"
	"net/http"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/andyle182810/apicaller/session"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v5"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrAccessTokenRequired = echo.NewHTTPError(http.StatusUnauthorized, "Access token cookie is required")
	ErrInvalidAccessToken  = echo.NewHTTPError(http.StatusUnauthorized, "Invalid access token")
)

type AccessTokenConfig struct {
	Skipper middleware.Skipper
	Logger  *zerolog.Logger
	Keyfunc keyfunc.Keyfunc
	// CookieName defaults to session.AccessTokenCookie.
	CookieName string
}

// AccessToken verifies the session access token cookie before the request
// reaches the authenticated dispatcher. The verified claims are stored under
// ContextKeyClaims.
func AccessToken(kf keyfunc.Keyfunc) echo.MiddlewareFunc {
	return AccessTokenWithConfig(AccessTokenConfig{
		Skipper:    middleware.DefaultSkipper,
		Logger:     &log.Logger,
		Keyfunc:    kf,
		CookieName: session.AccessTokenCookie,
	})
}

func AccessTokenWithConfig(config AccessTokenConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	if config.CookieName == "" {
		config.CookieName = session.AccessTokenCookie
	}

	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		Skipper:          nil,
		BeforeFunc:       nil,
		ContextKey:       contextKeyJWT,
		SigningKey:       nil,
		SigningKeys:      nil,
		SigningMethod:    "",
		TokenLookup:      "cookie:" + config.CookieName,
		TokenLookupFuncs: nil,
		ParseTokenFunc:   nil,
		KeyFunc: func(token *jwt.Token) (any, error) {
			return config.Keyfunc.Keyfunc(token)
		},
		NewClaimsFunc: func(_ *echo.Context) jwt.Claims {
			return &jwt.RegisteredClaims{} //nolint:exhaustruct
		},
		SuccessHandler:         accessTokenSuccess(config.Logger),
		ErrorHandler:           accessTokenError(config.Logger),
		ContinueOnIgnoredError: false,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		verified := jwtMiddleware(next)

		return func(ctx *echo.Context) error {
			if config.Skipper(ctx) {
				return next(ctx)
			}

			return verified(ctx)
		}
	}
}

// GetClaims returns the claims of a verified access token, or nil when the
// request was not verified.
func GetClaims(c *echo.Context) *jwt.RegisteredClaims {
	if claims, ok := c.Get(ContextKeyClaims).(*jwt.RegisteredClaims); ok {
		return claims
	}

	return nil
}

func accessTokenSuccess(logger *zerolog.Logger) func(*echo.Context) error {
	return func(ctx *echo.Context) error {
		token, ok := ctx.Get(contextKeyJWT).(*jwt.Token)
		if !ok {
			return nil
		}

		if claims, ok := token.Claims.(*jwt.RegisteredClaims); ok {
			ctx.Set(ContextKeyClaims, claims)

			if logger != nil {
				logger.Debug().
					Str("subject", claims.Subject).
					Str("request_id", GetRequestID(ctx)).
					Msg("Access token verified")
			}
		}

		return nil
	}
}

func accessTokenError(logger *zerolog.Logger) func(*echo.Context, error) error {
	return func(ctx *echo.Context, err error) error {
		if logger != nil {
			logger.Warn().
				Err(err).
				Str("path", ctx.Request().URL.Path).
				Msg("Access token verification failed")
		}

		if errors.Is(err, echojwt.ErrJWTMissing) {
			return ErrAccessTokenRequired
		}

		return ErrInvalidAccessToken
	}
}
