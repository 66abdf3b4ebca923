package dispatch

import (
	"context"

	"github.com/andyle182810/apicaller/session"
	"github.com/rs/zerolog"
)

const (
	authDispatcherName  = "auth"
	HeaderAuthorization = "Authorization"
	bearerPrefix        = "Bearer "
	// missingToken is what ends up after the prefix when the session has no
	// token. Backends see "Bearer undefined" and reject it themselves.
	missingToken = "undefined"
)

// BearerHeader builds the only header sent by the authenticated dispatcher.
func BearerHeader(token string, ok bool) map[string]string {
	if !ok {
		token = missingToken
	}

	return map[string]string{HeaderAuthorization: bearerPrefix + token}
}

type AuthDispatcher struct {
	routes  routingTable
	onError ErrorStrategy
	logger  zerolog.Logger
	metrics *Metrics
	store   session.Store
}

func NewAuth(tr PatchTransport, opts ...Option) *AuthDispatcher {
	cfg := newOptions(opts)

	return &AuthDispatcher{
		routes:  authRoutes(tr),
		onError: Absorb,
		logger:  cfg.logger,
		metrics: cfg.metrics,
		store:   cfg.store,
	}
}

// Call sends one authenticated request and returns the response data. Note
// the argument order: params come before body.
//
// The caller's headers are discarded; the request carries only the bearer
// header built from the session token. A missing token does not stop the
// call. Failures are logged and reported as a nil result, so a nil return
// can mean either "no data" or "call failed".
func (d *AuthDispatcher) Call(
	ctx context.Context,
	verb Verb,
	endpoint string,
	params map[string]string,
	body any,
	_ map[string]string,
) any {
	token, ok := session.Token(d.sessionStore(ctx))

	operation, data, err := d.routes.send(ctx, verb, newRequest(endpoint, BearerHeader(token, ok), params, body))
	if err != nil {
		_ = d.onError(d.logger, CallInfo{
			Dispatcher: authDispatcherName,
			Verb:       verb,
			Operation:  operation,
			Endpoint:   endpoint,
		}, err)

		d.metrics.observe(authDispatcherName, operation, outcomeAbsorbed)

		return nil
	}

	d.metrics.observe(authDispatcherName, operation, outcomeSuccess)

	return data
}

func (d *AuthDispatcher) sessionStore(ctx context.Context) session.Store {
	if d.store != nil {
		return d.store
	}

	return session.FromContext(ctx)
}
