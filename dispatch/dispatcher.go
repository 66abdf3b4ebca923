// Package dispatch routes backend API calls by verb to a transport.
//
// Two dispatchers exist and they differ on purpose:
//
//   - Dispatcher forwards caller headers and returns transport failures to
//     the caller (Propagate).
//   - AuthDispatcher replaces caller headers with a bearer token read from
//     the session, routes PATCH to a real PATCH, and logs failures instead
//     of returning them (Absorb).
//
// Both return only the data of the backend response.
package dispatch

import (
	"context"

	"github.com/rs/zerolog"
)

const publicDispatcherName = "public"

type Dispatcher struct {
	routes  routingTable
	onError ErrorStrategy
	logger  zerolog.Logger
	metrics *Metrics
}

func New(tr Transport, opts ...Option) *Dispatcher {
	cfg := newOptions(opts)

	return &Dispatcher{
		routes:  publicRoutes(tr),
		onError: Propagate,
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}
}

// Call sends one request to the transport operation selected by verb and
// returns the response data. Unknown verbs are sent as GET. PATCH is sent as
// PUT. Nil headers, params and body are sent as empty values.
func (d *Dispatcher) Call(
	ctx context.Context,
	verb Verb,
	endpoint string,
	headers map[string]string,
	params map[string]string,
	body any,
) (any, error) {
	operation, data, err := d.routes.send(ctx, verb, newRequest(endpoint, headers, params, body))
	if err != nil {
		d.metrics.observe(publicDispatcherName, operation, outcomeError)

		return nil, d.onError(d.logger, CallInfo{
			Dispatcher: publicDispatcherName,
			Verb:       verb,
			Operation:  operation,
			Endpoint:   endpoint,
		}, err)
	}

	d.metrics.observe(publicDispatcherName, operation, outcomeSuccess)

	return data, nil
}
