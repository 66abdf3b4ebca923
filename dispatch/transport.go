package dispatch

//go:generate mockgen -source=transport.go -destination=../mock/transport_mock.go -package=mock

import (
	"context"

	"github.com/andyle182810/apicaller/transport"
)

// Transport performs the network requests the dispatchers route to.
type Transport interface {
	Get(ctx context.Context, endpoint string, params, headers map[string]string) (*transport.Response, error)
	Post(ctx context.Context, endpoint string, body any, params, headers map[string]string) (*transport.Response, error)
	Put(ctx context.Context, endpoint string, body any, params, headers map[string]string) (*transport.Response, error)
	Remove(ctx context.Context, endpoint string, body any, params, headers map[string]string) (*transport.Response, error)
}

// PatchTransport is a Transport with a dedicated PATCH operation.
type PatchTransport interface {
	Transport
	Patch(ctx context.Context, endpoint string, body any, params, headers map[string]string) (*transport.Response, error)
}

var _ PatchTransport = (*transport.Client)(nil)
