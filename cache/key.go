package cache

import (
	"net/url"
	"strings"
)

// Key identifies a cached response: the backend, the endpoint and everything
// sent along that can change the answer.
type Key struct {
	Service  string
	Endpoint string
	Params   map[string]string
	Headers  map[string]string
}

// Encode renders the endpoint, params and headers in a stable order. The
// service is not part of it.
func (k Key) Encode() string {
	var sb strings.Builder

	sb.WriteString(k.Endpoint)

	if len(k.Params) > 0 {
		sb.WriteByte('?')
		sb.WriteString(encodeMap(k.Params))
	}

	if len(k.Headers) > 0 {
		sb.WriteByte('#')
		sb.WriteString(encodeMap(k.Headers))
	}

	return sb.String()
}

func encodeMap(m map[string]string) string {
	values := make(url.Values, len(m))
	for k, v := range m {
		values.Set(k, v)
	}

	return values.Encode()
}
