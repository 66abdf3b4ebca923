package transport

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout    = 30 * time.Second
	HeaderContentType = "Content-Type"
	HeaderAccept      = "Accept"
	HeaderXRequestID  = "X-Request-ID"
	ContentTypeJSON   = "application/json"
)

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.resty.SetTimeout(timeout)
		}
	}
}

// WithRestyClient replaces the underlying client. The base URL of the
// transport is applied to it.
func WithRestyClient(client *resty.Client) Option {
	return func(c *Client) {
		if client == nil {
			return
		}

		if client.Header.Get(HeaderContentType) == "" {
			client.SetHeader(HeaderContentType, ContentTypeJSON)
		}

		c.resty = client.SetBaseURL(c.baseURL)
	}
}

// WithRequestIDKey makes the transport forward the request ID stored in the
// call context under key instead of generating a fresh one.
func WithRequestIDKey(key any) Option {
	return func(c *Client) {
		c.requestIDKey = key
	}
}

func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.resty.SetHeaders(headers)
	}
}

// WithRetry retries requests whose round trip fails.
func WithRetry(count int, wait time.Duration) Option {
	return func(c *Client) {
		if count <= 0 {
			return
		}

		c.resty.SetRetryCount(count)

		if wait > 0 {
			c.resty.SetRetryWaitTime(wait)
		}
	}
}
