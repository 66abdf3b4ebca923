package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Client sends JSON requests to a single backend. It satisfies the transport
// collaborator expected by the dispatch package, including the dedicated
// PATCH operation.
type Client struct {
	baseURL      string
	resty        *resty.Client
	requestIDKey any
}

func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimSuffix(baseURL, "/")

	c := &Client{
		baseURL: baseURL,
		resty: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(DefaultTimeout).
			SetHeader(HeaderContentType, ContentTypeJSON).
			SetHeader(HeaderAccept, ContentTypeJSON),
		requestIDKey: nil,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(
	ctx context.Context,
	endpoint string,
	params map[string]string,
	headers map[string]string,
) (*Response, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil, params, headers)
}

func (c *Client) Post(
	ctx context.Context,
	endpoint string,
	body any,
	params map[string]string,
	headers map[string]string,
) (*Response, error) {
	return c.do(ctx, http.MethodPost, endpoint, body, params, headers)
}

func (c *Client) Put(
	ctx context.Context,
	endpoint string,
	body any,
	params map[string]string,
	headers map[string]string,
) (*Response, error) {
	return c.do(ctx, http.MethodPut, endpoint, body, params, headers)
}

func (c *Client) Patch(
	ctx context.Context,
	endpoint string,
	body any,
	params map[string]string,
	headers map[string]string,
) (*Response, error) {
	return c.do(ctx, http.MethodPatch, endpoint, body, params, headers)
}

// Remove issues a DELETE. The body is sent along with the request.
func (c *Client) Remove(
	ctx context.Context,
	endpoint string,
	body any,
	params map[string]string,
	headers map[string]string,
) (*Response, error) {
	return c.do(ctx, http.MethodDelete, endpoint, body, params, headers)
}

func (c *Client) do(
	ctx context.Context,
	method string,
	endpoint string,
	body any,
	params map[string]string,
	headers map[string]string,
) (*Response, error) {
	requestID := c.extractRequestID(ctx)

	req := c.resty.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetHeaders(headers).
		SetHeader(HeaderXRequestID, requestID)

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeBody, err)
		}

		req.SetBody(payload)
	}

	resp, err := req.Execute(method, normalizeEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	return c.handleResponse(resp, requestID)
}

func (c *Client) extractRequestID(ctx context.Context) string {
	if c.requestIDKey != nil {
		if id, ok := ctx.Value(c.requestIDKey).(string); ok && id != "" {
			return id
		}
	}

	return uuid.New().String()
}

func (c *Client) handleResponse(resp *resty.Response, requestID string) (*Response, error) {
	respRequestID := resp.Header().Get(HeaderXRequestID)
	if respRequestID == "" {
		respRequestID = requestID
	}

	if !resp.IsSuccess() {
		return nil, newServiceErrorFromBody(resp.StatusCode(), resp.Body(), respRequestID)
	}

	headers := make(map[string]string, len(resp.Header()))
	for k := range resp.Header() {
		headers[k] = resp.Header().Get(k)
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Headers:    headers,
		RequestID:  respRequestID,
		Data:       decodeData(resp.Body()),
	}, nil
}

// decodeData returns the JSON value of body, the raw text when body is not
// JSON, and nil when body is empty.
func decodeData(body []byte) any {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return string(body)
	}

	return data
}

func newServiceErrorFromBody(statusCode int, body []byte, requestID string) *ServiceError {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return NewServiceError(statusCode, errResp.Message, errResp.Internal, requestID)
	}

	return NewServiceError(statusCode, strings.TrimSpace(string(body)), "", requestID)
}

func normalizeEndpoint(endpoint string) string {
	if endpoint != "" && !strings.HasPrefix(endpoint, "/") {
		return "/" + endpoint
	}

	return endpoint
}
