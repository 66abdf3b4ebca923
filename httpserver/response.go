package httpserver

// APIResponse is the envelope every successful gateway response is sent in.
type APIResponse[T any] struct {
	RequestID string `json:"requestId,omitempty" example:"3bf74527-8097-4217-8485-ffe05d16f82e"`
	Data      T      `json:"data"`
}
