package transport

// Response is what every transport operation returns. Data holds the decoded
// body and is the only part callers of the dispatchers ever see.
type Response struct {
	StatusCode int
	Headers    map[string]string
	RequestID  string
	Data       any
}

type ErrorResponse struct {
	Message  string `json:"message"`
	Internal string `json:"internal"`
}
