package transport

import (
	"errors"
	"fmt"
)

var (
	ErrRequestFailed = errors.New("transport: request failed")
	ErrServiceError  = errors.New("transport: service error")
	ErrEncodeBody    = errors.New("transport: failed to encode request body")
)

// ServiceError is returned for any response outside the 2xx range.
type ServiceError struct {
	StatusCode int
	Message    string
	Internal   string
	RequestID  string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("transport: service returned status %d", e.StatusCode)
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(target, ErrServiceError)
}

func (e *ServiceError) Unwrap() error {
	return ErrServiceError
}

func NewServiceError(statusCode int, message, internal, requestID string) *ServiceError {
	return &ServiceError{
		StatusCode: statusCode,
		Message:    message,
		Internal:   internal,
		RequestID:  requestID,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}

	return nil, false
}
