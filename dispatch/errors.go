package dispatch

import "errors"

var (
	ErrUnknownVerb = errors.New("dispatch: unknown verb")
	ErrNilResponse = errors.New("dispatch: transport returned no response")
)
