package dispatch

import "github.com/rs/zerolog"

// CallInfo describes a dispatched call for error reporting.
type CallInfo struct {
	Dispatcher string
	Verb       Verb
	Operation  string
	Endpoint   string
}

// ErrorStrategy decides what a failed call reports to its caller. A nil
// return means the failure was absorbed.
type ErrorStrategy func(logger zerolog.Logger, call CallInfo, err error) error

// Propagate hands the transport failure back to the caller unchanged.
func Propagate(_ zerolog.Logger, _ CallInfo, err error) error {
	return err
}

// Absorb writes the failure to the log and reports nothing to the caller.
// The caller sees the same empty result it would get for a call that
// returned no data.
func Absorb(logger zerolog.Logger, call CallInfo, err error) error {
	logger.Error().
		Err(err).
		Str("dispatcher", call.Dispatcher).
		Str("verb", call.Verb.String()).
		Str("operation", call.Operation).
		Str("endpoint", call.Endpoint).
		Msg("API call failed, returning no data")

	return nil
}
