package testutil

import (
	"context"
	"testing"
	"time"
)

const DefaultTimeout = 30 * time.Second

// Context is t.Context bounded by DefaultTimeout, for tests that talk to a
// container.
func Context(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(t.Context(), DefaultTimeout)
	t.Cleanup(cancel)

	return ctx
}
