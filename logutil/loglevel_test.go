package logutil_test

import (
	"bytes"
	"testing"

	"github.com/andyle182810/apicaller/logutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{input: "trace", expected: zerolog.TraceLevel},
		{input: "debug", expected: zerolog.DebugLevel},
		{input: "info", expected: zerolog.InfoLevel},
		{input: "warn", expected: zerolog.WarnLevel},
		{input: "error", expected: zerolog.ErrorLevel},
		{input: "fatal", expected: zerolog.FatalLevel},
		{input: "panic", expected: zerolog.PanicLevel},
		{input: "unknown", expected: zerolog.InfoLevel},
		{input: "", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, logutil.ParseZerologLevel(tt.input))
		})
	}
}

func TestNew_WritesJSONAtLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logutil.New("warn", false, &buf)

	logger.Info().Msg("dropped")
	logger.Warn().Str("endpoint", "/users").Msg("kept")

	out := buf.String()
	require.NotContains(t, out, "dropped")
	require.Contains(t, out, `"message":"kept"`)
	require.Contains(t, out, `"endpoint":"/users"`)
	require.Contains(t, out, `"time":`)
}

func TestNew_PrettyOutputIsNotJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logutil.New("info", true, &buf)
	logger.Info().Msg("hello")

	require.Contains(t, buf.String(), "hello")
	require.NotContains(t, buf.String(), `"message"`)
}
