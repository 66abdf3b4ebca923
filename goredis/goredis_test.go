package goredis_test

import (
	"context"
	"testing"
	"time"

	"github.com/andyle182810/apicaller/goredis"
	"github.com/andyle182810/apicaller/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  goredis.Config
		err  error
	}{
		{
			name: "valid",
			cfg:  goredis.Config{Host: "localhost", Port: 6379}, //nolint:exhaustruct
			err:  nil,
		},
		{
			name: "missing host",
			cfg:  goredis.Config{Port: 6379}, //nolint:exhaustruct
			err:  goredis.ErrInvalidHost,
		},
		{
			name: "port zero",
			cfg:  goredis.Config{Host: "localhost"}, //nolint:exhaustruct
			err:  goredis.ErrInvalidPort,
		},
		{
			name: "port too large",
			cfg:  goredis.Config{Host: "localhost", Port: 70000}, //nolint:exhaustruct
			err:  goredis.ErrInvalidPort,
		},
		{
			name: "negative db",
			cfg:  goredis.Config{Host: "localhost", Port: 6379, DB: -1}, //nolint:exhaustruct
			err:  goredis.ErrInvalidDB,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.cfg.Validate()
			if testCase.err == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, testCase.err)
		})
	}
}

func TestNew_NilConfig(t *testing.T) {
	t.Parallel()

	client, err := goredis.New(nil)
	require.ErrorIs(t, err, goredis.ErrConfigNil)
	require.Nil(t, client)
}

func TestNew_MissingCAFile(t *testing.T) {
	t.Parallel()

	_, err := goredis.New(&goredis.Config{ //nolint:exhaustruct
		Host:       "localhost",
		Port:       6379,
		TLSEnabled: true,
		TLSCAFile:  "/does/not/exist.pem",
	})
	require.Error(t, err)
}

func TestClient_StartFailsWithoutServer(t *testing.T) {
	t.Parallel()

	client, err := goredis.New(&goredis.Config{ //nolint:exhaustruct
		Host:        "127.0.0.1",
		Port:        1,
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}, goredis.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Stop() })

	require.Error(t, client.Start(t.Context()))
}

func TestClient_Lifecycle(t *testing.T) {
	t.Parallel()

	container := testutil.SetupRedisContainer(t)

	client, err := goredis.New(&goredis.Config{ //nolint:exhaustruct
		Host: container.Host,
		Port: container.PortNumber(t),
	}, goredis.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	require.Equal(t, "redis", client.Name())

	ctx, cancel := context.WithCancel(testutil.Context(t))
	done := make(chan error, 1)

	go func() { done <- client.Start(ctx) }()

	require.Eventually(t, func() bool {
		return client.HealthCheck(testutil.Context(t)) == nil
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	require.NoError(t, client.Stop())
}
