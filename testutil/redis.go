package testutil

import (
	"strconv"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	redisImage        = "redis:7-alpine"
	defaultRedisPort  = "6379/tcp"
	redisStartTimeout = 60 * time.Second
)

type RedisTestContainer struct {
	Container testcontainers.Container
	Host      string
	Port      nat.Port
}

func (c *RedisTestContainer) Address() string {
	return c.Host + ":" + c.Port.Port()
}

// PortNumber is the mapped port as an int, ready for goredis.Config.
func (c *RedisTestContainer) PortNumber(t *testing.T) int {
	t.Helper()

	port, err := strconv.Atoi(c.Port.Port())
	require.NoError(t, err)

	return port
}

// SetupRedisContainer starts a throwaway Redis and terminates it when t ends.
// It skips in short mode.
func SetupRedisContainer(t *testing.T) *RedisTestContainer {
	t.Helper()

	SkipIfShort(t)

	ctx := t.Context()

	//nolint:exhaustruct
	req := testcontainers.ContainerRequest{
		Image:        redisImage,
		ExposedPorts: []string{defaultRedisPort},
		WaitingFor:   wait.ForListeningPort(defaultRedisPort).WithStartupTimeout(redisStartTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
		ProviderType:     testcontainers.ProviderDocker,
		Logger:           &log.Logger,
		Reuse:            false,
	})

	t.Cleanup(func() {
		if container != nil {
			_ = container.Terminate(ctx)
		}
	})

	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, defaultRedisPort)
	require.NoError(t, err)

	return &RedisTestContainer{
		Container: container,
		Host:      host,
		Port:      port,
	}
}

func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping test in short mode")
	}
}
