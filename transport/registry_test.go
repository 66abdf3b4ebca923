package transport_test

import (
	"testing"
	"time"

	"github.com/andyle182810/apicaller/transport"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_CreatesEmptyRegistry(t *testing.T) {
	t.Parallel()

	reg := transport.NewRegistry()

	require.Equal(t, 0, reg.Count())
	require.Empty(t, reg.Names())
}

func TestRegistry_SupportsChainedRegistration(t *testing.T) {
	t.Parallel()

	reg := transport.NewRegistry(transport.WithTimeout(time.Second)).
		Register("users", "https://users.example.com").
		Register("orders", "https://orders.example.com/")

	require.Equal(t, 2, reg.Count())
	require.Equal(t, []string{"orders", "users"}, reg.Names())
	require.Equal(t, "https://orders.example.com", reg.Client("orders").BaseURL())
}

func TestRegistry_OverwritesExistingClient(t *testing.T) {
	t.Parallel()

	reg := transport.NewRegistry()
	reg.Register("api", "https://old.example.com")
	reg.Register("api", "https://new.example.com")

	require.Equal(t, "https://new.example.com", reg.Client("api").BaseURL())
}

func TestRegistry_GetClient(t *testing.T) {
	t.Parallel()

	reg := transport.NewRegistry().Register("users", "https://users.example.com")

	client, ok := reg.GetClient("users")
	require.True(t, ok)
	require.NotNil(t, client)
	require.True(t, reg.Has("users"))

	client, ok = reg.GetClient("missing")
	require.False(t, ok)
	require.Nil(t, client)
	require.False(t, reg.Has("missing"))
}

func TestRegistry_ClientPanicsForUnregisteredService(t *testing.T) {
	t.Parallel()

	reg := transport.NewRegistry()

	require.PanicsWithValue(t, `transport: service "missing" not registered`, func() {
		reg.Client("missing")
	})
}
