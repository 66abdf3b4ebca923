package metricserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andyle182810/apicaller/metricserver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, registry *prometheus.Registry) *metricserver.Server {
	t.Helper()

	return metricserver.New(&metricserver.Config{
		Host:         "127.0.0.1",
		Port:         0,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		GracePeriod:  time.Second,
		Gatherer:     registry,
	})
}

func TestServer_Status(t *testing.T) {
	t.Parallel()

	srv := newServer(t, prometheus.NewRegistry())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_MetricsExposeRegisteredCollectors(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{ //nolint:exhaustruct
		Name: "apicaller_test_total",
		Help: "Test counter.",
	})
	registry.MustRegister(counter)
	counter.Inc()

	srv := newServer(t, registry)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "apicaller_test_total 1")
}

func TestServer_StopWithoutStart(t *testing.T) {
	t.Parallel()

	srv := newServer(t, prometheus.NewRegistry())

	require.ErrorIs(t, srv.Stop(), metricserver.ErrNotRunning)
	require.Equal(t, "metric", srv.Name())
}
