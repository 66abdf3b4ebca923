package dispatch_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/andyle182810/apicaller/dispatch"
	"github.com/andyle182810/apicaller/mock"
	"github.com/andyle182810/apicaller/transport"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errBackendDown = errors.New("backend down")

var (
	sampleHeaders = map[string]string{"foo": "bar"}
	sampleParams  = map[string]string{"page": "1"}
	sampleBody    = map[string]any{"name": "x"}
	sampleData    = map[string]any{"id": 1, "name": "x"}
)

func sampleResponse() *transport.Response {
	return &transport.Response{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		RequestID:  "request-id",
		Data:       sampleData,
	}
}

func TestDispatcher_RoutesByVerb(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		verb   dispatch.Verb
		expect func(m *mock.MockTransport)
	}{
		{
			name: "get",
			verb: dispatch.VerbGet,
			expect: func(m *mock.MockTransport) {
				m.EXPECT().Get(gomock.Any(), "/users", sampleParams, sampleHeaders).Return(sampleResponse(), nil)
			},
		},
		{
			name: "post",
			verb: dispatch.VerbPost,
			expect: func(m *mock.MockTransport) {
				m.EXPECT().Post(gomock.Any(), "/users", sampleBody, sampleParams, sampleHeaders).Return(sampleResponse(), nil)
			},
		},
		{
			name: "put",
			verb: dispatch.VerbPut,
			expect: func(m *mock.MockTransport) {
				m.EXPECT().Put(gomock.Any(), "/users", sampleBody, sampleParams, sampleHeaders).Return(sampleResponse(), nil)
			},
		},
		{
			name: "delete",
			verb: dispatch.VerbDelete,
			expect: func(m *mock.MockTransport) {
				m.EXPECT().Remove(gomock.Any(), "/users", sampleBody, sampleParams, sampleHeaders).Return(sampleResponse(), nil)
			},
		},
		{
			// Known defect: the unauthenticated path sends PATCH as PUT.
			name: "patch is sent as put",
			verb: dispatch.VerbPatch,
			expect: func(m *mock.MockTransport) {
				m.EXPECT().Put(gomock.Any(), "/users", sampleBody, sampleParams, sampleHeaders).Return(sampleResponse(), nil)
			},
		},
		{
			name: "unknown verb falls back to get",
			verb: dispatch.Verb("options"),
			expect: func(m *mock.MockTransport) {
				m.EXPECT().Get(gomock.Any(), "/users", sampleParams, sampleHeaders).Return(sampleResponse(), nil)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			tr := mock.NewMockTransport(ctrl)
			test.expect(tr)

			data, err := dispatch.New(tr).Call(t.Context(), test.verb, "/users", sampleHeaders, sampleParams, sampleBody)

			require.NoError(t, err)
			require.Equal(t, sampleData, data)
		})
	}
}

func TestDispatcher_DefaultsToEmptyValues(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tr := mock.NewMockTransport(ctrl)
	tr.EXPECT().
		Post(gomock.Any(), "/users", map[string]any{}, map[string]string{}, map[string]string{}).
		Return(&transport.Response{Data: nil}, nil)

	data, err := dispatch.New(tr).Call(t.Context(), dispatch.VerbPost, "/users", nil, nil, nil)

	require.NoError(t, err)
	require.Nil(t, data)
}

func TestDispatcher_ReturnsDataNotEnvelope(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tr := mock.NewMockTransport(ctrl)
	tr.EXPECT().Get(gomock.Any(), "/users/1", gomock.Any(), gomock.Any()).Return(sampleResponse(), nil)

	data, err := dispatch.New(tr).Call(t.Context(), dispatch.VerbGet, "/users/1", nil, nil, nil)

	require.NoError(t, err)
	require.Equal(t, map[string]any{"id": 1, "name": "x"}, data)
	require.NotEqual(t, sampleResponse(), data)
}

func TestDispatcher_PropagatesTransportFailure(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	ctrl := gomock.NewController(t)
	tr := mock.NewMockTransport(ctrl)
	tr.EXPECT().Put(gomock.Any(), "/users/1", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errBackendDown)

	dispatcher := dispatch.New(tr, dispatch.WithLogger(zerolog.New(&logs)))

	data, err := dispatcher.Call(t.Context(), dispatch.VerbPut, "/users/1", nil, nil, sampleBody)

	require.Nil(t, data)
	require.Same(t, errBackendDown, err)
	require.Empty(t, logs.String())
}

func TestDispatcher_PropagatesServiceError(t *testing.T) {
	t.Parallel()

	svcErr := transport.NewServiceError(404, "not found", "", "request-id")

	ctrl := gomock.NewController(t)
	tr := mock.NewMockTransport(ctrl)
	tr.EXPECT().Get(gomock.Any(), "/users/9", gomock.Any(), gomock.Any()).Return(nil, svcErr)

	_, err := dispatch.New(tr).Call(t.Context(), dispatch.VerbGet, "/users/9", nil, nil, nil)

	got, ok := transport.IsServiceError(err)
	require.True(t, ok)
	require.Same(t, svcErr, got)
}

func TestDispatcher_NilResponseIsAnError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tr := mock.NewMockTransport(ctrl)
	tr.EXPECT().Get(gomock.Any(), "/users", gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := dispatch.New(tr).Call(t.Context(), dispatch.VerbGet, "/users", nil, nil, nil)

	require.ErrorIs(t, err, dispatch.ErrNilResponse)
}

func TestDispatcher_RecordsMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := dispatch.NewMetrics(reg)

	ctrl := gomock.NewController(t)
	tr := mock.NewMockTransport(ctrl)
	tr.EXPECT().Put(gomock.Any(), "/a", gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleResponse(), nil)
	tr.EXPECT().Get(gomock.Any(), "/b", gomock.Any(), gomock.Any()).Return(nil, errBackendDown)

	dispatcher := dispatch.New(tr, dispatch.WithMetrics(metrics))

	_, err := dispatcher.Call(t.Context(), dispatch.VerbPatch, "/a", nil, nil, nil)
	require.NoError(t, err)

	_, err = dispatcher.Call(t.Context(), dispatch.VerbGet, "/b", nil, nil, nil)
	require.Error(t, err)

	expected := `
# HELP apicaller_dispatch_calls_total Number of dispatched backend calls.
# TYPE apicaller_dispatch_calls_total counter
apicaller_dispatch_calls_total{dispatcher="public",operation="get",outcome="error"} 1
apicaller_dispatch_calls_total{dispatcher="public",operation="put",outcome="success"} 1
`

	require.NoError(t, promtestutil.GatherAndCompare(reg, strings.NewReader(expected), "apicaller_dispatch_calls_total"))
}
