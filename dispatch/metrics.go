package dispatch

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeSuccess  = "success"
	outcomeError    = "error"
	outcomeAbsorbed = "absorbed"
)

// Metrics counts dispatched calls by dispatcher, transport operation and
// outcome.
type Metrics struct {
	calls *prometheus.CounterVec
}

// NewMetrics creates the dispatch counters and registers them with reg when
// it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{ //nolint:exhaustruct
		Namespace: "apicaller",
		Subsystem: "dispatch",
		Name:      "calls_total",
		Help:      "Number of dispatched backend calls.",
	}, []string{"dispatcher", "operation", "outcome"})

	if reg != nil {
		reg.MustRegister(calls)
	}

	return &Metrics{calls: calls}
}

func (m *Metrics) observe(dispatcher, operation, outcome string) {
	if m == nil {
		return
	}

	m.calls.WithLabelValues(dispatcher, operation, outcome).Inc()
}
