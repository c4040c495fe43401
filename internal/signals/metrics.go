package signals

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the collectors a Registry reports to.
type metrics struct {
	listeners      *prometheus.GaugeVec
	emits          *prometheus.CounterVec
	invocations    prometheus.Counter
	callbackErrors *prometheus.CounterVec
}

func newMetrics() *metrics {
	return &metrics{
		listeners: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "sigd",
				Subsystem: "signals",
				Name:      "listeners",
				Help:      "Registered listeners per target",
			},
			[]string{"target"},
		),
		emits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sigd",
				Subsystem: "signals",
				Name:      "emits_total",
				Help:      "Total number of emit calls",
			},
			[]string{"policy"},
		),
		invocations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "sigd",
				Subsystem: "signals",
				Name:      "invocations_total",
				Help:      "Total number of listener callbacks invoked",
			},
		),
		callbackErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sigd",
				Subsystem: "signals",
				Name:      "callback_errors_total",
				Help:      "Callback errors, labeled by the emit policy that handled them",
			},
			[]string{"policy"},
		),
	}
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.listeners, m.emits, m.invocations, m.callbackErrors}
}

// defaultMetrics is shared by registries built without WithRegisterer. The
// listeners gauge is adjusted by deltas, so it sums every such registry.
var defaultMetrics = newMetrics()

func init() {
	prometheus.MustRegister(defaultMetrics.collectors()...)
}
