package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sigd",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route, method and status",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"route", "method", "status"},
	)

	requestsInflight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sigd",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "HTTP requests currently being served",
		},
	)

	emitRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sigd",
			Subsystem: "http",
			Name:      "emit_requests_total",
			Help:      "Emit requests by policy and outcome",
		},
		[]string{"policy", "outcome"},
	)
)

// Emit outcomes recorded by observeEmit.
const (
	outcomeOK        = "ok"
	outcomeUnmatched = "unmatched"
	outcomeError     = "error"
)

// MetricsMiddleware records request latency labeled by chi route pattern.
// Mount it with Router.Use: the pattern is only complete once routing ran.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestsInflight.Inc()
		defer requestsInflight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		requestDuration.
			WithLabelValues(route(r), r.Method, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}

// route keeps label cardinality bounded: unrouted requests share one label.
func route(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
		return "unmatched"
	}
	return r.URL.Path
}

func observeEmit(policy, outcome string) {
	emitRequests.WithLabelValues(policy, outcome).Inc()
}
