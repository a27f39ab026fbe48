package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/annaehn/happy-thoughts-api/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Board metrics

	RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "thoughts",
		Name:      "registrations_total",
		Help:      "Total successful user registrations.",
	})

	ThoughtsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "thoughts",
		Name:      "created_total",
		Help:      "Total thoughts posted.",
	})

	LikesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "thoughts",
		Name:      "likes_total",
		Help:      "Total likes across all thoughts.",
	})

	AuthFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "thoughts",
		Name:      "auth_failures_total",
		Help:      "Requests rejected for a missing or invalid token.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "thoughts",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "thoughts",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		RegistrationsTotal,
		ThoughtsCreatedTotal,
		LikesTotal,
		AuthFailuresTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer serves /metrics plus the liveness and readiness probes on the
// internal port, away from the public API.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()), http.StatusOK)
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		result := checker.Readiness(r.Context())
		status := http.StatusOK
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
		}
		writeHealth(w, result, status)
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
