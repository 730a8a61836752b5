package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/friendlist/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "friendlist",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "friendlist",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	RateLimitRejectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "friendlist",
		Name:      "rate_limit_rejections_total",
		Help:      "Requests rejected by the per-client rate limit.",
	})

	// Domain metrics

	AuthEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "friendlist",
		Name:      "auth_events_total",
		Help:      "Registrations, logins and token checks, by outcome.",
	}, []string{"event", "outcome"})

	FriendOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "friendlist",
		Name:      "friend_operations_total",
		Help:      "Friend create/update/delete calls, by outcome.",
	}, []string{"operation", "outcome"})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		RateLimitRejectionsTotal,
		AuthEventsTotal,
		FriendOperationsTotal,
	)
}

// Outcome labels an operation result for the counters above.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// NewServer serves /metrics, /livez and /readyz on a separate port.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status != health.StatusUp {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}

