package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/avelichko/reviewhub/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "reviewhub",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reviewhub",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Auth metrics

	SignupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reviewhub",
		Name:      "signups_total",
		Help:      "Signup requests, by outcome.",
	}, []string{"outcome"})

	TokenExchangesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reviewhub",
		Name:      "token_exchanges_total",
		Help:      "Token exchange requests, by outcome.",
	}, []string{"outcome"})

	// Content gauges, refreshed by the stats collector.

	ContentTotal = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "reviewhub",
		Name:      "content_total",
		Help:      "Row counts per content kind.",
	}, []string{"kind"})

	MeanReviewScore = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "reviewhub",
		Name:      "mean_review_score",
		Help:      "Mean score across all reviews. 0 when there are none.",
	})

	StatsRefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "reviewhub",
		Name:      "stats_refresh_duration_seconds",
		Help:      "Time taken for one stats collector pass.",
		Buckets:   prometheus.DefBuckets,
	})

	RatingsReconciled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "reviewhub",
		Name:      "ratings_reconciled_total",
		Help:      "Titles whose stored rating was corrected by the collector.",
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		SignupsTotal,
		TokenExchangesTotal,
		ContentTotal,
		MeanReviewScore,
		StatsRefreshDuration,
		RatingsReconciled,
	)
}

// NewServer exposes /metrics plus the liveness and readiness probes on a
// side port, away from the public API.
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
