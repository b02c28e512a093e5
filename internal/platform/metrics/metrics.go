package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "asthmacare_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "status"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asthmacare_http_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asthmacare_cache_lookups_total",
			Help: "Air quality cache lookups by outcome (hit, miss, stale_fallback)",
		},
		[]string{"outcome"},
	)

	ControlScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "asthmacare_control_score",
			Help:    "Distribution of computed asthma control scores",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	ChatResponses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asthmacare_chat_responses_total",
			Help: "Chat responses by responder kind",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration,
		RequestTotal,
		CacheLookups,
		ControlScore,
		ChatResponses,
	)
}

// Handler expone /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware registra contadores y duración por request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		status := strconv.Itoa(sw.status)
		RequestTotal.WithLabelValues(r.Method, status).Inc()
		RequestDuration.WithLabelValues(r.Method, status).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
