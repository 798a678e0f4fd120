// datatrans-payment-demo/pkg/metrics/metrics.go
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// "service" label lets one query compare the front end with the mock backend
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "web",
			Name:      "requests_total",
			Help:      "Total HTTP requests per service",
		},
		[]string{"service", "status", "method"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "web",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration per service",
			Buckets: []float64{
				0.01, 0.02, 0.03, 0.05, 0.08, 0.12,
				0.2, 0.3, 0.5, 0.8, 1.2, 2, 3, 5, 10,
			},
		},
		[]string{"service", "status"},
	)

	BackendCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "web",
			Name:      "backend_calls_total",
			Help:      "Outbound calls to the payments backend by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal, RequestDuration, BackendCallsTotal)
}

func IncRequest(service, status, method string) {
	RequestsTotal.WithLabelValues(service, status, method).Inc()
}

func ObserveDuration(service, status string, seconds float64) {
	RequestDuration.WithLabelValues(service, status).Observe(seconds)
}

func IncBackendCall(operation, outcome string) {
	BackendCallsTotal.WithLabelValues(operation, outcome).Inc()
}

// StatusRecorder captures the status code written by the wrapped handler.
type StatusRecorder struct {
	http.ResponseWriter
	Status int
}

func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
}

func (s *StatusRecorder) WriteHeader(code int) {
	s.Status = code
	s.ResponseWriter.WriteHeader(code)
}

// StatusLabel folds an HTTP status into the SUCCESS/FAILED label used by the collectors.
func StatusLabel(status int) string {
	if status >= 200 && status < 400 {
		return "SUCCESS"
	}
	return "FAILED"
}

// Middleware records a counter and a histogram sample for every request except /metrics.
func Middleware(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			rec := NewStatusRecorder(w)
			next.ServeHTTP(rec, r)

			label := StatusLabel(rec.Status)
			IncRequest(service, label, r.Method)
			ObserveDuration(service, label, time.Since(start).Seconds())
		})
	}
}
