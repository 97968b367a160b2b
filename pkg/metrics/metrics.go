// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// PushesTotal tracks snapshot pushes to the remote document store.
	PushesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_pushes_total",
			Help: "Snapshot pushes to the remote store",
		},
		[]string{"status"},
	)

	// PushDuration tracks snapshot push duration.
	PushDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sync_push_duration_seconds",
			Help:    "Snapshot push duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"status"},
	)

	// LazyLoadsTotal tracks lazy conversation body loads.
	LazyLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_lazy_loads_total",
			Help: "Lazy conversation body loads",
		},
		[]string{"result"},
	)

	// LazyLoadDuration tracks lazy load duration.
	LazyLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sync_lazy_load_duration_seconds",
			Help:    "Lazy conversation body load duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"result"},
	)

	// CompletionDuration tracks completion request duration.
	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_completion_duration_seconds",
			Help:    "Completion request duration",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 45, 60, 90, 120},
		},
		[]string{"provider", "status"},
	)

	// CompletionTokensTotal tracks total completion tokens processed.
	CompletionTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_completion_tokens_total",
			Help: "Total completion tokens processed",
		},
		[]string{"provider", "direction"},
	)

	// MessagesTotal tracks total messages appended to conversations.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_total",
			Help: "Total messages appended",
		},
		[]string{"role"},
	)

	// JournalEventsTotal tracks recorded journal events.
	JournalEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_events_total",
			Help: "Journal events recorded",
		},
		[]string{"type"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordPush records metrics for a snapshot push.
func RecordPush(status string, duration float64) {
	PushesTotal.WithLabelValues(status).Inc()
	PushDuration.WithLabelValues(status).Observe(duration)
}

// RecordLazyLoad records metrics for a lazy conversation body load.
func RecordLazyLoad(result string, duration float64) {
	LazyLoadsTotal.WithLabelValues(result).Inc()
	LazyLoadDuration.WithLabelValues(result).Observe(duration)
}

// RecordCompletion records metrics for a completion request.
func RecordCompletion(provider, status string, duration float64, tokensIn, tokensOut int) {
	CompletionDuration.WithLabelValues(provider, status).Observe(duration)
	CompletionTokensTotal.WithLabelValues(provider, "in").Add(float64(tokensIn))
	CompletionTokensTotal.WithLabelValues(provider, "out").Add(float64(tokensOut))
}
