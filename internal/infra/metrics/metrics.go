package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	sessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_sessions_created_total",
			Help: "Number of chat sessions created.",
		},
	)

	messagesPersisted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_persisted_total",
			Help: "Messages durably stored, by role.",
		},
		[]string{"role"},
	)

	aiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_ai_requests_total",
			Help: "Reply generation attempts by outcome (ok/error).",
		},
		[]string{"outcome"},
	)

	aiLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_ai_latency_ms",
			Help:    "Reply generation latency distribution in milliseconds.",
			Buckets: []float64{50, 100, 200, 400, 800, 1600, 3000, 5000, 10000},
		},
		[]string{"outcome"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			sessionsCreated, messagesPersisted,
			aiRequests, aiLatencyMs,
		)
	})
}

func IncSessionCreated() { sessionsCreated.Inc() }

func IncMessagePersisted(role string) {
	messagesPersisted.WithLabelValues(role).Inc()
}

func ObserveAIRequest(outcome string, d time.Duration) {
	aiRequests.WithLabelValues(outcome).Inc()
	aiLatencyMs.WithLabelValues(outcome).Observe(float64(d.Milliseconds()))
}
