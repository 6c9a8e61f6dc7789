package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Session Metrics
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arguehub_sessions_active",
		Help: "The current number of open room sessions.",
	})
	TotalSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arguehub_sessions_total",
		Help: "The total number of room sessions opened.",
	})
	EventsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arguehub_events_received_total",
		Help: "The total number of decoded server events, by type.",
	}, []string{"type"})
	IntentsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arguehub_intents_sent_total",
		Help: "The total number of intents written to the wire, by type.",
	}, []string{"type"})
	IntentsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arguehub_intents_dropped_total",
		Help: "The total number of sends dropped because the session was not open.",
	})
	DecodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arguehub_decode_failures_total",
		Help: "The total number of server payloads discarded as unknown or malformed.",
	})
)
