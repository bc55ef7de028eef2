package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skywatch_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skywatch_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Ingestion metrics
	ReadingsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skywatch_readings_ingested_total",
			Help: "Total number of readings received",
		},
		[]string{"source", "status"}, // source: http, kafka; status: accepted, rejected
	)

	// Alert metrics
	AlertsTriggered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skywatch_alerts_triggered_total",
			Help: "Total number of alert events raised",
		},
		[]string{"alert_type"},
	)

	AlertEvaluationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skywatch_alert_evaluation_failures_total",
			Help: "Total number of rule evaluations that failed after the reading was saved",
		},
	)

	AlertsAcknowledged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skywatch_alerts_acknowledged_total",
			Help: "Total number of alert events acknowledged",
		},
	)

	// Store metrics
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skywatch_store_query_duration_seconds",
			Help:    "Store round-trip latency in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// Kafka consumer metrics
	KafkaMessagesConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skywatch_kafka_messages_consumed_total",
			Help: "Total number of reading messages consumed from Kafka",
		},
		[]string{"status"}, // status: accepted, rejected, invalid
	)

	// Panic recovery
	PanicsRecovered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skywatch_panics_recovered_total",
			Help: "Total number of panics recovered",
		},
		[]string{"component"},
	)
)
