// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adgenie_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adgenie_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	ChatExchanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adgenie_chat_exchanges_total",
			Help: "Chat exchanges committed, by context label",
		},
		[]string{"context"},
	)

	ChatFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "adgenie_chat_failures_total",
			Help: "Chat requests rolled back",
		},
	)

	UsersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "adgenie_users_created_total",
			Help: "Users created from unseen session tokens",
		},
	)

	ClassifierOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adgenie_classifier_outcomes_total",
			Help: "Classification results by source",
		},
		[]string{"source"}, // "external" or "fallback"
	)

	ExternalLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "adgenie_external_classifier_latency_seconds",
			Help:    "External classification call latency",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		},
	)
)
