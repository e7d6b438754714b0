package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "submissions_received_total",
		Help: "The total number of accepted form submissions",
	}, []string{"kind"})

	SubmissionsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "submissions_processed_total",
		Help: "The total number of background units by outcome",
	}, []string{"kind", "status"}) // status: completed, failed, stuck

	ProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "submission_processing_duration_seconds",
		Help:    "Duration of background submission processing.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	}, []string{"kind"})
)
