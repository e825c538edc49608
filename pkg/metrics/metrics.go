package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wish_submissions_total",
		Help: "Wish submissions by outcome (created, rejected, store_error).",
	}, []string{"outcome"})

	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wish_validation_failures_total",
		Help: "Rejected submissions by validation rule.",
	}, []string{"kind"})

	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wish_store_errors_total",
		Help: "Failed store operations by failure kind.",
	}, []string{"kind"})

	LockWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wish_store_lock_wait_seconds",
		Help:    "Time spent waiting for the exclusive store lock.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
	})

	StoredRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wish_store_records",
		Help: "Number of records in the store at the last stats refresh.",
	})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
