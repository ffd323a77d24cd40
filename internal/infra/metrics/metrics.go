// Package metrics registers the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActionsTotal counts dispatched actions by kind and outcome
	// (applied | rejected).
	ActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "torresapp_actions_total",
		Help: "Reducer actions dispatched, by kind and outcome.",
	}, []string{"kind", "outcome"})

	// SnapshotSaveSeconds observes the time spent persisting the full state
	// snapshot after an accepted mutation.
	SnapshotSaveSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "torresapp_snapshot_save_seconds",
		Help:    "Duration of state snapshot writes.",
		Buckets: prometheus.DefBuckets,
	})
)
