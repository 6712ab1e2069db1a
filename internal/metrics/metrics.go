// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by method, route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgerline",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests processed, partitioned by method, route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by method and route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledgerline",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// RealizedTransactions counts transactions created from recurring templates.
	RealizedTransactions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledgerline",
		Name:      "realized_transactions_total",
		Help:      "Transactions created by recurring realization runs.",
	})

	// RealizationRuns counts realization runs by trigger and outcome.
	RealizationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgerline",
		Name:      "realization_runs_total",
		Help:      "Recurring realization runs, partitioned by trigger and outcome.",
	}, []string{"trigger", "outcome"})

	// SnapshotsRecorded counts net worth snapshots written.
	SnapshotsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledgerline",
		Name:      "net_worth_snapshots_total",
		Help:      "Net worth snapshots recorded by pipeline runs.",
	})
)

// ObserveRealization records the outcome of a realization run.
func ObserveRealization(trigger string, created int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	RealizationRuns.WithLabelValues(trigger, outcome).Inc()
	if created > 0 {
		RealizedTransactions.Add(float64(created))
	}
}
