// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitwallet_rpc_requests_total",
			Help: "Total number of RPC calls by procedure and result code",
		},
		[]string{"procedure", "code"},
	)

	RPCRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "splitwallet_rpc_request_duration_seconds",
			Help:    "RPC call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"procedure"},
	)

	PaymentsRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "splitwallet_payments_recorded_total",
			Help: "Total number of payments recorded",
		},
	)

	SettlementsRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "splitwallet_settlements_recorded_total",
			Help: "Total number of settlement records persisted",
		},
	)

	SettlementTransactions = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "splitwallet_settlement_transactions",
			Help:    "Number of transfers proposed per settlement computation",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	StatusCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitwallet_status_cache_lookups_total",
			Help: "Settlement status cache lookups by result",
		},
		[]string{"result"},
	)
)

func RecordRPC(procedure, code string, seconds float64) {
	RPCRequestsTotal.WithLabelValues(procedure, code).Inc()
	RPCRequestDuration.WithLabelValues(procedure).Observe(seconds)
}

func RecordPayment() {
	PaymentsRecordedTotal.Inc()
}

func RecordSettlements(n int) {
	SettlementsRecordedTotal.Add(float64(n))
}

func RecordSettlementComputation(transactions int) {
	SettlementTransactions.Observe(float64(transactions))
}

// RecordCacheLookup counts a status cache hit or miss.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	StatusCacheLookups.WithLabelValues(result).Inc()
}
