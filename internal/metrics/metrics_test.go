package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRPC(t *testing.T) {
	RPCRequestsTotal.Reset()
	RPCRequestDuration.Reset()

	RecordRPC("/splitwallet.v1.PaymentService/CreatePayment", "ok", 0.01)
	RecordRPC("/splitwallet.v1.PaymentService/CreatePayment", "ok", 0.02)
	RecordRPC("/splitwallet.v1.PaymentService/CreatePayment", "invalid_argument", 0.005)

	ok := testutil.ToFloat64(RPCRequestsTotal.WithLabelValues("/splitwallet.v1.PaymentService/CreatePayment", "ok"))
	invalid := testutil.ToFloat64(RPCRequestsTotal.WithLabelValues("/splitwallet.v1.PaymentService/CreatePayment", "invalid_argument"))
	assert.Equal(t, float64(2), ok)
	assert.Equal(t, float64(1), invalid)

	assert.Equal(t, 1, testutil.CollectAndCount(RPCRequestDuration))
}

func TestRecordPayment(t *testing.T) {
	testCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "splitwallet_payments_recorded_total_test",
		Help: "Total number of payments recorded",
	})
	old := PaymentsRecordedTotal
	PaymentsRecordedTotal = testCounter
	defer func() { PaymentsRecordedTotal = old }()

	RecordPayment()
	RecordPayment()

	assert.Equal(t, float64(2), testutil.ToFloat64(testCounter))
}

func TestRecordSettlements(t *testing.T) {
	testCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "splitwallet_settlements_recorded_total_test",
		Help: "Total number of settlement records persisted",
	})
	old := SettlementsRecordedTotal
	SettlementsRecordedTotal = testCounter
	defer func() { SettlementsRecordedTotal = old }()

	RecordSettlements(3)
	RecordSettlements(0)

	assert.Equal(t, float64(3), testutil.ToFloat64(testCounter))
}

func TestRecordSettlementComputation(t *testing.T) {
	before := testutil.CollectAndCount(SettlementTransactions)
	RecordSettlementComputation(2)
	assert.Equal(t, before, testutil.CollectAndCount(SettlementTransactions))
}

func TestRecordCacheLookup(t *testing.T) {
	StatusCacheLookups.Reset()

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	assert.Equal(t, float64(1), testutil.ToFloat64(StatusCacheLookups.WithLabelValues("hit")))
	assert.Equal(t, float64(2), testutil.ToFloat64(StatusCacheLookups.WithLabelValues("miss")))
}
