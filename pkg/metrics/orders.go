package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records order lifecycle outcomes and stock contention.
type OrderMetrics struct {
	transitions    *prometheus.CounterVec
	stockConflicts prometheus.Counter
	approvalTime   prometheus.Histogram
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transitions_total",
		Help: "Order status transitions by resulting status.",
	}, []string{"status"})
	stockConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stock_conflicts_total",
		Help: "Approvals rejected because the guarded stock decrement found insufficient quantity.",
	})
	approvalTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_approval_duration_seconds",
		Help:    "Duration of order approval transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(transitions, stockConflicts, approvalTime)
	return &OrderMetrics{
		transitions:    transitions,
		stockConflicts: stockConflicts,
		approvalTime:   approvalTime,
	}
}

// IncTransition increments the transition counter for the resulting status.
func (m *OrderMetrics) IncTransition(status string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncStockConflict increments the stock contention counter.
func (m *OrderMetrics) IncStockConflict() {
	if m == nil || m.stockConflicts == nil {
		return
	}
	m.stockConflicts.Inc()
}

// ObserveApproval records the duration of an approval transaction.
func (m *OrderMetrics) ObserveApproval(duration time.Duration) {
	if m == nil || m.approvalTime == nil {
		return
	}
	m.approvalTime.Observe(duration.Seconds())
}

func normalizeLabel(status string) string {
	if status == "" {
		return "unknown"
	}
	return status
}
