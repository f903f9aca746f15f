package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestOrderMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewOrderMetrics(reg)
	metrics.IncTransition("APPROVED")
	metrics.IncTransition("APPROVED")
	metrics.IncTransition("REJECTED")
	metrics.IncStockConflict()
	metrics.ObserveApproval(250 * time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "order_transitions_total", "status", "APPROVED"); err != nil {
		t.Fatalf("fetch approved: %v", err)
	} else if got != 2 {
		t.Fatalf("expected approved=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "order_transitions_total", "status", "REJECTED"); err != nil {
		t.Fatalf("fetch rejected: %v", err)
	} else if got != 1 {
		t.Fatalf("expected rejected=1, got %f", got)
	}

	conflicts := findMetricFamily(mfs, "stock_conflicts_total")
	if conflicts == nil || len(conflicts.GetMetric()) == 0 {
		t.Fatal("stock_conflicts_total not exported")
	}
	if got := conflicts.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected conflicts=1, got %f", got)
	}

	hist := findMetricFamily(mfs, "order_approval_duration_seconds")
	if hist == nil || len(hist.GetMetric()) == 0 {
		t.Fatal("order_approval_duration_seconds not exported")
	}
	if got := hist.GetMetric()[0].GetHistogram().GetSampleSum(); got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestOrderMetricsNilSafe(t *testing.T) {
	var metrics *OrderMetrics
	metrics.IncTransition("APPROVED")
	metrics.IncStockConflict()
	metrics.ObserveApproval(time.Second)

	empty := NewOrderMetrics(nil)
	empty.IncTransition("REJECTED")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
