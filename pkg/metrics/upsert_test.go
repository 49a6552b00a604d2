package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestUpsertMetricsExportsCountersAndHistograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewUpsertMetrics(reg)

	metrics.ObserveBatch(250*time.Millisecond, 3)
	metrics.AddOutcomes(1, 1, 1)
	metrics.AddOutcomes(2, 0, 0)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "professionals_upsert_records_total", "outcome", OutcomeCreated); err != nil {
		t.Fatalf("fetch created: %v", err)
	} else if got != 3 {
		t.Fatalf("expected created=3, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "professionals_upsert_records_total", "outcome", OutcomeUpdated); err != nil {
		t.Fatalf("fetch updated: %v", err)
	} else if got != 1 {
		t.Fatalf("expected updated=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "professionals_upsert_records_total", "outcome", OutcomeFailed); err != nil {
		t.Fatalf("fetch failed: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failed=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "professionals_upsert_batch_duration_seconds"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "professionals_upsert_batch_size"); err != nil {
		t.Fatalf("fetch batch size: %v", err)
	} else if got != 3 {
		t.Fatalf("expected batch size sum 3, got %f", got)
	}
}

func TestUpsertMetricsNilSafe(t *testing.T) {
	var metrics *UpsertMetrics
	metrics.ObserveBatch(time.Second, 1)
	metrics.AddOutcomes(1, 1, 1)

	unregistered := NewUpsertMetrics(nil)
	unregistered.ObserveBatch(time.Second, 1)
	unregistered.AddOutcomes(1, 1, 1)
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

func fetchHistogramSum(mfs []*dto.MetricFamily, name string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		return metric.GetHistogram().GetSampleSum(), nil
	}
	return 0, fmt.Errorf("histogram %q has no samples", name)
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
