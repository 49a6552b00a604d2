package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
	OutcomeFailed  = "failed"
)

// UpsertMetrics records batch upsert activity. A nil receiver or unregistered
// instance is a no-op so callers never guard their observation sites.
type UpsertMetrics struct {
	batchDuration prometheus.Histogram
	batchSize     prometheus.Histogram
	records       *prometheus.CounterVec
}

// NewUpsertMetrics registers the upsert metrics on the provided registerer.
func NewUpsertMetrics(reg prometheus.Registerer) *UpsertMetrics {
	if reg == nil {
		return &UpsertMetrics{}
	}
	batchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "professionals_upsert_batch_duration_seconds",
		Help:    "Duration of bulk upsert batches in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	batchSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "professionals_upsert_batch_size",
		Help:    "Number of records submitted per bulk upsert batch.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
	})
	records := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "professionals_upsert_records_total",
		Help: "Individual record outcomes across bulk upsert batches.",
	}, []string{"outcome"})
	reg.MustRegister(batchDuration, batchSize, records)
	return &UpsertMetrics{
		batchDuration: batchDuration,
		batchSize:     batchSize,
		records:       records,
	}
}

// ObserveBatch records the duration and size of one processed batch.
func (m *UpsertMetrics) ObserveBatch(duration time.Duration, size int) {
	if m == nil || m.batchDuration == nil {
		return
	}
	m.batchDuration.Observe(duration.Seconds())
	m.batchSize.Observe(float64(size))
}

// AddOutcomes accumulates the per-record outcome counters for one batch.
func (m *UpsertMetrics) AddOutcomes(created, updated, failed int) {
	if m == nil || m.records == nil {
		return
	}
	if created > 0 {
		m.records.WithLabelValues(OutcomeCreated).Add(float64(created))
	}
	if updated > 0 {
		m.records.WithLabelValues(OutcomeUpdated).Add(float64(updated))
	}
	if failed > 0 {
		m.records.WithLabelValues(OutcomeFailed).Add(float64(failed))
	}
}
