package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storage_indexer"

// IndexerMetrics collectors for event application, sync progress, rescans and snapshots
type IndexerMetrics struct {
	events    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	syncH     *prometheus.GaugeVec
	headH     *prometheus.GaugeVec
	rescans   *prometheus.CounterVec
	snapshots *prometheus.CounterVec
}

var (
	indexerMetricsOnce sync.Once
	indexerRegistry    *IndexerMetrics
)

// Indexer returns the lazily-initialised indexer metrics registry
func Indexer() *IndexerMetrics {
	indexerMetricsOnce.Do(func() {
		indexerRegistry = &IndexerMetrics{
			events: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_total",
				Help:      "Contract events seen by the processor segmented by contract, event and outcome.",
			}, []string{"contract", "event", "outcome"}),
			duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "event_duration_seconds",
				Help:      "Time spent applying one event inside its store transaction.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"event"}),
			syncH: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sync_height",
				Help:      "Last block whose logs were fully applied.",
			}, []string{"chain"}),
			headH: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "head_height",
				Help:      "Latest confirmed block reported by the RPC node.",
			}, []string{"chain"}),
			rescans: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rescans_total",
				Help:      "Finished rescan tasks segmented by final status.",
			}, []string{"status"}),
			snapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshots_total",
				Help:      "Stats snapshot exports segmented by outcome.",
			}, []string{"outcome"}),
		}
		prometheus.MustRegister(
			indexerRegistry.events,
			indexerRegistry.duration,
			indexerRegistry.syncH,
			indexerRegistry.headH,
			indexerRegistry.rescans,
			indexerRegistry.snapshots,
		)
	})
	return indexerRegistry
}

// Event outcomes
const (
	OutcomeApplied   = "applied"
	OutcomeDuplicate = "duplicate"
	OutcomeSkipped   = "skipped"
	OutcomeError     = "error"
)

// ObserveEvent records one processed event and, when applied, how long it took
func (m *IndexerMetrics) ObserveEvent(contract, event, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	if contract == "" {
		contract = "unknown"
	}
	if event == "" {
		event = "unknown"
	}
	m.events.WithLabelValues(contract, event, outcome).Inc()
	if outcome == OutcomeApplied {
		m.duration.WithLabelValues(event).Observe(duration.Seconds())
	}
}

func (m *IndexerMetrics) SetSyncHeight(chain string, height uint64) {
	if m == nil {
		return
	}
	m.syncH.WithLabelValues(chain).Set(float64(height))
}

func (m *IndexerMetrics) SetHeadHeight(chain string, height uint64) {
	if m == nil {
		return
	}
	m.headH.WithLabelValues(chain).Set(float64(height))
}

func (m *IndexerMetrics) RecordRescan(status string) {
	if m == nil {
		return
	}
	m.rescans.WithLabelValues(status).Inc()
}

func (m *IndexerMetrics) RecordSnapshot(success bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "error"
	}
	m.snapshots.WithLabelValues(outcome).Inc()
}
