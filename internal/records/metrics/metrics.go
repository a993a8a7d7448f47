package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts records-core operations. Services tolerate a nil *Metrics so
// tests can run without touching the global prometheus registry.
type Metrics struct {
	DocumentWrites   *prometheus.CounterVec
	TxRollbacks      prometheus.Counter
	AreaDedupHits    prometheus.Counter
	AreaInserts      prometheus.Counter
	LinkChanges      *prometheus.CounterVec
	WriteTxDuration  prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		DocumentWrites: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "geodocs_document_writes_total",
			Help: "Total document write operations by kind",
		}, []string{"kind"}),
		TxRollbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "geodocs_tx_rollbacks_total",
			Help: "Total write transactions rolled back",
		}),
		AreaDedupHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "geodocs_area_dedup_hits_total",
			Help: "Total area resolutions satisfied by an existing equivalent geometry",
		}),
		AreaInserts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "geodocs_area_inserts_total",
			Help: "Total new area rows inserted",
		}),
		LinkChanges: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "geodocs_link_changes_total",
			Help: "Total link rows created or removed by reconciliation",
		}, []string{"op"}),
		WriteTxDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "geodocs_write_tx_duration_seconds",
			Help:    "Duration of document write transactions",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) RecordWrite(kind string) {
	if m == nil {
		return
	}
	m.DocumentWrites.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordRollback() {
	if m == nil {
		return
	}
	m.TxRollbacks.Inc()
}

func (m *Metrics) RecordAreaDedupHit() {
	if m == nil {
		return
	}
	m.AreaDedupHits.Inc()
}

func (m *Metrics) RecordAreaInsert() {
	if m == nil {
		return
	}
	m.AreaInserts.Inc()
}

func (m *Metrics) RecordLinkChange(op string) {
	if m == nil {
		return
	}
	m.LinkChanges.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveWriteTxDuration(seconds float64) {
	if m == nil {
		return
	}
	m.WriteTxDuration.Observe(seconds)
}
