package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
)

// ImportMetrics records row and batch outcomes of profile imports.
type ImportMetrics struct {
	RowsCommitted      *prometheus.CounterVec
	RowsRejected       *prometheus.CounterVec
	ProvisioningErrors prometheus.Counter
	BatchesFinished    prometheus.Counter
	BatchDuration      prometheus.Histogram
	BatchRows          prometheus.Histogram
}

// New registers the import metrics on reg. Pass prometheus.DefaultRegisterer
// to expose them on the default /metrics handler.
func New(reg prometheus.Registerer) *ImportMetrics {
	factory := promauto.With(reg)

	return &ImportMetrics{
		RowsCommitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "profile_import_rows_committed_total",
			Help: "Rows written to the identity store, by action",
		}, []string{"action"}),
		RowsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "profile_import_rows_rejected_total",
			Help: "Rows rejected, by the kind of the first blocking issue",
		}, []string{"kind"}),
		ProvisioningErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "profile_import_provisioning_errors_total",
			Help: "Sub-account provisioning calls that failed after a successful insert",
		}),
		BatchesFinished: factory.NewCounter(prometheus.CounterOpts{
			Name: "profile_import_batches_finished_total",
			Help: "Import batches that ran to completion",
		}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "profile_import_batch_duration_seconds",
			Help:    "Wall time of one import batch, pauses included",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}),
		BatchRows: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "profile_import_batch_rows",
			Help:    "Data rows per import batch",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

func (m *ImportMetrics) RowCommitted(action domain.RowAction) {
	m.RowsCommitted.WithLabelValues(string(action)).Inc()
}

func (m *ImportMetrics) RowRejected(kind domain.IssueKind) {
	m.RowsRejected.WithLabelValues(string(kind)).Inc()
}

func (m *ImportMetrics) ProvisioningFailed() {
	m.ProvisioningErrors.Inc()
}

func (m *ImportMetrics) BatchFinished(stats domain.ImportStats, elapsed time.Duration) {
	m.BatchesFinished.Inc()
	m.BatchDuration.Observe(elapsed.Seconds())
	m.BatchRows.Observe(float64(stats.Total))
}
