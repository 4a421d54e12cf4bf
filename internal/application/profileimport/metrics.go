package profileimport

import (
	"time"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
)

// Metrics observes batch execution. Implementations must be safe for
// concurrent use by several workers.
type Metrics interface {
	RowCommitted(action domain.RowAction)
	RowRejected(kind domain.IssueKind)
	ProvisioningFailed()
	BatchFinished(stats domain.ImportStats, elapsed time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) RowCommitted(domain.RowAction)                   {}
func (nopMetrics) RowRejected(domain.IssueKind)                    {}
func (nopMetrics) ProvisioningFailed()                             {}
func (nopMetrics) BatchFinished(domain.ImportStats, time.Duration) {}
