package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the registry Prometheus metrics.
type Metrics struct {
	SyncCreated    prometheus.Counter
	SyncDeduped    prometheus.Counter
	StatusChanges  *prometheus.CounterVec
	EntriesDeleted prometheus.Counter
}

// New creates and registers the registry metrics.
func New() *Metrics {
	return &Metrics{
		SyncCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "homevest_registry_sync_created_total",
			Help: "Registry entries created by sync",
		}),
		SyncDeduped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "homevest_registry_sync_deduped_total",
			Help: "Sync runs that found an existing entry and no-opped",
		}),
		StatusChanges: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "homevest_registry_status_changes_total",
			Help: "Status transitions applied to registry entries",
		}, []string{"to"}),
		EntriesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "homevest_registry_entries_deleted_total",
			Help: "Registry entries deleted by the owner",
		}),
	}
}

// IncSyncCreated records a sync that created a new entry.
func (m *Metrics) IncSyncCreated() {
	if m != nil {
		m.SyncCreated.Inc()
	}
}

// IncSyncDeduped records an idempotent sync no-op.
func (m *Metrics) IncSyncDeduped() {
	if m != nil {
		m.SyncDeduped.Inc()
	}
}

// IncStatusChange records a lifecycle transition into the given status.
func (m *Metrics) IncStatusChange(to string) {
	if m != nil {
		m.StatusChanges.WithLabelValues(to).Inc()
	}
}

// IncDeleted records an entry deletion.
func (m *Metrics) IncDeleted() {
	if m != nil {
		m.EntriesDeleted.Inc()
	}
}
