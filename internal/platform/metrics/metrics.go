package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application-level Prometheus metrics.
type Metrics struct {
	SectionUpdates  *prometheus.CounterVec
	Submissions     *prometheus.CounterVec
	RemoteCallMs    *prometheus.HistogramVec
	UploadsPending  prometheus.Gauge
	UploadsFinished prometheus.Counter
}

// New creates and registers all application metrics.
func New() *Metrics {
	return &Metrics{
		SectionUpdates: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "homevest_draft_section_updates_total",
			Help: "Draft section updates, labeled by property type and section",
		}, []string{"property_type", "section"}),
		Submissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "homevest_submissions_total",
			Help: "Submit-for-review outcomes, labeled by property type and result",
		}, []string{"property_type", "result"}),
		RemoteCallMs: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "homevest_remote_call_duration_seconds",
			Help:    "Remote Property API call latency by operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		UploadsPending: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "homevest_uploads_pending",
			Help: "File attachments with a local reference and no remote URL",
		}),
		UploadsFinished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "homevest_uploads_finished_total",
			Help: "Successfully completed file uploads",
		}),
	}
}

// ObserveSectionUpdate records one section update.
func (m *Metrics) ObserveSectionUpdate(propertyType, section string) {
	if m == nil {
		return
	}
	m.SectionUpdates.WithLabelValues(propertyType, section).Inc()
}

// ObserveSubmission records one submit-for-review outcome.
func (m *Metrics) ObserveSubmission(propertyType, result string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(propertyType, result).Inc()
}

// SetUploadsPending records how many attachments currently await upload.
func (m *Metrics) SetUploadsPending(n int) {
	if m == nil {
		return
	}
	m.UploadsPending.Set(float64(n))
}

// IncUploadFinished records one completed upload.
func (m *Metrics) IncUploadFinished() {
	if m == nil {
		return
	}
	m.UploadsFinished.Inc()
}

// ObserveRemoteCall records the latency of one remote API call.
func (m *Metrics) ObserveRemoteCall(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.RemoteCallMs.WithLabelValues(operation).Observe(seconds)
}
