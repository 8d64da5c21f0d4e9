package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for address form sessions.
type Metrics struct {
	SessionsCreated   prometheus.Counter
	SessionsSubmitted prometheus.Counter
	SubmitsRejected   prometheus.Counter
	SessionsPurged    prometheus.Counter
	Transitions       *prometheus.CounterVec
	ExternalSyncs     prometheus.Counter
	OperationLatency  *prometheus.HistogramVec
}

// New creates address metrics registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SessionsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "cleanhome_address_sessions_created_total",
			Help: "Total number of address form sessions created",
		}),
		SessionsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "cleanhome_address_sessions_submitted_total",
			Help: "Total number of address selections submitted",
		}),
		SubmitsRejected: f.NewCounter(prometheus.CounterOpts{
			Name: "cleanhome_address_submits_rejected_total",
			Help: "Total number of submits rejected because the selection was incomplete or did not resolve",
		}),
		SessionsPurged: f.NewCounter(prometheus.CounterOpts{
			Name: "cleanhome_address_sessions_purged_total",
			Help: "Total number of expired address sessions removed",
		}),
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanhome_address_transitions_total",
			Help: "Total number of user transitions applied, by kind",
		}, []string{"kind"}),
		ExternalSyncs: f.NewCounter(prometheus.CounterOpts{
			Name: "cleanhome_address_external_syncs_total",
			Help: "Total number of selections pushed by the owning form",
		}),
		OperationLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cleanhome_address_session_operation_duration_seconds",
			Help:    "Latency of address session operations including store round trips",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementSessionsCreated() {
	m.SessionsCreated.Inc()
}

func (m *Metrics) IncrementSessionsSubmitted() {
	m.SessionsSubmitted.Inc()
}

func (m *Metrics) IncrementSubmitsRejected() {
	m.SubmitsRejected.Inc()
}

func (m *Metrics) AddSessionsPurged(n int) {
	m.SessionsPurged.Add(float64(n))
}

func (m *Metrics) IncrementTransitions(kind string) {
	m.Transitions.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementExternalSyncs() {
	m.ExternalSyncs.Inc()
}

func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	m.OperationLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
