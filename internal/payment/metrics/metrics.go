package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for gateway returns.
type Metrics struct {
	Outcomes        *prometheus.CounterVec
	Replays         prometheus.Counter
	Unreferenced    prometheus.Counter
	PublishFailures prometheus.Counter
	AmountVND       prometheus.Histogram
}

// New creates payment metrics registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanhome_vnpay_outcomes_total",
			Help: "Total number of decoded gateway returns, by response code and success",
		}, []string{"response_code", "success"}),
		Replays: f.NewCounter(prometheus.CounterOpts{
			Name: "cleanhome_vnpay_replays_total",
			Help: "Total number of returns already present in the outcome ledger",
		}),
		Unreferenced: f.NewCounter(prometheus.CounterOpts{
			Name: "cleanhome_vnpay_unreferenced_total",
			Help: "Total number of returns without a transaction reference",
		}),
		PublishFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "cleanhome_vnpay_publish_failures_total",
			Help: "Total number of recorded outcomes that could not be published",
		}),
		AmountVND: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cleanhome_vnpay_success_amount_vnd",
			Help:    "Amount of successful payments in VND",
			Buckets: prometheus.ExponentialBuckets(50_000, 2, 10),
		}),
	}
}

func (m *Metrics) IncrementOutcome(responseCode string, success bool) {
	m.Outcomes.WithLabelValues(responseCode, strconv.FormatBool(success)).Inc()
}

func (m *Metrics) IncrementReplays() {
	m.Replays.Inc()
}

func (m *Metrics) IncrementUnreferenced() {
	m.Unreferenced.Inc()
}

func (m *Metrics) IncrementPublishFailures() {
	m.PublishFailures.Inc()
}

func (m *Metrics) ObserveAmount(vnd int64) {
	m.AmountVND.Observe(float64(vnd))
}
