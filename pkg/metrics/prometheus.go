package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	selections        *prometheus.CounterVec
	noteWrites        *prometheus.CounterVec
	rejectedOps       *prometheus.CounterVec
	sentimentStrength *prometheus.GaugeVec
	latency           *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		selections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxtracker_selections_total",
				Help: "Total accepted selection changes",
			},
			[]string{"kind", "code"},
		),
		noteWrites: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxtracker_note_writes_total",
				Help: "Total accepted note upserts",
			},
			[]string{"kind"},
		),
		rejectedOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxtracker_rejected_operations_total",
				Help: "Operations rejected by validation or throttling",
			},
			[]string{"reason"},
		),
		sentimentStrength: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fxtracker_sentiment_strength_pct",
				Help: "Last served sentiment strength per currency",
			},
			[]string{"code"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxtracker_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSelection records an accepted currency/pair selection.
func (r *Recorder) RecordSelection(kind, code string) {
	r.selections.WithLabelValues(kind, code).Inc()
}

// RecordNoteWrite records an accepted note upsert.
func (r *Recorder) RecordNoteWrite(kind string) {
	r.noteWrites.WithLabelValues(kind).Inc()
}

// RecordRejected records a rejected operation by reason.
func (r *Recorder) RecordRejected(reason string) {
	r.rejectedOps.WithLabelValues(reason).Inc()
}

// RecordSentimentStrength records the last served strength for a currency.
func (r *Recorder) RecordSentimentStrength(code string, pct float64) {
	r.sentimentStrength.WithLabelValues(code).Set(pct)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
