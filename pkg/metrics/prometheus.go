package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	decisionsTotal *prometheus.CounterVec
	decisionScore  *prometheus.HistogramVec
	tradingStatus  *prometheus.GaugeVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		decisionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskdesk_decisions_total",
				Help: "Total number of decisions produced",
			},
			[]string{"tier", "action"},
		),
		decisionScore: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "riskdesk_decision_score",
				Help:    "Distribution of unified decision scores",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
			[]string{"asset_class"},
		),
		tradingStatus: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "riskdesk_trading_status",
				Help: "Current trading status (0 normal, 1 reduced, 2 halted)",
			},
			[]string{},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskdesk_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "riskdesk_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordDecision records a produced decision by tier and action.
func (r *Recorder) RecordDecision(tier, action string) {
	r.decisionsTotal.WithLabelValues(tier, action).Inc()
}

// RecordDecisionScore records the unified score for an asset class.
func (r *Recorder) RecordDecisionScore(assetClass string, score float64) {
	r.decisionScore.WithLabelValues(assetClass).Observe(score)
}

// RecordTradingStatus records the overall trading status level.
func (r *Recorder) RecordTradingStatus(level float64) {
	r.tradingStatus.WithLabelValues().Set(level)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
