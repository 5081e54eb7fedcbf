// Package telemetry exports admission-controller metrics for scraping,
// in the style of NikeGunn-tutu's internal/infra/observability package
// over github.com/prometheus/client_golang. It is updated by the
// orchestrator (cmd/run.go) after each decision — never by the core
// itself (the core's Ownership rules in spec §3 are unaffected by
// observation).
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the Prometheus collectors for one running game.
type Recorder struct {
	AdmittedTotal    prometheus.Counter
	RejectedTotal    prometheus.Counter
	CurrentThreshold prometheus.Gauge
	DeflationFactor  prometheus.Gauge
	RiskScore        prometheus.Gauge
}

// NewRecorder registers and returns a Recorder on the given registerer.
// Pass prometheus.DefaultRegisterer for process-wide metrics, or a fresh
// *prometheus.Registry in tests to avoid collisions across games.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		AdmittedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "venuegate_admitted_total",
			Help: "Total candidates admitted.",
		}),
		RejectedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "venuegate_rejected_total",
			Help: "Total candidates rejected.",
		}),
		CurrentThreshold: factory.NewGauge(prometheus.GaugeOpts{
			Name: "venuegate_threshold",
			Help: "Current admission threshold.",
		}),
		DeflationFactor: factory.NewGauge(prometheus.GaugeOpts{
			Name: "venuegate_deflation_factor",
			Help: "Current deflation factor applied to raw scores.",
		}),
		RiskScore: factory.NewGauge(prometheus.GaugeOpts{
			Name: "venuegate_risk_score",
			Help: "Current aggregate quota-infeasibility risk score (0-10).",
		}),
	}
}

// RecordDecision updates the counters for one decision outcome.
func (r *Recorder) RecordDecision(admitted bool) {
	if admitted {
		r.AdmittedTotal.Inc()
		return
	}
	r.RejectedTotal.Inc()
}

// RecordGauges updates the instantaneous gauges after a decision.
func (r *Recorder) RecordGauges(threshold, deflationFactor, riskScore float64) {
	r.CurrentThreshold.Set(threshold)
	r.DeflationFactor.Set(deflationFactor)
	r.RiskScore.Set(riskScore)
}
