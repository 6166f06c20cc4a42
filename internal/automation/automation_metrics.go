package automation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments the sweep and the scheduler. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	SweepRuns      *prometheus.CounterVec
	SweepDuration  prometheus.Histogram
	Transitions    *prometheus.CounterVec
	RecordFailures prometheus.Counter
	Reminders      *prometheus.CounterVec
	Evaluations    *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg, or the default registry when
// reg is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		SweepRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "presence_sweep_runs_total",
			Help: "Daily sweep invocations by outcome",
		}, []string{"outcome"}), // outcome: "completed", "non_school_day", "locked", "error"

		SweepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "presence_sweep_duration_seconds",
			Help:    "Duration of one daily sweep",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "presence_sweep_transitions_total",
			Help: "Records written by the sweep by step",
		}, []string{"step"}),

		RecordFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "presence_sweep_record_failures_total",
			Help: "Per-record failures caught during sweeps",
		}),

		Reminders: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "presence_reminders_total",
			Help: "Attendance reminders by outcome",
		}, []string{"outcome"}),

		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "presence_claim_evaluations_total",
			Help: "Monthly evaluations run by the scheduler by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveSweep(outcome string, d time.Duration) {
	if m != nil {
		m.SweepRuns.WithLabelValues(outcome).Inc()
		m.SweepDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) AddTransitions(step string, n int) {
	if m != nil && n > 0 {
		m.Transitions.WithLabelValues(step).Add(float64(n))
	}
}

func (m *Metrics) IncrementRecordFailure() {
	if m != nil {
		m.RecordFailures.Inc()
	}
}

func (m *Metrics) IncrementReminder(outcome string) {
	if m != nil {
		m.Reminders.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncrementEvaluation(outcome string) {
	if m != nil {
		m.Evaluations.WithLabelValues(outcome).Inc()
	}
}
