package formulation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "psse"
	metricsSubsystem = "formulation"
)

// Build stages reported in the failures counter.
const (
	stageResolve = "resolve"
	stagePlan    = "plan"
	stageEmit    = "emit"
)

// Metrics counts what builders emit. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	Residuals   *prometheus.CounterVec
	Constraints *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	Decompose   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
//
// Errors: ErrNilRegisterer, or the registration error from reg (for example
// prometheus.AlreadyRegisteredError).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, ErrNilRegisterer
	}
	m := &Metrics{
		Residuals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "residuals_total",
				Help:      "Residual variables emitted by criterion and solver formulation",
			},
			[]string{"criterion", "formulation"},
		),
		Constraints: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "constraints_total",
				Help:      "Constraints emitted by algebraic kind",
			},
			[]string{"kind"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "failures_total",
				Help:      "Rejected builds by stage",
			},
			[]string{"stage"},
		),
		Decompose: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "decompose_seconds",
				Help:      "Time spent fitting one Gaussian mixture",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),
	}
	for _, c := range []prometheus.Collector{m.Residuals, m.Constraints, m.Failures, m.Decompose} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) emitted(f Formulation, e *Emitted) {
	if m == nil {
		return
	}
	m.Residuals.WithLabelValues(e.Criterion.String(), f.String()).Inc()
	for _, c := range e.Constraints {
		m.Constraints.WithLabelValues(c.Kind().String()).Inc()
	}
}

func (m *Metrics) failed(stage string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(stage).Inc()
}

func (m *Metrics) decomposed(start time.Time) {
	if m == nil {
		return
	}
	m.Decompose.Observe(time.Since(start).Seconds())
}
