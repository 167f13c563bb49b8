// Package metrics records estimation outcomes as Prometheus metrics.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ukaji3/missingplot-go/pkg/missingplot"
	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

// Error reasons used as label values.
const (
	ReasonNoMissingValue      = "no_missing_value"
	ReasonUnsupportedTopology = "unsupported_topology"
	ReasonDegenerateDesign    = "degenerate_design"
	ReasonNumericOverflow     = "numeric_overflow"
	ReasonInvalidTopology     = "invalid_topology"
	ReasonInvalidTable        = "invalid_table"
	ReasonOther               = "other"
)

// Metrics holds the estimation collectors on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	estimations *prometheus.CounterVec
	errors      *prometheus.CounterVec
	duration    prometheus.Histogram
}

// New creates the collectors and registers them.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		estimations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "missingplot_estimations_total",
			Help: "Successful estimations by missing cell topology.",
		}, []string{"topology"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "missingplot_estimation_errors_total",
			Help: "Failed estimations by reason.",
		}, []string{"reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "missingplot_estimation_duration_seconds",
			Help:    "Time spent estimating one design.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	m.registry.MustRegister(m.estimations, m.errors, m.duration)
	return m
}

// Observe records the outcome of one estimation call.
func (m *Metrics) Observe(res *models.EstimationResult, err error, elapsed time.Duration) {
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.errors.WithLabelValues(Reason(err)).Inc()
		return
	}
	m.estimations.WithLabelValues(res.Topology).Inc()
}

// ObserveError records a request rejected before estimation ran. No
// duration is recorded.
func (m *Metrics) ObserveError(err error) {
	m.errors.WithLabelValues(Reason(err)).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Reason maps an estimation error to its label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, missingplot.ErrNoMissingValue):
		return ReasonNoMissingValue
	case errors.Is(err, missingplot.ErrUnsupportedTopology):
		return ReasonUnsupportedTopology
	case errors.Is(err, missingplot.ErrDegenerateDesign):
		return ReasonDegenerateDesign
	case errors.Is(err, missingplot.ErrNumericOverflow):
		return ReasonNumericOverflow
	case errors.Is(err, missingplot.ErrInvalidTopology):
		return ReasonInvalidTopology
	case errors.Is(err, models.ErrInvalidTable), errors.Is(err, models.ErrDuplicateCell):
		return ReasonInvalidTable
	default:
		return ReasonOther
	}
}
