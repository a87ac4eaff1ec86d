// Package metrics instruments the simulation loop for Prometheus scraping:
// step throughput, join/dissociation counts, and the live-entry gauge
// referenced by spec.md's "observability" non-goal — out of scope for THE
// CORE itself, but real ambient surface for a runnable repository.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daniacca/nastrand/internal/kinetics"
)

// Registry owns every metric nastrand exposes, each registered against its
// own prometheus.Registry so multiple Registry instances in one process
// don't collide on the default global registry.
type Registry struct {
	reg *prometheus.Registry

	stepsTotal         *prometheus.CounterVec
	joinsTotal         prometheus.Counter
	dissociationsTotal prometheus.Counter
	liveComplexes      prometheus.Gauge
	stepDuration       prometheus.Histogram
}

// NewRegistry creates and registers a fresh metric set.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		reg: reg,
		stepsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "nastrand",
			Name:      "steps_total",
			Help:      "Total dispatcher steps processed, labeled by event kind.",
		}, []string{"kind"}),
		joinsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "nastrand",
			Name:      "joins_total",
			Help:      "Total join events resolved across all runs.",
		}),
		dissociationsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "nastrand",
			Name:      "dissociations_total",
			Help:      "Total dissociation events resolved across all runs.",
		}),
		liveComplexes: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: "nastrand",
			Name:      "live_complexes",
			Help:      "Number of live complexes in the most recently observed ensemble.",
		}),
		stepDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: "nastrand",
			Name:      "step_duration_seconds",
			Help:      "Wall-clock time spent computing one dispatcher step.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	return r
}

// Handler returns the HTTP handler serve mode mounts at /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// ObserveStep records one dispatcher step: its event kind, the wall-clock
// time it took to compute, and the ensemble's live-entry count afterward.
func (r *Registry) ObserveStep(result kinetics.StepResult, duration float64, liveCount int) {
	r.stepsTotal.WithLabelValues(stepKindLabel(result.Kind)).Inc()
	switch result.Kind {
	case kinetics.EventJoin:
		r.joinsTotal.Inc()
	case kinetics.EventDissociation:
		r.dissociationsTotal.Inc()
	}
	r.stepDuration.Observe(duration)
	r.liveComplexes.Set(float64(liveCount))
}

func stepKindLabel(k kinetics.EventKind) string {
	switch k {
	case kinetics.EventMove:
		return "move"
	case kinetics.EventDissociation:
		return "dissociation"
	case kinetics.EventJoin:
		return "join"
	default:
		return "unknown"
	}
}
