package fractal

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Job outcomes recorded in fractal_jobs_total.
const (
	outcomeCompleted  = "completed"
	outcomeCancelled  = "cancelled"
	outcomeSuperseded = "superseded"
	outcomeFailed     = "failed"
	outcomeCached     = "cached"
)

// engineMetrics holds the engine's collectors. They always exist so the
// render path never checks for nil; they are only exported when a
// Registerer was given.
type engineMetrics struct {
	jobs      *prometheus.CounterVec
	duration  prometheus.Histogram
	rows      prometheus.Counter
	cacheHits prometheus.Counter
}

func newEngineMetrics(reg prometheus.Registerer) *engineMetrics {
	m := &engineMetrics{
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fractal_jobs_total",
			Help: "Render jobs by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fractal_render_duration_seconds",
			Help:    "Wall time of rendered jobs",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fractal_rows_rendered_total",
			Help: "Image rows computed by workers",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fractal_cache_hits_total",
			Help: "Jobs answered from the render cache",
		}),
	}
	if reg == nil {
		return m
	}

	m.jobs = register(reg, m.jobs)
	m.duration = register(reg, m.duration)
	m.rows = register(reg, m.rows)
	m.cacheHits = register(reg, m.cacheHits)
	return m
}

// register adds c to reg. When an equal collector is already registered,
// for example by another engine sharing the registry, that one is reused.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		Logger().Warn("engine: metrics registration failed", "error", err)
	}
	return c
}

func (m *engineMetrics) outcome(name string) {
	m.jobs.WithLabelValues(name).Inc()
}
