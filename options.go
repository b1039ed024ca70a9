package fractal

import (
	"log/slog"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultMinRowsPerChunk is the smallest number of rows handed to one
// worker. Small images therefore render on fewer workers.
const DefaultMinRowsPerChunk = 50

// Option configures an Engine during creation.
//
// Example:
//
//	// One worker per CPU, no cache
//	e := fractal.NewEngine()
//
//	// Four workers, keep the last 32 images, export metrics
//	e := fractal.NewEngine(
//	    fractal.WithMaxWorkers(4),
//	    fractal.WithCache(32),
//	    fractal.WithMetrics(prometheus.DefaultRegisterer),
//	)
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	maxWorkers int
	minRows    int
	cacheSize  int
	registerer prometheus.Registerer
	logger     *slog.Logger
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		maxWorkers: runtime.NumCPU(),
		minRows:    DefaultMinRowsPerChunk,
	}
}

// workers returns the pool size for these options.
func (o engineOptions) workers() int {
	return max(1, min(runtime.NumCPU(), o.maxWorkers))
}

// WithMaxWorkers caps the number of worker goroutines. The engine never
// uses more workers than there are CPUs. Values below 1 are ignored.
func WithMaxWorkers(n int) Option {
	return func(o *engineOptions) {
		if n >= 1 {
			o.maxWorkers = n
		}
	}
}

// WithMinRowsPerChunk sets the smallest chunk height.
// Values below 1 are ignored.
func WithMinRowsPerChunk(n int) Option {
	return func(o *engineOptions) {
		if n >= 1 {
			o.minRows = n
		}
	}
}

// WithCache keeps the last n rendered images, keyed by Job.Fingerprint.
// Resubmitting an identical job (for example after undo) then returns a
// copy of the cached image without rendering. n <= 0 disables the cache.
func WithCache(n int) Option {
	return func(o *engineOptions) {
		o.cacheSize = n
	}
}

// WithMetrics registers the engine's Prometheus collectors with reg.
//
// Collectors:
//   - fractal_jobs_total{outcome}: completed, cancelled, superseded, failed, cached
//   - fractal_render_duration_seconds: wall time of rendered jobs
//   - fractal_rows_rendered_total: rows computed by workers
//   - fractal_cache_hits_total: jobs answered from the cache
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *engineOptions) {
		o.registerer = reg
	}
}

// WithLogger sets the engine's logger. Without it the engine logs through
// the package-wide Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}

// SubmitOption configures a single Submit call.
type SubmitOption func(*submitOptions)

type submitOptions struct {
	progress func(done, total int)
}

// WithProgress installs a progress callback for one job.
//
// The callback receives the number of finished rows and the image height.
// It is called from worker goroutines, one call at a time, with strictly
// increasing done values, at most about a hundred times per job plus once
// with done == total. It must return quickly; UI code should hand the
// values over to its own thread.
func WithProgress(fn func(done, total int)) SubmitOption {
	return func(o *submitOptions) {
		o.progress = fn
	}
}
