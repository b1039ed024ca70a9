package fractal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/fractal/internal/cache"
	"github.com/gogpu/fractal/internal/parallel"
)

// Engine renders jobs on a persistent pool of worker goroutines.
//
// Each job's image is split into horizontal bands of rows, one band per
// worker task. Every band renders into its own buffer, so workers never
// share memory while computing; the bands are copied into the final image
// in row order once all of them finished.
//
// Submitting a job cancels the job that is still running on the engine
// (its Submit returns a *CancelError caused by ErrJobSuperseded), and a job
// older than the newest one seen is rejected the same way without
// rendering. Callers that keep a single view up to date can therefore
// submit on every change and keep only the latest result.
//
// Thread safety: Engine is safe for concurrent use.
type Engine struct {
	opts    engineOptions
	pool    *parallel.WorkerPool
	buffers *parallel.BufferPool
	cache   *cache.Cache[uint64, *Image]
	metrics *engineMetrics
	log     *slog.Logger

	mu       sync.Mutex
	closed   bool
	latestID uint64
	accepts  uint64 // incremented per accepted Submit
	current  uint64 // accepts value of the running Submit
	cancel   context.CancelCauseFunc
}

// NewEngine creates an engine and starts its workers.
// Call Close to stop them.
func NewEngine(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		opts:    o,
		pool:    parallel.NewWorkerPool(o.workers()),
		buffers: parallel.NewBufferPool(),
		metrics: newEngineMetrics(o.registerer),
		log:     o.logger,
	}
	if o.cacheSize > 0 {
		e.cache = cache.New[uint64, *Image](o.cacheSize, cache.Uint64Hasher)
	}
	return e
}

// Workers returns the number of worker goroutines.
func (e *Engine) Workers() int {
	return e.pool.Workers()
}

func (e *Engine) logger() *slog.Logger {
	if e.log != nil {
		return e.log
	}
	return Logger()
}

// Submit renders job and blocks until the image is complete, the job is
// cancelled, or rendering fails.
//
// A cancelled job (ctx done, superseded by a newer job, engine closed while
// running) returns a *CancelError, which matches ErrJobCancelled and wraps
// the cause. A partially rendered image is never returned.
func (e *Engine) Submit(ctx context.Context, job *Job, opts ...SubmitOption) (*Image, error) {
	if job == nil {
		return nil, fmt.Errorf("%w: nil job", ErrNilKind)
	}
	var so submitOptions
	for _, opt := range opts {
		opt(&so)
	}

	jobCtx, done, err := e.accept(ctx, job)
	if err != nil {
		return nil, err
	}
	defer done()

	log := e.logger().With("job", job.ID())

	if cause := context.Cause(jobCtx); cause != nil {
		log.Debug("engine: job cancelled before start", "cause", cause)
		return nil, e.cancelled(job, cause)
	}

	if e.cache != nil {
		if img, ok := e.cache.Get(job.Fingerprint()); ok {
			log.Debug("engine: cache hit")
			e.metrics.cacheHits.Inc()
			e.metrics.outcome(outcomeCached)
			reportFinal(so.progress, img.Height())
			return img.Clone(), nil
		}
	}

	start := time.Now()
	img, err := e.render(jobCtx, job, so.progress, log)
	if err != nil {
		return nil, err
	}
	e.metrics.duration.Observe(time.Since(start).Seconds())
	e.metrics.outcome(outcomeCompleted)
	log.Debug("engine: job finished", "elapsed", time.Since(start))

	if e.cache != nil {
		e.cache.Set(job.Fingerprint(), img.Clone())
	}
	return img, nil
}

// accept registers job as the engine's current job. It cancels the job that
// was running before and returns the job's context together with a function
// that releases it.
func (e *Engine) accept(ctx context.Context, job *Job) (context.Context, func(), error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, nil, ErrEngineClosed
	}
	if job.ID() < e.latestID {
		e.metrics.outcome(outcomeSuperseded)
		return nil, nil, &CancelError{JobID: job.ID(), Cause: ErrJobSuperseded}
	}
	if e.cancel != nil {
		e.cancel(ErrJobSuperseded)
	}

	jobCtx, cancel := context.WithCancelCause(ctx)
	e.accepts++
	token := e.accepts
	e.latestID = job.ID()
	e.current = token
	e.cancel = cancel

	// The same job may be submitted again while it runs, so release
	// matches on the accept token rather than the job ID.
	release := func() {
		e.mu.Lock()
		if e.current == token {
			e.cancel = nil
		}
		e.mu.Unlock()
		cancel(nil)
	}
	return jobCtx, release, nil
}

// cancelled builds the error for a job that stopped early and records it.
func (e *Engine) cancelled(job *Job, cause error) error {
	if errors.Is(cause, ErrJobSuperseded) {
		e.metrics.outcome(outcomeSuperseded)
	} else {
		e.metrics.outcome(outcomeCancelled)
	}
	return &CancelError{JobID: job.ID(), Cause: cause}
}

// band is the row range [y0, y1) rendered by one task.
type band struct {
	y0, y1 int
	buf    []byte
}

// partition splits height rows into contiguous bands.
func partition(height, workers, minRows int) []band {
	n := min(workers, max(1, height/minRows))
	bands := make([]band, n)
	for k := range bands {
		bands[k] = band{y0: k * height / n, y1: (k + 1) * height / n}
	}
	return bands
}

func (e *Engine) render(ctx context.Context, job *Job, progress func(done, total int), log *slog.Logger) (*Image, error) {
	vp := job.Viewport()
	stride := vp.Width * bytesPerPixel
	bands := partition(vp.Height, e.pool.Workers(), e.opts.minRows)

	var stopped atomic.Bool
	stop := context.AfterFunc(ctx, func() { stopped.Store(true) })
	defer stop()

	tracker := newProgressTracker(progress, vp.Height)
	var rows atomic.Int64

	tasks := make([]parallel.Task, len(bands))
	for k := range bands {
		b := &bands[k]
		tasks[k] = func() error {
			b.buf = e.buffers.Get((b.y1 - b.y0) * stride)
			for y := b.y0; y < b.y1; y++ {
				if stopped.Load() {
					return nil
				}
				off := (y - b.y0) * stride
				renderRow(b.buf[off:off+stride], job, y)
				rows.Add(1)
				e.metrics.rows.Inc()
				tracker.advance()
			}
			return nil
		}
	}

	log.Debug("engine: job started",
		"kind", job.Kind().Key(),
		"palette", job.Palette().Name(),
		"viewport", vp.String(),
		"maxIter", job.MaxIter(),
		"bands", len(bands),
		"queued", e.pool.QueuedWork())

	err := e.pool.ExecuteAll(tasks)
	defer func() {
		for _, b := range bands {
			e.buffers.Put(b.buf)
		}
	}()

	if err != nil {
		if errors.Is(err, parallel.ErrPoolClosed) {
			return nil, ErrEngineClosed
		}
		var pe *parallel.PanicError
		if errors.As(err, &pe) {
			log.Warn("engine: band panicked", "band", pe.Index, "panic", pe.Value, "stack", string(pe.Stack))
		}
		e.metrics.outcome(outcomeFailed)
		return nil, fmt.Errorf("%w: job %d: %w", ErrRenderFailed, job.ID(), err)
	}

	if cause := context.Cause(ctx); cause != nil {
		log.Debug("engine: job cancelled", "cause", cause, "rows", rows.Load())
		return nil, e.cancelled(job, cause)
	}

	img := NewImage(vp.Width, vp.Height)
	for _, b := range bands {
		copy(img.pix[b.y0*stride:b.y1*stride], b.buf)
	}
	return img, nil
}

// renderRow computes row y of job into dst.
func renderRow(dst []byte, job *Job, y int) {
	vp := job.Viewport()
	kind := job.Kind()
	pal := job.Palette()
	maxIter := job.MaxIter()
	bounded := float64(maxIter)

	_, cy := vp.PixelToPlane(0, float64(y))
	for x := range vp.Width {
		cx, _ := vp.PixelToPlane(float64(x), 0)
		v := kind.ComputePixel(cx, cy, maxIter)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			v = bounded
		}
		c := pal.Color(v, maxIter)
		i := x * bytesPerPixel
		dst[i+0] = c.R
		dst[i+1] = c.G
		dst[i+2] = c.B
	}
}

// Close cancels the running job and stops the workers.
// Submit returns ErrEngineClosed afterwards. Close is safe to call more
// than once.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	if e.cancel != nil {
		e.cancel(ErrEngineClosed)
	}
	e.mu.Unlock()

	e.pool.Close()
}

// progressTracker reports finished rows to a callback, serialized and
// throttled to roughly one call per percent.
type progressTracker struct {
	fn    func(done, total int)
	total int
	step  int

	mu       sync.Mutex
	done     int
	reported int
}

func newProgressTracker(fn func(done, total int), total int) *progressTracker {
	return &progressTracker{fn: fn, total: total, step: max(1, (total+99)/100)}
}

func (p *progressTracker) advance() {
	if p.fn == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if p.done == p.total || p.done-p.reported >= p.step {
		p.reported = p.done
		p.fn(p.done, p.total)
	}
}

// reportFinal sends the completion call for a job that did not render.
func reportFinal(fn func(done, total int), total int) {
	if fn != nil {
		fn(total, total)
	}
}
