package fractal

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"slices"
	"strings"
	"sync/atomic"
)

// jobSeq hands out job IDs. IDs increase across the whole process so that
// jobs built for different engines still order correctly.
var jobSeq atomic.Uint64

// JobConfig holds the inputs of a render job.
type JobConfig struct {
	Kind     Kind
	Palette  Palette
	Viewport Viewport
	MaxIter  int
}

// Job is an immutable render request.
//
// The kind is cloned when the job is built, and so is the palette when it
// implements PaletteCloner. Later edits on the caller's values do not
// affect a job that is already queued or running.
type Job struct {
	id       uint64
	kind     Kind
	palette  Palette
	viewport Viewport
	maxIter  int
}

// NewJob validates cfg and returns a job with a fresh ID.
func NewJob(cfg JobConfig) (*Job, error) {
	if cfg.Kind == nil {
		return nil, ErrNilKind
	}
	if cfg.Palette == nil {
		return nil, fmt.Errorf("%w: nil palette", ErrUnknownPalette)
	}
	if err := cfg.Viewport.Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxIter < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxIter, cfg.MaxIter)
	}

	return &Job{
		id:       jobSeq.Add(1),
		kind:     cfg.Kind.Clone(),
		palette:  clonePalette(cfg.Palette),
		viewport: cfg.Viewport,
		maxIter:  cfg.MaxIter,
	}, nil
}

// ID returns the job's sequence number. A larger ID means a newer job.
func (j *Job) ID() uint64 { return j.id }

// Kind returns the job's private parameter snapshot.
// Callers must not modify it.
func (j *Job) Kind() Kind { return j.kind }

// Palette returns the job's palette.
func (j *Job) Palette() Palette { return j.palette }

// Viewport returns the job's viewport.
func (j *Job) Viewport() Viewport { return j.viewport }

// MaxIter returns the iteration limit.
func (j *Job) MaxIter() int { return j.maxIter }

// Fingerprint returns a hash of everything that determines the rendered
// pixels. Two jobs with equal fingerprints produce the same image.
func (j *Job) Fingerprint() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	writeString := func(s string) {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}

	writeString(j.kind.Key())
	params := j.kind.Params()
	slices.SortFunc(params, func(a, b Param) int {
		return strings.Compare(a.Name, b.Name)
	})
	for _, p := range params {
		writeString(p.Name)
		writeFloat(p.Value)
	}

	writeString(j.palette.Name())
	writeString(paletteKey(j.palette))

	vp := j.viewport
	for _, f := range [...]float64{vp.XMin, vp.XMax, vp.YMin, vp.YMax} {
		writeFloat(f)
	}
	binary.LittleEndian.PutUint64(buf[:], uint64(vp.Width)<<32|uint64(vp.Height))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(j.maxIter))
	_, _ = h.Write(buf[:])

	return h.Sum64()
}

// String implements fmt.Stringer.
func (j *Job) String() string {
	return fmt.Sprintf("job %d %s/%s %v maxIter=%d",
		j.id, j.kind.Key(), j.palette.Name(), j.viewport, j.maxIter)
}
