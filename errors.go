package fractal

import (
	"errors"
	"fmt"
)

// Errors returned by the registries, job construction and the engine.
// Callers should compare with errors.Is; returned errors usually wrap one
// of these with extra context.
var (
	// ErrInvalidViewport is returned for a non-finite, inverted or
	// degenerate rectangle, or for non-positive pixel dimensions.
	ErrInvalidViewport = errors.New("fractal: invalid viewport")

	// ErrUnknownKind is returned when a fractal kind key is not registered.
	ErrUnknownKind = errors.New("fractal: unknown fractal kind")

	// ErrUnknownPalette is returned when a palette key is not registered
	// or a job is built without a palette.
	ErrUnknownPalette = errors.New("fractal: unknown palette")

	// ErrNilKind is returned when a job is built without a fractal kind.
	ErrNilKind = errors.New("fractal: nil fractal kind")

	// ErrInvalidMaxIter is returned when a job's iteration limit is below 1.
	ErrInvalidMaxIter = errors.New("fractal: max iterations must be at least 1")

	// ErrJobCancelled reports that a job stopped before producing an image.
	// It is a normal outcome, not a failure: the caller decides whether to
	// resubmit.
	ErrJobCancelled = errors.New("fractal: job cancelled")

	// ErrJobSuperseded is the cancellation cause used when a newer job
	// replaced an older one.
	ErrJobSuperseded = errors.New("fractal: job superseded by a newer job")

	// ErrRenderFailed reports that a worker failed while computing a chunk.
	ErrRenderFailed = errors.New("fractal: render failed")

	// ErrEngineClosed is returned by Submit after Close.
	ErrEngineClosed = errors.New("fractal: engine closed")
)

// CancelError is returned by Engine.Submit when a job did not complete.
// It matches ErrJobCancelled and, through Unwrap, its cause (for example
// ErrJobSuperseded or context.Canceled).
type CancelError struct {
	JobID uint64
	Cause error
}

func (e *CancelError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("fractal: job %d cancelled", e.JobID)
	}
	return fmt.Sprintf("fractal: job %d cancelled: %v", e.JobID, e.Cause)
}

// Is reports whether target is ErrJobCancelled.
func (e *CancelError) Is(target error) bool {
	return target == ErrJobCancelled
}

// Unwrap returns the cancellation cause.
func (e *CancelError) Unwrap() error {
	return e.Cause
}
