package fractal

import (
	"log/slog"
	"sync/atomic"
)

// silent drops every record. Its handler reports every level disabled, so
// engines skip building log attributes altogether.
var silent = slog.New(slog.DiscardHandler)

// pkgLogger backs Logger and SetLogger. It is swapped atomically because
// renders read it from worker goroutines.
var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(silent)
}

// SetLogger sets the logger used by engines that were built without
// WithLogger. Nil restores the default, which discards everything.
//
// Levels:
//   - [slog.LevelDebug]: job accepted, started, finished, cancelled, cache hits
//   - [slog.LevelWarn]: a band panicked and its job failed
//
// Example:
//
//	fractal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	pkgLogger.Store(l)
}

// Logger returns the package-wide logger. It is never nil.
func Logger() *slog.Logger {
	return pkgLogger.Load()
}
