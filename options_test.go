package fractal

import (
	"log/slog"
	"runtime"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// TestDefaultOptions tests the engine defaults.
func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.maxWorkers != runtime.NumCPU() {
		t.Errorf("maxWorkers = %d, want NumCPU %d", o.maxWorkers, runtime.NumCPU())
	}
	if o.minRows != DefaultMinRowsPerChunk {
		t.Errorf("minRows = %d, want %d", o.minRows, DefaultMinRowsPerChunk)
	}
	if o.cacheSize != 0 || o.registerer != nil || o.logger != nil {
		t.Errorf("cache, metrics and logger should be off by default: %+v", o)
	}
}

// TestWithMaxWorkers tests that the worker count is capped by the CPU count
// and that invalid values are ignored.
func TestWithMaxWorkers(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 1},
		{0, runtime.NumCPU()},
		{-3, runtime.NumCPU()},
		{runtime.NumCPU() + 100, runtime.NumCPU()},
	}
	for _, tt := range tests {
		o := defaultOptions()
		WithMaxWorkers(tt.n)(&o)
		if got := o.workers(); got != tt.want {
			t.Errorf("WithMaxWorkers(%d): workers() = %d, want %d", tt.n, got, tt.want)
		}
	}
}

// TestEngineOptions tests that options reach the engine.
func TestEngineOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	l := slog.New(slog.DiscardHandler)

	e := NewEngine(
		WithMaxWorkers(1),
		WithMinRowsPerChunk(0),
		WithMinRowsPerChunk(7),
		WithCache(3),
		WithMetrics(reg),
		WithLogger(l),
	)
	defer e.Close()

	if e.Workers() != 1 {
		t.Errorf("Workers() = %d, want 1", e.Workers())
	}
	if e.opts.minRows != 7 {
		t.Errorf("minRows = %d, want 7", e.opts.minRows)
	}
	if e.cache == nil || e.cache.Capacity() != 3 {
		t.Error("WithCache(3) did not create a cache of capacity 3")
	}
	if e.logger() != l {
		t.Error("WithLogger not applied")
	}

	off := NewEngine(WithCache(-1))
	defer off.Close()
	if off.cache != nil {
		t.Error("WithCache(-1) should disable the cache")
	}
}

// TestWithProgress tests that the submit option installs the callback.
func TestWithProgress(t *testing.T) {
	called := false
	var so submitOptions
	WithProgress(func(int, int) { called = true })(&so)
	if so.progress == nil {
		t.Fatal("WithProgress did not set the callback")
	}
	so.progress(1, 1)
	if !called {
		t.Error("callback not invoked")
	}
}
