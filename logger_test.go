package fractal

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogger_DefaultDiscards(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(debugLogger(&bytes.Buffer{}))
	SetLogger(nil)

	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) left an enabled logger")
	}
}

func TestEngine_FallsBackToPackageLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(debugLogger(&buf))

	e := NewEngine(WithMaxWorkers(1))
	defer e.Close()

	if _, err := e.Submit(context.Background(), mustJob(t, &rampKind{}, grayPalette{}, 4, 4, 10)); err != nil {
		t.Fatalf("Submit error = %v", err)
	}
	if !strings.Contains(buf.String(), "engine: job finished") {
		t.Errorf("package logger output = %q, want the job lifecycle", buf.String())
	}
}

func TestEngine_WithLoggerOverridesPackageLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var pkg, own bytes.Buffer
	SetLogger(debugLogger(&pkg))

	e := NewEngine(WithMaxWorkers(2), WithLogger(debugLogger(&own)))
	defer e.Close()

	job := mustJob(t, &rampKind{}, grayPalette{}, 16, 8, 10)
	if _, err := e.Submit(context.Background(), job); err != nil {
		t.Fatalf("Submit error = %v", err)
	}
	for _, msg := range []string{"engine: job started", "engine: job finished"} {
		if !strings.Contains(own.String(), msg) {
			t.Errorf("engine log missing %q:\n%s", msg, own.String())
		}
	}
	if pkg.Len() != 0 {
		t.Errorf("package logger got output from an engine with its own logger:\n%s", pkg.String())
	}
}

func TestEngine_LogsBandPanic(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(WithMaxWorkers(2), WithMinRowsPerChunk(1), WithLogger(debugLogger(&buf)))
	defer e.Close()

	k := &panicKind{}
	_, k.row = mustViewport(t, k.DefaultBounds(), 4, 4).PixelToPlane(0, 1)
	if _, err := e.Submit(context.Background(), mustJob(t, k, grayPalette{}, 4, 4, 10)); err == nil {
		t.Fatal("Submit error = nil, want a render failure")
	}
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "engine: band panicked") {
		t.Errorf("log output missing the band panic warning:\n%s", buf.String())
	}
}
