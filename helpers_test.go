package fractal

import (
	"math"
	"testing"
)

// rampKind is a cheap deterministic kind for engine tests. Its value grows
// with the distance from the origin, scaled by its "scale" parameter.
type rampKind struct {
	scale float64
}

func (k *rampKind) Key() string  { return "ramp" }
func (k *rampKind) Name() string { return "Ramp" }

func (k *rampKind) DefaultBounds() Bounds {
	return Bounds{XMin: -2, XMax: 2, YMin: -1.5, YMax: 1.5}
}

func (k *rampKind) param() Param {
	return Param{Name: "scale", Value: k.scaleValue(), Default: 1, Min: 0.5, Max: 8}
}

func (k *rampKind) scaleValue() float64 {
	if k.scale == 0 {
		return 1
	}
	return k.scale
}

func (k *rampKind) Params() []Param { return []Param{k.param()} }

func (k *rampKind) Param(name string) (float64, bool) {
	if name != "scale" {
		return 0, false
	}
	return k.scaleValue(), true
}

func (k *rampKind) SetParam(name string, value float64) {
	if name == "scale" && !math.IsNaN(value) {
		k.scale = k.param().Clamp(value)
	}
}

func (k *rampKind) ComputePixel(x, y float64, maxIter int) float64 {
	return math.Min(math.Hypot(x, y)*k.scaleValue()*10, float64(maxIter))
}

func (k *rampKind) Clone() Kind {
	c := *k
	return &c
}

// rawKind returns a fixed value for every pixel.
type rawKind struct {
	rampKind
	value float64
}

func (k *rawKind) Key() string                              { return "raw" }
func (k *rawKind) ComputePixel(_, _ float64, _ int) float64 { return k.value }

func (k *rawKind) Clone() Kind {
	c := *k
	return &c
}

// panicKind panics on a chosen row.
type panicKind struct {
	rampKind
	row float64
}

func (k *panicKind) Key() string { return "panic" }

func (k *panicKind) ComputePixel(x, y float64, maxIter int) float64 {
	if y == k.row {
		panic("boom")
	}
	return k.rampKind.ComputePixel(x, y, maxIter)
}

func (k *panicKind) Clone() Kind {
	c := *k
	return &c
}

// grayPalette maps the escape fraction to a gray level.
type grayPalette struct{}

func (grayPalette) Name() string { return "gray" }

func (grayPalette) Color(value float64, maxIter int) RGB {
	if !(value < float64(maxIter)) {
		return Black
	}
	v := uint8(math.Max(0, value) / float64(maxIter) * 255)
	return RGB{R: v, G: v, B: v}
}

func mustViewport(t testing.TB, b Bounds, w, h int) Viewport {
	t.Helper()
	vp, err := NewViewport(b, w, h)
	if err != nil {
		t.Fatalf("NewViewport(%v, %d, %d) error = %v", b, w, h, err)
	}
	return vp
}

func mustJob(t testing.TB, k Kind, p Palette, w, h, maxIter int) *Job {
	t.Helper()
	job, err := NewJob(JobConfig{
		Kind:     k,
		Palette:  p,
		Viewport: mustViewport(t, k.DefaultBounds(), w, h),
		MaxIter:  maxIter,
	})
	if err != nil {
		t.Fatalf("NewJob error = %v", err)
	}
	return job
}

// tintPalette paints every escaped point one gray level chosen by its
// exported field.
type tintPalette struct {
	Level uint8
}

func (p *tintPalette) Name() string { return "tint" }

func (p *tintPalette) Color(value float64, maxIter int) RGB {
	if !(value < float64(maxIter)) {
		return Black
	}
	return RGB{R: p.Level, G: p.Level, B: p.Level}
}

func (p *tintPalette) ClonePalette() Palette {
	c := *p
	return &c
}
