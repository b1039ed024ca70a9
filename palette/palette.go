package palette

import (
	"fmt"
	"math"

	"github.com/gogpu/fractal"
)

// Func is a palette defined by a function of the escape fraction t in
// [0, 1). Bounded points and NaN are painted black before fn is called.
type Func struct {
	name string
	fn   func(t float64) fractal.RGB
}

// NewFunc returns a palette that colors escaped points with fn.
func NewFunc(name string, fn func(t float64) fractal.RGB) *Func {
	return &Func{name: name, fn: fn}
}

// Name implements fractal.Palette.
func (p *Func) Name() string { return p.name }

// Color implements fractal.Palette.
func (p *Func) Color(value float64, maxIter int) fractal.RGB {
	t, ok := fraction(value, maxIter)
	if !ok {
		return fractal.Black
	}
	return p.fn(t)
}

// PaletteKey implements fractal.PaletteKeyer. Two Func palettes share a key
// only when they share the name and the function.
func (p *Func) PaletteKey() string {
	return fmt.Sprintf("%s@%p", p.name, p.fn)
}

// Smooth cycles once around the hue wheel over the iteration range.
type Smooth struct {
	// Hue is added to the escape fraction before conversion.
	Hue        float64
	Saturation float64
	Value      float64
}

// NewSmooth returns the default smooth palette.
func NewSmooth() *Smooth {
	return &Smooth{Hue: 0, Saturation: 0.8, Value: 0.9}
}

// Name implements fractal.Palette.
func (p *Smooth) Name() string { return "Smooth" }

// ClonePalette implements fractal.PaletteCloner.
func (p *Smooth) ClonePalette() fractal.Palette {
	c := *p
	return &c
}

// Color implements fractal.Palette.
func (p *Smooth) Color(value float64, maxIter int) fractal.RGB {
	t, ok := fraction(value, maxIter)
	if !ok {
		return fractal.Black
	}
	return HSV(p.Hue+t, p.Saturation, p.Value)
}

// Banded quantizes the hue wheel into a fixed number of bands.
type Banded struct {
	Bands      int
	Saturation float64
	Value      float64
}

// NewBanded returns a banded palette with 16 bands.
func NewBanded() *Banded {
	return &Banded{Bands: 16, Saturation: 0.8, Value: 0.9}
}

// Name implements fractal.Palette.
func (p *Banded) Name() string { return "Banded" }

// ClonePalette implements fractal.PaletteCloner.
func (p *Banded) ClonePalette() fractal.Palette {
	c := *p
	return &c
}

// Color implements fractal.Palette.
func (p *Banded) Color(value float64, maxIter int) fractal.RGB {
	t, ok := fraction(value, maxIter)
	if !ok {
		return fractal.Black
	}
	bands := max(p.Bands, 1)
	band := int(t*float64(bands)) % bands
	return HSV(float64(band)/float64(bands), p.Saturation, p.Value)
}

// Grayscale ramps from black to white.
type Grayscale struct {
	Invert bool
}

// Name implements fractal.Palette.
func (p *Grayscale) Name() string { return "Grayscale" }

// ClonePalette implements fractal.PaletteCloner.
func (p *Grayscale) ClonePalette() fractal.Palette {
	c := *p
	return &c
}

// Color implements fractal.Palette.
func (p *Grayscale) Color(value float64, maxIter int) fractal.RGB {
	t, ok := fraction(value, maxIter)
	if !ok {
		return fractal.Black
	}
	v := channel(t)
	if p.Invert {
		v = 255 - v
	}
	return fractal.RGB{R: v, G: v, B: v}
}

// Rainbow sweeps the full spectrum at configurable saturation and value.
type Rainbow struct {
	Saturation float64
	Value      float64
}

// NewRainbow returns a fully saturated rainbow palette.
func NewRainbow() *Rainbow {
	return &Rainbow{Saturation: 1, Value: 1}
}

// Name implements fractal.Palette.
func (p *Rainbow) Name() string { return "Rainbow" }

// ClonePalette implements fractal.PaletteCloner.
func (p *Rainbow) ClonePalette() fractal.Palette {
	c := *p
	return &c
}

// Color implements fractal.Palette.
func (p *Rainbow) Color(value float64, maxIter int) fractal.RGB {
	t, ok := fraction(value, maxIter)
	if !ok {
		return fractal.Black
	}
	return HSV(t, p.Saturation, p.Value)
}

// Formula palettes.

func fire(t float64) fractal.RGB {
	return fractal.RGB{
		R: channel(t * 2),
		G: channel((t - 0.5) * 2),
		B: channel((t - 0.75) * 4),
	}
}

func ocean(t float64) fractal.RGB {
	return fractal.RGB{
		R: channel((t - 0.5) * 2),
		G: channel(t * 1.5),
		B: channel(0.3 + 0.7*t),
	}
}

func electric(t float64) fractal.RGB {
	return fractal.RGB{
		R: channel(t * 0.2),
		G: channel(0.5 + t*0.5),
		B: channel(0.8 + t*0.2),
	}
}

// neon alternates pink and green in eight stripes.
func neon(t float64) fractal.RGB {
	if int(t*8)%2 == 0 {
		return fractal.RGB{R: channel(0.5 + 0.5*t), G: channel(0.2), B: channel(0.8 + 0.2*t)}
	}
	return fractal.RGB{R: channel(0.2), G: channel(0.8 + 0.2*t), B: channel(0.3)}
}

// classic is the blue-white-orange polynomial ramp.
func classic(t float64) fractal.RGB {
	u := 1 - t
	return fractal.RGB{
		R: byteChannel(9 * u * t * t * t * 255),
		G: byteChannel(15 * u * u * t * t * 255),
		B: byteChannel(8.5 * u * u * u * t * 255),
	}
}

// pastel runs three phase-shifted sines around a light gray.
func pastel(t float64) fractal.RGB {
	a := t * 2 * math.Pi
	return fractal.RGB{
		R: byteChannel(180 + 75*math.Sin(a)),
		G: byteChannel(180 + 75*math.Sin(a+2*math.Pi/3)),
		B: byteChannel(180 + 75*math.Sin(a+4*math.Pi/3)),
	}
}
