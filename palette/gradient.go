package palette

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/fractal"
)

// Stop is one color of a gradient at position Pos in [0, 1].
type Stop struct {
	Pos   float64
	Color fractal.RGB
}

// Gradient interpolates between color stops in CIE L*a*b* space, which
// keeps perceived brightness even across the ramp.
type Gradient struct {
	name  string
	stops []gradientStop
}

type gradientStop struct {
	pos float64
	c   colorful.Color
}

// NewGradient builds a gradient palette. Stops must be sorted by position
// and at least two are required.
func NewGradient(name string, stops ...Stop) (*Gradient, error) {
	if len(stops) < 2 {
		return nil, errors.New("palette: gradient needs at least two stops")
	}
	g := &Gradient{name: name, stops: make([]gradientStop, len(stops))}
	for i, s := range stops {
		if math.IsNaN(s.Pos) || s.Pos < 0 || s.Pos > 1 {
			return nil, fmt.Errorf("palette: stop %d position %v outside [0, 1]", i, s.Pos)
		}
		if i > 0 && s.Pos < stops[i-1].Pos {
			return nil, fmt.Errorf("palette: stop %d out of order", i)
		}
		g.stops[i] = gradientStop{pos: s.Pos, c: toColorful(s.Color)}
	}
	return g, nil
}

// NewHexGradient builds a gradient from evenly spaced "#rrggbb" colors.
func NewHexGradient(name string, hexes ...string) (*Gradient, error) {
	if len(hexes) < 2 {
		return nil, errors.New("palette: gradient needs at least two stops")
	}
	stops := make([]Stop, len(hexes))
	for i, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		stops[i] = Stop{Pos: float64(i) / float64(len(hexes)-1), Color: c}
	}
	return NewGradient(name, stops...)
}

// mustHexGradient is NewHexGradient for the built-in gradients.
func mustHexGradient(name string, hexes ...string) *Gradient {
	g, err := NewHexGradient(name, hexes...)
	if err != nil {
		panic(err)
	}
	return g
}

// Name implements fractal.Palette.
func (g *Gradient) Name() string { return g.name }

// PaletteKey implements fractal.PaletteKeyer.
func (g *Gradient) PaletteKey() string {
	var b strings.Builder
	b.WriteString(g.name)
	for _, s := range g.stops {
		fmt.Fprintf(&b, "|%g:%s", s.pos, s.c.Hex())
	}
	return b.String()
}

// Color implements fractal.Palette.
func (g *Gradient) Color(value float64, maxIter int) fractal.RGB {
	t, ok := fraction(value, maxIter)
	if !ok {
		return fractal.Black
	}
	return g.At(t)
}

// At returns the gradient color at position t, clamped to [0, 1].
func (g *Gradient) At(t float64) fractal.RGB {
	first, last := g.stops[0], g.stops[len(g.stops)-1]
	if !(t > first.pos) {
		return fromColorful(first.c)
	}
	if t >= last.pos {
		return fromColorful(last.c)
	}
	for i := 1; i < len(g.stops); i++ {
		a, b := g.stops[i-1], g.stops[i]
		if t <= b.pos {
			span := b.pos - a.pos
			if span <= 0 {
				return fromColorful(b.c)
			}
			return fromColorful(a.c.BlendLab(b.c, (t-a.pos)/span))
		}
	}
	return fromColorful(last.c)
}
