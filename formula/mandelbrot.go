package formula

import (
	"github.com/gogpu/fractal"
)

// base carries the identity and parameters shared by all kinds.
type base struct {
	params
	key    string
	name   string
	bounds fractal.Bounds
}

// Key implements fractal.Kind.
func (b *base) Key() string { return b.key }

// Name implements fractal.Kind.
func (b *base) Name() string { return b.name }

// DefaultBounds implements fractal.Kind.
func (b *base) DefaultBounds() fractal.Bounds { return b.bounds }

func (b *base) cloneBase() base {
	c := *b
	c.params = b.params.clone()
	return c
}

// Mandelbrot iterates z = z^2 + c from z = 0, with c the pixel.
type Mandelbrot struct{ base }

// NewMandelbrot returns a Mandelbrot kind with default parameters.
func NewMandelbrot() *Mandelbrot {
	return &Mandelbrot{base{
		key:    "mandelbrot",
		name:   "Mandelbrot Set",
		bounds: fractal.Bounds{XMin: -2.5, XMax: 1.0, YMin: -1.25, YMax: 1.25},
		params: newParams(smoothParam()),
	}}
}

// ComputePixel implements fractal.Kind.
func (m *Mandelbrot) ComputePixel(x, y float64, maxIter int) float64 {
	smooth := m.at(0) != 0
	zr, zi := 0.0, 0.0
	for i := range maxIter {
		zr, zi = zr*zr-zi*zi+x, 2*zr*zi+y
		r2 := zr*zr + zi*zi
		if degenerate(r2) {
			return float64(maxIter)
		}
		if r2 > escapeRadius2 {
			return escaped(i, r2, 2, smooth, maxIter)
		}
	}
	return float64(maxIter)
}

// Clone implements fractal.Kind.
func (m *Mandelbrot) Clone() fractal.Kind {
	return &Mandelbrot{m.cloneBase()}
}

// Julia iterates z = z^2 + k from z = pixel, with k a fixed constant.
type Julia struct{ base }

// NewJulia returns a Julia kind with k = -0.7 + 0.27015i.
func NewJulia() *Julia {
	re, im := complexParams(ParamCReal, ParamCImag, -0.7, 0.27015)
	return &Julia{base{
		key:    "julia",
		name:   "Julia Set",
		bounds: fractal.Bounds{XMin: -2, XMax: 2, YMin: -2, YMax: 2},
		params: newParams(re, im, smoothParam()),
	}}
}

// ComplexParam returns k.
func (j *Julia) ComplexParam() complex128 {
	return complex(j.at(0), j.at(1))
}

// SetComplexParam sets k, clamping both parts to [-2, 2].
func (j *Julia) SetComplexParam(c complex128) {
	j.set(0, real(c))
	j.set(1, imag(c))
}

// ComputePixel implements fractal.Kind.
func (j *Julia) ComputePixel(x, y float64, maxIter int) float64 {
	kr, ki := j.at(0), j.at(1)
	smooth := j.at(2) != 0
	zr, zi := x, y
	for i := range maxIter {
		zr, zi = zr*zr-zi*zi+kr, 2*zr*zi+ki
		r2 := zr*zr + zi*zi
		if degenerate(r2) {
			return float64(maxIter)
		}
		if r2 > escapeRadius2 {
			return escaped(i, r2, 2, smooth, maxIter)
		}
	}
	return float64(maxIter)
}

// Clone implements fractal.Kind.
func (j *Julia) Clone() fractal.Kind {
	return &Julia{j.cloneBase()}
}

// Multibrot iterates z = z^n + c from z = 0.
type Multibrot struct{ base }

// NewMultibrot returns a Multibrot kind with n = 3.
func NewMultibrot() *Multibrot {
	return &Multibrot{base{
		key:    "multibrot",
		name:   "Multibrot Set",
		bounds: fractal.Bounds{XMin: -2.5, XMax: 2.5, YMin: -2.5, YMax: 2.5},
		params: newParams(
			fractal.Param{Name: ParamPower, Default: 3, Min: 2, Max: 10, Integer: true},
			smoothParam(),
		),
	}}
}

// Power returns the exponent n.
func (m *Multibrot) Power() int { return int(m.at(0)) }

// SetPower sets the exponent, clamped to [2, 10].
func (m *Multibrot) SetPower(n int) { m.set(0, float64(n)) }

// ComputePixel implements fractal.Kind.
func (m *Multibrot) ComputePixel(x, y float64, maxIter int) float64 {
	n := m.Power()
	smooth := m.at(1) != 0
	zr, zi := 0.0, 0.0
	for i := range maxIter {
		zr, zi = cpow(zr, zi, n)
		zr += x
		zi += y
		r2 := zr*zr + zi*zi
		if degenerate(r2) {
			return float64(maxIter)
		}
		if r2 > escapeRadius2 {
			return escaped(i, r2, float64(n), smooth, maxIter)
		}
	}
	return float64(maxIter)
}

// Clone implements fractal.Kind.
func (m *Multibrot) Clone() fractal.Kind {
	return &Multibrot{m.cloneBase()}
}
