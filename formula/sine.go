package formula

import (
	"math"

	"github.com/gogpu/fractal"
)

// sineEscape2 is the squared bailout of the Sine kind.
const sineEscape2 = 50.0

// Sine iterates z = k sin(z) from z = pixel.
type Sine struct{ base }

// NewSine returns a Sine kind with k = 1 + 0.3i.
func NewSine() *Sine {
	re, im := complexParams(ParamCReal, ParamCImag, 1, 0.3)
	return &Sine{base{
		key:    "sine",
		name:   "Sine",
		bounds: fractal.Bounds{XMin: -6, XMax: 6, YMin: -5, YMax: 5},
		params: newParams(re, im),
	}}
}

// ComplexParam returns k.
func (s *Sine) ComplexParam() complex128 {
	return complex(s.at(0), s.at(1))
}

// SetComplexParam sets k, clamping both parts to [-2, 2].
func (s *Sine) SetComplexParam(c complex128) {
	s.set(0, real(c))
	s.set(1, imag(c))
}

// ComputePixel implements fractal.Kind.
func (s *Sine) ComputePixel(x, y float64, maxIter int) float64 {
	kr, ki := s.at(0), s.at(1)
	zr, zi := x, y
	for i := range maxIter {
		// sin(a+bi) = sin a cosh b + i cos a sinh b
		sa, ca := math.Sincos(zr)
		sr, si := sa*math.Cosh(zi), ca*math.Sinh(zi)
		zr, zi = kr*sr-ki*si, kr*si+ki*sr
		r2 := zr*zr + zi*zi
		if degenerate(r2) {
			return float64(maxIter)
		}
		if r2 > sineEscape2 {
			return float64(i)
		}
	}
	return float64(maxIter)
}

// Clone implements fractal.Kind.
func (s *Sine) Clone() fractal.Kind {
	return &Sine{s.cloneBase()}
}
