package formula

import (
	"math"

	"github.com/gogpu/fractal"
)

// BurningShip iterates z = (|Re z| + i|Im z|)^2 + c.
type BurningShip struct{ base }

// NewBurningShip returns a Burning Ship kind.
func NewBurningShip() *BurningShip {
	return &BurningShip{base{
		key:    "burning_ship",
		name:   "Burning Ship",
		bounds: fractal.Bounds{XMin: -2.5, XMax: 1.5, YMin: -2, YMax: 1},
		params: newParams(smoothParam()),
	}}
}

// ComputePixel implements fractal.Kind.
func (b *BurningShip) ComputePixel(x, y float64, maxIter int) float64 {
	smooth := b.at(0) != 0
	zr, zi := 0.0, 0.0
	for i := range maxIter {
		ar, ai := math.Abs(zr), math.Abs(zi)
		zr, zi = ar*ar-ai*ai+x, 2*ar*ai+y
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
func (b *BurningShip) Clone() fractal.Kind {
	return &BurningShip{b.cloneBase()}
}

// Tricorn iterates z = conj(z)^2 + c (the Mandelbar set).
type Tricorn struct{ base }

// NewTricorn returns a Tricorn kind.
func NewTricorn() *Tricorn {
	return &Tricorn{base{
		key:    "tricorn",
		name:   "Tricorn",
		bounds: fractal.Bounds{XMin: -2.5, XMax: 1.5, YMin: -1.5, YMax: 1.5},
		params: newParams(smoothParam()),
	}}
}

// ComputePixel implements fractal.Kind.
func (t *Tricorn) ComputePixel(x, y float64, maxIter int) float64 {
	smooth := t.at(0) != 0
	zr, zi := 0.0, 0.0
	for i := range maxIter {
		zr, zi = zr*zr-zi*zi+x, -2*zr*zi+y
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
func (t *Tricorn) Clone() fractal.Kind {
	return &Tricorn{t.cloneBase()}
}

// Celtic iterates z = |Re(z^2)| + i Im(z^2) + c.
type Celtic struct{ base }

// NewCeltic returns a Celtic kind.
func NewCeltic() *Celtic {
	return &Celtic{base{
		key:    "celtic",
		name:   "Celtic",
		bounds: fractal.Bounds{XMin: -3, XMax: 3, YMin: -2, YMax: 2},
		params: newParams(smoothParam()),
	}}
}

// ComputePixel implements fractal.Kind.
func (c *Celtic) ComputePixel(x, y float64, maxIter int) float64 {
	smooth := c.at(0) != 0
	zr, zi := 0.0, 0.0
	for i := range maxIter {
		zr, zi = math.Abs(zr*zr-zi*zi)+x, 2*zr*zi+y
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
func (c *Celtic) Clone() fractal.Kind {
	return &Celtic{c.cloneBase()}
}

// Perpendicular iterates z = (Re z + i|Im z|)^2 + c.
type Perpendicular struct{ base }

// NewPerpendicular returns a Perpendicular Mandelbrot kind.
func NewPerpendicular() *Perpendicular {
	return &Perpendicular{base{
		key:    "perpendicular",
		name:   "Perpendicular",
		bounds: fractal.Bounds{XMin: -3, XMax: 2, YMin: -2, YMax: 2},
		params: newParams(smoothParam()),
	}}
}

// ComputePixel implements fractal.Kind.
func (p *Perpendicular) ComputePixel(x, y float64, maxIter int) float64 {
	smooth := p.at(0) != 0
	zr, zi := 0.0, 0.0
	for i := range maxIter {
		ai := math.Abs(zi)
		zr, zi = zr*zr-ai*ai+x, 2*zr*ai+y
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
func (p *Perpendicular) Clone() fractal.Kind {
	return &Perpendicular{p.cloneBase()}
}

// Phoenix iterates z' = z^2 + c + p*z_prev from z = z_prev = 0.
type Phoenix struct{ base }

// NewPhoenix returns a Phoenix kind with p = 0.5667.
func NewPhoenix() *Phoenix {
	re, im := complexParams(ParamPReal, ParamPImag, 0.5667, 0)
	return &Phoenix{base{
		key:    "phoenix",
		name:   "Phoenix",
		bounds: fractal.Bounds{XMin: -2.5, XMax: 1.5, YMin: -1.5, YMax: 1.5},
		params: newParams(re, im),
	}}
}

// ComplexParam returns p.
func (f *Phoenix) ComplexParam() complex128 {
	return complex(f.at(0), f.at(1))
}

// SetComplexParam sets p, clamping both parts to [-2, 2].
func (f *Phoenix) SetComplexParam(c complex128) {
	f.set(0, real(c))
	f.set(1, imag(c))
}

// ComputePixel implements fractal.Kind.
func (f *Phoenix) ComputePixel(x, y float64, maxIter int) float64 {
	pr, pi := f.at(0), f.at(1)
	zr, zi := 0.0, 0.0
	qr, qi := 0.0, 0.0
	for i := range maxIter {
		nr := zr*zr - zi*zi + x + pr*qr - pi*qi
		ni := 2*zr*zi + y + pr*qi + pi*qr
		qr, qi = zr, zi
		zr, zi = nr, ni
		r2 := zr*zr + zi*zi
		if degenerate(r2) {
			return float64(maxIter)
		}
		if r2 > escapeRadius2 {
			return float64(i)
		}
	}
	return float64(maxIter)
}

// Clone implements fractal.Kind.
func (f *Phoenix) Clone() fractal.Kind {
	return &Phoenix{f.cloneBase()}
}

// Spider iterates z = z^2 + c followed by c = c/2 + z.
type Spider struct{ base }

// NewSpider returns a Spider kind.
func NewSpider() *Spider {
	return &Spider{base{
		key:    "spider",
		name:   "Spider",
		bounds: fractal.Bounds{XMin: -2.5, XMax: 1.5, YMin: -2, YMax: 2},
		params: newParams(),
	}}
}

// ComputePixel implements fractal.Kind.
func (s *Spider) ComputePixel(x, y float64, maxIter int) float64 {
	cr, ci := x, y
	zr, zi := 0.0, 0.0
	for i := range maxIter {
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		cr, ci = cr/2+zr, ci/2+zi
		r2 := zr*zr + zi*zi
		if degenerate(r2) {
			return float64(maxIter)
		}
		if r2 > escapeRadius2 {
			return float64(i)
		}
	}
	return float64(maxIter)
}

// Clone implements fractal.Kind.
func (s *Spider) Clone() fractal.Kind {
	return &Spider{s.cloneBase()}
}

// Buffalo iterates z = |Re(z^2)| - i|Im(z^2)| + c.
type Buffalo struct{ base }

// NewBuffalo returns a Buffalo kind.
func NewBuffalo() *Buffalo {
	return &Buffalo{base{
		key:    "buffalo",
		name:   "Buffalo",
		bounds: fractal.Bounds{XMin: -2.5, XMax: 1.5, YMin: -2, YMax: 2},
		params: newParams(smoothParam()),
	}}
}

// ComputePixel implements fractal.Kind.
func (b *Buffalo) ComputePixel(x, y float64, maxIter int) float64 {
	smooth := b.at(0) != 0
	zr, zi := 0.0, 0.0
	for i := range maxIter {
		zr, zi = math.Abs(zr*zr-zi*zi)+x, -math.Abs(2*zr*zi)+y
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
func (b *Buffalo) Clone() fractal.Kind {
	return &Buffalo{b.cloneBase()}
}

// Lambda iterates the logistic map z = c z (1 - z) from the critical
// point z = 1/2.
type Lambda struct{ base }

// NewLambda returns a Lambda kind.
func NewLambda() *Lambda {
	return &Lambda{base{
		key:    "lambda",
		name:   "Lambda",
		bounds: fractal.Bounds{XMin: -2, XMax: 4, YMin: -2, YMax: 2},
		params: newParams(smoothParam()),
	}}
}

// ComputePixel implements fractal.Kind.
func (l *Lambda) ComputePixel(x, y float64, maxIter int) float64 {
	smooth := l.at(0) != 0
	zr, zi := 0.5, 0.0
	for i := range maxIter {
		// w = z (1 - z)
		wr := zr*(1-zr) + zi*zi
		wi := zi * (1 - 2*zr)
		zr, zi = x*wr-y*wi, x*wi+y*wr
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
func (l *Lambda) Clone() fractal.Kind {
	return &Lambda{l.cloneBase()}
}

// CubicJulia iterates z = z^3 + k from z = pixel.
type CubicJulia struct{ base }

// NewCubicJulia returns a cubic Julia kind with k = 0.4.
func NewCubicJulia() *CubicJulia {
	re, im := complexParams(ParamCReal, ParamCImag, 0.4, 0)
	return &CubicJulia{base{
		key:    "cubic_julia",
		name:   "Cubic Julia",
		bounds: fractal.Bounds{XMin: -1.5, XMax: 1.5, YMin: -1.5, YMax: 1.5},
		params: newParams(re, im, smoothParam()),
	}}
}

// ComplexParam returns k.
func (j *CubicJulia) ComplexParam() complex128 {
	return complex(j.at(0), j.at(1))
}

// SetComplexParam sets k, clamping both parts to [-2, 2].
func (j *CubicJulia) SetComplexParam(c complex128) {
	j.set(0, real(c))
	j.set(1, imag(c))
}

// ComputePixel implements fractal.Kind.
func (j *CubicJulia) ComputePixel(x, y float64, maxIter int) float64 {
	kr, ki := j.at(0), j.at(1)
	smooth := j.at(2) != 0
	zr, zi := x, y
	for i := range maxIter {
		zr, zi = cpow(zr, zi, 3)
		zr += kr
		zi += ki
		r2 := zr*zr + zi*zi
		if degenerate(r2) {
			return float64(maxIter)
		}
		if r2 > escapeRadius2 {
			return escaped(i, r2, 3, smooth, maxIter)
		}
	}
	return float64(maxIter)
}

// Clone implements fractal.Kind.
func (j *CubicJulia) Clone() fractal.Kind {
	return &CubicJulia{j.cloneBase()}
}

// Feather iterates z = z^2 + z/c from z = c.
// Pixels within 1e-10 of the origin are reported bounded.
type Feather struct{ base }

// NewFeather returns a Feather kind.
func NewFeather() *Feather {
	return &Feather{base{
		key:    "feather",
		name:   "Feather",
		bounds: fractal.Bounds{XMin: -2.5, XMax: 2.5, YMin: -2.5, YMax: 2.5},
		params: newParams(),
	}}
}

// ComputePixel implements fractal.Kind.
func (f *Feather) ComputePixel(x, y float64, maxIter int) float64 {
	cc := x*x + y*y
	if cc < 1e-20 {
		return float64(maxIter)
	}
	// 1/c
	ir, ii := x/cc, -y/cc
	zr, zi := x, y
	for i := range maxIter {
		qr, qi := zr*ir-zi*ii, zr*ii+zi*ir
		zr, zi = zr*zr-zi*zi+qr, 2*zr*zi+qi
		r2 := zr*zr + zi*zi
		if degenerate(r2) {
			return float64(maxIter)
		}
		if r2 > escapeRadius2 {
			return float64(i)
		}
	}
	return float64(maxIter)
}

// Clone implements fractal.Kind.
func (f *Feather) Clone() fractal.Kind {
	return &Feather{f.cloneBase()}
}
