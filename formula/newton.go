package formula

import (
	"math"

	"github.com/gogpu/fractal"
)

// maxRootIterations bounds the iterations of root-convergence kinds,
// which either converge quickly or not at all.
const maxRootIterations = 64

// rootValue encodes convergence to root index k (of n roots) after i of
// bound iterations. Every root owns the band [k*w, (k+1)*w) with
// w = maxIter/n, so converged values are always below maxIter.
func rootValue(k, n, i, bound, maxIter int) float64 {
	w := float64(maxIter) / float64(n)
	return float64(k)*w + w*float64(i)/float64(bound)
}

// nearestRoot returns the index of the n-th root of unity closest to z.
func nearestRoot(zr, zi float64, n int) int {
	a := math.Atan2(zi, zr)
	k := int(math.Round(a * float64(n) / (2 * math.Pi)))
	return ((k % n) + n) % n
}

// rootOfUnity returns e^(2 pi i k / n).
func rootOfUnity(k, n int) (float64, float64) {
	s, c := math.Sincos(2 * math.Pi * float64(k) / float64(n))
	return c, s
}

// Newton applies Newton's method to z^n - 1 starting at the pixel.
// The result identifies the root that was reached; points that do not
// converge within the iteration bound return maxIter.
type Newton struct{ base }

// NewNewton returns a Newton kind for z^3 - 1.
func NewNewton() *Newton {
	return &Newton{base{
		key:    "newton",
		name:   "Newton",
		bounds: fractal.Bounds{XMin: -2, XMax: 2, YMin: -2, YMax: 2},
		params: newParams(
			fractal.Param{Name: ParamPower, Default: 3, Min: 3, Max: 8, Integer: true},
			toleranceParam(),
		),
	}}
}

// Power returns the polynomial degree n.
func (nw *Newton) Power() int { return int(nw.at(0)) }

// SetPower sets the degree, clamped to [3, 8].
func (nw *Newton) SetPower(n int) { nw.set(0, float64(n)) }

// ComputePixel implements fractal.Kind.
func (nw *Newton) ComputePixel(x, y float64, maxIter int) float64 {
	n := nw.Power()
	tol2 := nw.at(1) * nw.at(1)
	bound := min(maxIter, maxRootIterations)

	zr, zi := x, y
	for i := range bound {
		k := nearestRoot(zr, zi, n)
		rr, ri := rootOfUnity(k, n)
		if dr, di := zr-rr, zi-ri; dr*dr+di*di < tol2 {
			return rootValue(k, n, i, bound, maxIter)
		}

		// z -= (z^n - 1) / (n z^(n-1))
		pr, pi := cpow(zr, zi, n-1)
		fr, fi := pr*zr-pi*zi-1, pr*zi+pi*zr
		dr, di := float64(n)*pr, float64(n)*pi
		den := dr*dr + di*di
		if den < 1e-24 || degenerate(den) {
			return float64(maxIter)
		}
		zr -= (fr*dr + fi*di) / den
		zi -= (fi*dr - fr*di) / den
	}
	return float64(maxIter)
}

// Clone implements fractal.Kind.
func (nw *Newton) Clone() fractal.Kind {
	return &Newton{nw.cloneBase()}
}

// Nova iterates z = z - R (z^3 - 1) / (3 z^2) + c from z = 1, with c the
// pixel and R the relaxation factor. Converging orbits are colored by the
// cube root of unity sector they settle in; everything else returns maxIter.
type Nova struct{ base }

// novaDivergence is the squared modulus treated as divergence.
const novaDivergence = 1e4

// NewNova returns a Nova kind with R = 1.
func NewNova() *Nova {
	return &Nova{base{
		key:    "nova",
		name:   "Nova",
		bounds: fractal.Bounds{XMin: -3, XMax: 3, YMin: -3, YMax: 3},
		params: newParams(
			fractal.Param{Name: ParamRelaxation, Default: 1, Min: 0.1, Max: 2},
			toleranceParam(),
		),
	}}
}

// ComputePixel implements fractal.Kind.
func (nv *Nova) ComputePixel(x, y float64, maxIter int) float64 {
	relax := nv.at(0)
	tol2 := nv.at(1) * nv.at(1)
	bound := min(maxIter, maxRootIterations)

	zr, zi := 1.0, 0.0
	for i := range bound {
		z2r, z2i := zr*zr-zi*zi, 2*zr*zi
		den := 9 * (z2r*z2r + z2i*z2i)
		if den < 1e-24 {
			return float64(maxIter)
		}
		fr, fi := z2r*zr-z2i*zi-1, z2r*zi+z2i*zr
		// (f / 3z^2) = f * conj(3z^2) / |3z^2|^2
		qr := (fr*3*z2r + fi*3*z2i) / den
		qi := (fi*3*z2r - fr*3*z2i) / den
		sr, si := -relax*qr+x, -relax*qi+y

		zr += sr
		zi += si
		r2 := zr*zr + zi*zi
		if degenerate(r2) || r2 > novaDivergence {
			return float64(maxIter)
		}
		if sr*sr+si*si < tol2 {
			return rootValue(nearestRoot(zr, zi, 3), 3, i, bound, maxIter)
		}
	}
	return float64(maxIter)
}

// Clone implements fractal.Kind.
func (nv *Nova) Clone() fractal.Kind {
	return &Nova{nv.cloneBase()}
}

// Biomorph runs Newton's method on z^3 - 1 from the pixel with a bailout
// radius. Orbits that leave the radius return their escape index like an
// escape-time kind. Orbits that reach a root after i steps return
// maxIter-1-i, so fast convergence reads bright and slow convergence dark.
// A vanishing derivative or an undecided orbit returns maxIter.
type Biomorph struct{ base }

// NewBiomorph returns a Biomorph kind with escape radius 16.
func NewBiomorph() *Biomorph {
	return &Biomorph{base{
		key:    "biomorph",
		name:   "Biomorph",
		bounds: fractal.Bounds{XMin: -2, XMax: 2, YMin: -2, YMax: 2},
		params: newParams(
			fractal.Param{Name: ParamEscape, Default: 16, Min: 4, Max: 64},
			fractal.Param{Name: ParamTolerance, Default: 1e-3, Min: 1e-4, Max: 0.1},
		),
	}}
}

// ComputePixel implements fractal.Kind.
func (b *Biomorph) ComputePixel(x, y float64, maxIter int) float64 {
	esc2 := b.at(0) * b.at(0)
	tol2 := b.at(1) * b.at(1)

	zr, zi := x, y
	for i := range maxIter {
		rr, ri := rootOfUnity(nearestRoot(zr, zi, 3), 3)
		if dr, di := zr-rr, zi-ri; dr*dr+di*di < tol2 {
			return float64(max(maxIter-1-i, 0))
		}
		r2 := zr*zr + zi*zi
		if degenerate(r2) {
			return float64(maxIter)
		}
		if r2 > esc2 {
			return float64(i)
		}

		// z -= (z^3 - 1) / (3 z^2)
		z2r, z2i := zr*zr-zi*zi, 2*zr*zi
		fr, fi := z2r*zr-z2i*zi-1, z2r*zi+z2i*zr
		dr, di := 3*z2r, 3*z2i
		den := dr*dr + di*di
		if den < 1e-20 {
			return float64(maxIter)
		}
		zr -= (fr*dr + fi*di) / den
		zi -= (fi*dr - fr*di) / den
	}
	return float64(maxIter)
}

// Clone implements fractal.Kind.
func (b *Biomorph) Clone() fractal.Kind {
	return &Biomorph{b.cloneBase()}
}
