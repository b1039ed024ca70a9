package formula

import "math"

// escapeRadius2 is the squared bailout radius of all escape-time kinds.
const escapeRadius2 = 4.0

// degenerate reports whether r2 can no longer be trusted.
func degenerate(r2 float64) bool {
	return math.IsNaN(r2) || math.IsInf(r2, 0)
}

// escaped turns the iteration index i at which |z|^2 = r2 first exceeded
// the bailout radius into the kind's result.
//
// Without smoothing the result is i itself. With smoothing the fractional
// escape count i + 1 - log(log|z|)/log(degree) is returned, clamped to
// [0, maxIter) so that an escaped point never reads as bounded.
func escaped(i int, r2, degree float64, smooth bool, maxIter int) float64 {
	if !smooth {
		return float64(i)
	}
	logMod := math.Max(0.5*math.Log(r2), math.SmallestNonzeroFloat64)
	v := float64(i) + 1 - math.Log(logMod)/math.Log(degree)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return float64(i)
	}
	return math.Max(0, math.Min(v, math.Nextafter(float64(maxIter), 0)))
}

// cpow returns (zr + i zi)^n for n >= 1 by repeated squaring.
func cpow(zr, zi float64, n int) (float64, float64) {
	rr, ri := 1.0, 0.0
	for n > 0 {
		if n&1 == 1 {
			rr, ri = rr*zr-ri*zi, rr*zi+ri*zr
		}
		zr, zi = zr*zr-zi*zi, 2*zr*zi
		n >>= 1
	}
	return rr, ri
}
