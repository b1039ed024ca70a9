package formula

import (
	"math"

	"github.com/gogpu/fractal"
)

// Trap shapes for OrbitTrap, selected with the "trap" parameter.
const (
	TrapPoint  = 0
	TrapCross  = 1
	TrapCircle = 2
	TrapXAxis  = 3
	TrapYAxis  = 4
)

// OrbitTrap iterates the Mandelbrot map and colors each point by how close
// its orbit came to a trap shape. Closer orbits yield larger values; an
// orbit that touches the trap returns maxIter.
type OrbitTrap struct{ base }

// NewOrbitTrap returns an orbit trap kind using the cross trap.
func NewOrbitTrap() *OrbitTrap {
	return &OrbitTrap{base{
		key:    "orbit_trap",
		name:   "Mandelbrot Orbit Trap",
		bounds: fractal.Bounds{XMin: -2.5, XMax: 1.0, YMin: -1.25, YMax: 1.25},
		params: newParams(
			fractal.Param{Name: ParamTrap, Default: TrapCross, Min: TrapPoint, Max: TrapYAxis, Integer: true},
			fractal.Param{Name: ParamTrapSize, Default: 0.5, Min: 0.1, Max: 2},
		),
	}}
}

// trapDistance returns the distance from z to the trap.
func trapDistance(trap int, size, zr, zi float64) float64 {
	switch trap {
	case TrapCross:
		return math.Min(math.Abs(zr), math.Abs(zi))
	case TrapCircle:
		return math.Abs(math.Hypot(zr, zi) - size)
	case TrapXAxis:
		return math.Abs(zi)
	case TrapYAxis:
		return math.Abs(zr)
	default:
		return math.Hypot(zr, zi)
	}
}

// ComputePixel implements fractal.Kind.
func (o *OrbitTrap) ComputePixel(x, y float64, maxIter int) float64 {
	trap := int(o.at(0))
	size := o.at(1)

	// The starting point z = 0 sits on most traps, so it is not measured.
	nearest := math.Inf(1)
	zr, zi := 0.0, 0.0
	for range maxIter {
		zr, zi = zr*zr-zi*zi+x, 2*zr*zi+y
		r2 := zr*zr + zi*zi
		if degenerate(r2) {
			return float64(maxIter)
		}
		if r2 > escapeRadius2 {
			break
		}
		nearest = math.Min(nearest, trapDistance(trap, size, zr, zi))
	}

	closeness := 1 - math.Min(nearest/size, 1)
	return math.Max(0, closeness) * float64(maxIter)
}

// Clone implements fractal.Kind.
func (o *OrbitTrap) Clone() fractal.Kind {
	return &OrbitTrap{o.cloneBase()}
}
