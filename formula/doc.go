// Package formula provides the built-in fractal kinds.
//
// Escape-time kinds (Mandelbrot, Julia, Cubic Julia, Multibrot, Burning
// Ship, Buffalo, Tricorn, Celtic, Perpendicular, Phoenix, Spider, Lambda,
// Feather, Orbit Trap) return the 0-based iteration at which the orbit left
// the disk of radius 2, or maxIter for bounded orbits. Sine uses a radius
// of sqrt(50). Kinds with a "smooth" parameter return a fractional escape
// count when it is set to 1.
//
// Root-convergence kinds (Newton, Nova) split [0, maxIter) into one band per
// root. A converged point falls into the band of its root, offset by how
// many iterations it needed; a point that does not converge returns
// maxIter. Biomorph mixes both: Newton on z^3 - 1 with a bailout radius,
// returning the escape index for orbits that leave and maxIter-1-i for
// orbits that reach a root after i steps.
//
// All kinds contain numeric trouble per pixel: a NaN or infinite orbit
// returns maxIter.
//
// Usage:
//
//	kinds := formula.NewRegistry()
//	k, err := kinds.Create("burning_ship")
//	if err != nil {
//	    return err
//	}
//	k.SetParam(formula.ParamSmooth, 1)
package formula
