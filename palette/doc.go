// Package palette provides the built-in color palettes.
//
// A palette maps an iteration value to a color. All palettes here share the
// same conventions: values at or above maxIter (bounded points) and NaN are
// black, negative values are treated as 0, and a maxIter below 1 is treated
// as 1. Hue-based palettes go through HSV, which uses go-colorful for the
// conversion; Gradient blends its stops in L*a*b* space.
//
// Usage:
//
//	palettes := palette.NewRegistry()
//	p, err := palettes.Get("sunset")
//	if err != nil {
//	    return err
//	}
//	c := p.Color(17.5, 100)
package palette
