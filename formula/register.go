package formula

import "github.com/gogpu/fractal"

// Register adds every built-in kind to r.
func Register(r *fractal.KindRegistry) {
	add := func(ctor func() fractal.Kind) {
		k := ctor()
		r.Register(k.Key(), k.Name(), ctor)
	}

	add(func() fractal.Kind { return NewMandelbrot() })
	add(func() fractal.Kind { return NewJulia() })
	add(func() fractal.Kind { return NewMultibrot() })
	add(func() fractal.Kind { return NewBurningShip() })
	add(func() fractal.Kind { return NewTricorn() })
	add(func() fractal.Kind { return NewCeltic() })
	add(func() fractal.Kind { return NewPerpendicular() })
	add(func() fractal.Kind { return NewPhoenix() })
	add(func() fractal.Kind { return NewSpider() })
	add(func() fractal.Kind { return NewNewton() })
	add(func() fractal.Kind { return NewNova() })
	add(func() fractal.Kind { return NewOrbitTrap() })
	add(func() fractal.Kind { return NewBuffalo() })
	add(func() fractal.Kind { return NewLambda() })
	add(func() fractal.Kind { return NewSine() })
	add(func() fractal.Kind { return NewCubicJulia() })
	add(func() fractal.Kind { return NewFeather() })
	add(func() fractal.Kind { return NewBiomorph() })
}

// NewRegistry returns a registry holding all built-in kinds.
func NewRegistry() *fractal.KindRegistry {
	r := fractal.NewKindRegistry()
	Register(r)
	return r
}
