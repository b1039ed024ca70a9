package palette

import "github.com/gogpu/fractal"

func newForest() fractal.Palette {
	return mustHexGradient("Forest", "#32501e", "#389b2a", "#4bba37", "#6ad143", "#96e650")
}

func newSunset() fractal.Palette {
	g, err := NewGradient("Sunset",
		Stop{Pos: 0, Color: fractal.RGB{R: 0x7f}},
		Stop{Pos: 1.0 / 6, Color: fractal.RGB{R: 0xaa}},
		Stop{Pos: 0.5, Color: fractal.RGB{R: 0xff, G: 0x7f}},
		Stop{Pos: 5.0 / 6, Color: fractal.RGB{R: 0xff, G: 0xff, B: 0xaa}},
		Stop{Pos: 1, Color: fractal.RGB{R: 0xff, G: 0xff, B: 0xff}},
	)
	if err != nil {
		panic(err)
	}
	return g
}

// Register adds every built-in palette to r.
func Register(r *fractal.PaletteRegistry) {
	add := func(key string, ctor func() fractal.Palette) {
		r.Register(key, ctor().Name(), ctor)
	}

	add("smooth", func() fractal.Palette { return NewSmooth() })
	add("banded", func() fractal.Palette { return NewBanded() })
	add("grayscale", func() fractal.Palette { return &Grayscale{} })
	add("rainbow", func() fractal.Palette { return NewRainbow() })
	add("fire", func() fractal.Palette { return NewFunc("Fire", fire) })
	add("ocean", func() fractal.Palette { return NewFunc("Ocean", ocean) })
	add("electric", func() fractal.Palette { return NewFunc("Electric", electric) })
	add("neon", func() fractal.Palette { return NewFunc("Neon", neon) })
	add("classic", func() fractal.Palette { return NewFunc("Classic", classic) })
	add("pastel", func() fractal.Palette { return NewFunc("Pastel", pastel) })
	add("forest", newForest)
	add("sunset", newSunset)
}

// NewRegistry returns a registry holding all built-in palettes.
func NewRegistry() *fractal.PaletteRegistry {
	r := fractal.NewPaletteRegistry()
	Register(r)
	return r
}
