package fractal

import (
	"fmt"
	"image/color"

	"github.com/gogpu/fractal/internal/registry"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Black is the conventional color of bounded points.
var Black = RGB{}

// RGBA converts c to an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Palette maps an iteration value to a color.
//
// Color must be total and deterministic: it is defined for every value,
// including NaN, negative numbers and +Inf, and returns the same color for
// the same inputs. By convention value >= maxIter (and NaN) map to Black.
// Palettes are shared read-only between workers during a render.
type Palette interface {
	Name() string
	Color(value float64, maxIter int) RGB
}

// PaletteKeyer is implemented by palettes whose colors depend on settings
// beyond their name. PaletteKey must differ whenever Color could.
// Palettes without it are keyed by their Go value.
type PaletteKeyer interface {
	PaletteKey() string
}

// PaletteCloner is implemented by palettes with mutable settings.
// NewJob stores the clone, so later edits to the caller's palette never
// reach a queued or running job.
type PaletteCloner interface {
	ClonePalette() Palette
}

// paletteKey identifies the colors p produces.
func paletteKey(p Palette) string {
	if k, ok := p.(PaletteKeyer); ok {
		return fmt.Sprintf("%T:%s", p, k.PaletteKey())
	}
	return fmt.Sprintf("%#v", p)
}

// clonePalette returns a private copy of p when p supports it.
func clonePalette(p Palette) Palette {
	if c, ok := p.(PaletteCloner); ok {
		return c.ClonePalette()
	}
	return p
}

// PaletteRegistry maps case-insensitive keys to palette constructors.
type PaletteRegistry struct {
	r *registry.Registry[Palette]
}

// NewPaletteRegistry creates an empty registry.
func NewPaletteRegistry() *PaletteRegistry {
	return &PaletteRegistry{r: registry.New[Palette]()}
}

// Register adds a constructor under key with a display name.
func (pr *PaletteRegistry) Register(key, name string, ctor func() Palette) {
	pr.r.Register(key, name, ctor)
}

// Get returns a new palette for key.
// An unknown key yields an error wrapping ErrUnknownPalette.
func (pr *PaletteRegistry) Get(key string) (Palette, error) {
	p, err := pr.r.Create(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, key)
	}
	return p, nil
}

// List returns the registered palettes sorted by key.
func (pr *PaletteRegistry) List() []RegistryEntry {
	return pr.r.List()
}

// Contains reports whether key is registered.
func (pr *PaletteRegistry) Contains(key string) bool {
	return pr.r.IsRegistered(key)
}
