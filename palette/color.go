package palette

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/fractal"
)

// HSV converts a hue given as a fraction of the color wheel (any real
// number, taken modulo 1) plus saturation and value in [0, 1] to RGB.
// Every hue-based palette goes through this one conversion.
func HSV(hue, sat, val float64) fractal.RGB {
	h := math.Mod(hue, 1)
	if h < 0 {
		h++
	}
	if math.IsNaN(h) || h >= 1 {
		h = 0
	}
	return fromColorful(colorful.Hsv(h*360, clamp01(sat), clamp01(val)))
}

// fromColorful converts c to fractal.RGB, clamping out-of-gamut channels.
func fromColorful(c colorful.Color) fractal.RGB {
	r, g, b := c.Clamped().RGB255()
	return fractal.RGB{R: r, G: g, B: b}
}

// toColorful converts c to a colorful.Color.
func toColorful(c fractal.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Hex formats c as "#rrggbb".
func Hex(c fractal.RGB) string {
	return toColorful(c).Hex()
}

// ParseHex parses "#rgb" or "#rrggbb".
func ParseHex(s string) (fractal.RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return fractal.RGB{}, fmt.Errorf("palette: invalid hex color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// fraction maps value to [0, 1) relative to maxIter. It reports false for
// bounded points (value >= maxIter) and NaN, which palettes paint black.
// A maxIter below 1 is treated as 1 and negative values as 0.
func fraction(value float64, maxIter int) (float64, bool) {
	m := float64(max(maxIter, 1))
	if math.IsNaN(value) || value >= m {
		return 0, false
	}
	if value < 0 {
		return 0, true
	}
	return value / m, true
}

// channel converts a unit intensity to a byte, truncating like the classic
// integer palettes do.
func channel(v float64) uint8 {
	return uint8(255 * clamp01(v))
}

// byteChannel clamps an intensity already expressed in [0, 255].
func byteChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v)))
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return math.Min(v, 1)
}
