package fractal

import (
	"bytes"
	"image"
	"image/color"
)

// bytesPerPixel is the stride of one pixel in Image.Pix.
const bytesPerPixel = 3

// Image is a fully rendered RGB raster.
// Pixels are stored row-major, 3 bytes per pixel, row 0 at the top.
//
// Image implements image.Image, so it can be handed directly to any
// encoder in the standard library or the export package.
type Image struct {
	width  int
	height int
	pix    []uint8
}

// NewImage creates a black image with the given dimensions.
func NewImage(width, height int) *Image {
	return &Image{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*bytesPerPixel),
	}
}

// Width returns the width of the image in pixels.
func (m *Image) Width() int {
	return m.width
}

// Height returns the height of the image in pixels.
func (m *Image) Height() int {
	return m.height
}

// Pix returns the raw pixel data.
func (m *Image) Pix() []uint8 {
	return m.pix
}

// Row returns the bytes of row y, or nil when y is out of range.
func (m *Image) Row(y int) []uint8 {
	if y < 0 || y >= m.height {
		return nil
	}
	stride := m.width * bytesPerPixel
	return m.pix[y*stride : (y+1)*stride]
}

// RGBAt returns the color of a single pixel.
// Out of range coordinates return Black.
func (m *Image) RGBAt(x, y int) RGB {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return Black
	}
	i := (y*m.width + x) * bytesPerPixel
	return RGB{R: m.pix[i], G: m.pix[i+1], B: m.pix[i+2]}
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	c := &Image{width: m.width, height: m.height, pix: make([]uint8, len(m.pix))}
	copy(c.pix, m.pix)
	return c
}

// Equal reports whether both images have the same size and pixels.
func (m *Image) Equal(o *Image) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.width == o.width && m.height == o.height && bytes.Equal(m.pix, o.pix)
}

// ToRGBA converts the image to an *image.RGBA with opaque alpha.
func (m *Image) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.width, m.height))
	for i, j := 0, 0; i < len(m.pix); i, j = i+bytesPerPixel, j+4 {
		img.Pix[j+0] = m.pix[i+0]
		img.Pix[j+1] = m.pix[i+1]
		img.Pix[j+2] = m.pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// At implements the image.Image interface.
func (m *Image) At(x, y int) color.Color {
	return m.RGBAt(x, y).RGBA()
}

// Bounds implements the image.Image interface.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// ColorModel implements the image.Image interface.
func (m *Image) ColorModel() color.Model {
	return color.RGBAModel
}
