package fractal

import (
	"fmt"
	"math"
)

// Bounds is a rectangle of the complex plane.
// X is the real axis, Y the imaginary axis.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// XSpan returns XMax - XMin.
func (b Bounds) XSpan() float64 { return b.XMax - b.XMin }

// YSpan returns YMax - YMin.
func (b Bounds) YSpan() float64 { return b.YMax - b.YMin }

// Center returns the midpoint of the rectangle.
func (b Bounds) Center() (x, y float64) {
	return b.XMin + b.XSpan()/2, b.YMin + b.YSpan()/2
}

// Validate reports whether b is a usable rectangle: finite, with positive
// spans that are still resolvable in float64 at its position.
func (b Bounds) Validate() error {
	for _, v := range [...]float64{b.XMin, b.XMax, b.YMin, b.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite bounds %v", ErrInvalidViewport, b)
		}
	}
	if !(b.XMin < b.XMax) || !(b.YMin < b.YMax) {
		return fmt.Errorf("%w: inverted bounds %v", ErrInvalidViewport, b)
	}
	if b.XSpan() < spanFloor(b.XMin, b.XMax) || b.YSpan() < spanFloor(b.YMin, b.YMax) {
		return fmt.Errorf("%w: span below float64 resolution %v", ErrInvalidViewport, b)
	}
	return nil
}

// spanFloor is the smallest span that still leaves distinct coordinates for
// a few pixels around lo and hi.
func spanFloor(lo, hi float64) float64 {
	m := math.Max(1, math.Max(math.Abs(lo), math.Abs(hi)))
	return 4 * epsilon * m
}

// epsilon is the float64 machine epsilon.
const epsilon = 0x1p-52

// Viewport maps a pixel grid onto a rectangle of the complex plane.
// Row 0 is the top of the image and corresponds to YMax.
//
// Viewport is an immutable value: every operation returns a new one.
type Viewport struct {
	Bounds
	Width, Height int
}

// NewViewport validates and returns a viewport.
func NewViewport(b Bounds, width, height int) (Viewport, error) {
	if width < 1 || height < 1 {
		return Viewport{}, fmt.Errorf("%w: size %dx%d", ErrInvalidViewport, width, height)
	}
	if err := b.Validate(); err != nil {
		return Viewport{}, err
	}
	return Viewport{Bounds: b, Width: width, Height: height}, nil
}

// Validate reports whether v satisfies the viewport invariants.
func (v Viewport) Validate() error {
	_, err := NewViewport(v.Bounds, v.Width, v.Height)
	return err
}

// PixelToPlane returns the plane coordinates of pixel (px, py).
// Fractional pixel coordinates are allowed.
func (v Viewport) PixelToPlane(px, py float64) (x, y float64) {
	x = v.XMin + px/float64(v.Width)*v.XSpan()
	y = v.YMax - py/float64(v.Height)*v.YSpan()
	return x, y
}

// PlaneToPixel is the inverse of PixelToPlane.
func (v Viewport) PlaneToPixel(x, y float64) (px, py float64) {
	px = (x - v.XMin) / v.XSpan() * float64(v.Width)
	py = (v.YMax - y) / v.YSpan() * float64(v.Height)
	return px, py
}

// ZoomAt scales the view around the plane point under pixel (px, py), which
// stays under the same pixel. A factor below 1 zooms in.
func (v Viewport) ZoomAt(px, py, factor float64) (Viewport, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return v, fmt.Errorf("%w: zoom factor %v", ErrInvalidViewport, factor)
	}
	cx, cy := v.PixelToPlane(px, py)
	b := Bounds{
		XMin: cx - (cx-v.XMin)*factor,
		XMax: cx + (v.XMax-cx)*factor,
		YMin: cy - (cy-v.YMin)*factor,
		YMax: cy + (v.YMax-cy)*factor,
	}
	return NewViewport(b, v.Width, v.Height)
}

// ZoomToRect zooms to the rectangle spanned by two pixel corners given in
// any order. The pixel size is unchanged, so the result may be stretched;
// call FitAspect to square the pixels.
func (v Viewport) ZoomToRect(px1, py1, px2, py2 float64) (Viewport, error) {
	x1, y1 := v.PixelToPlane(px1, py1)
	x2, y2 := v.PixelToPlane(px2, py2)
	b := Bounds{
		XMin: math.Min(x1, x2),
		XMax: math.Max(x1, x2),
		YMin: math.Min(y1, y2),
		YMax: math.Max(y1, y2),
	}
	return NewViewport(b, v.Width, v.Height)
}

// Pan shifts the view by (dx, dy) pixels. Positive dx moves the view
// right and positive dy moves it down, matching a drag in screen space.
func (v Viewport) Pan(dx, dy float64) (Viewport, error) {
	sx := dx / float64(v.Width) * v.XSpan()
	sy := dy / float64(v.Height) * v.YSpan()
	b := Bounds{
		XMin: v.XMin + sx,
		XMax: v.XMax + sx,
		YMin: v.YMin - sy,
		YMax: v.YMax - sy,
	}
	return NewViewport(b, v.Width, v.Height)
}

// Resize changes the pixel dimensions while keeping the centre and the
// plane distance covered by one pixel.
func (v Viewport) Resize(width, height int) (Viewport, error) {
	if width < 1 || height < 1 {
		return v, fmt.Errorf("%w: size %dx%d", ErrInvalidViewport, width, height)
	}
	cx, cy := v.Center()
	hw := v.XSpan() / float64(v.Width) * float64(width) / 2
	hh := v.YSpan() / float64(v.Height) * float64(height) / 2
	return NewViewport(Bounds{XMin: cx - hw, XMax: cx + hw, YMin: cy - hh, YMax: cy + hh}, width, height)
}

// FitAspect widens the shorter axis around the centre so that pixels are
// square. The original rectangle is always fully contained in the result.
func (v Viewport) FitAspect() (Viewport, error) {
	cx, cy := v.Center()
	w, h := v.XSpan(), v.YSpan()
	pixAspect := float64(v.Width) / float64(v.Height)

	if w/h < pixAspect {
		w = h * pixAspect
	} else {
		h = w / pixAspect
	}
	return NewViewport(Bounds{XMin: cx - w/2, XMax: cx + w/2, YMin: cy - h/2, YMax: cy + h/2}, v.Width, v.Height)
}

// String implements fmt.Stringer.
func (v Viewport) String() string {
	return fmt.Sprintf("[%g, %g]x[%g, %g] @ %dx%d", v.XMin, v.XMax, v.YMin, v.YMax, v.Width, v.Height)
}
