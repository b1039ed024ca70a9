package export

import (
	"image"

	"golang.org/x/image/draw"
)

// Thumbnail scales img down to fit within maxWidth x maxHeight, keeping its
// aspect ratio. Images that already fit are copied at their original size.
// Non-positive limits yield an empty image.
func Thumbnail(img image.Image, maxWidth, maxHeight int) *image.RGBA {
	if maxWidth < 1 || maxHeight < 1 || img.Bounds().Empty() {
		return image.NewRGBA(image.Rectangle{})
	}

	src := img.Bounds()
	w, h := fitWithin(src.Dx(), src.Dy(), maxWidth, maxHeight)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	if w == src.Dx() && h == src.Dy() {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

// fitWithin returns the largest size with the aspect ratio of w x h that
// fits in maxW x maxH, never larger than w x h and never below 1x1.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	// Compare w/h against maxW/maxH without floating point.
	if w*maxH >= h*maxW {
		return maxW, max(1, h*maxW/w)
	}
	return max(1, w*maxH/h), maxH
}
