package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/fractal"
)

func testImage(w, h int) *fractal.Image {
	img := fractal.NewImage(w, h)
	pix := img.Pix()
	for i := range pix {
		pix[i] = uint8(i * 7)
	}
	return img
}

// =============================================================================
// Format Tests
// =============================================================================

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.png", PNG},
		{"dir/OUT.JPG", JPEG},
		{"a.jpeg", JPEG},
		{"a.bmp", BMP},
		{"a.tif", TIFF},
		{"a.tiff", TIFF},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, %v; want %v", tt.path, got, err, tt.want)
		}
	}

	for _, bad := range []string{"noext", "a.gif", "a."} {
		if _, err := FormatFromPath(bad); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatFromPath(%q) error = %v, want ErrUnsupportedFormat", bad, err)
		}
	}
}

func TestFormat_String(t *testing.T) {
	for f, want := range map[Format]string{PNG: "png", JPEG: "jpeg", BMP: "bmp", TIFF: "tiff", Format(9): "Format(9)"} {
		if got := f.String(); got != want {
			t.Errorf("Format(%d).String() = %q, want %q", int(f), got, want)
		}
	}
}

// =============================================================================
// Encode Tests
// =============================================================================

func TestEncode_LosslessRoundTrip(t *testing.T) {
	src := testImage(9, 5)
	for _, f := range []Format{PNG, BMP, TIFF} {
		var buf bytes.Buffer
		if err := Encode(&buf, src, f, nil); err != nil {
			t.Fatalf("Encode(%v) error = %v", f, err)
		}
		got, format, err := Decode(&buf)
		if err != nil {
			t.Fatalf("Decode(%v) error = %v", f, err)
		}
		if format != f {
			t.Errorf("Decode format = %v, want %v", format, f)
		}
		if got.Bounds() != src.Bounds() {
			t.Fatalf("%v bounds = %v, want %v", f, got.Bounds(), src.Bounds())
		}
		for y := range 5 {
			for x := range 9 {
				want := src.At(x, y)
				if c := color.RGBAModel.Convert(got.At(x, y)); c != want {
					t.Errorf("%v pixel (%d, %d) = %v, want %v", f, x, y, c, want)
				}
			}
		}
	}
}

func TestEncode_JPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(16, 16), JPEG, &Options{Quality: 500}); err != nil {
		t.Fatalf("Encode(JPEG) error = %v", err)
	}
	if _, f, err := Decode(&buf); err != nil || f != JPEG {
		t.Errorf("Decode = %v, %v; want JPEG", f, err)
	}
}

func TestEncode_Errors(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, fractal.NewImage(0, 0), PNG, nil); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Encode(empty) error = %v, want ErrEmptyImage", err)
	}
	if err := Encode(&buf, testImage(2, 2), Format(42), nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(bad format) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.png")
	if err := Save(path, testImage(4, 3), nil); err != nil {
		t.Fatalf("Save error = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open saved file: %v", err)
	}
	defer func() { _ = f.Close() }()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil || format != "png" || cfg.Width != 4 || cfg.Height != 3 {
		t.Errorf("saved file = %v %q %v, want 4x3 png", cfg, format, err)
	}

	if err := Save(filepath.Join(dir, "render.gif"), testImage(4, 3), nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.gif) error = %v, want ErrUnsupportedFormat", err)
	}
}

// =============================================================================
// Thumbnail Tests
// =============================================================================

func TestThumbnail_Size(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{800, 600, 200, 200, 200, 150},
		{600, 800, 200, 200, 150, 200},
		{100, 50, 200, 200, 100, 50},
		{1000, 1, 10, 10, 10, 1},
	}
	for _, tt := range tests {
		th := Thumbnail(fractal.NewImage(tt.w, tt.h), tt.maxW, tt.maxH)
		if b := th.Bounds(); b.Dx() != tt.wantW || b.Dy() != tt.wantH {
			t.Errorf("Thumbnail(%dx%d, %d, %d) = %dx%d, want %dx%d",
				tt.w, tt.h, tt.maxW, tt.maxH, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
		}
	}

	if th := Thumbnail(testImage(4, 4), 0, 10); !th.Bounds().Empty() {
		t.Errorf("Thumbnail with zero limit = %v, want empty", th.Bounds())
	}
}

func TestThumbnail_UniformColor(t *testing.T) {
	src := fractal.NewImage(64, 32)
	pix := src.Pix()
	for i := 0; i < len(pix); i += 3 {
		pix[i], pix[i+1], pix[i+2] = 200, 100, 50
	}
	th := Thumbnail(src, 16, 16)
	want := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	if got := th.RGBAAt(8, 4); got != want {
		t.Errorf("thumbnail pixel = %v, want %v", got, want)
	}
}

func BenchmarkThumbnail(b *testing.B) {
	src := testImage(800, 600)
	for b.Loop() {
		Thumbnail(src, 160, 120)
	}
}
