package logoexport

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ico "github.com/sergeymakinen/go-ico"
)

var (
	red   = color.NRGBA{R: 220, G: 30, B: 30, A: 255}
	blue  = color.NRGBA{R: 20, G: 40, B: 230, A: 255}
	green = color.NRGBA{R: 20, G: 200, B: 40, A: 255}
)

// newLogo returns a w x h image filled with c inside a fully transparent
// border of the given width.
func newLogo(w, h, border int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	inner := image.Rect(border, border, w-border, h-border)
	draw.Draw(img, inner, &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readImage(t *testing.T, path string) image.Image {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if strings.HasSuffix(path, ".ico") {
		img, err := ico.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		return img
	}
	img, _, err := DecodeImageBytes(data)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

// setupRoot writes the two default sources under a temporary root. The full
// logo's visible content is 1000x250 red, the icon's 512x512 blue, both with
// a 50px transparent border.
func setupRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writePNG(t, filepath.Join(root, DefaultFullSource), newLogo(1100, 350, 50, red))
	writePNG(t, filepath.Join(root, DefaultIconSource), newLogo(612, 612, 50, blue))
	return root
}

// dominant returns which of red, green or blue is the strongest channel at
// the center of img.
func dominant(img image.Image) string {
	b := img.Bounds()
	r, g, bl, _ := img.At(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2).RGBA()
	switch {
	case r > g && r > bl:
		return "red"
	case g > r && g > bl:
		return "green"
	case bl > r && bl > g:
		return "blue"
	default:
		return "none"
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
