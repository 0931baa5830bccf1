package logoexport

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	ico "github.com/sergeymakinen/go-ico"
	"golang.org/x/image/draw"

	// Register common decoders, including WebP via x/image/webp.
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ErrSourceNotFound is returned when a source logo does not exist.
var ErrSourceNotFound = errors.New("source image not found")

// Decode reads an image from the reader, returning the decoded image and the
// detected format string ("png", "jpeg", "webp", "ico", etc.).
func Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// DecodeFile opens and decodes the image at path.
func DecodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}

// DecodeImageBytes decodes an in-memory image.
func DecodeImageBytes(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image data")
	}
	return Decode(bytes.NewReader(data))
}

// EncodePNG writes the provided image to the writer as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncodeICO writes img as an icon container holding a single 32x32 frame.
// Images of any other size are resampled to 32x32 first.
func EncodeICO(w io.Writer, img image.Image) error {
	return ico.Encode(w, toICOFrame(toNRGBA(img)))
}

// Save writes img to path, creating parent directories as needed. Paths with
// an .ico extension are written as icon containers, everything else as PNG.
// Existing files are overwritten.
func Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	var buf bytes.Buffer
	encode := EncodePNG
	if (OutputSpec{Path: filepath.ToSlash(path)}).IsICO() {
		encode = EncodeICO
	}
	if err := encode(&buf, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// toNRGBA returns img as *image.NRGBA, copying only when needed.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rectangle{Max: bounds.Size()})
	draw.Draw(out, out.Rect, img, bounds.Min, draw.Src)
	return out
}
