package logoexport

import (
	"image"

	"github.com/disintegration/imaging"
)

// ContentBounds returns the smallest rectangle containing every pixel that
// is not fully transparent. The second result is false when the image has no
// such pixel.
func ContentBounds(img image.Image) (image.Rectangle, bool) {
	if img == nil {
		return image.Rectangle{}, false
	}

	bounds := img.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !visible(img, x, y) {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX || maxY < minY {
		return image.Rectangle{}, false
	}

	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// visible reports whether the pixel at (x, y) has any opacity.
func visible(img image.Image, x, y int) bool {
	switch m := img.(type) {
	case *image.NRGBA:
		return m.Pix[m.PixOffset(x, y)+3] != 0
	case *image.RGBA:
		return m.Pix[m.PixOffset(x, y)+3] != 0
	}
	_, _, _, a := img.At(x, y).RGBA()
	return a != 0
}

// CropToContent trims fully transparent rows and columns from the edges.
// A fully transparent image is returned unmodified.
func CropToContent(img image.Image) image.Image {
	rect, ok := ContentBounds(img)
	if !ok || rect.Eq(img.Bounds()) {
		return img
	}
	return imaging.Crop(img, rect)
}
