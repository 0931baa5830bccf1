package logoexport

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Filter names the resampling filter used when resizing a source.
type Filter string

const (
	FilterLanczos    Filter = "lanczos"
	FilterCatmullRom Filter = "catmullrom"
	FilterLinear     Filter = "linear"
	FilterBox        Filter = "box"
)

// ParseFilter accepts a filter name case-insensitively. The empty string
// selects Lanczos.
func ParseFilter(name string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FilterLanczos, nil
	case FilterLanczos, FilterCatmullRom, FilterLinear, FilterBox:
		return f, nil
	default:
		return "", fmt.Errorf("unknown filter %q", name)
	}
}

// resize scales src to exactly size.
func (f Filter) resize(src image.Image, size image.Point) *image.NRGBA {
	switch f {
	case FilterCatmullRom:
		dst := image.NewNRGBA(image.Rectangle{Max: size})
		draw.CatmullRom.Scale(dst, dst.Rect, src, src.Bounds(), draw.Src, nil)
		return dst
	case FilterLinear:
		return imaging.Resize(src, size.X, size.Y, imaging.Linear)
	case FilterBox:
		return imaging.Resize(src, size.X, size.Y, imaging.Box)
	default:
		return imaging.Resize(src, size.X, size.Y, imaging.Lanczos)
	}
}

// Fit describes how a source is scaled into an output box.
type Fit struct {
	// Margin multiplies the fitting scale. Zero is treated as 1.
	Margin float64
	// Upscale lets a source smaller than the box grow to fill it.
	Upscale bool
	Filter  Filter
}

// FitSize returns the size src takes inside box when scaled uniformly so it
// fits, multiplied by margin. Without upscale the scale never exceeds 1.
// Both dimensions are at least one pixel and never exceed the box.
func FitSize(src, box image.Point, margin float64, upscale bool) image.Point {
	if src.X <= 0 || src.Y <= 0 || box.X <= 0 || box.Y <= 0 {
		return image.Point{}
	}

	scale := math.Min(float64(box.X)/float64(src.X), float64(box.Y)/float64(src.Y))
	if !upscale && scale > 1 {
		scale = 1
	}
	if margin > 0 {
		scale *= margin
	}

	return image.Pt(
		clampDim(int(math.Round(float64(src.X)*scale)), box.X),
		clampDim(int(math.Round(float64(src.Y)*scale)), box.Y),
	)
}

func clampDim(v, max int) int {
	if v < 1 {
		return 1
	}
	if v > max {
		return max
	}
	return v
}

// Render resizes src to fit box and pastes it centered on a fully transparent
// canvas of exactly box. It returns the canvas and the rectangle the resized
// source was pasted into.
func Render(src image.Image, box image.Point, fit Fit) (*image.NRGBA, image.Rectangle) {
	canvas := image.NewNRGBA(image.Rectangle{Max: box})

	size := FitSize(src.Bounds().Size(), box, fit.Margin, fit.Upscale)
	if size.X == 0 || size.Y == 0 {
		return canvas, image.Rectangle{}
	}

	resized := fit.Filter.resize(src, size)

	offset := image.Pt((box.X-size.X)/2, (box.Y-size.Y)/2)
	dr := image.Rectangle{Min: offset, Max: offset.Add(size)}
	pasteSelfMasked(canvas, resized, offset)

	return canvas, dr
}

// pasteSelfMasked blends src onto dst at off using src's own alpha as the
// mask on every band, alpha included. Partly transparent pixels pasted onto
// a transparent canvas come out with their color and alpha scaled by a/255.
func pasteSelfMasked(dst, src *image.NRGBA, off image.Point) {
	sb := src.Bounds()
	for y := 0; y < sb.Dy(); y++ {
		si := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		di := dst.PixOffset(off.X, off.Y+y)
		for x := 0; x < sb.Dx(); x++ {
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]
			m := uint32(s[3])
			for c := 0; c < 4; c++ {
				d[c] = blend(uint32(d[c]), uint32(s[c]), m)
			}
			si += 4
			di += 4
		}
	}
}

// blend returns (dst*(255-m) + src*m) / 255, rounded.
func blend(dst, src, m uint32) uint8 {
	t := dst*(255-m) + src*m + 128
	return uint8((t + t>>8) >> 8)
}

// toICOFrame shrinks a rendered canvas to the icon container frame size.
func toICOFrame(canvas *image.NRGBA) *image.NRGBA {
	if canvas.Bounds().Size() == image.Pt(icoSize, icoSize) {
		return canvas
	}
	return imaging.Resize(canvas, icoSize, icoSize, imaging.Lanczos)
}
