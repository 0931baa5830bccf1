package logoexport

import (
	"image"
	"image/color"
	"testing"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		name    string
		src     image.Point
		box     image.Point
		margin  float64
		upscale bool
		want    image.Point
	}{
		{"exact fit", image.Pt(1000, 250), image.Pt(800, 200), 1, false, image.Pt(800, 200)},
		{"width bound", image.Pt(1000, 250), image.Pt(512, 512), 1, false, image.Pt(512, 128)},
		{"height bound", image.Pt(250, 1000), image.Pt(512, 512), 1, false, image.Pt(128, 512)},
		{"margin", image.Pt(1000, 240), image.Pt(600, 150), 0.95, false, image.Pt(570, 137)},
		{"never enlarges", image.Pt(100, 100), image.Pt(512, 512), 1, false, image.Pt(100, 100)},
		{"margin without enlarging", image.Pt(100, 100), image.Pt(512, 512), 0.95, false, image.Pt(95, 95)},
		{"upscale", image.Pt(100, 100), image.Pt(512, 512), 1, true, image.Pt(512, 512)},
		{"thin source keeps one pixel", image.Pt(1, 1000), image.Pt(16, 16), 1, false, image.Pt(1, 16)},
		{"zero margin means full", image.Pt(64, 64), image.Pt(32, 32), 0, false, image.Pt(32, 32)},
		{"empty source", image.Pt(0, 10), image.Pt(32, 32), 1, false, image.Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitSize(tt.src, tt.box, tt.margin, tt.upscale)
			if got != tt.want {
				t.Errorf("FitSize(%v, %v, %v, %v) = %v, want %v", tt.src, tt.box, tt.margin, tt.upscale, got, tt.want)
			}
		})
	}
}

func TestRenderCentersContent(t *testing.T) {
	tests := []struct {
		name string
		src  image.Point
		box  image.Point
		fit  Fit
	}{
		{"wide in square", image.Pt(400, 100), image.Pt(800, 800), Fit{Margin: 1}},
		{"tall in wide", image.Pt(90, 300), image.Pt(600, 150), Fit{Margin: 0.95}},
		{"odd remainder", image.Pt(101, 51), image.Pt(200, 200), Fit{Margin: 1}},
		{"shrink", image.Pt(1000, 250), image.Pt(180, 180), Fit{Margin: 0.95}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newLogo(tt.src.X, tt.src.Y, 0, red)
			canvas, dr := Render(src, tt.box, tt.fit)

			if got := canvas.Bounds().Size(); got != tt.box {
				t.Fatalf("canvas size = %v, want %v", got, tt.box)
			}
			if want := FitSize(tt.src, tt.box, tt.fit.Margin, tt.fit.Upscale); dr.Size() != want {
				t.Fatalf("content size = %v, want %v", dr.Size(), want)
			}

			cb, ok := ContentBounds(canvas)
			if !ok {
				t.Fatal("canvas has no visible content")
			}
			if cb != dr {
				t.Errorf("visible content %v, pasted at %v", cb, dr)
			}
			left, right := cb.Min.X, tt.box.X-cb.Max.X
			top, bottom := cb.Min.Y, tt.box.Y-cb.Max.Y
			if abs(left-right) > 1 || abs(top-bottom) > 1 {
				t.Errorf("content %v not centered in %v", cb, tt.box)
			}
		})
	}
}

func TestFitSizeV2SmallSource(t *testing.T) {
	v, err := LookupVariant("v2")
	if err != nil {
		t.Fatal(err)
	}
	// A source smaller than its box is kept at its own size, then shrunk by the margin.
	if got, want := FitSize(image.Pt(100, 25), image.Pt(600, 150), v.Margin, v.Upscale), image.Pt(95, 24); got != want {
		t.Errorf("FitSize = %v, want %v", got, want)
	}
}

func TestRenderPasteUsesSourceAlphaAsMask(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, G: 200, B: 200, A: 128})
		}
	}
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	canvas, dr := Render(src, image.Pt(6, 6), Fit{Margin: 1})
	if dr != image.Rect(1, 1, 5, 5) {
		t.Fatalf("pasted at %v", dr)
	}

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255}},
		{3, 3, color.NRGBA{R: 100, G: 100, B: 100, A: 64}},
		{0, 0, color.NRGBA{}},
		{5, 5, color.NRGBA{}},
	}
	for _, tt := range tests {
		if got := canvas.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRenderPreservesAspectRatio(t *testing.T) {
	src := newLogo(300, 120, 0, blue)
	for _, box := range []image.Point{image.Pt(200, 200), image.Pt(600, 150), image.Pt(16, 16), image.Pt(50, 400)} {
		_, dr := Render(src, box, Fit{Margin: 1, Upscale: true})
		w, h := dr.Dx(), dr.Dy()
		// One pixel of rounding on the shorter side.
		if abs(w*120-h*300) > 300 {
			t.Errorf("box %v: content %dx%d distorts 300x120", box, w, h)
		}
	}
}

func TestRenderFilters(t *testing.T) {
	src := newLogo(640, 320, 0, green)
	for _, f := range []Filter{FilterLanczos, FilterCatmullRom, FilterLinear, FilterBox} {
		t.Run(string(f), func(t *testing.T) {
			canvas, dr := Render(src, image.Pt(100, 100), Fit{Margin: 1, Filter: f})
			if dr != image.Rect(0, 25, 100, 75) {
				t.Errorf("pasted at %v", dr)
			}
			if got := dominant(canvas); got != "green" {
				t.Errorf("center is %s, want green", got)
			}
			if _, _, _, a := canvas.At(0, 0).RGBA(); a != 0 {
				t.Errorf("padding alpha = %d, want 0", a)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{"", FilterLanczos, false},
		{"Lanczos", FilterLanczos, false},
		{" catmullrom ", FilterCatmullRom, false},
		{"box", FilterBox, false},
		{"nearest", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
