package logoexport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/corona10/goimagehash"
	kerrors "github.com/k1LoW/errors"
	ico "github.com/sergeymakinen/go-ico"
	"golang.org/x/image/draw"
)

// CheckStatus is the state of an output file compared to a fresh render.
type CheckStatus string

const (
	StatusOK      CheckStatus = "ok"
	StatusStale   CheckStatus = "stale"
	StatusMissing CheckStatus = "missing"
)

// CheckResult reports one output of Check.
type CheckResult struct {
	Spec   OutputSpec
	Path   string
	Status CheckStatus
	// Distance is the average-hash distance between the file on disk and a
	// fresh render. It is only set for stale outputs, and is -1 when the
	// file could not be decoded.
	Distance int
}

// Check renders every output in memory and compares it with the file on
// disk. Nothing is written.
func (e *Exporter) Check(ctx context.Context) (_ []CheckResult, err error) {
	defer func() {
		err = kerrors.WithStack(err)
	}()
	e.mu.Lock()
	defer e.mu.Unlock()

	results := make([]CheckResult, 0, len(e.variant.Outputs))
	for _, spec := range e.variant.Outputs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, want, err := e.render(spec)
		if err != nil {
			return results, err
		}
		cr, err := compareFile(res.Path, spec, want)
		if err != nil {
			return results, err
		}
		if cr.Status != StatusOK {
			e.logger.Debug("out of date", slog.String("path", spec.Path), slog.String("status", string(cr.Status)), slog.Int("distance", cr.Distance))
		}
		results = append(results, cr)
	}
	return results, nil
}

func compareFile(path string, spec OutputSpec, want image.Image) (CheckResult, error) {
	cr := CheckResult{Spec: spec, Path: path, Status: StatusOK}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cr.Status = StatusMissing
			return cr, nil
		}
		return cr, fmt.Errorf("read %s: %w", path, err)
	}

	var got image.Image
	if spec.IsICO() {
		got, err = ico.Decode(bytes.NewReader(data))
	} else {
		got, _, err = DecodeImageBytes(data)
	}
	if err != nil {
		// An unreadable file is as good as a stale one.
		cr.Status = StatusStale
		cr.Distance = -1
		return cr, nil
	}

	if imagesEqual(want, got) {
		return cr, nil
	}

	cr.Status = StatusStale
	cr.Distance, err = hashDistance(want, got)
	if err != nil {
		return cr, err
	}
	return cr, nil
}

// imagesEqual compares premultiplied pixels so decoders that return either
// straight or premultiplied alpha compare the same.
func imagesEqual(a, b image.Image) bool {
	if a.Bounds().Size() != b.Bounds().Size() {
		return false
	}
	return bytes.Equal(toRGBA(a).Pix, toRGBA(b).Pix)
}

func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rectangle{Max: bounds.Size()})
	draw.Draw(out, out.Rect, img, bounds.Min, draw.Src)
	return out
}

func hashDistance(a, b image.Image) (int, error) {
	ha, err := goimagehash.AverageHash(a)
	if err != nil {
		return 0, fmt.Errorf("hash rendered image: %w", err)
	}
	hb, err := goimagehash.AverageHash(b)
	if err != nil {
		return 0, fmt.Errorf("hash file image: %w", err)
	}
	return ha.Distance(hb)
}
