package logoexport

import (
	"fmt"
	"image"
	"path"
	"strings"
)

const (
	// DefaultFullSource is the full logo (mark plus wordmark).
	DefaultFullSource = "landing/public/screenshots/logo-clodeb.png"
	// DefaultIconSource is the icon-only logo (mark alone).
	DefaultIconSource = "landing/public/screenshots/logo-solo-clodeb.png"
	// DefaultVariant is the table used when none is requested.
	DefaultVariant = "v2"

	// icoSize is the only frame size written into .ico outputs.
	icoSize = 32
)

// Role identifies which source image an output is rendered from.
type Role int

const (
	RoleFull Role = iota
	RoleIcon
)

func (r Role) String() string {
	switch r {
	case RoleFull:
		return "full"
	case RoleIcon:
		return "icon"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Destination names containing one of these markers use the icon-only logo.
var iconMarkers = []string{"icon", "favicon", "dark", "apple-touch"}

// SelectRole picks the source for a destination path by substring match.
func SelectRole(dest string) Role {
	for _, m := range iconMarkers {
		if strings.Contains(dest, m) {
			return RoleIcon
		}
	}
	return RoleFull
}

// OutputSpec declares one file the exporter produces.
type OutputSpec struct {
	Path   string `yaml:"path"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Size returns the declared box.
func (s OutputSpec) Size() image.Point {
	return image.Pt(s.Width, s.Height)
}

// IsICO reports whether the destination is written as an icon container.
func (s OutputSpec) IsICO() bool {
	return strings.EqualFold(path.Ext(s.Path), ".ico")
}

// WrittenSize is the pixel size of the file on disk. Icon containers are
// always 32x32 whatever the declared box is.
func (s OutputSpec) WrittenSize() image.Point {
	if s.IsICO() {
		return image.Pt(icoSize, icoSize)
	}
	return s.Size()
}

// Role returns the source role for this output.
func (s OutputSpec) Role() Role {
	return SelectRole(s.Path)
}

// Variant is a named output table together with the way sources are fitted.
type Variant struct {
	Name string `yaml:"name"`
	// Crop trims fully transparent rows and columns from both sources.
	Crop bool `yaml:"crop"`
	// Margin multiplies the fitting scale; 1 fills the box.
	Margin float64 `yaml:"margin"`
	// Upscale allows sources smaller than the box to be enlarged.
	Upscale bool         `yaml:"upscale"`
	Outputs []OutputSpec `yaml:"outputs"`
}

// Validate checks the table is usable.
func (v *Variant) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("variant name is required")
	}
	if v.Margin <= 0 || v.Margin > 1 {
		return fmt.Errorf("variant %s: margin must be in (0, 1], got %v", v.Name, v.Margin)
	}
	if len(v.Outputs) == 0 {
		return fmt.Errorf("variant %s: no outputs", v.Name)
	}
	seen := make(map[string]struct{}, len(v.Outputs))
	for i, o := range v.Outputs {
		if o.Path == "" {
			return fmt.Errorf("variant %s: output %d has no path", v.Name, i)
		}
		if o.Width <= 0 || o.Height <= 0 {
			return fmt.Errorf("variant %s: invalid size %dx%d for %s", v.Name, o.Width, o.Height, o.Path)
		}
		if _, ok := seen[o.Path]; ok {
			return fmt.Errorf("variant %s: duplicate output %s", v.Name, o.Path)
		}
		seen[o.Path] = struct{}{}
	}
	return nil
}

func (v *Variant) fit(filter Filter) Fit {
	return Fit{Margin: v.Margin, Upscale: v.Upscale, Filter: filter}
}
