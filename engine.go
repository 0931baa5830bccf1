package logoexport

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/k1LoW/errors"
)

const defaultDebounce = 500 * time.Millisecond

// Result describes one produced output.
type Result struct {
	Spec OutputSpec
	Role Role
	// Path is the destination joined with the exporter root.
	Path string
	// Content is where the resized source was pasted on the canvas.
	Content image.Rectangle
	// Written is the pixel size of the file on disk.
	Written image.Point
}

// Exporter renders an output table from the full and icon-only logos.
type Exporter struct {
	root     string
	variant  *Variant
	sources  map[Role]string
	filter   Filter
	logger   *slog.Logger
	debounce time.Duration

	mu       sync.Mutex
	images   map[Role]image.Image
	imageErr map[Role]error
	once     map[Role]*sync.Once
}

type Option func(*Exporter) error

// WithRoot sets the directory sources and outputs are resolved against.
func WithRoot(root string) Option {
	return func(e *Exporter) error {
		if root == "" {
			return nil
		}
		e.root = root
		return nil
	}
}

// WithVariant selects a built-in output table by name.
func WithVariant(name string) Option {
	return func(e *Exporter) error {
		if name == "" {
			return nil
		}
		v, err := LookupVariant(name)
		if err != nil {
			return err
		}
		e.variant = v
		return nil
	}
}

// WithTable uses a custom output table instead of a built-in one.
func WithTable(v *Variant) Option {
	return func(e *Exporter) error {
		if v == nil {
			return fmt.Errorf("nil table")
		}
		if err := v.Validate(); err != nil {
			return err
		}
		e.variant = v
		return nil
	}
}

// WithSources overrides the source paths. Empty values keep the defaults.
func WithSources(full, icon string) Option {
	return func(e *Exporter) error {
		if full != "" {
			e.sources[RoleFull] = full
		}
		if icon != "" {
			e.sources[RoleIcon] = icon
		}
		return nil
	}
}

// WithFilter selects the resampling filter by name.
func WithFilter(name string) Option {
	return func(e *Exporter) error {
		f, err := ParseFilter(name)
		if err != nil {
			return err
		}
		e.filter = f
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) error {
		e.logger = logger
		return nil
	}
}

// New constructs an Exporter. Without options it reproduces the default run:
// the v2 table, the default sources and the current directory as root.
func New(opts ...Option) (_ *Exporter, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	e := &Exporter{
		root: ".",
		sources: map[Role]string{
			RoleFull: DefaultFullSource,
			RoleIcon: DefaultIconSource,
		},
		filter:   FilterLanczos,
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.variant == nil {
		if e.variant, err = LookupVariant(DefaultVariant); err != nil {
			return nil, err
		}
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	e.resetSources()
	return e, nil
}

// Variant returns the output table in use.
func (e *Exporter) Variant() *Variant {
	return e.variant
}

// Run decodes both sources, then renders and writes every output in table
// order. The first failure aborts the run; files written before it remain.
func (e *Exporter) Run(ctx context.Context) (_ []Result, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, role := range []Role{RoleFull, RoleIcon} {
		if _, err := e.source(role); err != nil {
			return nil, err
		}
	}

	results := make([]Result, 0, len(e.variant.Outputs))
	for _, spec := range e.variant.Outputs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := e.export(spec)
		if err != nil {
			e.logger.Error("failed to export", slog.String("path", spec.Path), slog.String("error", err.Error()))
			return results, err
		}
		results = append(results, res)
	}

	e.logger.Info("export completed", slog.Int("count", len(results)), slog.String("variant", e.variant.Name))
	return results, nil
}

func (e *Exporter) export(spec OutputSpec) (Result, error) {
	res, img, err := e.render(spec)
	if err != nil {
		return Result{}, err
	}
	if err := Save(res.Path, img); err != nil {
		return Result{}, err
	}
	e.logger.Info("created",
		slog.String("path", spec.Path),
		slog.Int("width", spec.Width),
		slog.Int("height", spec.Height),
		slog.String("role", res.Role.String()),
	)
	return res, nil
}

// render produces the image that would be written for spec.
func (e *Exporter) render(spec OutputSpec) (Result, image.Image, error) {
	role := spec.Role()
	src, err := e.source(role)
	if err != nil {
		return Result{}, nil, err
	}

	canvas, content := Render(src, spec.Size(), e.variant.fit(e.filter))

	var out image.Image = canvas
	if spec.IsICO() {
		out = toICOFrame(canvas)
	}

	return Result{
		Spec:    spec,
		Role:    role,
		Path:    e.resolve(spec.Path),
		Content: content,
		Written: out.Bounds().Size(),
	}, out, nil
}

// source lazily decodes, and for cropping tables trims, the image for role.
func (e *Exporter) source(role Role) (image.Image, error) {
	once, ok := e.once[role]
	if !ok {
		return nil, fmt.Errorf("unsupported role %v", role)
	}

	once.Do(func() {
		e.images[role], e.imageErr[role] = e.loadSource(role)
	})

	if err := e.imageErr[role]; err != nil {
		return nil, err
	}
	return e.images[role], nil
}

func (e *Exporter) loadSource(role Role) (image.Image, error) {
	path := e.resolve(e.sources[role])
	img, format, err := DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s logo: %w", role, err)
	}
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("load %s logo: invalid image dimensions %dx%d", role, size.X, size.Y)
	}

	if e.variant.Crop {
		img = CropToContent(img)
	}
	cropped := img.Bounds().Size()

	e.logger.Info("loaded source",
		slog.String("role", role.String()),
		slog.String("path", path),
		slog.String("format", format),
		slog.Int("width", size.X),
		slog.Int("height", size.Y),
		slog.Int("content_width", cropped.X),
		slog.Int("content_height", cropped.Y),
	)
	return img, nil
}

// resetSources drops decoded sources so the next run reads them again.
func (e *Exporter) resetSources() {
	e.images = make(map[Role]image.Image)
	e.imageErr = make(map[Role]error)
	e.once = map[Role]*sync.Once{
		RoleFull: new(sync.Once),
		RoleIcon: new(sync.Once),
	}
}

func (e *Exporter) resolve(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(e.root, p)
}

// PlannedOutput is one entry of a dry run.
type PlannedOutput struct {
	Spec    OutputSpec
	Role    Role
	Path    string
	Written image.Point
}

// Plan lists what Run would produce without touching the filesystem.
func (e *Exporter) Plan() []PlannedOutput {
	plan := make([]PlannedOutput, 0, len(e.variant.Outputs))
	for _, spec := range e.variant.Outputs {
		plan = append(plan, PlannedOutput{
			Spec:    spec,
			Role:    spec.Role(),
			Path:    e.resolve(spec.Path),
			Written: spec.WrittenSize(),
		})
	}
	return plan
}

// SourcePaths returns the resolved full and icon source paths.
func (e *Exporter) SourcePaths() map[Role]string {
	return map[Role]string{
		RoleFull: e.resolve(e.sources[RoleFull]),
		RoleIcon: e.resolve(e.sources[RoleIcon]),
	}
}
