// Package progress provides a slog.Handler that prints export progress as
// human-readable lines.
package progress

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	bold   = color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

var _ slog.Handler = (*progressHandler)(nil)

type progressHandler struct {
	w     io.Writer
	level slog.Leveler
	attrs []slog.Attr
	mu    *sync.Mutex
}

// New returns a handler writing to w. Records below level are dropped; a
// nil level means slog.LevelInfo.
func New(w io.Writer, level slog.Leveler) slog.Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &progressHandler{w: w, level: level, mu: &sync.Mutex{}}
}

func (h *progressHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *progressHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]slog.Value, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value
		return true
	})

	var line string
	switch {
	case r.Message == "loaded source":
		w, h := intAttr(attrs, "width"), intAttr(attrs, "height")
		line = fmt.Sprintf("Logo %s: %dx%d", attrs["role"], w, h)
		if cw, ch := intAttr(attrs, "content_width"), intAttr(attrs, "content_height"); (cw != 0 || ch != 0) && (cw != w || ch != h) {
			line += gray(fmt.Sprintf(" (cropped to %dx%d)", cw, ch))
		}
	case r.Message == "created":
		line = fmt.Sprintf("%s Created: %s (%dx%d)", green("✓"), attrs["path"], intAttr(attrs, "width"), intAttr(attrs, "height"))
	case r.Message == "export completed":
		line = "\n" + bold("All logos resized successfully!")
	case r.Level >= slog.LevelError:
		line = red("✗ "+r.Message) + formatAttrs(attrs)
	case r.Level >= slog.LevelWarn:
		line = yellow("! "+r.Message) + formatAttrs(attrs)
	default:
		line = gray(r.Message + formatAttrs(attrs))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line+"\n")
	return err
}

func (h *progressHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &progressHandler{w: h.w, level: h.level, attrs: merged, mu: h.mu}
}

// WithGroup is a no-op: progress lines are flat.
func (h *progressHandler) WithGroup(_ string) slog.Handler {
	return h
}

func formatAttrs(attrs map[string]slog.Value) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, attrs[k])
	}
	return b.String()
}

func intAttr(attrs map[string]slog.Value, key string) int64 {
	v, ok := attrs[key]
	if !ok || v.Kind() != slog.KindInt64 {
		return 0
	}
	return v.Int64()
}
