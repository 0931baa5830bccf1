package logoexport

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/k1LoW/errors"
)

// Watch runs the export once and then again every time one of the source
// logos changes, until ctx is done. Runs never overlap. A failed re-run is
// logged and the watcher keeps going; only the first run is fatal.
func (e *Exporter) Watch(ctx context.Context) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer w.Close()

	// Editors often replace files instead of writing them, so the parent
	// directories are watched and events filtered by name.
	targets := make(map[string]struct{})
	dirs := make(map[string]struct{})
	for _, p := range e.SourcePaths() {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch folder %s: %w", dir, err)
		}
		e.logger.Debug("watching folder", slog.String("path", dir))
	}

	if _, err := e.Run(ctx); err != nil {
		return err
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if _, hit := targets[filepath.Clean(event.Name)]; !hit {
				continue
			}
			if !event.Has(fsnotify.Create | fsnotify.Write | fsnotify.Rename) {
				continue
			}
			e.logger.Debug("source changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			pending = time.After(e.debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn("watcher error", slog.String("error", err.Error()))
		case <-pending:
			pending = nil
			e.mu.Lock()
			e.resetSources()
			e.mu.Unlock()
			if _, err := e.Run(ctx); err != nil {
				e.logger.Error("failed to re-export", slog.String("error", err.Error()))
			}
		}
	}
}
