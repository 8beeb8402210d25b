// Package watch re-runs a callback whenever a file's content changes.
package watch

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 300 * time.Millisecond

// Watcher follows one file. The parent directory is watched so editors
// that save by renaming a temp file are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
	hash     []byte
	runs     int
}

func New(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{path: abs, debounce: debounce, logger: logger, fsw: fsw}, nil
}

func (w *Watcher) Close() error { return w.fsw.Close() }

// Runs is how many times the callback has been invoked.
func (w *Watcher) Runs() int { return w.runs }

// changed reports whether the file content differs from the last run.
func (w *Watcher) changed() (bool, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return false, err
	}
	sum := sha256.Sum256(data)
	if w.hash != nil && bytes.Equal(w.hash, sum[:]) {
		return false, nil
	}
	w.hash = sum[:]
	return true, nil
}

func (w *Watcher) invoke(ctx context.Context, fn func(context.Context) error) {
	w.runs++
	start := time.Now()
	if err := fn(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		w.logger.Error("run failed", "path", w.path, "error", err)
		return
	}
	w.logger.Info("run complete", "path", w.path, "elapsed", time.Since(start).Round(time.Millisecond))
}

// Run calls fn once, then again after every debounced content change. It
// blocks until ctx is cancelled. Callback errors are logged and do not stop
// the watch; only one callback runs at a time.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	if _, err := w.changed(); err != nil {
		return err
	}
	w.invoke(ctx, fn)

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	var pending bool
	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending, last = true, time.Now()
				w.logger.Debug("change detected", "path", w.path, "op", event.Op.String())
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-ticker.C:
			if !pending || time.Since(last) < w.debounce {
				continue
			}
			pending = false
			changed, err := w.changed()
			if err != nil {
				// Mid-save the file may briefly not exist.
				w.logger.Debug("read after change", "path", w.path, "error", err)
				continue
			}
			if !changed {
				continue
			}
			w.logger.Info("file changed, re-running", "path", w.path)
			w.invoke(ctx, fn)
		}
	}
}
