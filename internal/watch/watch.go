// Package watch rebuilds a mesh document whenever it changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// RebuildFunc is called once per settled burst of file changes.
type RebuildFunc func(path string) error

// Watcher runs a RebuildFunc for a single file.
type Watcher struct {
	path     string
	debounce time.Duration
	rebuild  RebuildFunc
	log      *zap.Logger
}

// New returns a watcher for path. Events closer together than debounce are
// coalesced into one rebuild.
func New(path string, debounce time.Duration, rebuild RebuildFunc, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		rebuild:  rebuild,
		log:      log,
	}
}

// Run rebuilds once immediately, then on every change until ctx is done.
// Rebuild errors are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	// Watch the directory: editors often replace the file instead of writing it.
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	w.runRebuild()

	// idle until the first relevant event arms it
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-fsw.Events:
			if !ok {
				return errors.New("watcher event channel closed")
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug("change detected", zap.String("path", e.Name), zap.Stringer("op", e.Op))
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-timer.C:
			w.runRebuild()
		}
	}
}

func (w *Watcher) runRebuild() {
	start := time.Now()
	if err := w.rebuild(w.path); err != nil {
		w.log.Error("rebuild failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.log.Info("rebuilt", zap.String("path", w.path), zap.Duration("took", time.Since(start)))
}
