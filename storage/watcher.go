package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"bestseller-dashboard/utils"
)

// Invalidator drops cached state derived from a file.
type Invalidator interface {
	Invalidate()
}

// Watcher invalidates a cache whenever the watched file changes on disk.
// Bursts of events are collapsed into one invalidation.
type Watcher struct {
	path     string
	target   Invalidator
	logger   *utils.Logger
	debounce time.Duration
	fw       *fsnotify.Watcher
}

// NewWatcher watches the parent directory of path so that editors which
// replace the file (rename over it) are still noticed.
func NewWatcher(path string, target Invalidator, debounce time.Duration, logger *utils.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watcher: resolve %q: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: create: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watcher: add %q: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		target:   target,
		logger:   logger,
		debounce: debounce,
		fw:       fw,
	}, nil
}

// Run processes events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fw.Close()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("[watcher] %s %s", ev.Op, ev.Name)
			fire = time.After(w.debounce)
		case <-fire:
			fire = nil
			w.target.Invalidate()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("[watcher] %v", err)
		}
	}
}
