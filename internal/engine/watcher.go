package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval is how long to wait after a file change before reloading,
// so editors that write in several steps trigger a single reload.
const debounceInterval = 100 * time.Millisecond

// Watch watches the engine's config file and reloads on changes. It blocks
// until the context is cancelled. A failed reload keeps the previous
// snapshot active and is logged, not fatal.
func (e *Engine) Watch(ctx context.Context) error {
	if e.path == "" {
		return fmt.Errorf("engine has no config path to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors typically replace the file, which would
	// detach a watch on the file itself.
	dir := filepath.Dir(e.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	target := filepath.Clean(e.path)

	e.logger.Info("watching configuration", "path", e.path)

	var reloadC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			reloadC = time.After(debounceInterval)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Error("watcher error", "error", err)

		case <-reloadC:
			reloadC = nil
			if err := e.Reload(ctx); err != nil {
				e.logger.Error("reload failed, keeping previous configuration", "error", err)
			}
		}
	}
}
