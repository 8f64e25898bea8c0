// Package follow re-runs a callback whenever a file changes on disk.
package follow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kazuma-desu/showmore/pkg/logger"
)

// ErrNotRegularFile is returned for directories, devices and pipes.
var ErrNotRegularFile = errors.New("only regular files can be followed")

// debounce coalesces the burst of events a single save produces.
const debounce = 100 * time.Millisecond

// Watch calls onChange after path is written or replaced, until ctx is done
// or onChange returns an error. The parent directory is watched so editors
// that save by renaming a temp file over path are picked up too.
func Watch(ctx context.Context, path string, onChange func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Log.Debugw("File event", "file", path, "op", event.Op.String())
			pending = time.After(debounce)

		case <-pending:
			pending = nil
			if err := onChange(); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Warnw("File watcher error", "file", path, "error", err)
		}
	}
}
