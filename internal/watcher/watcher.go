// Package watcher reports debounced changes to a single model file.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher watches one file through its parent directory, so editors
// that replace the file instead of writing in place are still seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	log      *zap.Logger
}

// New creates a watcher for path. Events closer together than debounce
// collapse into one callback.
func New(path string, debounce time.Duration, log *zap.Logger) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(absPath)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	return &FileWatcher{
		watcher:  w,
		path:     absPath,
		debounce: debounce,
		log:      log,
	}, nil
}

// Run calls onChange after each burst of writes to the file until ctx is
// done. Callbacks run on the calling goroutine, one at a time.
func (fw *FileWatcher) Run(ctx context.Context, onChange func(path string)) error {
	defer fw.watcher.Close()

	// fire is nil while no change is pending.
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			// Only trigger on write or create events
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fw.log.Debug("file event", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			fire = time.After(fw.debounce)

		case <-fire:
			fire = nil
			onChange(fw.path)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// Path returns the absolute path being watched.
func (fw *FileWatcher) Path() string {
	return fw.path
}
