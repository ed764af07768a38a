// Package watch notifies the cart store when another process rewrites
// the record file, mirroring the storage events browsers fire across
// tabs. The consistency model stays last-write-wins: the watcher only
// triggers a reload, it never reconciles.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/vegefoods/cart-service/internal/domains/cart/ports"
)

var _ ports.ChangeWatcher = (*FileWatcher)(nil)

// FileWatcher wraps fsnotify around the cart record file. The parent
// directory is watched because atomic saves replace the file by rename.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	logger  *slog.Logger
}

// NewFileWatcher watches the directory containing the record at path.
func NewFileWatcher(path string, logger *slog.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileWatcher{watcher: watcher, path: filepath.Clean(path), logger: logger}, nil
}

// Watch emits one signal per write to the record file until ctx is done.
// Signals are dropped rather than queued when the consumer lags; the
// consumer reloads full state anyway.
func (w *FileWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("cart record watcher error", slog.String("error", err.Error()))
			}
		}
	}()
	return changes, nil
}

// Close releases the underlying fsnotify watcher.
func (w *FileWatcher) Close() error {
	return w.watcher.Close()
}
