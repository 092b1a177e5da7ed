// File path: internal/watch/watcher.go

// Package watch triggers an index rebuild when the knowledge base file
// changes on disk, so edits to the source articles land without a restart.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/deskmate-ai/deskmate/internal/common"
)

const debounceWindow = 2 * time.Second

// RebuildFunc rebuilds the index from the knowledge base file.
type RebuildFunc func(ctx context.Context) error

// Watcher observes one knowledge base file and invokes rebuild after
// writes, debounced so editors that emit multiple events trigger one
// rebuild.
type Watcher struct {
	path    string
	rebuild RebuildFunc
	fs      *fsnotify.Watcher
}

func New(path string, rebuild RebuildFunc) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, not the file: editors that replace the file
	// via rename would otherwise drop the watch.
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, err
	}
	return &Watcher{path: path, rebuild: rebuild, fs: fs}, nil
}

// Run blocks until ctx is canceled, rebuilding after relevant changes.
func (w *Watcher) Run(ctx context.Context) {
	logger := common.Logger()
	logger.Info("watch: observing knowledge base", "path", w.path)
	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			w.fs.Close()
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("watch: knowledge base changed", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceWindow)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("watch: watcher error", "error", err)
		case <-timerC:
			timer = nil
			timerC = nil
			logger.Info("watch: rebuilding index after knowledge base change")
			if err := w.rebuild(ctx); err != nil {
				logger.Error("watch: rebuild failed; keeping previous index", "error", err)
			}
		}
	}
}
