package jsonfile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/logger"
)

// ChangeFunc is called with the domain whose dataset file changed.
type ChangeFunc func(t domain.ContentType)

// Watcher reports changes to the dataset files of a data directory.
// The directory is watched rather than each file so editors that replace
// files atomically are still observed.
type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	onChange ChangeFunc

	done chan struct{}
	once sync.Once
}

// NewWatcher starts watching dir. onChange runs on the watcher goroutine.
func NewWatcher(dir string, onChange ChangeFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	return &Watcher{
		dir:      dir,
		watcher:  fw,
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

// Run dispatches file events until ctx is cancelled or Close is called.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if t, changed := w.handleEvent(event); changed && w.onChange != nil {
				logger.Debug("dataset %s changed (%s)", t, event.Op)
				w.onChange(t)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("dataset watcher: %v", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

// handleEvent maps a file event to the domain whose dataset it touched.
// Chmod events and files that are not datasets are ignored.
func (w *Watcher) handleEvent(event fsnotify.Event) (domain.ContentType, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}

	base := filepath.Base(event.Name)
	if !strings.HasSuffix(base, fileExt) {
		return "", false
	}
	t := domain.ContentType(strings.TrimSuffix(base, fileExt))
	if !t.IsValid() {
		return "", false
	}
	return t, true
}
