package docstore

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/fsnotify/fsnotify"
	"github.com/panjf2000/ants/v2"
)

// Watcher monitors a directory and keeps the store in sync with it:
// created and modified files are re-ingested, removed files are evicted.
// Ingestion runs on a worker pool so a burst of file events does not
// serialize behind PDF extraction.
type Watcher struct {
	loader     *Loader
	store      *Store
	fsWatcher  *fsnotify.Watcher
	pool       *ants.Pool
	extensions []string
	logger     *slog.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher) error

// WithExtensions sets the file extensions to ingest.
// Default is ".pdf", ".txt", ".md".
func WithExtensions(extensions []string) WatcherOption {
	return func(w *Watcher) error {
		if len(extensions) > 0 {
			w.extensions = extensions
		}
		return nil
	}
}

// WithPoolSize sets the ingestion worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) WatcherOption {
	return func(w *Watcher) error {
		if size < 1 {
			size = 1
		}
		if w.pool != nil {
			w.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		w.pool = pool
		return nil
	}
}

// WithWatcherLogger sets a custom logger.
// Default is slog.Default().
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
		return nil
	}
}

// NewWatcher creates a directory watcher feeding the given loader.
func NewWatcher(loader *Loader, store *Store, opts ...WatcherOption) (*Watcher, error) {
	if loader == nil {
		return nil, ErrLoaderRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	w := &Watcher{
		loader:     loader,
		store:      store,
		fsWatcher:  fsWatcher,
		pool:       pool,
		extensions: []string{".pdf", ".txt", ".md"},
		logger:     slog.Default().With("component", "docwatcher"),
	}

	for _, opt := range opts {
		if err := opt(w); err != nil {
			w.Close()
			return nil, err
		}
	}

	return w, nil
}

// Watch starts monitoring dir until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				w.handleEvent(event)
			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("watcher error", "err", err)
			}
		}
	}()

	w.logger.Info("watching directory", "dir", dir)
	return nil
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.isWatchedExtension(event.Name) {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		path := event.Name
		if err := w.pool.Submit(func() {
			if _, err := w.loader.LoadFile(path); err != nil {
				w.logger.Warn("auto-ingest failed", "path", path, "err", err)
			}
		}); err != nil {
			w.logger.Warn("ingest pool rejected task", "path", path, "err", err)
		}
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		if w.store.RemoveByFilename(filepath.Base(event.Name)) {
			w.logger.Info("document evicted", "path", event.Name)
		}
	}
}

func (w *Watcher) isWatchedExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Close stops the watcher and releases the worker pool.
func (w *Watcher) Close() error {
	if w.pool != nil {
		w.pool.Release()
	}
	return w.fsWatcher.Close()
}
