package assets

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/plus3/ooftn2d/ecs"
)

// Watcher caches modification times from an underlying FileReader and
// drops a cached entry when fsnotify reports a change to the file. The
// directory of every successfully queried path is watched.
//
// Watcher implements FileReader, so it can be handed to NewManager in
// place of the reader it wraps.
type Watcher struct {
	reader  FileReader
	root    string
	watcher *fsnotify.Watcher

	mu    sync.Mutex
	cache map[string]time.Time
	dirs  map[string]bool
}

// NewWatcher wraps reader. root is the directory reader resolves relative
// paths against, used to map fsnotify events back to asset paths.
func NewWatcher(reader FileReader, root string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		reader:  reader,
		root:    root,
		watcher: fw,
		cache:   make(map[string]time.Time),
		dirs:    make(map[string]bool),
	}, nil
}

// ModTime returns the cached modification time of path, querying the
// wrapped reader on a miss. Failed queries are not cached.
func (w *Watcher) ModTime(path string) (time.Time, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ts, ok := w.cache[path]; ok {
		return ts, nil
	}

	ts, err := w.reader.ModTime(path)
	if err != nil {
		return ts, err
	}
	w.cache[path] = ts
	w.watchDir(filepath.Dir(w.fullPath(path)))
	return ts, nil
}

func (w *Watcher) fullPath(path string) string {
	if w.root == "" || filepath.IsAbs(path) {
		return filepath.FromSlash(path)
	}
	return filepath.Join(w.root, filepath.FromSlash(path))
}

// watchDir must be called with mu held.
func (w *Watcher) watchDir(dir string) {
	if w.dirs[dir] {
		return
	}
	if err := w.watcher.Add(dir); err != nil {
		ecs.Logger().Debug("asset watch failed", slog.String("dir", dir), slog.Any("error", err))
		return
	}
	w.dirs[dir] = true
}

// Cached reports whether path currently has a cached timestamp.
func (w *Watcher) Cached(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.cache[path]
	return ok
}

func (w *Watcher) invalidate(name string) {
	path := name
	if w.root != "" {
		if rel, err := filepath.Rel(w.root, name); err == nil {
			path = filepath.ToSlash(rel)
		}
	}

	w.mu.Lock()
	_, hit := w.cache[path]
	delete(w.cache, path)
	delete(w.cache, name)
	w.mu.Unlock()

	if hit {
		ecs.Logger().Debug("asset changed", slog.String("path", path))
	}
}

// Run processes file system events until ctx is done or the watcher is
// closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Chmod) != 0 {
				w.invalidate(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			ecs.Logger().Warn("asset watcher error", slog.Any("error", err))
		}
	}
}

// Close stops watching every directory.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
