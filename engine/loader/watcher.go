package loader

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports shaders whose files changed on disk. Events arrive on the watcher goroutine and
// are queued; the render thread collects them with Drain.
type Watcher struct {
	mu      sync.Mutex
	pending map[string]struct{}

	watcher *fsnotify.Watcher
	root    string
	loader  Loader
	logger  *slog.Logger
	notify  func()
}

// NewWatcher watches root and its subdirectories. root must be the directory the loader's file
// system was opened on, e.g. the argument to os.DirFS.
//
// Parameters:
//   - root: the directory to watch
//   - l: the loader used to map files to shader names
//   - options: a variadic list of WatcherBuilderOption functions
//
// Returns:
//   - *Watcher: the watcher, idle until Run
//   - error: error if the OS watcher cannot be created
func NewWatcher(root string, l Loader, options ...WatcherBuilderOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w := &Watcher{
		pending: make(map[string]struct{}),
		watcher: fw,
		root:    root,
		loader:  l,
	}
	for _, option := range options {
		option(w)
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(p)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", root, err)
	}
	return w, nil
}

// Run processes file events until ctx is done or the watcher is closed.
//
// Parameters:
//   - ctx: cancels the loop
//
// Returns:
//   - error: ctx.Err() when cancelled, nil when closed
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("shader watcher error", "err", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		return
	}
	names := w.loader.ShadersUsing(filepath.ToSlash(rel))
	if len(names) == 0 {
		return
	}

	w.mu.Lock()
	for _, n := range names {
		w.pending[n] = struct{}{}
	}
	w.mu.Unlock()
	w.logger.Debug("shader file changed", "file", rel, "shaders", names)
	if w.notify != nil {
		w.notify()
	}
}

// Drain returns the names of shaders changed since the last call, sorted, and invalidates their
// cached sources in the loader.
func (w *Watcher) Drain() []string {
	w.mu.Lock()
	names := slices.Sorted(maps.Keys(w.pending))
	clear(w.pending)
	w.mu.Unlock()

	if len(names) > 0 {
		w.loader.Invalidate(names...)
	}
	return names
}

// Close stops watching. Run returns once the OS watcher is closed.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
