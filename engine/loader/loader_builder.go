package loader

import "log/slog"

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithManifest is an option builder that sets the manifest path instead of searching
// DefaultManifestNames.
//
// Parameters:
//   - name: the manifest path inside the file system, ending in .toml, .yaml or .yml
//
// Returns:
//   - LoaderBuilderOption: a function that applies the manifest option to a loader
func WithManifest(name string) LoaderBuilderOption {
	return func(l *loader) {
		l.manifestPath = name
	}
}

// WithSource is an option builder that pre-populates the source cache, taking precedence over
// the file system until invalidated.
//
// Parameters:
//   - src: the source to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the source option to a loader
func WithSource(src Source) LoaderBuilderOption {
	return func(l *loader) {
		l.sourceCache[cacheKey{name: src.Name, lang: src.Language}] = src
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		l.logger = logger
	}
}

// WatcherBuilderOption is a functional option for configuring a Watcher via NewWatcher.
type WatcherBuilderOption func(*Watcher)

// WithWatcherLogger sets the watcher's logger. Defaults to slog.Default().
func WithWatcherLogger(logger *slog.Logger) WatcherBuilderOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithNotify sets a function called on the watcher goroutine after a change is queued, typically
// to wake the render loop.
func WithNotify(notify func()) WatcherBuilderOption {
	return func(w *Watcher) {
		w.notify = notify
	}
}
