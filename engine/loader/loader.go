// Package loader reads shader sources from a file system described by a manifest, and watches a
// directory for changes to hot reload them.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"path"
	"slices"
	"sync"
)

var (
	// ErrShaderNotFound is returned when a name or index is not in the manifest, or the shader has
	// no source for the requested language.
	ErrShaderNotFound = errors.New("loader: shader not found")

	// ErrUnsupportedManifest is returned for manifest files that are neither TOML nor YAML.
	ErrUnsupportedManifest = errors.New("loader: unsupported manifest format")

	// ErrNoManifest is returned when none of the default manifest names exist.
	ErrNoManifest = errors.New("loader: no manifest found")
)

// DefaultManifestNames are tried in order when no manifest is given.
var DefaultManifestNames = []string{"shaders.toml", "shaders.yaml", "shaders.yml"}

// Source is the text of one shader in one language.
type Source struct {
	Name     string
	Language Language
	Vertex   string
	Fragment string
	Paths    StagePaths
}

type cacheKey struct {
	name string
	lang Language
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	fsys         fs.FS
	manifestPath string
	manifest     Manifest
	logger       *slog.Logger

	sourceCache map[cacheKey]Source
}

// Loader provides shader sources by logical name. Sources are read lazily and cached until
// Invalidate; the core treats them as opaque text.
//
// It is safe for concurrent use.
type Loader interface {
	// Source returns the vertex and fragment text of a shader.
	//
	// Parameters:
	//   - name: the shader name from the manifest
	//   - lang: the source language
	//
	// Returns:
	//   - Source: the shader source
	//   - error: ErrShaderNotFound, or a read error
	Source(name string, lang Language) (Source, error)

	// SourceAt returns the source of the index-th shader in manifest order.
	//
	// Parameters:
	//   - index: the manifest position
	//   - lang: the source language
	//
	// Returns:
	//   - Source: the shader source
	//   - error: ErrShaderNotFound, or a read error
	SourceAt(index int, lang Language) (Source, error)

	// Names returns the shader names in manifest order.
	Names() []string

	// Chunks reads every include chunk declared for a language.
	//
	// Returns:
	//   - map[string]string: chunk source by include name
	//   - error: a read error
	Chunks(lang Language) (map[string]string, error)

	// Manifest returns the decoded manifest.
	Manifest() Manifest

	// ShadersUsing returns the names of shaders that read the given file, either directly or through
	// a chunk of the same language. The path is relative to the loader's file system root.
	ShadersUsing(file string) []string

	// Invalidate drops cached sources for the given shaders, or for all shaders when none are given.
	Invalidate(names ...string)
}

var _ Loader = &loader{}

// NewLoader creates a Loader over fsys and decodes its manifest.
//
// Parameters:
//   - fsys: the file system holding the manifest and the sources, e.g. an embed.FS or os.DirFS
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the loader
//   - error: ErrNoManifest, ErrUnsupportedManifest, or a decode error
func NewLoader(fsys fs.FS, options ...LoaderBuilderOption) (Loader, error) {
	l := &loader{
		fsys:        fsys,
		sourceCache: make(map[cacheKey]Source),
	}
	for _, option := range options {
		option(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}

	if l.manifestPath == "" {
		for _, name := range DefaultManifestNames {
			if _, err := fs.Stat(fsys, name); err == nil {
				l.manifestPath = name
				break
			}
		}
		if l.manifestPath == "" {
			return nil, ErrNoManifest
		}
	}

	backend, err := resolveBackend(l.manifestPath)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, l.manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", l.manifestPath, err)
	}
	l.manifest, err = backend.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", l.manifestPath, err)
	}
	return l, nil
}

func (l *loader) Source(name string, lang Language) (Source, error) {
	key := cacheKey{name: name, lang: lang}
	l.mu.RLock()
	if cached, ok := l.sourceCache[key]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	entry, ok := l.entry(name)
	if !ok {
		return Source{}, fmt.Errorf("%w: %q", ErrShaderNotFound, name)
	}
	paths, ok := entry.Paths(lang)
	if !ok {
		return Source{}, fmt.Errorf("%w: %q has no %s source", ErrShaderNotFound, name, lang)
	}

	vs, err := fs.ReadFile(l.fsys, paths.Vertex)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read %s: %w", paths.Vertex, err)
	}
	fragment := vs
	if paths.Fragment != paths.Vertex {
		fragment, err = fs.ReadFile(l.fsys, paths.Fragment)
		if err != nil {
			return Source{}, fmt.Errorf("failed to read %s: %w", paths.Fragment, err)
		}
	}

	src := Source{Name: name, Language: lang, Vertex: string(vs), Fragment: string(fragment), Paths: paths}
	l.mu.Lock()
	l.sourceCache[key] = src
	l.mu.Unlock()

	l.logger.Debug("shader source read", "shader", name, "lang", lang)
	return src, nil
}

func (l *loader) SourceAt(index int, lang Language) (Source, error) {
	if index < 0 || index >= len(l.manifest.Shaders) {
		return Source{}, fmt.Errorf("%w: index %d", ErrShaderNotFound, index)
	}
	return l.Source(l.manifest.Shaders[index].Name, lang)
}

func (l *loader) entry(name string) (ShaderEntry, bool) {
	for _, e := range l.manifest.Shaders {
		if e.Name == name {
			return e, true
		}
	}
	return ShaderEntry{}, false
}

func (l *loader) Names() []string {
	names := make([]string, 0, len(l.manifest.Shaders))
	for _, e := range l.manifest.Shaders {
		names = append(names, e.Name)
	}
	return names
}

func (l *loader) Chunks(lang Language) (map[string]string, error) {
	decl := l.manifest.Chunks[string(lang)]
	out := make(map[string]string, len(decl))
	for _, name := range slices.Sorted(maps.Keys(decl)) {
		data, err := fs.ReadFile(l.fsys, decl[name])
		if err != nil {
			return nil, fmt.Errorf("failed to read chunk %s: %w", name, err)
		}
		out[name] = string(data)
	}
	return out, nil
}

func (l *loader) Manifest() Manifest {
	return l.manifest
}

func (l *loader) ShadersUsing(file string) []string {
	file = path.Clean(file)
	var names []string
	for _, e := range l.manifest.Shaders {
		for _, lang := range []Language{LanguageGLSL, LanguageWGSL} {
			if l.uses(e, lang, file) {
				names = append(names, e.Name)
				break
			}
		}
	}
	return names
}

func (l *loader) uses(e ShaderEntry, lang Language, file string) bool {
	p, ok := e.Paths(lang)
	if !ok {
		return false
	}
	if path.Clean(p.Vertex) == file || path.Clean(p.Fragment) == file {
		return true
	}
	// Chunks are not traced per shader; a chunk change reloads every shader of its language.
	for _, c := range l.manifest.Chunks[string(lang)] {
		if path.Clean(c) == file {
			return true
		}
	}
	return false
}

func (l *loader) Invalidate(names ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(names) == 0 {
		clear(l.sourceCache)
		return
	}
	for key := range l.sourceCache {
		if slices.Contains(names, key.name) {
			delete(l.sourceCache, key)
		}
	}
}
