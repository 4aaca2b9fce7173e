package engine

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/loader"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/shader"
)

// initLoader builds the loader from the shader directory when no loader was injected, and starts
// watching the directory when hot reload is on.
func (e *engine) initLoader() error {
	if e.loader == nil && e.shaderDir != "" {
		l, err := loader.NewLoader(os.DirFS(e.shaderDir), loader.WithLogger(e.logger))
		if err != nil {
			return fmt.Errorf("shader dir %s: %w", e.shaderDir, err)
		}
		e.loader = l
	}
	if !e.hotReload {
		return nil
	}
	if e.loader == nil || e.shaderDir == "" {
		e.logger.Warn("hot reload needs a shader directory, disabled")
		return nil
	}
	w, err := loader.NewWatcher(e.shaderDir, e.loader,
		loader.WithWatcherLogger(e.logger),
		loader.WithNotify(e.RequestRender),
	)
	if err != nil {
		return err
	}
	e.watcher = w
	return nil
}

func (e *engine) language() loader.Language {
	return loader.Language(e.device.Caps().ShaderLanguage)
}

func (e *engine) LoadShader(name string, options ...shader.ShaderBuilderOption) (shader.Shader, error) {
	if e.loader == nil {
		return nil, fmt.Errorf("%w: %q (no loader configured)", loader.ErrShaderNotFound, name)
	}
	lang := e.language()
	src, err := e.loader.Source(name, lang)
	if err != nil {
		return nil, err
	}
	chunks, err := e.loader.Chunks(lang)
	if err != nil {
		return nil, err
	}

	pp := shader.NewPreProcessor(chunks)
	opts := append([]shader.ShaderBuilderOption{
		shader.WithSource(src.Vertex, src.Fragment),
		shader.WithPreProcessor(pp),
		shader.WithLogger(e.logger),
	}, options...)
	sh := shader.NewShader(e.device, name, opts...)
	if err := sh.Load(); err != nil {
		return nil, err
	}
	e.shaders[name] = append(e.shaders[name], loadedShader{shader: sh, pp: pp})
	return sh, nil
}

func (e *engine) ReloadShaders(names ...string) {
	if e.loader == nil {
		return
	}
	if len(names) == 0 {
		for name := range e.shaders {
			names = append(names, name)
		}
	}
	e.loader.Invalidate(names...)

	lang := e.language()
	chunks, err := e.loader.Chunks(lang)
	if err != nil {
		e.logger.Warn("shader chunks unreadable, keeping previous programs", "err", err)
		return
	}
	for _, name := range names {
		list := e.shaders[name]
		if len(list) == 0 {
			continue
		}
		src, err := e.loader.Source(name, lang)
		if err != nil {
			e.logger.Warn("shader source unreadable, keeping previous program", "shader", name, "err", err)
			continue
		}
		for _, ls := range list {
			for k, v := range chunks {
				ls.pp.RegisterChunk(k, v)
			}
			ls.shader.SetSource(src.Vertex, src.Fragment)
			if err := ls.shader.Reload(); err != nil {
				e.logger.Warn("shader reload failed, keeping previous program", "shader", name, "err", err)
				continue
			}
			e.logger.Info("shader reloaded", "shader", name)
		}
	}
	e.RequestRender()
}
