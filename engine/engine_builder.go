package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/loader"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfilerInterval sets how often profiling stats are logged. Defaults to one second.
func WithProfilerInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profilerInterval = interval
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithWindowOptions forwards options to the window the engine creates. Ignored with WithWindow.
func WithWindowOptions(options ...window.WindowBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.windowOptions = append(e.windowOptions, options...)
	}
}

// WithDevice sets the device instead of creating one for the backend type.
func WithDevice(d backend.Device) EngineBuilderOption {
	return func(e *engine) {
		e.device = d
	}
}

// WithBackend selects the device implementation. Defaults to backend.BackendTypeGL.
//
// Parameters:
//   - bt: the backend type
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithBackend(bt backend.BackendType) EngineBuilderOption {
	return func(e *engine) {
		e.backendType = bt
	}
}

// WithVSync enables or disables vertical sync. Defaults to enabled.
func WithVSync(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.vsync = enabled
	}
}

// WithMSAA sets the multisample count of the main surface. Values below 2 disable MSAA.
func WithMSAA(samples int) EngineBuilderOption {
	return func(e *engine) {
		e.msaa = samples
	}
}

// WithRenderMode selects continuous or on-demand drawing. Defaults to RenderModeContinuously.
func WithRenderMode(mode RenderMode) EngineBuilderOption {
	return func(e *engine) {
		e.renderMode = mode
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithClearColor sets the initial clear color of the frame renderer.
func WithClearColor(c common.Color) EngineBuilderOption {
	return func(e *engine) {
		e.clearColor = &c
	}
}

// WithLoader sets the shader source loader, for example one over an embedded file system.
func WithLoader(l loader.Loader) EngineBuilderOption {
	return func(e *engine) {
		e.loader = l
	}
}

// WithShaderDir loads shaders from a directory on disk. Without WithLoader a loader is created
// over the directory; with WithHotReload the directory is also watched.
func WithShaderDir(dir string) EngineBuilderOption {
	return func(e *engine) {
		e.shaderDir = dir
	}
}

// WithHotReload enables recompiling shaders when files in the shader directory change.
func WithHotReload(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.hotReload = enabled
	}
}

// WithLogger sets the logger passed to every engine component. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}

// WithClock replaces time.Now for frame deltas.
func WithClock(now func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		e.now = now
	}
}
