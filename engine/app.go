package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/input"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/loader"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/scene"
)

// RenderMode selects when the engine draws.
type RenderMode int

const (
	// RenderModeContinuously draws every loop iteration.
	RenderModeContinuously RenderMode = iota

	// RenderModeWhenDirty sleeps in the window event loop and draws only after RequestRender, input,
	// a resize, a shader reload, or while an animator is running.
	RenderModeWhenDirty
)

func (m RenderMode) String() string {
	if m == RenderModeWhenDirty {
		return "when_dirty"
	}
	return "continuously"
}

// App is a sample driven by the engine. Every callback runs on the render thread.
type App interface {
	// OnSurfaceCreated loads shaders and builds the scene. It runs before the first resize and again
	// after RecreateSurface, when every earlier shader and mesh handle is gone and the scene built by
	// the previous call is still in place.
	OnSurfaceCreated(h Host) error

	// OnSurfaceChanged rebuilds cameras and aspect dependent geometry for a new surface size.
	OnSurfaceChanged(h Host, width, height int) error

	// OnTouch handles one pointer event drained from the input queue.
	OnTouch(h Host, e input.TouchEvent)
}

// KeyHandler is implemented by apps that want key presses the engine does not consume.
type KeyHandler interface {
	OnKey(h Host, keyCode uint32)
}

// KeyUpHandler is implemented by apps that want key releases.
type KeyUpHandler interface {
	OnKeyUp(h Host, keyCode uint32)
}

// ScrollHandler is implemented by apps that react to the mouse wheel.
type ScrollHandler interface {
	// OnScroll receives the vertical wheel offset, positive away from the user.
	OnScroll(h Host, delta float32)
}

// Releaser is implemented by apps holding resources to free on shutdown.
type Releaser interface {
	Release()
}

// Host is the engine as seen by an App.
type Host interface {
	// Device returns the GPU device.
	Device() backend.Device

	// Caps returns the device capabilities.
	Caps() backend.Caps

	// Renderer returns the frame renderer; apps register animators and set the clear color on it.
	Renderer() renderer.FrameRenderer

	// Scene returns the scene manager drawn every frame.
	Scene() scene.Manager

	// Loader returns the shader source loader, or nil when none is configured.
	Loader() loader.Loader

	// LoadShader reads a shader from the loader in the device's language, compiles it, and
	// registers it for hot reload.
	//
	// Parameters:
	//   - name: the shader name in the manifest
	//   - options: extra options passed to shader.NewShader
	//
	// Returns:
	//   - shader.Shader: the loaded shader
	//   - error: a loader error or a *shader.CompileError
	LoadShader(name string, options ...shader.ShaderBuilderOption) (shader.Shader, error)

	// RequestRender asks for another frame. It is safe to call from any goroutine.
	RequestRender()

	// Logger returns the engine logger.
	Logger() *slog.Logger
}
