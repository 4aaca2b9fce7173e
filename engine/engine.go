// Package engine hosts an App: it owns the window, the device, the scene and the frame renderer,
// and runs the single threaded event and draw loop.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/input"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/loader"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/profiler"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/scene"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/window"
)

// loadedShader is a shader created through LoadShader together with its pre-processor, so a
// reload can refresh the include chunks.
type loadedShader struct {
	shader shader.Shader
	pp     shader.PreProcessor
}

// engine implements the Engine and Host interfaces.
type engine struct {
	app    App
	logger *slog.Logger

	window        window.Window
	windowOptions []window.WindowBuilderOption
	device        backend.Device
	backendType   backend.BackendType
	vsync         bool
	msaa          int

	renderer   renderer.FrameRenderer
	scene      scene.Manager
	clearColor *common.Color

	loader    loader.Loader
	shaderDir string
	hotReload bool
	watcher   *loader.Watcher
	shaders   map[string][]loadedShader

	touches *input.Queue
	dirty   atomic.Bool
	paused  bool

	renderMode       RenderMode
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	profiler         *profiler.Profiler
	profilerInterval time.Duration
	profilingEnabled bool

	now       func() time.Time
	lastFrame time.Time

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	// windowMu guards windowClosed so no goroutine posts to a window release has closed.
	windowMu     sync.Mutex
	windowClosed bool
}

// Engine is the main entry point for the engine.
// It orchestrates the surface lifecycle, input marshalling and the draw loop.
type Engine interface {
	Host

	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Run calls OnSurfaceCreated and OnSurfaceChanged, then draws until the window closes, Quit is
	// called or ctx is done. It must be called from the thread that created the window.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: an error from the App's surface callbacks or the first frame error that is not
	//     renderer.ErrResourceUnavailable
	Run(ctx context.Context) error

	// Step drains input and shader changes, then draws one frame.
	//
	// Returns:
	//   - error: a frame error other than renderer.ErrResourceUnavailable
	Step() error

	// Quit stops Run. Safe to call multiple times and from any goroutine.
	Quit()

	// RecreateSurface rebuilds everything bound to the GPU context after it was lost. Mesh and shader
	// handles are forgotten without being deleted, and the App gets OnSurfaceCreated and
	// OnSurfaceChanged again, as on startup. Step calls it when the device reports
	// backend.ErrSurfaceLost.
	//
	// Returns:
	//   - error: an error from the App's surface callbacks
	RecreateSurface() error

	// SetRenderMode switches between continuous and on-demand drawing.
	SetRenderMode(mode RenderMode)

	// RenderMode returns the current render mode.
	RenderMode() RenderMode

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// ReloadShaders re-reads and recompiles the named shaders, or every loaded shader when no name is
	// given. A shader whose new source fails keeps its previous program.
	ReloadShaders(names ...string)

	// Paused reports whether animators are frozen.
	Paused() bool

	// SetPaused freezes or resumes the animators. Update and draw passes still run.
	SetPaused(paused bool)
}

var _ Engine = &engine{}

// NewEngine creates a new Engine for app with the provided options. Unless WithWindow and
// WithDevice are given it creates a GLFW window and a device of the configured backend, so it
// must be called on the main thread.
//
// Parameters:
//   - app: the sample to host
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: error if the window, device, loader or watcher could not be created
func NewEngine(app App, options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		app:         app,
		backendType: backend.BackendTypeGL,
		vsync:       true,
		scene:       scene.NewManager(),
		shaders:     make(map[string][]loadedShader),
		touches:     input.NewQueue(256),
		now:         time.Now,
		quitChannel: make(chan struct{}),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger), profiler.WithInterval(e.profilerInterval))

	if e.window == nil {
		api := window.ClientAPIOpenGL
		if e.backendType == backend.BackendTypeWGPU {
			api = window.ClientAPINone
		}
		opts := append([]window.WindowBuilderOption{window.WithClientAPI(api), window.WithSamples(e.msaa)}, e.windowOptions...)
		w, err := window.NewWindow(opts...)
		if err != nil {
			return nil, err
		}
		e.window = w
	}
	if e.device == nil {
		dev, err := newDevice(e.backendType, e.window, e.vsync, e.msaa, e.logger)
		if err != nil {
			e.window.Close()
			return nil, err
		}
		e.device = dev
	}

	if e.renderer == nil {
		e.renderer = renderer.NewFrameRenderer(e.device, renderer.WithLogger(e.logger))
	}
	if e.clearColor != nil {
		e.renderer.SetClearColor(*e.clearColor)
	}

	if err := e.initLoader(); err != nil {
		e.release()
		return nil, err
	}

	e.window.SetResizeCallback(e.surfaceChanged)
	e.window.SetTouchCallback(func(ev input.TouchEvent) {
		e.touches.Push(ev)
		e.RequestRender()
	})
	e.window.SetKeyDownCallback(e.keyDown)
	e.window.SetKeyUpCallback(e.keyUp)
	e.window.SetScrollCallback(e.scroll)
	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Device() backend.Device {
	return e.device
}

func (e *engine) Caps() backend.Caps {
	return e.device.Caps()
}

func (e *engine) Renderer() renderer.FrameRenderer {
	return e.renderer
}

func (e *engine) Scene() scene.Manager {
	return e.scene
}

func (e *engine) Loader() loader.Loader {
	return e.loader
}

func (e *engine) Logger() *slog.Logger {
	return e.logger
}

func (e *engine) RequestRender() {
	if !e.dirty.Swap(true) {
		e.postEmptyEvent()
	}
}

func (e *engine) postEmptyEvent() {
	e.windowMu.Lock()
	defer e.windowMu.Unlock()
	if !e.windowClosed {
		e.window.PostEmptyEvent()
	}
}

func (e *engine) Run(ctx context.Context) error {
	defer e.release()
	if r, ok := e.app.(Releaser); ok {
		defer r.Release()
	}

	if err := e.surfaceCreated(); err != nil {
		return err
	}

	// Both goroutines may post to the window, so they are stopped before release closes it.
	loopDone := make(chan struct{})
	watchCtx, stopWatch := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		close(loopDone)
		stopWatch()
		wg.Wait()
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			e.Quit()
		case <-e.quitChannel:
		case <-loopDone:
		}
	}()
	if e.watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := e.watcher.Run(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
				e.logger.Warn("shader watcher stopped", "err", err)
			}
		}()
	}

	e.lastFrame = e.now()
	e.dirty.Store(true)
	for e.window.IsRunning() && !e.quitting() {
		frameStart := e.now()
		if e.renderMode == RenderModeWhenDirty && !e.dirty.Load() {
			e.window.WaitEvents()
		} else {
			e.window.PollEvents()
		}
		if !e.window.IsRunning() || e.quitting() {
			break
		}
		if e.renderMode == RenderModeWhenDirty && !e.dirty.Load() {
			continue
		}
		if err := e.Step(); err != nil {
			return err
		}

		// Frame rate limiting
		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - e.now().Sub(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
	return nil
}

func (e *engine) Step() error {
	e.dirty.Store(false)
	now := e.now()
	delta := now.Sub(e.lastFrame)
	e.lastFrame = now

	for _, ev := range e.touches.Drain() {
		e.app.OnTouch(e, ev)
	}
	if e.watcher != nil {
		if names := e.watcher.Drain(); len(names) > 0 {
			e.ReloadShaders(names...)
		}
	}

	var err error
	if e.paused {
		if err = e.renderer.UpdateScene(e.scene); err == nil {
			err = e.renderer.DrawScene(e.scene)
		}
	} else {
		var more bool
		more, err = e.renderer.Frame(e.scene, delta)
		if more {
			e.dirty.Store(true)
		}
	}
	switch {
	case errors.Is(err, renderer.ErrResourceUnavailable):
		e.logger.Debug("frame skipped", "err", err)
	case errors.Is(err, backend.ErrSurfaceLost):
		e.logger.Warn("surface lost, recreating", "err", err)
		return e.RecreateSurface()
	case err != nil:
		return fmt.Errorf("draw frame: %w", err)
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}
	return nil
}

// surfaceCreated runs the App's OnSurfaceCreated and its first OnSurfaceChanged.
func (e *engine) surfaceCreated() error {
	if err := e.app.OnSurfaceCreated(e); err != nil {
		return fmt.Errorf("surface created: %w", err)
	}
	// A configured clear color wins over the one the app picked.
	if e.clearColor != nil {
		e.renderer.SetClearColor(*e.clearColor)
	}
	return e.surfaceChangedErr(e.window.Width(), e.window.Height())
}

func (e *engine) RecreateSurface() error {
	_ = e.scene.Walk(func(n scene.Node) {
		if o, ok := n.(scene.Object); ok && o.Mesh() != nil {
			o.Mesh().Invalidate()
		}
	})
	for _, list := range e.shaders {
		for _, ls := range list {
			ls.shader.Invalidate()
		}
	}
	// The App loads its shaders again in OnSurfaceCreated.
	clear(e.shaders)
	e.renderer.Reset()
	e.logger.Info("surface recreated")
	return e.surfaceCreated()
}

func (e *engine) surfaceChanged(width, height int) {
	if err := e.surfaceChangedErr(width, height); err != nil {
		e.logger.Error("surface change failed", "width", width, "height", height, "err", err)
	}
}

func (e *engine) surfaceChangedErr(width, height int) error {
	e.renderer.Resize(width, height)
	e.RequestRender()
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := e.app.OnSurfaceChanged(e, width, height); err != nil {
		return fmt.Errorf("surface changed: %w", err)
	}
	return nil
}

func (e *engine) keyDown(keyCode uint32) {
	switch keyCode {
	case common.KeyP:
		e.SetPaused(!e.paused)
	case common.KeyR:
		e.ReloadShaders()
	case common.KeySpace:
		e.RequestRender()
	case common.KeyF5:
		if err := e.RecreateSurface(); err != nil {
			e.logger.Error("recreate surface failed", "err", err)
		}
		e.RequestRender()
	default:
		if kh, ok := e.app.(KeyHandler); ok {
			kh.OnKey(e, keyCode)
			e.RequestRender()
		}
	}
}

func (e *engine) keyUp(keyCode uint32) {
	if kh, ok := e.app.(KeyUpHandler); ok {
		kh.OnKeyUp(e, keyCode)
		e.RequestRender()
	}
}

func (e *engine) scroll(delta float32) {
	if sh, ok := e.app.(ScrollHandler); ok {
		sh.OnScroll(e, delta)
		e.RequestRender()
	}
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
		e.postEmptyEvent()
	})
}

func (e *engine) quitting() bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

func (e *engine) SetRenderMode(mode RenderMode) {
	e.renderMode = mode
	e.RequestRender()
}

func (e *engine) RenderMode() RenderMode {
	return e.renderMode
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Paused() bool {
	return e.paused
}

func (e *engine) SetPaused(paused bool) {
	e.paused = paused
	e.logger.Info("animators paused", "paused", paused)
	e.RequestRender()
}

// release frees the shaders, the watcher, the device and the window, in that order.
func (e *engine) release() {
	for _, list := range e.shaders {
		for _, ls := range list {
			ls.shader.Release()
		}
	}
	clear(e.shaders)
	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			e.logger.Warn("close shader watcher", "err", err)
		}
		e.watcher = nil
	}
	if e.device != nil {
		e.device.Release()
	}
	if e.window != nil {
		e.windowMu.Lock()
		e.windowClosed = true
		e.windowMu.Unlock()
		if err := e.window.Close(); err != nil {
			e.logger.Warn("close window", "err", err)
		}
	}
}
