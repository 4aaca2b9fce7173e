package window

import (
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// ClientAPI selects the graphics API the window's surface is created for.
type ClientAPI int

const (
	// ClientAPIOpenGL creates an OpenGL 3.3 core context bound to the window.
	ClientAPIOpenGL ClientAPI = iota

	// ClientAPINone creates no context; the surface is driven by WebGPU.
	ClientAPINone
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
//
// Every method must be called from the thread that created the window.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetTouchCallback sets the callback for pointer gestures. The left mouse button acts as a finger:
	// press is down, drag is move, release is up, and losing focus mid-gesture is cancel.
	//
	// Parameters:
	//   - callback: function receiving the touch event
	SetTouchCallback(callback func(e input.TouchEvent))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up, negative = down)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// ClientAPI returns the API the window was created for.
	ClientAPI() ClientAPI

	// MakeContextCurrent binds the window's OpenGL context to the calling thread. It is a no-op for
	// ClientAPINone windows.
	MakeContextCurrent()

	// SwapBuffers presents the back buffer of an OpenGL window.
	SwapBuffers()

	// SetSwapInterval sets the number of vblanks to wait per SwapBuffers, 0 to disable vsync.
	SetSwapInterval(interval int)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// PollEvents processes pending events without blocking.
	PollEvents()

	// WaitEvents blocks until at least one event arrives, then processes it.
	WaitEvents()

	// PostEmptyEvent wakes a WaitEvents call. It is the only method safe to call from any goroutine.
	PostEmptyEvent()

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// minWidth and minHeight bound interactive resizing; zero means unbounded.
	minWidth, minHeight int

	// maxWidth and maxHeight bound interactive resizing; zero means unbounded.
	maxWidth, maxHeight int

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	clientAPI ClientAPI
	samples   int
	resizable bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onResize is called when the framebuffer is resized.
	onResize func(width, height int)

	// onTouch is called for left mouse gestures.
	onTouch func(e input.TouchEvent)

	// onScroll is called for mouse wheel events.
	onScroll func(delta float32)

	// onKeyDown is called when a key is pressed.
	onKeyDown func(keyCode uint32)

	// onKeyUp is called when a key is released.
	onKeyUp func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the window
//   - error: error if the platform window or its context could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "oxy shaderlab",
		minWidth:  200,
		minHeight: 200,
		width:     1280,
		height:    720,
		resizable: true,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetTouchCallback(callback func(e input.TouchEvent)) {
	w.onTouch = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) ClientAPI() ClientAPI {
	return w.clientAPI
}

func (w *engineWindow) MakeContextCurrent() {
	platformMakeContextCurrent(w)
}

func (w *engineWindow) SwapBuffers() {
	platformSwapBuffers(w)
}

func (w *engineWindow) SetSwapInterval(interval int) {
	platformSetSwapInterval(w, interval)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) PollEvents() {
	platformPollEvents()
}

func (w *engineWindow) WaitEvents() {
	platformWaitEvents()
}

func (w *engineWindow) PostEmptyEvent() {
	platformPostEmptyEvent()
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// touch emits a touch event when a callback is set.
func (w *engineWindow) touch(action input.Action, x, y float64) {
	if w.onTouch != nil {
		w.onTouch(input.TouchEvent{Action: action, X: float32(x), Y: float32(y)})
	}
}
