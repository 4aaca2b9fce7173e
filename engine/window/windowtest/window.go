// Package windowtest provides a window.Window driven by tests instead of GLFW.
package windowtest

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/input"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window records event pumping and exposes the callbacks the engine registers. OnEvents runs on
// every PollEvents or WaitEvents call with the 1-based call number, which is where a test injects
// input or stops the loop.
type Window struct {
	W, H     int
	Running  bool
	Closed   bool
	Polls    int
	Waits    int
	OnEvents func(n int)

	// Posted counts PostEmptyEvent calls; PostedAfterClose counts the ones made after Close.
	Posted           atomic.Int32
	PostedAfterClose atomic.Int32

	Resize  func(width, height int)
	Touch   func(e input.TouchEvent)
	Scroll  func(delta float32)
	KeyDown func(keyCode uint32)
	KeyUp   func(keyCode uint32)

	closed atomic.Bool
}

var _ window.Window = &Window{}

// New creates a running window of the given size.
func New(width, height int) *Window {
	return &Window{W: width, H: height, Running: true}
}

// StopAfter makes the window stop running on the n-th event pump.
func (w *Window) StopAfter(n int) {
	w.OnEvents = func(i int) {
		if i >= n {
			w.Running = false
		}
	}
}

func (w *Window) events() {
	if w.OnEvents != nil {
		w.OnEvents(w.Polls + w.Waits)
	}
}

func (w *Window) SetResizeCallback(cb func(width, height int)) { w.Resize = cb }
func (w *Window) SetTouchCallback(cb func(e input.TouchEvent)) { w.Touch = cb }
func (w *Window) SetScrollCallback(cb func(delta float32)) { w.Scroll = cb }
func (w *Window) SetKeyDownCallback(cb func(keyCode uint32)) { w.KeyDown = cb }
func (w *Window) SetKeyUpCallback(cb func(keyCode uint32)) { w.KeyUp = cb }
func (w *Window) ClientAPI() window.ClientAPI { return window.ClientAPIOpenGL }
func (w *Window) MakeContextCurrent() {}
func (w *Window) SwapBuffers() {}
func (w *Window) SetSwapInterval(int) {}
func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *Window) PollEvents() { w.Polls++; w.events() }
func (w *Window) WaitEvents() { w.Waits++; w.events() }
func (w *Window) Width() int { return w.W }
func (w *Window) Height() int { return w.H }
func (w *Window) IsRunning() bool { return w.Running && !w.Closed }

func (w *Window) PostEmptyEvent() {
	w.Posted.Add(1)
	if w.closed.Load() {
		w.PostedAfterClose.Add(1)
	}
}

func (w *Window) Close() error {
	w.closed.Store(true)
	w.Closed = true
	return nil
}
