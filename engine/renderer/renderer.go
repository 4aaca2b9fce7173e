package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrResourceUnavailable is returned when a frame is requested before the surface has a size.
var ErrResourceUnavailable = errors.New("renderer: surface unavailable")

// Uniform names the renderer pushes before each object's Apply when the program declares them.
// UniformNormalMatrix is left to listeners since not every program is lit.
const (
	UniformModel         = "uMMatrix"
	UniformView          = "uVMatrix"
	UniformProjection    = "uPMatrix"
	UniformModelView     = "uMvMatrix"
	UniformModelViewProj = "uMvpMatrix"
	UniformTime          = "uTime"
	UniformResolution    = "uResolution"

	UniformNormalMatrix = "uNormalMatrix"
)

// FrameStats counts what the last DrawScene did.
type FrameStats struct {
	Objects int
	Drawn   int
	Skipped int
	Failed  int
}

type frameRenderer struct {
	device     backend.Device
	logger     *slog.Logger
	clearColor common.Color
	animators  []animator.Animator
	pushCommon bool

	width, height int
	elapsed       time.Duration

	lastProgram  backend.Program
	hasProgram   bool
	lastState    string
	lastViewport common.Rect
	hasViewport  bool

	stats FrameStats
}

// FrameRenderer runs the per-frame animate, update and draw passes over a scene.
//
// It is not safe for concurrent use; every method must be called from the render thread.
type FrameRenderer interface {
	// Reset forgets the cached program, render state and viewport so the next draw sets them all.
	Reset()

	// Resize records the surface size and resets the state caches.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	Resize(width, height int)

	// Size returns the surface size recorded by Resize.
	Size() (width, height int)

	// AddAnimator registers an animator advanced at the start of every frame. Adding the same
	// animator twice has no effect.
	AddAnimator(a animator.Animator)

	// RemoveAnimator unregisters an animator.
	//
	// Returns:
	//   - bool: true if the animator was registered
	RemoveAnimator(a animator.Animator) bool

	// Advance ticks every registered animator by delta.
	//
	// Parameters:
	//   - delta: the time since the previous frame
	//
	// Returns:
	//   - bool: true if any animator was running, meaning another frame should follow
	Advance(delta time.Duration) bool

	// UpdateScene runs every enabled object's Update in traversal order.
	//
	// Parameters:
	//   - m: the scene to update
	//
	// Returns:
	//   - error: scene.ErrNoRoot if the scene has no root
	UpdateScene(m scene.Manager) error

	// DrawScene clears the frame and draws every enabled object in traversal order. An object
	// whose Apply or draw fails is logged and skipped.
	//
	// Parameters:
	//   - m: the scene to draw
	//
	// Returns:
	//   - error: ErrResourceUnavailable before a non-empty Resize, scene.ErrNoRoot, or a device frame error
	DrawScene(m scene.Manager) error

	// Frame runs Advance, UpdateScene and DrawScene.
	//
	// Parameters:
	//   - m: the scene
	//   - delta: the time since the previous frame
	//
	// Returns:
	//   - bool: true if an animator asked for another frame
	//   - error: an error from UpdateScene or DrawScene
	Frame(m scene.Manager, delta time.Duration) (bool, error)

	// SetClearColor sets the color the frame is cleared to.
	SetClearColor(c common.Color)

	// ClearColor returns the clear color.
	ClearColor() common.Color

	// Stats returns the counters of the last DrawScene.
	Stats() FrameStats
}

var _ FrameRenderer = &frameRenderer{}

// NewFrameRenderer creates a FrameRenderer drawing on the given device.
//
// Parameters:
//   - device: the device draw calls go to
//   - options: a variadic list of FrameRendererBuilderOption functions
//
// Returns:
//   - FrameRenderer: the renderer, unusable for drawing until Resize
func NewFrameRenderer(device backend.Device, options ...FrameRendererBuilderOption) FrameRenderer {
	r := &frameRenderer{
		device:     device,
		clearColor: common.Color{A: 1},
		pushCommon: true,
	}
	for _, opt := range options {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

func (r *frameRenderer) Reset() {
	r.hasProgram = false
	r.lastProgram = 0
	r.lastState = ""
	r.hasViewport = false
	r.lastViewport = common.Rect{}
}

func (r *frameRenderer) Resize(width, height int) {
	r.width, r.height = max(width, 0), max(height, 0)
	r.device.Resize(r.width, r.height)
	r.Reset()
}

func (r *frameRenderer) Size() (int, int) {
	return r.width, r.height
}

func (r *frameRenderer) AddAnimator(a animator.Animator) {
	if a == nil || slices.Contains(r.animators, a) {
		return
	}
	r.animators = append(r.animators, a)
}

func (r *frameRenderer) RemoveAnimator(a animator.Animator) bool {
	i := slices.Index(r.animators, a)
	if i < 0 {
		return false
	}
	r.animators = slices.Delete(r.animators, i, i+1)
	return true
}

func (r *frameRenderer) Advance(delta time.Duration) bool {
	if delta > 0 {
		r.elapsed += delta
	}
	more := false
	// Callbacks may add or remove animators.
	for _, a := range slices.Clone(r.animators) {
		if a.Tick(delta) {
			more = true
		}
	}
	return more
}

func (r *frameRenderer) UpdateScene(m scene.Manager) error {
	return m.Walk(func(n scene.Node) {
		if o, ok := n.(scene.Object); ok && o.Enabled() {
			o.Update()
		}
	})
}

func (r *frameRenderer) DrawScene(m scene.Manager) error {
	surface := common.Rect{Width: r.width, Height: r.height}
	if surface.Empty() {
		return ErrResourceUnavailable
	}
	if m.Root() == nil {
		return scene.ErrNoRoot
	}

	if err := r.device.BeginFrame(r.clearColor); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	// Program and pipeline bindings do not survive into a new frame on every backend.
	r.Reset()
	r.stats = FrameStats{}

	_ = m.Walk(func(n scene.Node) {
		o, ok := n.(scene.Object)
		if !ok {
			return
		}
		r.stats.Objects++
		if !o.Enabled() || o.Shader() == nil || o.Mesh() == nil || o.Camera() == nil {
			r.stats.Skipped++
			return
		}
		if err := r.drawObject(o, surface); err != nil {
			r.stats.Failed++
			r.logger.Warn("object skipped", "object", o.Name(), "err", err)
			return
		}
		r.stats.Drawn++
	})

	if err := r.device.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	return nil
}

func (r *frameRenderer) drawObject(o scene.Object, surface common.Rect) error {
	sh := o.Shader()
	if !sh.Loaded() {
		return fmt.Errorf("%w: %q", shader.ErrShaderNotLoaded, sh.Name())
	}
	if prog := sh.Program(); !r.hasProgram || prog != r.lastProgram {
		sh.Use()
		r.lastProgram = prog
		r.hasProgram = true
	}

	cam := o.Camera()
	if r.pushCommon {
		model := o.Transform().Matrix()
		view := cam.ViewMatrix()
		proj := cam.ProjectionMatrix()
		mv := view.Mul4(model)
		sh.SetMatrix4(UniformModel, model)
		sh.SetMatrix4(UniformView, view)
		sh.SetMatrix4(UniformProjection, proj)
		sh.SetMatrix4(UniformModelView, mv)
		sh.SetMatrix4(UniformModelViewProj, proj.Mul4(mv))
		sh.SetFloat(UniformTime, float32(r.elapsed.Seconds()))
		sh.SetVec3(UniformResolution, mgl32.Vec3{float32(r.width), float32(r.height), surface.Aspect()})
	}

	if err := o.Apply(); err != nil {
		return fmt.Errorf("apply: %w", err)
	}

	rs := o.RenderState()
	if key := rs.Key(); key != r.lastState {
		rs.Apply(r.device)
		r.lastState = key
	}

	vp := cam.Viewport()
	if vp.Empty() {
		vp = surface
	}
	if !r.hasViewport || vp != r.lastViewport {
		r.device.Viewport(vp)
		r.lastViewport = vp
		r.hasViewport = true
	}

	if err := o.Mesh().Draw(r.device, sh.AttribLocations()); err != nil {
		return fmt.Errorf("draw %q: %w", o.Mesh().Label(), err)
	}
	return nil
}

func (r *frameRenderer) Frame(m scene.Manager, delta time.Duration) (bool, error) {
	more := r.Advance(delta)
	if err := r.UpdateScene(m); err != nil {
		return more, err
	}
	return more, r.DrawScene(m)
}

func (r *frameRenderer) SetClearColor(c common.Color) {
	r.clearColor = c
}

func (r *frameRenderer) ClearColor() common.Color {
	return r.clearColor
}

func (r *frameRenderer) Stats() FrameStats {
	return r.stats
}
