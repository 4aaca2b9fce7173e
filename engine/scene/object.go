package scene

import (
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/camera"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/mesh"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/transform"
)

type object struct {
	node

	transform   transform.Transform
	camera      camera.Camera
	renderState pipeline.RenderState
	shader      shader.Shader
	mesh        mesh.Mesh
	listener    Listener
	enabled     bool
}

// Object is a renderable scene node. Camera, Shader and Mesh are shared references the object
// does not own; the transform and render state belong to the object.
type Object interface {
	Node

	// Transform returns the object's model transform, mutable in place.
	Transform() transform.Transform

	// Camera returns the camera the object is drawn with, or nil.
	Camera() camera.Camera

	// SetCamera sets the camera the object is drawn with.
	SetCamera(c camera.Camera)

	// RenderState returns the fixed-function state applied before the object's draw.
	RenderState() pipeline.RenderState

	// SetRenderState replaces the object's render state.
	SetRenderState(rs pipeline.RenderState)

	// Shader returns the shader the object is drawn with, or nil.
	Shader() shader.Shader

	// SetShader sets the shader the object is drawn with.
	SetShader(s shader.Shader)

	// Mesh returns the object's geometry, or nil.
	Mesh() mesh.Mesh

	// SetMesh replaces the object's geometry. The previous mesh is not released.
	SetMesh(m mesh.Mesh)

	// Listener returns the attached listener, or nil.
	Listener() Listener

	// SetListener attaches a listener; nil restores the default no-op behavior.
	SetListener(l Listener)

	// Enabled reports whether the object takes part in update and draw passes.
	Enabled() bool

	// SetEnabled enables or disables the object. Its children are unaffected.
	SetEnabled(enabled bool)

	// Update runs the listener's update callback, or nothing when no listener is set.
	Update()

	// Apply runs the listener's apply callback, or nothing when no listener is set.
	//
	// Returns:
	//   - error: the listener's error
	Apply() error
}

var _ Object = &object{}

// NewObject creates a detached object with an identity transform and the default render state.
//
// Parameters:
//   - name: the object name
//   - options: a variadic list of ObjectBuilderOption functions
//
// Returns:
//   - Object: the object
func NewObject(name string, options ...ObjectBuilderOption) Object {
	o := &object{
		node:        node{name: name},
		transform:   transform.NewTransform(),
		renderState: pipeline.NewRenderState(),
		enabled:     true,
	}
	o.self = o
	for _, opt := range options {
		opt(o)
	}
	return o
}

func (o *object) Transform() transform.Transform {
	return o.transform
}

func (o *object) Camera() camera.Camera {
	return o.camera
}

func (o *object) SetCamera(c camera.Camera) {
	o.camera = c
}

func (o *object) RenderState() pipeline.RenderState {
	return o.renderState
}

func (o *object) SetRenderState(rs pipeline.RenderState) {
	o.renderState = rs
}

func (o *object) Shader() shader.Shader {
	return o.shader
}

func (o *object) SetShader(s shader.Shader) {
	o.shader = s
}

func (o *object) Mesh() mesh.Mesh {
	return o.mesh
}

func (o *object) SetMesh(m mesh.Mesh) {
	o.mesh = m
}

func (o *object) Listener() Listener {
	return o.listener
}

func (o *object) SetListener(l Listener) {
	o.listener = l
}

func (o *object) Enabled() bool {
	return o.enabled
}

func (o *object) SetEnabled(enabled bool) {
	o.enabled = enabled
}

func (o *object) activeListener() Listener {
	if o.listener == nil {
		return nopListener
	}
	return o.listener
}

func (o *object) Update() {
	o.activeListener().Update(o)
}

func (o *object) Apply() error {
	return o.activeListener().Apply(o)
}
