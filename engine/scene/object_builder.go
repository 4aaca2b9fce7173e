package scene

import (
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/camera"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/mesh"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/shader"
)

// ObjectBuilderOption is a functional option for configuring an Object.
type ObjectBuilderOption func(o *object)

// WithCamera sets the camera the object is drawn with.
//
// Parameters:
//   - c: the shared camera
//
// Returns:
//   - ObjectBuilderOption: option function to apply
func WithCamera(c camera.Camera) ObjectBuilderOption {
	return func(o *object) {
		o.camera = c
	}
}

// WithRenderState sets the object's render state.
//
// Parameters:
//   - rs: the render state
//
// Returns:
//   - ObjectBuilderOption: option function to apply
func WithRenderState(rs pipeline.RenderState) ObjectBuilderOption {
	return func(o *object) {
		o.renderState = rs
	}
}

// WithShader sets the shader the object is drawn with.
func WithShader(s shader.Shader) ObjectBuilderOption {
	return func(o *object) {
		o.shader = s
	}
}

// WithMesh sets the object's geometry.
func WithMesh(m mesh.Mesh) ObjectBuilderOption {
	return func(o *object) {
		o.mesh = m
	}
}

// WithListener attaches a listener.
//
// Parameters:
//   - l: the listener
//
// Returns:
//   - ObjectBuilderOption: option function to apply
func WithListener(l Listener) ObjectBuilderOption {
	return func(o *object) {
		o.listener = l
	}
}

// WithEnabled sets whether the object starts enabled.
func WithEnabled(enabled bool) ObjectBuilderOption {
	return func(o *object) {
		o.enabled = enabled
	}
}
