package camera

import (
	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBuilderOption is a functional option for configuring a cameraImpl.
type CameraBuilderOption func(*cameraImpl)

// WithLookAt sets the initial eye, center and up vectors.
//
// Parameters:
//   - eye: the camera position
//   - center: the look-at target
//   - up: the up direction
//
// Returns:
//   - CameraBuilderOption: a function that sets the look-at vectors
func WithLookAt(eye, center, up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.eye, c.center, c.up = eye, center, up
	}
}

// WithFrustum sets the initial perspective frustum.
//
// Parameters:
//   - fovY: vertical field of view in degrees
//   - aspect: width / height
//   - near: near clip distance
//   - far: far clip distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the frustum
func WithFrustum(fovY, aspect, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fovY, c.aspect, c.near, c.far = fovY, aspect, near, far
	}
}

// WithViewport sets the initial viewport rectangle.
//
// Parameters:
//   - viewport: the viewport in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the viewport
func WithViewport(viewport common.Rect) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewport = viewport
	}
}

// WithDepthZeroToOne selects the [0, 1] clip depth range used by WebGPU instead of the GL [-1, 1] range.
//
// Parameters:
//   - enabled: true for WebGPU style depth
//
// Returns:
//   - CameraBuilderOption: a function that sets the depth range
func WithDepthZeroToOne(enabled bool) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.depthZeroToOne = enabled
	}
}
