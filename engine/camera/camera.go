package camera

import (
	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	eye    mgl32.Vec3
	center mgl32.Vec3
	up     mgl32.Vec3

	fovY   float32 // degrees
	aspect float32
	near   float32
	far    float32

	depthZeroToOne bool

	viewport common.Rect

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera builds the view and projection matrices shared by the scene objects that reference it,
// plus the viewport rectangle the frame is drawn into.
//
// A camera is mutated only from the render thread and performs no locking of its own. It is
// typically rebuilt whenever the surface size changes.
type Camera interface {
	// SetLookAt positions the camera and recomputes the view matrix.
	//
	// Parameters:
	//   - eye: the camera position in world space
	//   - center: the point the camera looks at
	//   - up: the up direction
	SetLookAt(eye, center, up mgl32.Vec3)

	// SetFrustum sets the perspective projection and recomputes the projection matrix.
	//
	// Parameters:
	//   - fovY: vertical field of view in degrees
	//   - aspect: viewport width / height
	//   - near: near clip plane distance (> 0)
	//   - far: far clip plane distance (> near)
	SetFrustum(fovY, aspect, near, far float32)

	// SetViewport sets the pixel rectangle this camera renders into.
	//
	// Parameters:
	//   - viewport: the viewport rectangle in pixels
	SetViewport(viewport common.Rect)

	// Viewport returns the viewport rectangle in pixels.
	//
	// Returns:
	//   - common.Rect: the viewport
	Viewport() common.Rect

	// Eye returns the camera position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Eye() mgl32.Vec3

	// Center returns the look-at target.
	//
	// Returns:
	//   - mgl32.Vec3: the target point
	Center() mgl32.Vec3

	// Up returns the up vector passed to SetLookAt.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// FovY returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees
	FovY() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the current view matrix (column-major).
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix (column-major).
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera. Without options it looks down -Z from the origin with a 45 degree
// frustum and an empty viewport; an empty viewport makes the frame renderer skip the pass.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the configured camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		eye:    mgl32.Vec3{0, 0, 0},
		center: mgl32.Vec3{0, 0, -1},
		up:     mgl32.Vec3{0, 1, 0},
		fovY:   45,
		aspect: 1,
		near:   0.1,
		far:    100,
	}
	for _, option := range options {
		option(c)
	}
	c.updateView()
	c.updateProjection()
	return c
}

func (c *cameraImpl) SetLookAt(eye, center, up mgl32.Vec3) {
	c.eye, c.center, c.up = eye, center, up
	c.updateView()
}

func (c *cameraImpl) SetFrustum(fovY, aspect, near, far float32) {
	c.fovY, c.aspect, c.near, c.far = fovY, aspect, near, far
	c.updateProjection()
}

func (c *cameraImpl) SetViewport(viewport common.Rect) {
	c.viewport = viewport
}

func (c *cameraImpl) Viewport() common.Rect {
	return c.viewport
}

func (c *cameraImpl) Eye() mgl32.Vec3 {
	return c.eye
}

func (c *cameraImpl) Center() mgl32.Vec3 {
	return c.center
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) FovY() float32 {
	return c.fovY
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.viewProjectionMatrix
}

func (c *cameraImpl) updateView() {
	c.viewMatrix = mgl32.LookAtV(c.eye, c.center, c.up)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

func (c *cameraImpl) updateProjection() {
	fov := mgl32.DegToRad(c.fovY)
	if c.depthZeroToOne {
		c.projectionMatrix = common.PerspectiveZO(fov, c.aspect, c.near, c.far)
	} else {
		c.projectionMatrix = mgl32.Perspective(fov, c.aspect, c.near, c.far)
	}
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
