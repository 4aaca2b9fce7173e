// Package view holds the camera setup shared by the samples.
package view

import (
	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/camera"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// FovY is the vertical field of view of every sample, in degrees.
	FovY float32 = 30

	Near float32 = 1
	Far  float32 = 400

	// ZoomStep is how far one scroll step moves the eye.
	ZoomStep float32 = 0.25
)

// NewCamera creates the sample camera for a surface: looking down -Z from the distance at which a
// plane of height 2 fills the view, with the frustum aspect taken from the surface.
//
// Parameters:
//   - width, height: the surface size in pixels
//   - depthZeroToOne: whether the device uses the [0, 1] clip depth range
//
// Returns:
//   - camera.Camera: the camera
func NewCamera(width, height int, depthZeroToOne bool) camera.Camera {
	eyeZ := common.EyeDistance(FovY)
	viewport := common.Rect{Width: width, Height: height}
	return camera.NewCamera(
		camera.WithDepthZeroToOne(depthZeroToOne),
		camera.WithLookAt(mgl32.Vec3{0, 0, eyeZ}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
		camera.WithFrustum(FovY, viewport.Aspect(), Near, Far),
		camera.WithViewport(viewport),
	)
}

// Rotate applies the drag rotation the samples share: moveX turns about Y, then moveY about X,
// both at 0.2 degrees per pixel.
//
// Parameters:
//   - t: the transform to reset and rotate
//   - moveX, moveY: the drag offset in pixels
func Rotate(t transform.Transform, moveX, moveY float32) {
	t.SetIdentity()
	t.SetRotate(moveX*0.2, 0, 1, 0)
	t.Rotate(moveY*0.2, 1, 0, 0)
}

// Dolly moves the eye along its line of sight by delta scroll steps, positive toward the target.
//
// Parameters:
//   - c: the camera to move
//   - delta: the scroll offset
//
// Returns:
//   - float32: the new distance between the eye and the target
func Dolly(c camera.Camera, delta float32) float32 {
	return SetDistance(c, c.Eye().Sub(c.Center()).Len()-delta*ZoomStep)
}

// SetDistance places the eye d away from the target on the current line of sight. The distance is
// clamped to [Near, Far/2].
//
// Parameters:
//   - c: the camera to move
//   - d: the wanted distance
//
// Returns:
//   - float32: the distance used
func SetDistance(c camera.Camera, d float32) float32 {
	center := c.Center()
	dir := c.Eye().Sub(center)
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, 0, 1}
	}
	d = mgl32.Clamp(d, Near, Far/2)
	c.SetLookAt(center.Add(dir.Normalize().Mul(d)), center, c.Up())
	return d
}
