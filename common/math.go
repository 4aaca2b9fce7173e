package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// NormalMatrix returns the matrix used to transform normals into view space: the upper-left 3x3 of
// view*model with the translation stripped. Non-uniform scale is not corrected for.
//
// Parameters:
//   - view: the camera view matrix
//   - model: the object model matrix
//
// Returns:
//   - mgl32.Mat3: the normal matrix (column-major)
func NormalMatrix(view, model mgl32.Mat4) mgl32.Mat3 {
	return view.Mul4(model).Mat3()
}

// PerspectiveZO builds a right-handed perspective projection that maps view depth to the [0, 1]
// clip range used by WebGPU. mgl32.Perspective covers the [-1, 1] GL range.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: width / height
//   - near: near clip distance
//   - far: far clip distance
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func PerspectiveZO(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// EyeDistance returns the camera distance at which a plane of height 2 exactly fills a vertical
// field of view of fovYDeg degrees.
//
// Parameters:
//   - fovYDeg: vertical field of view in degrees
//
// Returns:
//   - float32: the distance 1 / tan(fovY / 2)
func EyeDistance(fovYDeg float32) float32 {
	return 1.0 / math32.Tan(mgl32.DegToRad(fovYDeg)/2.0)
}

// Mat3Padded expands a 3x3 matrix into 12 floats with every column padded to a vec4, the layout
// WGSL and std140 uniform blocks use for mat3x3<f32>.
func Mat3Padded(m mgl32.Mat3) [12]float32 {
	return [12]float32{
		m[0], m[1], m[2], 0,
		m[3], m[4], m[5], 0,
		m[6], m[7], m[8], 0,
	}
}
