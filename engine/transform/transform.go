package transform

import (
	"github.com/go-gl/mathgl/mgl32"
)

// transformImpl is the implementation of the Transform interface.
type transformImpl struct {
	matrix mgl32.Mat4
}

// Transform is a mutable 4x4 affine model matrix with the composition helpers a scene object needs.
// Matrices are column-major. Angles are in degrees.
//
// The matrix is never orthonormalized; scaling an axis to zero makes it singular and it is up to
// the caller to avoid that when an inverse is needed later.
type Transform interface {
	// SetIdentity resets the matrix to identity.
	SetIdentity()

	// SetRotate replaces the rotation part (upper-left 3x3) with a rotation of angle degrees around
	// the given axis. The translation column is preserved. A zero-length axis sets an identity rotation.
	//
	// Parameters:
	//   - angle: rotation angle in degrees
	//   - x, y, z: rotation axis, need not be normalized
	SetRotate(angle, x, y, z float32)

	// Rotate composes an additional rotation on the right: M = M * R.
	//
	// Parameters:
	//   - angle: rotation angle in degrees
	//   - x, y, z: rotation axis, need not be normalized
	Rotate(angle, x, y, z float32)

	// SetTranslate replaces the translation column and keeps the rotation and scale.
	//
	// Parameters:
	//   - x, y, z: the new translation
	SetTranslate(x, y, z float32)

	// Translate composes an additional translation on the right: M = M * T.
	//
	// Parameters:
	//   - x, y, z: the translation to apply in the current local frame
	Translate(x, y, z float32)

	// SetScale replaces the upper-left 3x3 with a scale matrix and keeps the translation.
	//
	// Parameters:
	//   - x, y, z: per-axis scale factors
	SetScale(x, y, z float32)

	// Scale composes an additional scale on the right: M = M * S.
	//
	// Parameters:
	//   - x, y, z: per-axis scale factors
	Scale(x, y, z float32)

	// Matrix returns a copy of the current model matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	Matrix() mgl32.Mat4

	// Set replaces the whole matrix.
	//
	// Parameters:
	//   - m: the new model matrix
	Set(m mgl32.Mat4)

	// Position returns the translation column.
	//
	// Returns:
	//   - mgl32.Vec3: the translation
	Position() mgl32.Vec3
}

var _ Transform = &transformImpl{}

// NewTransform creates a Transform initialized to identity.
//
// Returns:
//   - Transform: the new transform
func NewTransform() Transform {
	return &transformImpl{matrix: mgl32.Ident4()}
}

func (t *transformImpl) SetIdentity() {
	t.matrix = mgl32.Ident4()
}

func (t *transformImpl) SetRotate(angle, x, y, z float32) {
	r := rotation(angle, x, y, z)
	for col := 0; col < 3; col++ {
		t.matrix.SetCol(col, r.Col(col))
	}
}

func (t *transformImpl) Rotate(angle, x, y, z float32) {
	t.matrix = t.matrix.Mul4(rotation(angle, x, y, z))
}

func (t *transformImpl) SetTranslate(x, y, z float32) {
	t.matrix.SetCol(3, mgl32.Vec4{x, y, z, 1})
}

func (t *transformImpl) Translate(x, y, z float32) {
	t.matrix = t.matrix.Mul4(mgl32.Translate3D(x, y, z))
}

func (t *transformImpl) SetScale(x, y, z float32) {
	s := mgl32.Scale3D(x, y, z)
	for col := 0; col < 3; col++ {
		t.matrix.SetCol(col, s.Col(col))
	}
}

func (t *transformImpl) Scale(x, y, z float32) {
	t.matrix = t.matrix.Mul4(mgl32.Scale3D(x, y, z))
}

func (t *transformImpl) Matrix() mgl32.Mat4 {
	return t.matrix
}

func (t *transformImpl) Set(m mgl32.Mat4) {
	t.matrix = m
}

func (t *transformImpl) Position() mgl32.Vec3 {
	return t.matrix.Col(3).Vec3()
}

// rotation builds a rotation matrix from an angle in degrees and an arbitrary axis.
func rotation(angle, x, y, z float32) mgl32.Mat4 {
	axis := mgl32.Vec3{x, y, z}
	if axis.Len() == 0 {
		return mgl32.Ident4()
	}
	return mgl32.HomogRotate3D(mgl32.DegToRad(angle), axis.Normalize())
}
