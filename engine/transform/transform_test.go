package transform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestRepeatedRotateMatchesSingleRotation(t *testing.T) {
	cases := []struct {
		name  string
		angle float32
		steps int
		axis  mgl32.Vec3
	}{
		{"y axis", 12.5, 8, mgl32.Vec3{0, 1, 0}},
		{"x axis", -7, 20, mgl32.Vec3{1, 0, 0}},
		{"oblique unnormalized axis", 3, 45, mgl32.Vec3{1, 2, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stepped := NewTransform()
			stepped.SetIdentity()
			for i := 0; i < tc.steps; i++ {
				stepped.Rotate(tc.angle, tc.axis.X(), tc.axis.Y(), tc.axis.Z())
			}

			single := NewTransform()
			single.SetRotate(tc.angle*float32(tc.steps), tc.axis.X(), tc.axis.Y(), tc.axis.Z())

			assert.True(t, stepped.Matrix().ApproxEqualThreshold(single.Matrix(), 1e-4),
				"stepped %v != single %v", stepped.Matrix(), single.Matrix())
		})
	}
}

func TestSetRotateKeepsTranslation(t *testing.T) {
	tr := NewTransform()
	tr.SetTranslate(1, 2, 3)
	tr.Rotate(30, 0, 0, 1)

	tr.SetRotate(90, 0, 1, 0)

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, tr.Position())
	rotated := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 0})
	assert.True(t, rotated.ApproxEqualThreshold(mgl32.Vec4{0, 0, -1, 0}, 1e-5), "got %v", rotated)
}

func TestTranslateComposesInLocalFrame(t *testing.T) {
	tr := NewTransform()
	tr.SetRotate(90, 0, 0, 1)
	tr.Translate(1, 0, 0)

	assert.True(t, tr.Position().ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-5), "got %v", tr.Position())
}

func TestSetTranslateReplaces(t *testing.T) {
	tr := NewTransform()
	tr.Translate(5, 5, 5)
	tr.SetTranslate(-1, 0, 2)

	assert.Equal(t, mgl32.Vec3{-1, 0, 2}, tr.Position())
}

func TestScale(t *testing.T) {
	tr := NewTransform()
	tr.SetTranslate(0, 1, 0)
	tr.SetScale(2, 3, 4)

	p := tr.Matrix().Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	assert.Equal(t, mgl32.Vec4{2, 4, 4, 1}, p)

	tr.Scale(0.5, 1, 1)
	p = tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.Equal(t, mgl32.Vec4{1, 1, 0, 1}, p)
}

func TestZeroAxisIsNoop(t *testing.T) {
	tr := NewTransform()
	tr.Rotate(45, 0, 0, 0)
	assert.Equal(t, mgl32.Ident4(), tr.Matrix())
}
