package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNormalMatrixStripsTranslation(t *testing.T) {
	view := mgl32.Translate3D(0, 0, -5)
	model := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(90)))

	got := NormalMatrix(view, model)

	assert.True(t, got.ApproxEqualThreshold(mgl32.HomogRotate3DY(mgl32.DegToRad(90)).Mat3(), 1e-5))
}

func TestPerspectiveZOMapsNearAndFar(t *testing.T) {
	proj := PerspectiveZO(mgl32.DegToRad(60), 1.5, 1, 100)

	near := proj.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -100, 1})

	assert.InDelta(t, 0, near.Z()/near.W(), 1e-5)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-5)
}

func TestEyeDistanceFillsUnitHeight(t *testing.T) {
	// a 90 degree fov sees a height of 2 at distance 1
	assert.InDelta(t, 1, EyeDistance(90), 1e-5)
	assert.InDelta(t, 3.7320508, EyeDistance(30), 1e-4)
}

func TestRect(t *testing.T) {
	assert.True(t, Rect{Width: 0, Height: 10}.Empty())
	assert.False(t, Rect{Width: 800, Height: 600}.Empty())
	assert.InDelta(t, 800.0/600.0, Rect{Width: 800, Height: 600}.Aspect(), 1e-6)
	assert.Zero(t, Rect{}.Aspect())
}

func TestByteEncoders(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, Float32Bytes([]float32{1}))
	assert.Equal(t, []byte{1, 0, 2, 0}, Uint16Bytes([]uint16{1, 2}))
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, Int32Bytes([]int32{-1}))
	assert.Nil(t, Float32Bytes(nil))
}
