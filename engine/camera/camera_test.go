package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLookAtMapsCenterToViewOrigin(t *testing.T) {
	const z = 3.7320508
	c := NewCamera()
	c.SetLookAt(mgl32.Vec3{0, 0, z}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

	view := c.ViewMatrix()
	assert.True(t, view.Col(3).ApproxEqualThreshold(mgl32.Vec4{0, 0, -z, 1}, 1e-5), "translation %v", view.Col(3))

	center := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.True(t, center.ApproxEqualThreshold(mgl32.Vec4{0, 0, -z, 1}, 1e-5), "center %v", center)

	eye := view.Mul4x1(mgl32.Vec4{0, 0, z, 1})
	assert.True(t, eye.ApproxEqualThreshold(mgl32.Vec4{0, 0, 0, 1}, 1e-5), "eye %v", eye)
}

func TestFrustumDepthRanges(t *testing.T) {
	cases := []struct {
		name      string
		zeroToOne bool
		nearNDC   float32
	}{
		{"gl", false, -1},
		{"webgpu", true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(WithDepthZeroToOne(tc.zeroToOne))
			c.SetFrustum(30, 800.0/600.0, 1, 400)

			near := c.ProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, -1, 1})
			far := c.ProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, -400, 1})
			assert.InDelta(t, tc.nearNDC, near.Z()/near.W(), 1e-4)
			assert.InDelta(t, 1, far.Z()/far.W(), 1e-4)
		})
	}
}

func TestViewProjectionTracksBothMatrices(t *testing.T) {
	c := NewCamera(
		WithLookAt(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
		WithFrustum(30, 2, 1, 400),
		WithViewport(common.Rect{Width: 800, Height: 400}),
	)

	want := c.ProjectionMatrix().Mul4(c.ViewMatrix())
	assert.True(t, c.ViewProjectionMatrix().ApproxEqual(want))

	c.SetLookAt(mgl32.Vec3{1, 1, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	want = c.ProjectionMatrix().Mul4(c.ViewMatrix())
	assert.True(t, c.ViewProjectionMatrix().ApproxEqual(want))

	assert.Equal(t, common.Rect{Width: 800, Height: 400}, c.Viewport())
	assert.Equal(t, float32(30), c.FovY())
	assert.Equal(t, float32(2), c.Aspect())
}
