package view

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewCamera(t *testing.T) {
	c := NewCamera(800, 400, false)
	assert.InDelta(t, common.EyeDistance(FovY), c.Eye().Z(), 1e-6)
	assert.InDelta(t, 2.0, c.Aspect(), 1e-6)
	assert.Equal(t, common.Rect{Width: 800, Height: 400}, c.Viewport())
}

func TestDolly(t *testing.T) {
	c := NewCamera(800, 600, false)
	start := c.Eye().Z()

	assert.InDelta(t, start-ZoomStep, Dolly(c, 1), 1e-5)
	assert.InDelta(t, start-ZoomStep, c.Eye().Z(), 1e-5)
	assert.Equal(t, mgl32.Vec3{}, c.Center())

	assert.Equal(t, Near, Dolly(c, 1000))
	assert.InDelta(t, Near, c.Eye().Z(), 1e-6)
	assert.Equal(t, Far/2, Dolly(c, -10000))
	assert.InDelta(t, Far/2, c.Eye().Z(), 1e-4)
}

func TestRotate(t *testing.T) {
	tr := transform.NewTransform()
	tr.SetTranslate(1, 2, 3)

	Rotate(tr, 50, 0)
	want := mgl32.HomogRotate3DY(mgl32.DegToRad(10))
	got := tr.Matrix()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5)
	}
}
