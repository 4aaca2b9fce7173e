package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend/backendtest"
	"github.com/stretchr/testify/assert"
)

func TestNewRenderState_DefaultsDisabled(t *testing.T) {
	rs := NewRenderState()

	assert.False(t, rs.CullFaceEnabled)
	assert.False(t, rs.DepthTestEnabled)
	assert.False(t, rs.DepthWrite)
	assert.False(t, rs.BlendEnabled)
}

func TestRenderState_ApplyRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		state RenderState
	}{
		{"defaults", NewRenderState()},
		{"cull back depth lequal", NewRenderState(WithCullFace(backend.FaceBack), WithDepthTest(backend.CompareLessEqual))},
		{"front cull only", NewRenderState(WithCullFace(backend.FaceFront))},
		{"alpha blend no depth write", NewRenderState(WithAlphaBlend(), WithDepthTest(backend.CompareLess), WithDepthWrite(false))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := backendtest.NewDevice()
			tt.state.Apply(dev)

			got := RenderState{
				CullFaceEnabled:  dev.State.CullEnabled,
				CullFace:         dev.State.CullFace,
				DepthTestEnabled: dev.State.DepthEnabled,
				DepthFunc:        dev.State.DepthFunc,
				DepthWrite:       dev.State.DepthWrite,
				BlendEnabled:     dev.State.BlendEnabled,
				BlendSrc:         dev.State.BlendSrc,
				BlendDst:         dev.State.BlendDst,
			}
			assert.Equal(t, tt.state, got)
			assert.Equal(t, 4, dev.StateWrites)
		})
	}
}

func TestRenderState_ApplyDoesNotLeak(t *testing.T) {
	dev := backendtest.NewDevice()

	NewRenderState(WithCullFace(backend.FaceBack), WithDepthTest(backend.CompareLessEqual), WithAlphaBlend()).Apply(dev)
	NewRenderState().Apply(dev)

	assert.False(t, dev.State.CullEnabled)
	assert.False(t, dev.State.DepthEnabled)
	assert.False(t, dev.State.DepthWrite)
	assert.False(t, dev.State.BlendEnabled)
}

func TestRenderState_Key(t *testing.T) {
	a := NewRenderState(WithCullFace(backend.FaceBack))
	b := NewRenderState(WithCullFace(backend.FaceBack))
	c := NewRenderState(WithCullFace(backend.FaceFront))

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.NotEqual(t, NewRenderState().Key(), a.Key())
}
