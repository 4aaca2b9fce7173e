// Package pipeline describes the fixed-function GPU state applied immediately before each draw call.
package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
)

// RenderState is a declarative snapshot of the fixed-function pipeline toggles for one object.
// The zero value disables culling, depth testing and blending, and leaves depth writes off.
type RenderState struct {
	// CullFaceEnabled toggles face culling; CullFace selects which winding is discarded.
	CullFaceEnabled bool
	CullFace        backend.Face

	// DepthTestEnabled toggles the depth test; DepthFunc is the comparison used when enabled.
	DepthTestEnabled bool
	DepthFunc        backend.CompareFunc

	// DepthWrite toggles depth buffer writes.
	DepthWrite bool

	// BlendEnabled toggles blending with BlendSrc and BlendDst factors.
	BlendEnabled bool
	BlendSrc     backend.BlendFactor
	BlendDst     backend.BlendFactor
}

// NewRenderState creates a RenderState from the default (everything disabled) and applies the given options.
//
// Parameters:
//   - options: a variadic list of RenderStateBuilderOption functions
//
// Returns:
//   - RenderState: the configured state
func NewRenderState(options ...RenderStateBuilderOption) RenderState {
	rs := RenderState{
		CullFace:  backend.FaceBack,
		DepthFunc: backend.CompareLess,
		BlendSrc:  backend.BlendOne,
		BlendDst:  backend.BlendZero,
	}
	for _, opt := range options {
		opt(&rs)
	}
	return rs
}

// Apply writes every toggle of the state to the device. Disabled toggles are written as well so
// nothing set for a previous object leaks into this one.
//
// Parameters:
//   - s: the state receiver, usually a backend.Device
func (rs RenderState) Apply(s backend.StateSetter) {
	s.SetCullFace(rs.CullFaceEnabled, rs.CullFace)
	s.SetDepthTest(rs.DepthTestEnabled, rs.DepthFunc)
	s.SetDepthWrite(rs.DepthWrite)
	s.SetBlend(rs.BlendEnabled, rs.BlendSrc, rs.BlendDst)
}

// Key returns a compact string identifying the state, used for state and pipeline caches.
//
// Returns:
//   - string: the cache key
func (rs RenderState) Key() string {
	return fmt.Sprintf("c%d%d_d%d%d%d_b%d%d%d",
		b2i(rs.CullFaceEnabled), rs.CullFace,
		b2i(rs.DepthTestEnabled), rs.DepthFunc, b2i(rs.DepthWrite),
		b2i(rs.BlendEnabled), rs.BlendSrc, rs.BlendDst,
	)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
