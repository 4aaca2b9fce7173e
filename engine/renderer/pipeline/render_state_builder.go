package pipeline

import "github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"

// RenderStateBuilderOption is a functional option used to configure a RenderState during construction.
type RenderStateBuilderOption func(*RenderState)

// WithCullFace enables face culling for the given face.
//
// Parameters:
//   - face: the face to cull (e.g., backend.FaceBack)
//
// Returns:
//   - RenderStateBuilderOption: a function that enables culling
func WithCullFace(face backend.Face) RenderStateBuilderOption {
	return func(rs *RenderState) {
		rs.CullFaceEnabled = true
		rs.CullFace = face
	}
}

// WithDepthTest enables the depth test with the given comparison. Depth writes are enabled along with it.
//
// Parameters:
//   - fn: the depth comparison function (e.g., backend.CompareLessEqual)
//
// Returns:
//   - RenderStateBuilderOption: a function that enables depth testing
func WithDepthTest(fn backend.CompareFunc) RenderStateBuilderOption {
	return func(rs *RenderState) {
		rs.DepthTestEnabled = true
		rs.DepthFunc = fn
		rs.DepthWrite = true
	}
}

// WithDepthWrite sets whether depth writes are enabled.
//
// Parameters:
//   - enabled: a boolean indicating whether depth writes should be enabled
//
// Returns:
//   - RenderStateBuilderOption: a function that sets depth writes
func WithDepthWrite(enabled bool) RenderStateBuilderOption {
	return func(rs *RenderState) {
		rs.DepthWrite = enabled
	}
}

// WithBlend enables blending with the given factors.
//
// Parameters:
//   - src: the source blend factor
//   - dst: the destination blend factor
//
// Returns:
//   - RenderStateBuilderOption: a function that enables blending
func WithBlend(src, dst backend.BlendFactor) RenderStateBuilderOption {
	return func(rs *RenderState) {
		rs.BlendEnabled = true
		rs.BlendSrc = src
		rs.BlendDst = dst
	}
}

// WithAlphaBlend enables the usual src-alpha / one-minus-src-alpha blend.
func WithAlphaBlend() RenderStateBuilderOption {
	return WithBlend(backend.BlendSrcAlpha, backend.BlendOneMinusSrcAlpha)
}
