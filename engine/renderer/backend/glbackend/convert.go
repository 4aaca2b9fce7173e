package glbackend

import (
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/go-gl/gl/v3.3-core/gl"
)

func glMode(mode backend.DrawMode) uint32 {
	switch mode {
	case backend.DrawModeTriangleStrip:
		return gl.TRIANGLE_STRIP
	case backend.DrawModeLines:
		return gl.LINES
	case backend.DrawModePoints:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func glFace(face backend.Face) uint32 {
	switch face {
	case backend.FaceFront:
		return gl.FRONT
	case backend.FaceFrontAndBack:
		return gl.FRONT_AND_BACK
	default:
		return gl.BACK
	}
}

func glCompare(fn backend.CompareFunc) uint32 {
	switch fn {
	case backend.CompareLess:
		return gl.LESS
	case backend.CompareLessEqual:
		return gl.LEQUAL
	case backend.CompareEqual:
		return gl.EQUAL
	case backend.CompareGreater:
		return gl.GREATER
	case backend.CompareGreaterEqual:
		return gl.GEQUAL
	case backend.CompareNotEqual:
		return gl.NOTEQUAL
	case backend.CompareNever:
		return gl.NEVER
	default:
		return gl.ALWAYS
	}
}

func glBlend(f backend.BlendFactor) uint32 {
	switch f {
	case backend.BlendZero:
		return gl.ZERO
	case backend.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case backend.BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case backend.BlendDstAlpha:
		return gl.DST_ALPHA
	case backend.BlendOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case backend.BlendSrcColor:
		return gl.SRC_COLOR
	case backend.BlendOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	default:
		return gl.ONE
	}
}
