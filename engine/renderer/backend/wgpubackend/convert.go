package wgpubackend

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/cogentcore/webgpu/wgpu"
)

func topology(mode backend.DrawMode) wgpu.PrimitiveTopology {
	switch mode {
	case backend.DrawModeTriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip
	case backend.DrawModeLines:
		return wgpu.PrimitiveTopologyLineList
	case backend.DrawModePoints:
		return wgpu.PrimitiveTopologyPointList
	default:
		return wgpu.PrimitiveTopologyTriangleList
	}
}

// cullMode maps the GL cull toggle onto WebGPU. WebGPU cannot cull both faces, so FaceFrontAndBack
// draws nothing through a zero write mask instead, see colorWriteMask.
func cullMode(enabled bool, face backend.Face) wgpu.CullMode {
	if !enabled {
		return wgpu.CullModeNone
	}
	switch face {
	case backend.FaceFront:
		return wgpu.CullModeFront
	case backend.FaceBack:
		return wgpu.CullModeBack
	default:
		return wgpu.CullModeNone
	}
}

func colorWriteMask(s state) wgpu.ColorWriteMask {
	if s.cullEnabled && s.cullFace == backend.FaceFrontAndBack {
		return wgpu.ColorWriteMaskNone
	}
	return wgpu.ColorWriteMaskAll
}

func compareFunction(enabled bool, fn backend.CompareFunc) wgpu.CompareFunction {
	if !enabled {
		return wgpu.CompareFunctionAlways
	}
	switch fn {
	case backend.CompareLess:
		return wgpu.CompareFunctionLess
	case backend.CompareLessEqual:
		return wgpu.CompareFunctionLessEqual
	case backend.CompareEqual:
		return wgpu.CompareFunctionEqual
	case backend.CompareGreater:
		return wgpu.CompareFunctionGreater
	case backend.CompareGreaterEqual:
		return wgpu.CompareFunctionGreaterEqual
	case backend.CompareNotEqual:
		return wgpu.CompareFunctionNotEqual
	case backend.CompareNever:
		return wgpu.CompareFunctionNever
	default:
		return wgpu.CompareFunctionAlways
	}
}

func blendFactor(f backend.BlendFactor) wgpu.BlendFactor {
	switch f {
	case backend.BlendZero:
		return wgpu.BlendFactorZero
	case backend.BlendSrcAlpha:
		return wgpu.BlendFactorSrcAlpha
	case backend.BlendOneMinusSrcAlpha:
		return wgpu.BlendFactorOneMinusSrcAlpha
	case backend.BlendDstAlpha:
		return wgpu.BlendFactorDstAlpha
	case backend.BlendOneMinusDstAlpha:
		return wgpu.BlendFactorOneMinusDstAlpha
	case backend.BlendSrcColor:
		return wgpu.BlendFactorSrc
	case backend.BlendOneMinusSrcColor:
		return wgpu.BlendFactorOneMinusSrc
	default:
		return wgpu.BlendFactorOne
	}
}

func blendState(s state) *wgpu.BlendState {
	if !s.blendEnabled {
		return nil
	}
	c := wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: blendFactor(s.blendSrc),
		DstFactor: blendFactor(s.blendDst),
	}
	return &wgpu.BlendState{Color: c, Alpha: c}
}

func vertexFormat(components int) (wgpu.VertexFormat, error) {
	switch components {
	case 1:
		return wgpu.VertexFormatFloat32, nil
	case 2:
		return wgpu.VertexFormatFloat32x2, nil
	case 3:
		return wgpu.VertexFormatFloat32x3, nil
	case 4:
		return wgpu.VertexFormatFloat32x4, nil
	default:
		return wgpu.VertexFormatUndefined, fmt.Errorf("unsupported attribute width %d", components)
	}
}

// vertexBufferLayout binds every semantic the program reads to the matching attribute of the
// mesh's interleaved layout.
func vertexBufferLayout(layout backend.VertexLayout, attribs backend.AttribLocations) (wgpu.VertexBufferLayout, error) {
	out := wgpu.VertexBufferLayout{
		ArrayStride: uint64(layout.Stride),
		StepMode:    wgpu.VertexStepModeVertex,
	}
	for sem := backend.SemanticPosition; sem < backend.SemanticCount; sem++ {
		loc := attribs[sem]
		if loc < 0 {
			continue
		}
		a, ok := layout.Attrib(sem)
		if !ok {
			return out, fmt.Errorf("mesh has no %s attribute for location %d", sem, loc)
		}
		format, err := vertexFormat(a.Components)
		if err != nil {
			return out, err
		}
		out.Attributes = append(out.Attributes, wgpu.VertexAttribute{
			Format:         format,
			Offset:         uint64(a.Offset),
			ShaderLocation: uint32(loc),
		})
	}
	return out, nil
}
