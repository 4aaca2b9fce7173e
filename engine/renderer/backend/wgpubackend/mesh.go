package wgpubackend

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/cogentcore/webgpu/wgpu"
)

type mesh struct {
	label       string
	layout      backend.VertexLayout
	layoutKey   string
	mode        backend.DrawMode
	vertex      *wgpu.Buffer
	index       *wgpu.Buffer
	indexCount  uint32
	vertexCount uint32
}

// pipelineKey identifies one render pipeline in the cache.
type pipelineKey struct {
	program backend.Program
	state   state
	layout  string
	attribs backend.AttribLocations
	mode    backend.DrawMode
}

func layoutKey(l backend.VertexLayout) string {
	return fmt.Sprint(l.Stride, l.Attribs)
}

func (d *Device) CreateMesh(data backend.MeshData) (backend.Buffer, error) {
	m := &mesh{
		label:       data.Label,
		layout:      data.Layout,
		layoutKey:   layoutKey(data.Layout),
		mode:        data.Mode,
		indexCount:  uint32(len(data.Indices)),
		vertexCount: uint32(data.VertexCount),
	}

	vertexData := common.Float32Bytes(data.Vertices)
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: data.Label + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return 0, err
	}
	d.queue.WriteBuffer(buf, 0, vertexData)
	m.vertex = buf

	if len(data.Indices) > 0 {
		indexData := common.Uint16Bytes(data.Indices)
		// Buffer writes must be a multiple of 4 bytes.
		if len(indexData)%4 != 0 {
			indexData = append(indexData, 0, 0)
		}
		buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: data.Label + " Index Buffer",
			Size:  uint64(len(indexData)),
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			m.vertex.Release()
			return 0, err
		}
		d.queue.WriteBuffer(buf, 0, indexData)
		m.index = buf
	}

	d.nextBuffer++
	d.meshes[d.nextBuffer] = m
	return d.nextBuffer, nil
}

func (d *Device) DeleteMesh(h backend.Buffer) {
	m, ok := d.meshes[h]
	if !ok {
		return
	}
	if m.vertex != nil {
		m.vertex.Release()
	}
	if m.index != nil {
		m.index.Release()
	}
	delete(d.meshes, h)
}

// Draw encodes one draw of a mesh with the bound program, the current state and a fresh copy of
// the program's uniform blocks.
func (d *Device) Draw(h backend.Buffer, attribs backend.AttribLocations) error {
	if d.framePass == nil {
		return backend.ErrNoFrame
	}
	m, ok := d.meshes[h]
	if !ok {
		return backend.ErrInvalidHandle
	}
	p, ok := d.programs[d.current]
	if !ok {
		return backend.ErrInvalidHandle
	}

	rp, err := d.pipeline(d.current, p, m, attribs)
	if err != nil {
		return err
	}

	offsets := make([][]uint32, len(p.groupBlocks))
	for g, indices := range p.groupBlocks {
		for _, i := range indices {
			data := p.blocks[i].data
			off, err := d.ring.alloc(uint64(len(data)))
			if err != nil {
				return err
			}
			d.queue.WriteBuffer(d.uniformBuffer, off, data)
			offsets[g] = append(offsets[g], uint32(off))
		}
	}

	d.applyViewport()
	d.framePass.SetPipeline(rp)
	for g, bg := range p.bindGroups {
		d.framePass.SetBindGroup(uint32(g), bg, offsets[g])
	}
	d.framePass.SetVertexBuffer(0, m.vertex, 0, wgpu.WholeSize)
	if m.index != nil {
		d.framePass.SetIndexBuffer(m.index, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		d.framePass.DrawIndexed(m.indexCount, 1, 0, 0, 0)
	} else {
		d.framePass.Draw(m.vertexCount, 1, 0, 0)
	}
	return nil
}

// pipeline returns the cached render pipeline for the draw, creating it on first use.
func (d *Device) pipeline(h backend.Program, p *program, m *mesh, attribs backend.AttribLocations) (*wgpu.RenderPipeline, error) {
	key := pipelineKey{program: h, state: d.state, layout: m.layoutKey, attribs: attribs, mode: m.mode}
	if rp, ok := d.pipelines[key]; ok {
		return rp, nil
	}

	vbl, err := vertexBufferLayout(m.layout, attribs)
	if err != nil {
		return nil, fmt.Errorf("mesh %q: %w", m.label, err)
	}

	primitive := wgpu.PrimitiveState{
		Topology:  topology(m.mode),
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  cullMode(d.state.cullEnabled, d.state.cullFace),
	}
	if m.mode == backend.DrawModeTriangleStrip && m.index != nil {
		primitive.StripIndexFormat = wgpu.IndexFormatUint16
	}

	rp, err := d.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  m.label + " Render Pipeline",
		Layout: p.layout,
		Vertex: wgpu.VertexState{
			Module:     p.vertex,
			EntryPoint: p.vertexEntry,
			Buffers:    []wgpu.VertexBufferLayout{vbl},
		},
		Fragment: &wgpu.FragmentState{
			Module:     p.fragment,
			EntryPoint: p.fragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    d.surfaceFormat,
				Blend:     blendState(d.state),
				WriteMask: colorWriteMask(d.state),
			}},
		},
		Primitive: primitive,
		Multisample: wgpu.MultisampleState{
			Count: d.sampleCount,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: d.state.depthEnabled && d.state.depthWrite,
			DepthCompare:      compareFunction(d.state.depthEnabled, d.state.depthFunc),
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, err
	}
	d.logger.Debug("render pipeline created", "mesh", m.label, "program", h, "pipelines", len(d.pipelines)+1)
	d.pipelines[key] = rp
	return rp, nil
}
