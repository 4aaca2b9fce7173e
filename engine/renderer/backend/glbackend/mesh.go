package glbackend

import (
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/go-gl/gl/v3.3-core/gl"
)

func (d *Device) CreateMesh(data backend.MeshData) (backend.Buffer, error) {
	m := &mesh{
		layout:      data.Layout,
		mode:        glMode(data.Mode),
		indexCount:  int32(len(data.Indices)),
		vertexCount: int32(data.VertexCount),
		enabled:     make(map[uint32]bool),
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(data.Vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data.Vertices)*4, gl.Ptr(data.Vertices), gl.STATIC_DRAW)
	}

	if len(data.Indices) > 0 {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*2, gl.Ptr(data.Indices), gl.STATIC_DRAW)
	}
	gl.BindVertexArray(0)

	d.nextBuffer++
	d.meshes[d.nextBuffer] = m
	return d.nextBuffer, nil
}

func (d *Device) DeleteMesh(b backend.Buffer) {
	m, ok := d.meshes[b]
	if !ok {
		return
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
	delete(d.meshes, b)
}

// Draw points the mesh's attributes at the given locations, disabling any location a previous
// program used that this one does not, then issues the draw.
func (d *Device) Draw(b backend.Buffer, attribs backend.AttribLocations) error {
	m, ok := d.meshes[b]
	if !ok {
		return backend.ErrInvalidHandle
	}
	if !d.inFrame {
		return backend.ErrNoFrame
	}

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	used := make(map[uint32]bool, len(attribs))
	for sem := backend.SemanticPosition; sem < backend.SemanticCount; sem++ {
		loc := attribs[sem]
		if loc < 0 {
			continue
		}
		a, ok := m.layout.Attrib(sem)
		if !ok {
			continue
		}
		l := uint32(loc)
		gl.VertexAttribPointerWithOffset(l, int32(a.Components), gl.FLOAT, false, int32(m.layout.Stride), uintptr(a.Offset))
		gl.EnableVertexAttribArray(l)
		used[l] = true
	}
	for l := range m.enabled {
		if !used[l] {
			gl.DisableVertexAttribArray(l)
		}
	}
	m.enabled = used

	if m.indexCount > 0 {
		gl.DrawElements(m.mode, m.indexCount, gl.UNSIGNED_SHORT, nil)
	} else {
		gl.DrawArrays(m.mode, 0, m.vertexCount)
	}
	gl.BindVertexArray(0)
	return nil
}
