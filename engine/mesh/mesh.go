// Package mesh holds vertex/index data for scene objects and uploads it to a device once per GPU context.
package mesh

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
)

type mesh struct {
	data     backend.MeshData
	device   backend.Device
	handle   backend.Buffer
	uploaded bool
}

// Mesh is CPU side geometry plus the device handle it was uploaded to.
type Mesh interface {
	// Label returns the mesh label used in logs and device resource names.
	Label() string

	// Data returns the CPU side mesh data.
	//
	// Returns:
	//   - backend.MeshData: the vertices, indices, layout and draw mode
	Data() backend.MeshData

	// Upload creates the device buffers. Calling it on an uploaded mesh is a no-op.
	//
	// Parameters:
	//   - dev: the device to upload to
	//
	// Returns:
	//   - error: an error if the device rejected the upload
	Upload(dev backend.Device) error

	// Uploaded reports whether the mesh holds a live device handle.
	Uploaded() bool

	// Handle returns the device handle, zero when not uploaded.
	Handle() backend.Buffer

	// Draw uploads the mesh if needed and issues a draw with the given attribute slots.
	//
	// Parameters:
	//   - dev: the device to draw on
	//   - attribs: shader slots for each vertex semantic
	//
	// Returns:
	//   - error: an upload or draw error
	Draw(dev backend.Device, attribs backend.AttribLocations) error

	// Invalidate forgets the device handle without deleting it, for use after the GPU context was lost.
	Invalidate()

	// Release deletes the device buffers.
	Release()
}

var _ Mesh = &mesh{}

// NewMesh wraps mesh data. Nothing is uploaded until Upload or Draw.
//
// Parameters:
//   - data: the mesh data
//
// Returns:
//   - Mesh: the mesh
func NewMesh(data backend.MeshData) Mesh {
	return &mesh{data: data}
}

func (m *mesh) Label() string {
	return m.data.Label
}

func (m *mesh) Data() backend.MeshData {
	return m.data
}

func (m *mesh) Upload(dev backend.Device) error {
	if m.uploaded && m.device == dev {
		return nil
	}
	if m.data.ElementCount() == 0 {
		return fmt.Errorf("mesh %q: no vertices", m.data.Label)
	}
	h, err := dev.CreateMesh(m.data)
	if err != nil {
		return fmt.Errorf("mesh %q: upload: %w", m.data.Label, err)
	}
	m.device = dev
	m.handle = h
	m.uploaded = true
	return nil
}

func (m *mesh) Uploaded() bool {
	return m.uploaded
}

func (m *mesh) Handle() backend.Buffer {
	return m.handle
}

func (m *mesh) Draw(dev backend.Device, attribs backend.AttribLocations) error {
	if err := m.Upload(dev); err != nil {
		return err
	}
	return dev.Draw(m.handle, attribs)
}

func (m *mesh) Invalidate() {
	m.device = nil
	m.handle = 0
	m.uploaded = false
}

func (m *mesh) Release() {
	if m.uploaded {
		m.device.DeleteMesh(m.handle)
	}
	m.Invalidate()
}
