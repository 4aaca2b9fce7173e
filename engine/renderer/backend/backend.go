// Package backend defines the GPU vocabulary the scene graph renders through. Concrete devices live in
// glbackend (OpenGL 3.3 core) and wgpubackend (WebGPU); both are driven from the render thread only.
package backend

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
)

var (
	// ErrInvalidHandle is returned when a program or mesh handle is unknown to the device.
	ErrInvalidHandle = errors.New("backend: invalid handle")

	// ErrNoFrame is returned when a draw is issued outside BeginFrame/EndFrame.
	ErrNoFrame = errors.New("backend: no frame in progress")

	// ErrSurfaceLost is returned by BeginFrame when the surface can no longer be presented to. Every
	// program and buffer must be created again, after a Resize to the current size.
	ErrSurfaceLost = errors.New("backend: surface lost")
)

// BackendType selects the Device implementation.
type BackendType string

const (
	BackendTypeGL   BackendType = "gl"
	BackendTypeWGPU BackendType = "wgpu"
)

// Caps describes what a device needs from the layers above it.
type Caps struct {
	// Name is a short human readable device name used in logs.
	Name string

	// ExplicitAttribBinding is true when vertex attribute slots must be looked up by name and bound
	// by the caller. Devices that reflect vertex inputs from shader source report false.
	ExplicitAttribBinding bool

	// DepthZeroToOne is true when clip space depth spans [0, 1] instead of [-1, 1].
	DepthZeroToOne bool

	// ShaderLanguage is the source language CompileProgram expects ("glsl" or "wgsl").
	ShaderLanguage string
}

// Program is an opaque handle to a linked vertex+fragment program. The zero value is never valid.
type Program uint32

// Buffer is an opaque handle to uploaded mesh buffers. The zero value is never valid.
type Buffer uint32

// Semantic names a vertex attribute by meaning rather than by shader slot.
type Semantic int

const (
	SemanticPosition Semantic = iota
	SemanticNormal
	SemanticColor
	SemanticTexCoord

	SemanticCount
)

// String returns the lower case semantic name.
func (s Semantic) String() string {
	switch s {
	case SemanticPosition:
		return "position"
	case SemanticNormal:
		return "normal"
	case SemanticColor:
		return "color"
	case SemanticTexCoord:
		return "texcoord"
	default:
		return "unknown"
	}
}

// ParseSemantic maps a semantic name back to its value.
func ParseSemantic(name string) (Semantic, bool) {
	for s := SemanticPosition; s < SemanticCount; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// AttribLocations maps each semantic to a shader attribute slot, -1 when the program has none.
type AttribLocations [SemanticCount]int32

// NoAttribs returns an AttribLocations with every slot unset.
func NoAttribs() AttribLocations {
	var a AttribLocations
	for i := range a {
		a[i] = -1
	}
	return a
}

// VertexAttrib describes one float attribute inside an interleaved vertex.
type VertexAttrib struct {
	Semantic   Semantic
	Components int // 1..4 float32 components
	Offset     int // byte offset within the vertex
}

// VertexLayout describes an interleaved float32 vertex buffer.
type VertexLayout struct {
	Stride  int // bytes per vertex
	Attribs []VertexAttrib
}

// Attrib returns the attribute for a semantic, if present.
func (l VertexLayout) Attrib(s Semantic) (VertexAttrib, bool) {
	for _, a := range l.Attribs {
		if a.Semantic == s {
			return a, true
		}
	}
	return VertexAttrib{}, false
}

// DrawMode is the primitive topology of a mesh.
type DrawMode int

const (
	DrawModeTriangles DrawMode = iota
	DrawModeTriangleStrip
	DrawModeLines
	DrawModePoints
)

// MeshData is the CPU side of a mesh: interleaved vertices, optional indices and how to draw them.
type MeshData struct {
	Label       string
	Layout      VertexLayout
	Vertices    []float32
	Indices     []uint16
	Mode        DrawMode
	VertexCount int
}

// ElementCount returns the number of indices, or vertices for non-indexed meshes.
func (m MeshData) ElementCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices)
	}
	return m.VertexCount
}

// Face selects which polygon faces are culled.
type Face int

const (
	FaceBack Face = iota
	FaceFront
	FaceFrontAndBack
)

// CompareFunc is a depth comparison function.
type CompareFunc int

const (
	CompareLess CompareFunc = iota
	CompareLessEqual
	CompareEqual
	CompareGreater
	CompareGreaterEqual
	CompareNotEqual
	CompareAlways
	CompareNever
)

// BlendFactor is a blend equation factor.
type BlendFactor int

const (
	BlendOne BlendFactor = iota
	BlendZero
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendSrcColor
	BlendOneMinusSrcColor
)

// StateSetter receives fixed-function pipeline state. A RenderState writes every toggle explicitly.
type StateSetter interface {
	// SetCullFace enables or disables face culling and selects the culled face.
	SetCullFace(enabled bool, face Face)

	// SetDepthTest enables or disables the depth test and selects the comparison.
	SetDepthTest(enabled bool, fn CompareFunc)

	// SetDepthWrite enables or disables depth buffer writes.
	SetDepthWrite(enabled bool)

	// SetBlend enables or disables blending and selects the source and destination factors.
	SetBlend(enabled bool, src, dst BlendFactor)
}

// Device is the GPU abstraction used by shaders, meshes and the frame renderer. Every method must
// be called from the render thread. Uniform setters apply to the program bound by UseProgram and
// silently ignore location -1, matching GL semantics.
type Device interface {
	StateSetter

	// Caps reports the device capabilities.
	//
	// Returns:
	//   - Caps: the capabilities
	Caps() Caps

	// Resize reconfigures the drawable surface.
	//
	// Parameters:
	//   - width, height: the new surface size in pixels
	Resize(width, height int)

	// BeginFrame starts a frame and clears color and depth.
	//
	// Parameters:
	//   - clear: the clear color
	//
	// Returns:
	//   - error: an error if the surface could not be acquired
	BeginFrame(clear common.Color) error

	// EndFrame submits the frame. Presentation is handled by the window (GL) or the device (WebGPU).
	//
	// Returns:
	//   - error: an error if submission failed
	EndFrame() error

	// Viewport sets the pixel rectangle subsequent draws render into.
	//
	// Parameters:
	//   - viewport: the viewport in pixels
	Viewport(viewport common.Rect)

	// CompileProgram compiles and links a vertex+fragment program.
	//
	// Parameters:
	//   - vertexSource: vertex stage source
	//   - fragmentSource: fragment stage source
	//
	// Returns:
	//   - Program: the program handle
	//   - error: a *StageError describing the failing stage and its log
	CompileProgram(vertexSource, fragmentSource string) (Program, error)

	// DeleteProgram releases a program. Unknown handles are ignored.
	DeleteProgram(p Program)

	// AttribLocation looks up a vertex attribute slot by name, -1 if absent.
	AttribLocation(p Program, name string) int32

	// ActiveAttributes returns every active vertex input of a program keyed by name.
	ActiveAttributes(p Program) map[string]int32

	// UniformLocation looks up a uniform by name, -1 if absent.
	UniformLocation(p Program, name string) int32

	// UseProgram binds a program for subsequent uniform writes and draws.
	UseProgram(p Program)

	SetUniformMatrix4(location int32, m [16]float32)
	SetUniformMatrix3(location int32, m [9]float32)
	SetUniform4f(location int32, v [4]float32)
	SetUniform3f(location int32, v [3]float32)
	SetUniform1f(location int32, v float32)
	SetUniform1i(location int32, v int32)
	SetUniform1iv(location int32, v []int32)

	// CreateMesh uploads mesh data and returns a handle reused across frames.
	//
	// Parameters:
	//   - data: the mesh to upload
	//
	// Returns:
	//   - Buffer: the mesh handle
	//   - error: an error if the upload failed
	CreateMesh(data MeshData) (Buffer, error)

	// DeleteMesh releases an uploaded mesh. Unknown handles are ignored.
	DeleteMesh(b Buffer)

	// Draw issues a draw call for an uploaded mesh with the bound program and current state.
	//
	// Parameters:
	//   - b: the mesh handle
	//   - attribs: shader slots for each vertex semantic
	//
	// Returns:
	//   - error: ErrInvalidHandle, ErrNoFrame, or a device error
	Draw(b Buffer, attribs AttribLocations) error

	// Release destroys every resource owned by the device.
	Release()
}
