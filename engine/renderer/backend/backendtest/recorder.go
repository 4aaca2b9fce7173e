// Package backendtest provides a recording backend.Device for tests that exercise shaders, meshes and
// the frame renderer without a GPU.
package backendtest

import (
	"regexp"
	"strings"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
)

var (
	attribDeclRegex  = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:in|attribute)\s+\w+\s+(\w+)\s*;`)
	uniformDeclRegex = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)
)

// State is the fixed-function state the device last received.
type State struct {
	CullEnabled  bool
	CullFace     backend.Face
	DepthEnabled bool
	DepthFunc    backend.CompareFunc
	DepthWrite   bool
	BlendEnabled bool
	BlendSrc     backend.BlendFactor
	BlendDst     backend.BlendFactor
}

// Draw records one draw call and the state it was issued with.
type Draw struct {
	Program  backend.Program
	Mesh     string
	Viewport common.Rect
	State    State
	Attribs  backend.AttribLocations
	Uniforms map[string]any
}

type program struct {
	attribs  map[string]int32
	uniforms map[string]int32
	names    map[int32]string
}

// Device is a backend.Device that records what it is asked to do.
type Device struct {
	// CapsValue is returned by Caps.
	CapsValue backend.Caps

	// Ops lists every call in order, by method name.
	Ops []string

	// Draws lists every successful draw call.
	Draws []Draw

	// State is the current fixed-function state.
	State State

	// StateWrites counts StateSetter calls.
	StateWrites int

	// UseProgramCalls counts UseProgram calls.
	UseProgramCalls int

	// CurrentViewport is the last viewport set.
	CurrentViewport common.Rect

	// Size is the last surface size passed to Resize.
	Size [2]int

	// FailBeginFrame makes BeginFrame return this error when set.
	FailBeginFrame error

	programs    map[backend.Program]*program
	meshes      map[backend.Buffer]backend.MeshData
	uniforms    map[backend.Program]map[string]any
	current     backend.Program
	nextProgram backend.Program
	nextBuffer  backend.Buffer
	inFrame     bool
	lost        bool
}

var _ backend.Device = &Device{}

// NewDevice creates a recording device. By default it behaves like a GL device that needs explicit
// attribute binding and uses the [-1, 1] depth range.
func NewDevice() *Device {
	return &Device{
		CapsValue: backend.Caps{Name: "recorder", ExplicitAttribBinding: true, ShaderLanguage: "glsl"},
		programs:  make(map[backend.Program]*program),
		meshes:    make(map[backend.Buffer]backend.MeshData),
		uniforms:  make(map[backend.Program]map[string]any),
	}
}

// Programs returns the number of live programs.
func (d *Device) Programs() int {
	return len(d.programs)
}

// Meshes returns the number of live meshes.
func (d *Device) Meshes() int {
	return len(d.meshes)
}

// Uniform returns the last value written to a named uniform of a program.
func (d *Device) Uniform(p backend.Program, name string) (any, bool) {
	v, ok := d.uniforms[p][name]
	return v, ok
}

// LoseSurface makes the next BeginFrame fail with backend.ErrSurfaceLost.
func (d *Device) LoseSurface() {
	d.lost = true
}

// Count returns how many times an operation was recorded.
func (d *Device) Count(op string) int {
	n := 0
	for _, o := range d.Ops {
		if o == op {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls and draws but keeps programs and meshes.
func (d *Device) Reset() {
	d.Ops = nil
	d.Draws = nil
	d.StateWrites = 0
	d.UseProgramCalls = 0
}

func (d *Device) Caps() backend.Caps {
	return d.CapsValue
}

func (d *Device) Resize(width, height int) {
	d.Ops = append(d.Ops, "Resize")
	d.Size = [2]int{width, height}
}

func (d *Device) BeginFrame(clear common.Color) error {
	d.Ops = append(d.Ops, "BeginFrame")
	if d.FailBeginFrame != nil {
		return d.FailBeginFrame
	}
	if d.lost {
		d.lost = false
		return backend.ErrSurfaceLost
	}
	d.inFrame = true
	return nil
}

func (d *Device) EndFrame() error {
	d.Ops = append(d.Ops, "EndFrame")
	if !d.inFrame {
		return backend.ErrNoFrame
	}
	d.inFrame = false
	return nil
}

func (d *Device) Viewport(viewport common.Rect) {
	d.Ops = append(d.Ops, "Viewport")
	d.CurrentViewport = viewport
}

// CompileProgram accepts any source with a main function and balanced braces. Attributes and
// uniforms are discovered from GLSL style declarations.
func (d *Device) CompileProgram(vertexSource, fragmentSource string) (backend.Program, error) {
	d.Ops = append(d.Ops, "CompileProgram")
	if err := checkSource(vertexSource); err != "" {
		return 0, &backend.StageError{Stage: backend.StageVertex, Log: err}
	}
	if err := checkSource(fragmentSource); err != "" {
		return 0, &backend.StageError{Stage: backend.StageFragment, Log: err}
	}

	p := &program{
		attribs:  make(map[string]int32),
		uniforms: make(map[string]int32),
		names:    make(map[int32]string),
	}
	for i, m := range attribDeclRegex.FindAllStringSubmatch(vertexSource, -1) {
		p.attribs[m[1]] = int32(i)
	}
	next := int32(0)
	for _, src := range []string{vertexSource, fragmentSource} {
		for _, m := range uniformDeclRegex.FindAllStringSubmatch(src, -1) {
			if _, ok := p.uniforms[m[1]]; ok {
				continue
			}
			p.uniforms[m[1]] = next
			p.names[next] = m[1]
			next++
		}
	}

	d.nextProgram++
	d.programs[d.nextProgram] = p
	d.uniforms[d.nextProgram] = make(map[string]any)
	return d.nextProgram, nil
}

func checkSource(src string) string {
	switch {
	case strings.TrimSpace(src) == "":
		return "empty source"
	case !strings.Contains(src, "main"):
		return "missing entry point"
	case strings.Count(src, "{") != strings.Count(src, "}"):
		return "unbalanced braces"
	}
	return ""
}

func (d *Device) DeleteProgram(p backend.Program) {
	d.Ops = append(d.Ops, "DeleteProgram")
	delete(d.programs, p)
	delete(d.uniforms, p)
	if d.current == p {
		d.current = 0
	}
}

func (d *Device) AttribLocation(p backend.Program, name string) int32 {
	d.Ops = append(d.Ops, "AttribLocation")
	prog, ok := d.programs[p]
	if !ok {
		return -1
	}
	if loc, ok := prog.attribs[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) ActiveAttributes(p backend.Program) map[string]int32 {
	out := make(map[string]int32)
	if prog, ok := d.programs[p]; ok {
		for k, v := range prog.attribs {
			out[k] = v
		}
	}
	return out
}

func (d *Device) UniformLocation(p backend.Program, name string) int32 {
	d.Ops = append(d.Ops, "UniformLocation")
	prog, ok := d.programs[p]
	if !ok {
		return -1
	}
	if loc, ok := prog.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) UseProgram(p backend.Program) {
	d.Ops = append(d.Ops, "UseProgram")
	d.UseProgramCalls++
	d.current = p
}

func (d *Device) setUniform(location int32, v any) {
	if location < 0 {
		return
	}
	prog, ok := d.programs[d.current]
	if !ok {
		return
	}
	if name, ok := prog.names[location]; ok {
		d.uniforms[d.current][name] = v
	}
}

func (d *Device) SetUniformMatrix4(location int32, m [16]float32) { d.setUniform(location, m) }
func (d *Device) SetUniformMatrix3(location int32, m [9]float32) { d.setUniform(location, m) }
func (d *Device) SetUniform4f(location int32, v [4]float32) { d.setUniform(location, v) }
func (d *Device) SetUniform3f(location int32, v [3]float32) { d.setUniform(location, v) }
func (d *Device) SetUniform1f(location int32, v float32) { d.setUniform(location, v) }
func (d *Device) SetUniform1i(location int32, v int32) { d.setUniform(location, v) }

func (d *Device) SetUniform1iv(location int32, v []int32) {
	d.setUniform(location, append([]int32(nil), v...))
}

func (d *Device) SetCullFace(enabled bool, face backend.Face) {
	d.StateWrites++
	d.State.CullEnabled, d.State.CullFace = enabled, face
}

func (d *Device) SetDepthTest(enabled bool, fn backend.CompareFunc) {
	d.StateWrites++
	d.State.DepthEnabled, d.State.DepthFunc = enabled, fn
}

func (d *Device) SetDepthWrite(enabled bool) {
	d.StateWrites++
	d.State.DepthWrite = enabled
}

func (d *Device) SetBlend(enabled bool, src, dst backend.BlendFactor) {
	d.StateWrites++
	d.State.BlendEnabled, d.State.BlendSrc, d.State.BlendDst = enabled, src, dst
}

func (d *Device) CreateMesh(data backend.MeshData) (backend.Buffer, error) {
	d.Ops = append(d.Ops, "CreateMesh")
	d.nextBuffer++
	d.meshes[d.nextBuffer] = data
	return d.nextBuffer, nil
}

func (d *Device) DeleteMesh(b backend.Buffer) {
	d.Ops = append(d.Ops, "DeleteMesh")
	delete(d.meshes, b)
}

func (d *Device) Draw(b backend.Buffer, attribs backend.AttribLocations) error {
	d.Ops = append(d.Ops, "Draw")
	mesh, ok := d.meshes[b]
	if !ok {
		return backend.ErrInvalidHandle
	}
	if !d.inFrame {
		return backend.ErrNoFrame
	}
	snapshot := make(map[string]any, len(d.uniforms[d.current]))
	for k, v := range d.uniforms[d.current] {
		snapshot[k] = v
	}
	d.Draws = append(d.Draws, Draw{
		Program:  d.current,
		Mesh:     mesh.Label,
		Viewport: d.CurrentViewport,
		State:    d.State,
		Attribs:  attribs,
		Uniforms: snapshot,
	})
	return nil
}

func (d *Device) Release() {
	d.Ops = append(d.Ops, "Release")
	d.programs = make(map[backend.Program]*program)
	d.meshes = make(map[backend.Buffer]backend.MeshData)
}
