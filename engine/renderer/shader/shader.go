// Package shader wraps a compiled vertex+fragment program together with its attribute slots and a
// uniform location cache. A Shader is shared by many scene objects; it is compiled once per GPU
// context and only its bound uniforms change between draws.
package shader

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/go-gl/mathgl/mgl32"
)

type shader struct {
	name   string
	device backend.Device
	pp     PreProcessor
	logger *slog.Logger

	vertexSource, fragmentSource string

	program  backend.Program
	loaded   bool
	attribs  backend.AttribLocations
	declared map[backend.Semantic]string
	uniforms map[string]int32
}

// Shader is a compiled program bound to one device.
type Shader interface {
	// Name returns the logical name of the shader, used in logs and errors.
	Name() string

	// SetSource replaces the vertex and fragment sources used by the next Load.
	//
	// Parameters:
	//   - vertex: vertex stage source
	//   - fragment: fragment stage source
	SetSource(vertex, fragment string)

	// Load pre-processes, compiles and links the program. If the shader was already loaded and the
	// new sources fail, the previous program stays in use.
	//
	// Returns:
	//   - error: a *CompileError (wrapping ErrCompile) on failure
	Load() error

	// Reload is Load under the name used by hot reload.
	Reload() error

	// Loaded reports whether the shader holds a linked program.
	Loaded() bool

	// Program returns the device program handle, zero when not loaded.
	Program() backend.Program

	// Use binds the program on the device. It is a no-op on an unloaded shader.
	Use()

	// SetPositionAttribIndex binds the position semantic to a named vertex input.
	//
	// Parameters:
	//   - name: the attribute name in the vertex source
	//
	// Returns:
	//   - error: ErrShaderNotLoaded or ErrAttributeNotFound
	SetPositionAttribIndex(name string) error

	// SetNormalAttribIndex binds the normal semantic to a named vertex input.
	SetNormalAttribIndex(name string) error

	// SetColorAttribIndex binds the color semantic to a named vertex input.
	SetColorAttribIndex(name string) error

	// SetTexCoordAttribIndex binds the texture coordinate semantic to a named vertex input.
	SetTexCoordAttribIndex(name string) error

	// AttribLocations returns the slot bound to each semantic, -1 where none is bound.
	AttribLocations() backend.AttribLocations

	// UniformLocation returns the cached location of a uniform, -1 when the program lacks it.
	UniformLocation(name string) int32

	// HasUniform reports whether the program declares an active uniform of that name.
	HasUniform(name string) bool

	SetMatrix4(name string, m mgl32.Mat4)
	SetMatrix3(name string, m mgl32.Mat3)
	SetVec4(name string, v mgl32.Vec4)
	SetVec3(name string, v mgl32.Vec3)
	SetFloat(name string, v float32)
	SetInt(name string, v int32)
	SetIntArray(name string, v []int32)

	// Invalidate forgets the program without deleting it, for use after the GPU context was lost.
	Invalidate()

	// Release deletes the program from the device.
	Release()
}

var _ Shader = &shader{}

// NewShader creates an unloaded Shader for a device.
//
// Parameters:
//   - device: the device the program is compiled on
//   - name: the logical shader name
//   - options: a variadic list of ShaderBuilderOption functions
//
// Returns:
//   - Shader: the shader, ready for Load
func NewShader(device backend.Device, name string, options ...ShaderBuilderOption) Shader {
	s := &shader{
		name:     name,
		device:   device,
		attribs:  backend.NoAttribs(),
		declared: make(map[backend.Semantic]string),
		uniforms: make(map[string]int32),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.pp == nil {
		s.pp = NewPreProcessor(nil)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *shader) Name() string {
	return s.name
}

func (s *shader) SetSource(vertex, fragment string) {
	s.vertexSource = vertex
	s.fragmentSource = fragment
}

func (s *shader) Load() error {
	vs, err := s.pp.Process(s.vertexSource)
	if err != nil {
		return s.fail(&CompileError{Shader: s.name, Stage: StagePreprocess, Log: err.Error(), Err: err})
	}
	decls := s.pp.Declarations()
	fs, err := s.pp.Process(s.fragmentSource)
	if err != nil {
		return s.fail(&CompileError{Shader: s.name, Stage: StagePreprocess, Log: err.Error(), Err: err})
	}

	prog, err := s.device.CompileProgram(vs, fs)
	if err != nil {
		ce := &CompileError{Shader: s.name, Stage: backend.StageLink, Log: err.Error(), Err: err}
		var se *backend.StageError
		if errors.As(err, &se) {
			ce.Stage = se.Stage
			ce.Log = se.Log
		}
		return s.fail(ce)
	}

	if s.loaded {
		s.device.DeleteProgram(s.program)
	}
	s.program = prog
	s.loaded = true
	s.attribs = backend.NoAttribs()
	clear(s.uniforms)

	if !s.device.Caps().ExplicitAttribBinding {
		for name, loc := range s.device.ActiveAttributes(prog) {
			if sem, ok := semanticForName(name); ok && s.attribs[sem] < 0 {
				s.attribs[sem] = loc
			}
		}
	}
	for _, a := range decls {
		if sem, name, ok := a.Attrib(); ok {
			s.declared[sem] = name
		}
	}
	for sem := backend.SemanticPosition; sem < backend.SemanticCount; sem++ {
		name, ok := s.declared[sem]
		if !ok {
			continue
		}
		if err := s.bindAttrib(sem, name); err != nil {
			s.logger.Warn("shader attribute not bound", "shader", s.name, "semantic", sem.String(), "err", err)
		}
	}

	s.logger.Debug("shader loaded", "shader", s.name, "program", prog)
	return nil
}

func (s *shader) fail(ce *CompileError) error {
	s.logger.Error("shader compile failed", "shader", s.name, "stage", ce.Stage, "log", ce.Log)
	return ce
}

func (s *shader) Reload() error {
	return s.Load()
}

func (s *shader) Loaded() bool {
	return s.loaded
}

func (s *shader) Program() backend.Program {
	if !s.loaded {
		return 0
	}
	return s.program
}

func (s *shader) Use() {
	if !s.loaded {
		return
	}
	s.device.UseProgram(s.program)
}

func (s *shader) bindAttrib(sem backend.Semantic, name string) error {
	if !s.loaded {
		return fmt.Errorf("%w: %q", ErrShaderNotLoaded, s.name)
	}
	loc := s.device.AttribLocation(s.program, name)
	if loc < 0 {
		return fmt.Errorf("%w: %q in shader %q", ErrAttributeNotFound, name, s.name)
	}
	s.attribs[sem] = loc
	s.declared[sem] = name
	return nil
}

func (s *shader) SetPositionAttribIndex(name string) error {
	return s.bindAttrib(backend.SemanticPosition, name)
}

func (s *shader) SetNormalAttribIndex(name string) error {
	return s.bindAttrib(backend.SemanticNormal, name)
}

func (s *shader) SetColorAttribIndex(name string) error {
	return s.bindAttrib(backend.SemanticColor, name)
}

func (s *shader) SetTexCoordAttribIndex(name string) error {
	return s.bindAttrib(backend.SemanticTexCoord, name)
}

func (s *shader) AttribLocations() backend.AttribLocations {
	return s.attribs
}

func (s *shader) UniformLocation(name string) int32 {
	if !s.loaded {
		return -1
	}
	if loc, ok := s.uniforms[name]; ok {
		return loc
	}
	loc := s.device.UniformLocation(s.program, name)
	s.uniforms[name] = loc
	return loc
}

func (s *shader) HasUniform(name string) bool {
	return s.UniformLocation(name) >= 0
}

func (s *shader) SetMatrix4(name string, m mgl32.Mat4) {
	if loc := s.UniformLocation(name); loc >= 0 {
		s.device.SetUniformMatrix4(loc, [16]float32(m))
	}
}

func (s *shader) SetMatrix3(name string, m mgl32.Mat3) {
	if loc := s.UniformLocation(name); loc >= 0 {
		s.device.SetUniformMatrix3(loc, [9]float32(m))
	}
}

func (s *shader) SetVec4(name string, v mgl32.Vec4) {
	if loc := s.UniformLocation(name); loc >= 0 {
		s.device.SetUniform4f(loc, [4]float32(v))
	}
}

func (s *shader) SetVec3(name string, v mgl32.Vec3) {
	if loc := s.UniformLocation(name); loc >= 0 {
		s.device.SetUniform3f(loc, [3]float32(v))
	}
}

func (s *shader) SetFloat(name string, v float32) {
	if loc := s.UniformLocation(name); loc >= 0 {
		s.device.SetUniform1f(loc, v)
	}
}

func (s *shader) SetInt(name string, v int32) {
	if loc := s.UniformLocation(name); loc >= 0 {
		s.device.SetUniform1i(loc, v)
	}
}

func (s *shader) SetIntArray(name string, v []int32) {
	if loc := s.UniformLocation(name); loc >= 0 {
		s.device.SetUniform1iv(loc, v)
	}
}

func (s *shader) Invalidate() {
	s.program = 0
	s.loaded = false
	s.attribs = backend.NoAttribs()
	clear(s.uniforms)
}

func (s *shader) Release() {
	if s.loaded {
		s.device.DeleteProgram(s.program)
	}
	s.Invalidate()
}

// semanticForName guesses the semantic of a vertex input from its name, accepting the usual
// a/in prefixes (aPosition, a_normal, inColor, uv).
func semanticForName(name string) (backend.Semantic, bool) {
	n := strings.ToLower(name)
	for _, prefix := range []string{"", "a_", "in_", "a", "in", "v_"} {
		rest, ok := strings.CutPrefix(n, prefix)
		if !ok {
			continue
		}
		if sem, ok := semanticNames[rest]; ok {
			return sem, true
		}
	}
	return 0, false
}

var semanticNames = map[string]backend.Semantic{
	"position": backend.SemanticPosition,
	"pos":      backend.SemanticPosition,
	"normal":   backend.SemanticNormal,
	"color":    backend.SemanticColor,
	"colour":   backend.SemanticColor,
	"texcoord": backend.SemanticTexCoord,
	"uv":       backend.SemanticTexCoord,
}
