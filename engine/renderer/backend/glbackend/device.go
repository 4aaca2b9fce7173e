// Package glbackend implements backend.Device on an OpenGL 3.3 core context. Attribute slots are
// bound explicitly by name, and each mesh owns a VAO whose attribute pointers are set up against the
// bound program's locations at draw time.
package glbackend

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/go-gl/gl/v3.3-core/gl"
)

type mesh struct {
	vao, vbo, ebo uint32
	layout        backend.VertexLayout
	mode          uint32
	indexCount    int32
	vertexCount   int32
	enabled       map[uint32]bool
}

// Device is a backend.Device on the current GL context. It must be used from the thread the
// context is current on.
type Device struct {
	logger  *slog.Logger
	swap    func()
	samples int

	width, height int
	meshes        map[backend.Buffer]*mesh
	programs      map[backend.Program]bool
	nextBuffer    backend.Buffer
	inFrame       bool
}

var _ backend.Device = &Device{}

// New loads the GL function pointers for the current context.
//
// Parameters:
//   - options: a variadic list of DeviceBuilderOption functions
//
// Returns:
//   - *Device: the device
//   - error: an error if GL could not be initialized
func New(options ...DeviceBuilderOption) (*Device, error) {
	d := &Device{
		meshes:   make(map[backend.Buffer]*mesh),
		programs: make(map[backend.Program]bool),
	}
	for _, opt := range options {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glbackend: init: %w", err)
	}
	d.logger.Info("gl context ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)
	if d.samples > 1 {
		gl.Enable(gl.MULTISAMPLE)
	}
	return d, nil
}

func (d *Device) Caps() backend.Caps {
	return backend.Caps{
		Name:                  "gl",
		ExplicitAttribBinding: true,
		DepthZeroToOne:        false,
		ShaderLanguage:        "glsl",
	}
}

func (d *Device) Resize(width, height int) {
	d.width, d.height = width, height
}

// BeginFrame clears color and depth. Depth writes are switched on for the clear; the render state
// of the first draw sets them again.
func (d *Device) BeginFrame(clear common.Color) error {
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	d.inFrame = true
	return nil
}

// EndFrame logs pending GL errors and presents through the swap function.
func (d *Device) EndFrame() error {
	if !d.inFrame {
		return backend.ErrNoFrame
	}
	d.inFrame = false
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		d.logger.Warn("gl error", "code", fmt.Sprintf("0x%04x", code))
	}
	if d.swap != nil {
		d.swap()
	}
	return nil
}

func (d *Device) Viewport(viewport common.Rect) {
	gl.Viewport(int32(viewport.X), int32(viewport.Y), int32(viewport.Width), int32(viewport.Height))
}

func (d *Device) CompileProgram(vertexSource, fragmentSource string) (backend.Program, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, &backend.StageError{Stage: backend.StageVertex, Log: err.Error()}
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return 0, &backend.StageError{Stage: backend.StageFragment, Log: err.Error()}
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, &backend.StageError{Stage: backend.StageLink, Log: strings.TrimRight(log, "\x00")}
	}

	d.programs[backend.Program(program)] = true
	return backend.Program(program), nil
}

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile error: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func (d *Device) DeleteProgram(p backend.Program) {
	if !d.programs[p] {
		return
	}
	gl.DeleteProgram(uint32(p))
	delete(d.programs, p)
}

func (d *Device) AttribLocation(p backend.Program, name string) int32 {
	return gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
}

func (d *Device) ActiveAttributes(p backend.Program) map[string]int32 {
	out := make(map[string]int32)
	var count, maxLen int32
	gl.GetProgramiv(uint32(p), gl.ACTIVE_ATTRIBUTES, &count)
	gl.GetProgramiv(uint32(p), gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, &maxLen)
	for i := range uint32(count) {
		var length, size int32
		var xtype uint32
		buf := strings.Repeat("\x00", int(maxLen+1))
		gl.GetActiveAttrib(uint32(p), i, maxLen+1, &length, &size, &xtype, gl.Str(buf))
		name := buf[:length]
		if strings.HasPrefix(name, "gl_") {
			continue
		}
		out[name] = d.AttribLocation(p, name)
	}
	return out
}

func (d *Device) UniformLocation(p backend.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

func (d *Device) UseProgram(p backend.Program) {
	gl.UseProgram(uint32(p))
}

func (d *Device) SetUniformMatrix4(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) SetUniformMatrix3(location int32, m [9]float32) {
	gl.UniformMatrix3fv(location, 1, false, &m[0])
}

func (d *Device) SetUniform4f(location int32, v [4]float32) {
	gl.Uniform4f(location, v[0], v[1], v[2], v[3])
}

func (d *Device) SetUniform3f(location int32, v [3]float32) {
	gl.Uniform3f(location, v[0], v[1], v[2])
}

func (d *Device) SetUniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *Device) SetUniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *Device) SetUniform1iv(location int32, v []int32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1iv(location, int32(len(v)), &v[0])
}

func (d *Device) SetCullFace(enabled bool, face backend.Face) {
	if !enabled {
		gl.Disable(gl.CULL_FACE)
		return
	}
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(glFace(face))
}

func (d *Device) SetDepthTest(enabled bool, fn backend.CompareFunc) {
	if !enabled {
		gl.Disable(gl.DEPTH_TEST)
		return
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(glCompare(fn))
}

func (d *Device) SetDepthWrite(enabled bool) {
	gl.DepthMask(enabled)
}

func (d *Device) SetBlend(enabled bool, src, dst backend.BlendFactor) {
	if !enabled {
		gl.Disable(gl.BLEND)
		return
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(glBlend(src), glBlend(dst))
}

// Release deletes every program and mesh the device still holds. The context itself belongs to
// the window.
func (d *Device) Release() {
	for p := range d.programs {
		d.DeleteProgram(p)
	}
	for b := range d.meshes {
		d.DeleteMesh(b)
	}
}
