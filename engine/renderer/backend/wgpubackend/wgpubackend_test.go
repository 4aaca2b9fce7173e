package wgpubackend

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModule = `
struct Uniforms {
    uMvpMatrix: mat4x4<f32>,
    uNormalMatrix: mat3x3<f32>,
    uLightPos: vec4<f32>,
}

@group(0) @binding(0) var<uniform> u: Uniforms;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
}

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) normal: vec3<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip = u.uMvpMatrix * vec4<f32>(in.position, 1.0);
    out.normal = u.uNormalMatrix * in.normal;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(normalize(in.normal) * 0.5 + 0.5, 1.0);
}
`

func TestUniformRing(t *testing.T) {
	r := uniformRing{size: 1024, align: 256}

	off, err := r.alloc(64)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), off)

	off, err = r.alloc(300)
	require.NoError(t, err)
	assert.Equal(t, uint64(256), off)

	_, err = r.alloc(512)
	assert.ErrorIs(t, err, ErrUniformRingFull)

	r.reset()
	off, err = r.alloc(1024)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), off)
}

func TestUniformBlockWriteClips(t *testing.T) {
	b := uniformBlock{data: make([]byte, 8)}

	b.write(4, 2, []byte{1, 2, 3, 4})
	assert.Equal(t, []byte{0, 0, 0, 0, 1, 2, 0, 0}, b.data)

	b.write(6, 16, []byte{9, 9, 9, 9})
	assert.Equal(t, []byte{0, 0, 0, 0, 1, 2, 9, 9}, b.data)

	b.write(8, 4, []byte{7})
	assert.Equal(t, []byte{0, 0, 0, 0, 1, 2, 9, 9}, b.data)
}

func TestReflectProgramSingleModule(t *testing.T) {
	r, err := reflectProgram(testModule, testModule)
	require.NoError(t, err)
	assert.Equal(t, "vs_main", r.VertexEntry)
	assert.Equal(t, "fs_main", r.FragmentEntry)
	assert.Equal(t, map[string]int32{"position": 0, "normal": 1}, r.Attributes())

	fields, refs, blocks := newUniformTable(r)
	require.Len(t, blocks, 1)
	assert.Equal(t, 128, len(blocks[0].data))

	loc, ok := fields["uNormalMatrix"]
	require.True(t, ok)
	assert.Equal(t, uint64(64), refs[loc].offset)
	assert.Equal(t, uint64(48), refs[loc].size)

	loc = fields["uLightPos"]
	assert.Equal(t, uint64(112), refs[loc].offset)
}

func TestReflectProgramStageErrors(t *testing.T) {
	_, err := reflectProgram("fn broken(", testModule)
	var se *backend.StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, backend.StageVertex, se.Stage)

	vertexOnly := `
@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, 1.0);
}
`
	_, err = reflectProgram(vertexOnly, vertexOnly)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, backend.StageFragment, se.Stage)
}

func TestVertexBufferLayout(t *testing.T) {
	layout := backend.VertexLayout{
		Stride: 40,
		Attribs: []backend.VertexAttrib{
			{Semantic: backend.SemanticPosition, Components: 3, Offset: 0},
			{Semantic: backend.SemanticNormal, Components: 3, Offset: 12},
			{Semantic: backend.SemanticColor, Components: 4, Offset: 24},
		},
	}
	attribs := backend.NoAttribs()
	attribs[backend.SemanticPosition] = 0
	attribs[backend.SemanticColor] = 1

	vbl, err := vertexBufferLayout(layout, attribs)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), vbl.ArrayStride)
	require.Len(t, vbl.Attributes, 2)
	assert.Equal(t, wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0}, vbl.Attributes[0])
	assert.Equal(t, wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x4, Offset: 24, ShaderLocation: 1}, vbl.Attributes[1])

	attribs[backend.SemanticTexCoord] = 2
	_, err = vertexBufferLayout(layout, attribs)
	assert.Error(t, err)
}

func TestStateConversion(t *testing.T) {
	assert.Equal(t, wgpu.CompareFunctionAlways, compareFunction(false, backend.CompareLess))
	assert.Equal(t, wgpu.CompareFunctionLessEqual, compareFunction(true, backend.CompareLessEqual))
	assert.Equal(t, wgpu.CullModeNone, cullMode(false, backend.FaceBack))
	assert.Equal(t, wgpu.CullModeBack, cullMode(true, backend.FaceBack))

	both := state{cullEnabled: true, cullFace: backend.FaceFrontAndBack}
	assert.Equal(t, wgpu.CullModeNone, cullMode(both.cullEnabled, both.cullFace))
	assert.Equal(t, wgpu.ColorWriteMaskNone, colorWriteMask(both))
	assert.Equal(t, wgpu.ColorWriteMaskAll, colorWriteMask(state{}))

	assert.Nil(t, blendState(state{}))
	bs := blendState(state{blendEnabled: true, blendSrc: backend.BlendSrcAlpha, blendDst: backend.BlendOneMinusSrcAlpha})
	require.NotNil(t, bs)
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, bs.Color.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorOneMinusSrcAlpha, bs.Alpha.DstFactor)
}
