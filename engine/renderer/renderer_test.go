package renderer

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/camera"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/mesh"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertex = `#version 330 core
//@oxy:attrib position aPosition
uniform mat4 uMMatrix;
uniform mat4 uMvpMatrix;
in vec4 aPosition;
void main() {
	gl_Position = uMvpMatrix * aPosition;
}
`

const testFragment = `#version 330 core
uniform vec4 uLightPos;
out vec4 fragColor;
void main() {
	fragColor = uLightPos;
}
`

type fixture struct {
	dev    *backendtest.Device
	sm     scene.Manager
	root   scene.Node
	shader shader.Shader
	camera camera.Camera
	r      FrameRenderer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dev := backendtest.NewDevice()
	sh := shader.NewShader(dev, "basic", shader.WithSource(testVertex, testFragment))
	require.NoError(t, sh.Load())

	sm := scene.NewManager()
	root, err := sm.CreateRootNode("root")
	require.NoError(t, err)

	cam := camera.NewCamera(
		camera.WithLookAt(mgl32.Vec3{0, 0, 3.73}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
		camera.WithFrustum(30, 800.0/600.0, 1, 400),
		camera.WithViewport(common.Rect{Width: 800, Height: 600}),
	)
	return &fixture{dev: dev, sm: sm, root: root, shader: sh, camera: cam, r: NewFrameRenderer(dev)}
}

func (f *fixture) object(t *testing.T, name string, l scene.Listener, options ...scene.ObjectBuilderOption) scene.Object {
	t.Helper()
	opts := append([]scene.ObjectBuilderOption{
		scene.WithShader(f.shader),
		scene.WithCamera(f.camera),
		scene.WithMesh(mesh.NewCube(1, mesh.WithLabel(name))),
		scene.WithListener(l),
	}, options...)
	o := f.sm.CreateObject(name, opts...)
	require.NoError(t, f.root.AddChild(o))
	return o
}

func TestFrameRenderer_CubeBeforeLight(t *testing.T) {
	f := newFixture(t)
	var calls []string
	record := func(obj scene.Object) error {
		calls = append(calls, obj.Name())
		return nil
	}
	f.object(t, "Cube", scene.ListenerFuncs{ApplyFunc: record})
	f.object(t, "Light", scene.ListenerFuncs{ApplyFunc: record})

	f.r.Resize(800, 600)
	more, err := f.r.Frame(f.sm, 16*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, more)

	assert.Equal(t, []string{"Cube", "Light"}, calls)
	require.Len(t, f.dev.Draws, 2)
	assert.Equal(t, "Cube", f.dev.Draws[0].Mesh)
	assert.Equal(t, "Light", f.dev.Draws[1].Mesh)
	assert.Equal(t, common.Rect{Width: 800, Height: 600}, f.dev.Draws[0].Viewport)
	assert.Equal(t, [2]int{800, 600}, f.dev.Size)
	assert.Equal(t, FrameStats{Objects: 2, Drawn: 2}, f.r.Stats())
}

func TestFrameRenderer_UpdatePassPrecedesDrawPass(t *testing.T) {
	f := newFixture(t)
	var calls []string
	listener := func(name string) scene.Listener {
		return scene.ListenerFuncs{
			UpdateFunc: func(scene.Object) { calls = append(calls, "update "+name) },
			ApplyFunc: func(scene.Object) error {
				calls = append(calls, "apply "+name)
				return nil
			},
		}
	}
	f.object(t, "a", listener("a"))
	f.object(t, "b", listener("b"))

	f.r.Resize(320, 240)
	_, err := f.r.Frame(f.sm, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"update a", "update b", "apply a", "apply b"}, calls)
}

func TestFrameRenderer_PushesStandardMatrices(t *testing.T) {
	f := newFixture(t)
	o := f.object(t, "cube", nil)
	o.Transform().SetTranslate(1, 2, 3)

	f.r.Resize(800, 600)
	require.NoError(t, f.r.DrawScene(f.sm))
	require.Len(t, f.dev.Draws, 1)

	model := mgl32.Translate3D(1, 2, 3)
	mvp := f.camera.ProjectionMatrix().Mul4(f.camera.ViewMatrix()).Mul4(model)
	assert.Equal(t, [16]float32(model), f.dev.Draws[0].Uniforms[UniformModel])
	got, ok := f.dev.Draws[0].Uniforms[UniformModelViewProj].([16]float32)
	require.True(t, ok)
	assert.True(t, mgl32.Mat4(got).ApproxEqualThreshold(mvp, 1e-5))

	// uVMatrix is not declared by the test program.
	_, ok = f.dev.Draws[0].Uniforms[UniformView]
	assert.False(t, ok)
}

func TestFrameRenderer_ListenerApplyOverridesUniforms(t *testing.T) {
	f := newFixture(t)
	f.object(t, "lit", scene.ListenerFuncs{ApplyFunc: func(obj scene.Object) error {
		obj.Shader().SetVec4("uLightPos", mgl32.Vec4{1, 0, 0, 1})
		return nil
	}})

	f.r.Resize(100, 100)
	require.NoError(t, f.r.DrawScene(f.sm))
	require.Len(t, f.dev.Draws, 1)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, f.dev.Draws[0].Uniforms["uLightPos"])
}

func TestFrameRenderer_NoSurface(t *testing.T) {
	f := newFixture(t)
	f.object(t, "cube", nil)

	err := f.r.DrawScene(f.sm)
	assert.ErrorIs(t, err, ErrResourceUnavailable)

	f.r.Resize(0, 600)
	_, err = f.r.Frame(f.sm, time.Millisecond)
	assert.ErrorIs(t, err, ErrResourceUnavailable)

	assert.Empty(t, f.dev.Draws)
	assert.Zero(t, f.dev.Count("BeginFrame"))
}

func TestFrameRenderer_NoRoot(t *testing.T) {
	dev := backendtest.NewDevice()
	r := NewFrameRenderer(dev)
	r.Resize(10, 10)
	assert.ErrorIs(t, r.DrawScene(scene.NewManager()), scene.ErrNoRoot)
	assert.ErrorIs(t, r.UpdateScene(scene.NewManager()), scene.ErrNoRoot)
}

func TestFrameRenderer_FailingObjectIsSkipped(t *testing.T) {
	f := newFixture(t)
	f.object(t, "broken", scene.ListenerFuncs{ApplyFunc: func(scene.Object) error {
		return errors.New("boom")
	}})
	f.object(t, "fine", nil)

	broken := shader.NewShader(f.dev, "unloaded", shader.WithSource("", ""))
	f.object(t, "noshader", nil, scene.WithShader(broken))

	f.r.Resize(64, 64)
	require.NoError(t, f.r.DrawScene(f.sm))
	require.Len(t, f.dev.Draws, 1)
	assert.Equal(t, "fine", f.dev.Draws[0].Mesh)
	assert.Equal(t, FrameStats{Objects: 3, Drawn: 1, Failed: 2}, f.r.Stats())
}

func TestFrameRenderer_SkipsIncompleteAndDisabled(t *testing.T) {
	f := newFixture(t)
	updated := 0
	f.object(t, "off", scene.ListenerFuncs{UpdateFunc: func(scene.Object) { updated++ }}, scene.WithEnabled(false))
	f.object(t, "nocam", nil, scene.WithCamera(nil))
	f.object(t, "nomesh", nil, scene.WithMesh(nil))
	require.NoError(t, f.root.AddChild(f.sm.CreateNode("group")))

	f.r.Resize(64, 64)
	_, err := f.r.Frame(f.sm, 0)
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Empty(t, f.dev.Draws)
	assert.Equal(t, FrameStats{Objects: 3, Skipped: 3}, f.r.Stats())
}

func TestFrameRenderer_CachesProgramAndState(t *testing.T) {
	f := newFixture(t)
	depth := pipeline.NewRenderState(pipeline.WithCullFace(backend.FaceBack), pipeline.WithDepthTest(backend.CompareLessEqual))
	f.object(t, "a", nil, scene.WithRenderState(depth))
	f.object(t, "b", nil, scene.WithRenderState(depth))
	f.object(t, "c", nil)

	f.r.Resize(64, 64)
	require.NoError(t, f.r.DrawScene(f.sm))

	assert.Equal(t, 1, f.dev.UseProgramCalls)
	assert.Equal(t, 8, f.dev.StateWrites)
	assert.Equal(t, 1, f.dev.Count("Viewport"))
	require.Len(t, f.dev.Draws, 3)
	assert.True(t, f.dev.Draws[0].State.DepthEnabled)
	assert.Equal(t, backend.CompareLessEqual, f.dev.Draws[1].State.DepthFunc)
	assert.False(t, f.dev.Draws[2].State.DepthEnabled)
	assert.False(t, f.dev.Draws[2].State.CullEnabled)

	// Every frame starts with cold caches.
	require.NoError(t, f.r.DrawScene(f.sm))
	assert.Equal(t, 2, f.dev.UseProgramCalls)
	assert.Equal(t, 16, f.dev.StateWrites)
}

func TestFrameRenderer_EmptyCameraViewportUsesSurface(t *testing.T) {
	f := newFixture(t)
	f.camera.SetViewport(common.Rect{})
	f.object(t, "cube", nil)

	f.r.Resize(640, 480)
	require.NoError(t, f.r.DrawScene(f.sm))
	require.Len(t, f.dev.Draws, 1)
	assert.Equal(t, common.Rect{Width: 640, Height: 480}, f.dev.Draws[0].Viewport)
}

func TestFrameRenderer_BeginFrameError(t *testing.T) {
	f := newFixture(t)
	f.object(t, "cube", nil)
	f.dev.FailBeginFrame = errors.New("surface lost")

	f.r.Resize(64, 64)
	err := f.r.DrawScene(f.sm)
	require.Error(t, err)
	assert.ErrorIs(t, err, f.dev.FailBeginFrame)
	assert.Empty(t, f.dev.Draws)
}

func TestFrameRenderer_Animators(t *testing.T) {
	dev := backendtest.NewDevice()
	var values []float32
	a := animator.NewAnimator(animator.CallbackFuncs{
		AnimationFunc: func(v mgl32.Vec3) { values = append(values, v.X()) },
	}, animator.WithDuration(100*time.Millisecond))

	r := NewFrameRenderer(dev, WithAnimators(a, a))
	assert.False(t, r.Advance(10*time.Millisecond))

	require.NoError(t, a.Start(0, 1))
	assert.True(t, r.Advance(50*time.Millisecond))
	assert.True(t, r.Advance(50*time.Millisecond))
	assert.False(t, r.Advance(50*time.Millisecond))
	require.Len(t, values, 2)
	assert.InDelta(t, 0.5, values[0], 1e-5)
	assert.InDelta(t, 1.0, values[1], 1e-5)

	assert.True(t, r.RemoveAnimator(a))
	assert.False(t, r.RemoveAnimator(a))
	require.NoError(t, a.Start(0, 1))
	assert.False(t, r.Advance(10*time.Millisecond))
}

func TestFrameRenderer_ClearColor(t *testing.T) {
	dev := backendtest.NewDevice()
	gray := common.Color{R: 0.7, G: 0.7, B: 0.7}
	r := NewFrameRenderer(dev, WithClearColor(gray))
	assert.Equal(t, gray, r.ClearColor())

	r.SetClearColor(common.Color{A: 1})
	assert.Equal(t, common.Color{A: 1}, r.ClearColor())
}
