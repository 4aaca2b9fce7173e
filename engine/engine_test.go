package engine

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/camera"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/input"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/loader"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/mesh"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/scene"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/window/windowtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertex = `#version 330 core
//@oxy:attrib position aPosition
uniform mat4 uMvpMatrix;
in vec4 aPosition;
void main() {
	gl_Position = uMvpMatrix * aPosition;
}
`

const testFragment = `#version 330 core
out vec4 fragColor;
void main() {
	fragColor = vec4(1.0);
}
`

const testManifest = `
[[shader]]
name = "basic"
glsl = { vertex = "basic.vert", fragment = "basic.frag" }
`

func testShaders() fstest.MapFS {
	return fstest.MapFS{
		"shaders.toml": {Data: []byte(testManifest)},
		"basic.vert":   {Data: []byte(testVertex)},
		"basic.frag":   {Data: []byte(testFragment)},
	}
}

// testApp builds one cube and records every callback.
type testApp struct {
	created  int
	changed  [][2]int
	touches  []input.TouchEvent
	keys     []uint32
	keysUp   []uint32
	scrolls  []float32
	released bool
	failOn   string

	shader shader.Shader
	camera camera.Camera
	cube   scene.Object
}

func (a *testApp) OnSurfaceCreated(h Host) error {
	a.created++
	if a.failOn == "created" {
		return errors.New("boom")
	}
	sh, err := h.LoadShader("basic")
	if err != nil {
		return err
	}
	a.shader = sh
	if a.cube != nil {
		a.cube.SetShader(sh)
		return nil
	}
	a.camera = camera.NewCamera()

	root, err := h.Scene().CreateRootNode("root")
	if err != nil {
		return err
	}
	a.cube = h.Scene().CreateObject("cube",
		scene.WithShader(sh),
		scene.WithCamera(a.camera),
		scene.WithMesh(mesh.NewCube(1, mesh.WithLabel("cube"))),
	)
	return root.AddChild(a.cube)
}

func (a *testApp) OnSurfaceChanged(h Host, width, height int) error {
	a.changed = append(a.changed, [2]int{width, height})
	a.camera.SetViewport(common.Rect{Width: width, Height: height})
	a.camera.SetFrustum(30, float32(width)/float32(height), 1, 400)
	return nil
}

func (a *testApp) OnTouch(h Host, e input.TouchEvent) {
	a.touches = append(a.touches, e)
}

func (a *testApp) OnKey(h Host, keyCode uint32) {
	a.keys = append(a.keys, keyCode)
}

func (a *testApp) OnKeyUp(h Host, keyCode uint32) {
	a.keysUp = append(a.keysUp, keyCode)
}

func (a *testApp) OnScroll(h Host, delta float32) {
	a.scrolls = append(a.scrolls, delta)
}

func (a *testApp) Release() {
	a.released = true
}

func newTestEngine(t *testing.T, app App, fsys fstest.MapFS, options ...EngineBuilderOption) (Engine, *windowtest.Window, *backendtest.Device) {
	t.Helper()
	w := windowtest.New(800, 600)
	dev := backendtest.NewDevice()
	l, err := loader.NewLoader(fsys)
	require.NoError(t, err)
	opts := append([]EngineBuilderOption{WithWindow(w), WithDevice(dev), WithLoader(l)}, options...)
	e, err := NewEngine(app, opts...)
	require.NoError(t, err)
	return e, w, dev
}

func TestEngine_RunLifecycle(t *testing.T) {
	app := &testApp{}
	e, w, dev := newTestEngine(t, app, testShaders())
	w.OnEvents = func(n int) {
		if n == 3 {
			w.Running = false
		}
	}

	require.NoError(t, e.Run(context.Background()))

	assert.Equal(t, 1, app.created)
	assert.Equal(t, [][2]int{{800, 600}}, app.changed)
	assert.Len(t, dev.Draws, 2)
	assert.True(t, app.released)
	assert.True(t, w.Closed)
	assert.Equal(t, "Release", dev.Ops[len(dev.Ops)-1])
	assert.Equal(t, 0, dev.Programs())
}

func TestEngine_SurfaceCreatedError(t *testing.T) {
	app := &testApp{failOn: "created"}
	e, w, _ := newTestEngine(t, app, testShaders())

	err := e.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "surface created")
	assert.True(t, w.Closed)
}

func TestEngine_WhenDirtyDrawsOnDemand(t *testing.T) {
	app := &testApp{}
	e, w, dev := newTestEngine(t, app, testShaders(), WithRenderMode(RenderModeWhenDirty))
	w.OnEvents = func(n int) {
		switch n {
		case 3:
			w.Touch(input.TouchEvent{Action: input.ActionDown, X: 10, Y: 20})
		case 6:
			w.Running = false
		}
	}

	require.NoError(t, e.Run(context.Background()))

	assert.Len(t, dev.Draws, 2)
	assert.Equal(t, 1, w.Polls)
	assert.Equal(t, 5, w.Waits)
	assert.Equal(t, []input.TouchEvent{{Action: input.ActionDown, X: 10, Y: 20}}, app.touches)
}

func TestEngine_ResizeCallback(t *testing.T) {
	app := &testApp{}
	e, w, dev := newTestEngine(t, app, testShaders(), WithRenderMode(RenderModeWhenDirty))
	w.OnEvents = func(n int) {
		switch n {
		case 2:
			w.Resize(0, 0)
		case 3:
			w.Resize(1024, 768)
		case 4:
			w.Running = false
		}
	}

	require.NoError(t, e.Run(context.Background()))

	assert.Equal(t, [][2]int{{800, 600}, {1024, 768}}, app.changed)
	assert.Equal(t, [2]int{1024, 768}, dev.Size)
	width, height := e.Renderer().Size()
	assert.Equal(t, 1024, width)
	assert.Equal(t, 768, height)
}

func TestEngine_Keys(t *testing.T) {
	app := &testApp{}
	e, w, _ := newTestEngine(t, app, testShaders())
	require.NotNil(t, w.KeyDown)

	w.KeyDown(common.KeyP)
	assert.True(t, e.Paused())
	w.KeyDown(common.KeyP)
	assert.False(t, e.Paused())

	w.KeyDown(common.KeySpace)
	w.KeyDown(65)
	assert.Equal(t, []uint32{65}, app.keys)
}

func TestEngine_ScrollAndKeyUp(t *testing.T) {
	app := &testApp{}
	_, w, _ := newTestEngine(t, app, testShaders(), WithRenderMode(RenderModeWhenDirty))
	require.NotNil(t, w.Scroll)
	require.NotNil(t, w.KeyUp)

	w.Scroll(1.5)
	w.KeyUp(65)

	assert.Equal(t, []float32{1.5}, app.scrolls)
	assert.Equal(t, []uint32{65}, app.keysUp)
	assert.Positive(t, w.Posted.Load())
}

func TestEngine_RecreateSurface(t *testing.T) {
	app := &testApp{}
	e, _, dev := newTestEngine(t, app, testShaders())
	require.NoError(t, app.OnSurfaceCreated(e))
	e.Renderer().Resize(800, 600)
	require.NoError(t, app.OnSurfaceChanged(e, 800, 600))
	require.NoError(t, e.Step())
	oldShader, oldProgram := app.shader, app.shader.Program()
	require.True(t, app.cube.Mesh().Uploaded())

	require.NoError(t, e.RecreateSurface())
	assert.Equal(t, 2, app.created)
	assert.Equal(t, [][2]int{{800, 600}, {800, 600}}, app.changed)
	assert.False(t, oldShader.Loaded())
	assert.False(t, app.cube.Mesh().Uploaded())
	assert.Same(t, app.shader, app.cube.Shader())

	dev.Reset()
	require.NoError(t, e.Step())
	require.Len(t, dev.Draws, 1)
	assert.NotEqual(t, oldProgram, dev.Draws[0].Program)
	assert.Equal(t, app.shader.Program(), dev.Draws[0].Program)
	assert.True(t, app.cube.Mesh().Uploaded())
}

func TestEngine_SurfaceLostRecreates(t *testing.T) {
	app := &testApp{}
	e, _, dev := newTestEngine(t, app, testShaders())
	require.NoError(t, app.OnSurfaceCreated(e))
	e.Renderer().Resize(800, 600)
	require.NoError(t, app.OnSurfaceChanged(e, 800, 600))

	dev.LoseSurface()
	require.NoError(t, e.Step())
	assert.Empty(t, dev.Draws)
	assert.Equal(t, 2, app.created)

	require.NoError(t, e.Step())
	assert.Len(t, dev.Draws, 1)
}

func TestEngine_RecreateSurfaceKey(t *testing.T) {
	app := &testApp{}
	e, w, _ := newTestEngine(t, app, testShaders())
	require.NoError(t, app.OnSurfaceCreated(e))

	w.KeyDown(common.KeyF5)
	assert.Equal(t, 2, app.created)
	assert.Empty(t, app.keys)
}

func TestEngine_NoPostAfterClose(t *testing.T) {
	app := &testApp{}
	e, w, _ := newTestEngine(t, app, testShaders())
	w.StopAfter(2)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, e.Run(ctx))
	cancel()
	e.Quit()
	e.RequestRender()

	assert.True(t, w.Closed)
	assert.Zero(t, w.PostedAfterClose.Load())
}

func TestEngine_PauseFreezesAnimators(t *testing.T) {
	app := &testApp{}
	base := time.Unix(0, 0)
	frame := 0
	clock := func() time.Time {
		frame++
		return base.Add(time.Duration(frame) * 16 * time.Millisecond)
	}
	e, _, dev := newTestEngine(t, app, testShaders(), WithClock(clock))
	require.NoError(t, app.OnSurfaceCreated(e))
	require.NoError(t, app.OnSurfaceChanged(e, 800, 600))
	e.Renderer().Resize(800, 600)

	a := animator.NewAnimator(nil, animator.WithDuration(time.Second))
	require.NoError(t, a.Start(0, 1))
	e.Renderer().AddAnimator(a)

	e.SetPaused(true)
	require.NoError(t, e.Step())
	assert.Zero(t, a.Elapsed())
	assert.Len(t, dev.Draws, 1)

	e.SetPaused(false)
	require.NoError(t, e.Step())
	assert.Equal(t, 16*time.Millisecond, a.Elapsed())
	assert.Len(t, dev.Draws, 2)
}

func TestEngine_ReloadShadersKeepsProgramOnFailure(t *testing.T) {
	app := &testApp{}
	fsys := testShaders()
	e, _, _ := newTestEngine(t, app, fsys)
	require.NoError(t, app.OnSurfaceCreated(e))
	prog := app.shader.Program()

	fsys["basic.frag"] = &fstest.MapFile{Data: []byte("void main() {")}
	e.ReloadShaders()
	assert.Equal(t, prog, app.shader.Program())

	fsys["basic.frag"] = &fstest.MapFile{Data: []byte(testFragment)}
	e.ReloadShaders("basic")
	assert.NotEqual(t, prog, app.shader.Program())
	assert.True(t, app.shader.Loaded())
}

func TestEngine_LoadShaderUnknown(t *testing.T) {
	e, _, _ := newTestEngine(t, &testApp{}, testShaders())
	_, err := e.LoadShader("nope")
	assert.ErrorIs(t, err, loader.ErrShaderNotFound)
}

func TestEngine_QuitOnContextCancel(t *testing.T) {
	app := &testApp{}
	e, _, _ := newTestEngine(t, app, testShaders())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.True(t, app.released)
}

func TestRenderMode_String(t *testing.T) {
	assert.Equal(t, "continuously", RenderModeContinuously.String())
	assert.Equal(t, "when_dirty", RenderModeWhenDirty.String())
}
