package coloredrect

import (
	"context"
	"testing"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/input"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/loader"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/window/windowtest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, app engine.App, options ...engine.EngineBuilderOption) (engine.Engine, *windowtest.Window, *backendtest.Device) {
	t.Helper()
	w := windowtest.New(800, 400)
	dev := backendtest.NewDevice()
	l, err := loader.NewLoader(Shaders())
	require.NoError(t, err)
	opts := append([]engine.EngineBuilderOption{engine.WithWindow(w), engine.WithDevice(dev), engine.WithLoader(l)}, options...)
	e, err := engine.NewEngine(app, opts...)
	require.NoError(t, err)
	return e, w, dev
}

func TestApp_Run(t *testing.T) {
	app := New()
	e, w, dev := newTestEngine(t, app)
	w.StopAfter(2)

	require.NoError(t, e.Run(context.Background()))

	require.Len(t, dev.Draws, 1)
	d := dev.Draws[0]
	assert.Equal(t, "Rect", d.Mesh)
	assert.True(t, d.State.CullEnabled)
	assert.Equal(t, backend.CompareLessEqual, d.State.DepthFunc)
	assert.Equal(t, 800, d.Viewport.Width)
	assert.Equal(t, 400, d.Viewport.Height)
	assert.Contains(t, d.Uniforms, "uMvpMatrix")
	assert.Equal(t, ClearColor, e.Renderer().ClearColor())
}

func TestApp_RectGeometry(t *testing.T) {
	app := New()
	e, _, _ := newTestEngine(t, app)
	require.NoError(t, app.OnSurfaceCreated(e))
	require.NoError(t, app.OnSurfaceChanged(e, 800, 400))

	data := app.rect.Mesh().Data()
	stride := data.Layout.Stride / 4
	// First vertex is the bottom left corner: (-w/2, -h/2, 0) followed by the color.
	assert.InDelta(t, -(2*2-0.1)/2, data.Vertices[0], 1e-6)
	assert.InDelta(t, -(2-0.1)/2, data.Vertices[1], 1e-6)
	assert.Equal(t, []float32{1, 0, 0, 1}, data.Vertices[3:7])
	assert.Len(t, data.Vertices, 4*stride)

	_, ok := data.Layout.Attrib(backend.SemanticNormal)
	assert.False(t, ok)
}

func TestApp_DragRotation(t *testing.T) {
	app := New()
	e, w, _ := newTestEngine(t, app, engine.WithRenderMode(engine.RenderModeWhenDirty))
	require.NoError(t, app.OnSurfaceCreated(e))
	e.Renderer().Resize(800, 400)
	require.NoError(t, app.OnSurfaceChanged(e, 800, 400))

	w.Touch(input.TouchEvent{Action: input.ActionMove, X: 50, Y: 50})
	require.NoError(t, e.Step())
	assert.Equal(t, mgl32.Ident4(), app.rect.Transform().Matrix())

	w.Touch(input.TouchEvent{Action: input.ActionDown, X: 0, Y: 0})
	w.Touch(input.TouchEvent{Action: input.ActionMove, X: 0, Y: 50})
	require.NoError(t, e.Step())

	want := mgl32.HomogRotate3DX(mgl32.DegToRad(10))
	got := app.rect.Transform().Matrix()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5)
	}
}

func TestApp_RecreateSurface(t *testing.T) {
	app := New()
	e, _, dev := newTestEngine(t, app)
	require.NoError(t, app.OnSurfaceCreated(e))
	e.Renderer().Resize(800, 400)
	require.NoError(t, app.OnSurfaceChanged(e, 800, 400))
	require.NoError(t, e.Step())
	rect := app.rect

	dev.LoseSurface()
	require.NoError(t, e.Step())
	assert.Same(t, rect, app.rect)
	assert.Len(t, e.Scene().Root().Children(), 1)

	dev.Reset()
	require.NoError(t, e.Step())
	require.Len(t, dev.Draws, 1)
	assert.Equal(t, app.rect.Shader().Program(), dev.Draws[0].Program)
	assert.Equal(t, "Rect", dev.Draws[0].Mesh)
}

func TestShaders_WGSLModule(t *testing.T) {
	l, err := loader.NewLoader(Shaders())
	require.NoError(t, err)
	src, err := l.Source(ShaderName, loader.LanguageWGSL)
	require.NoError(t, err)
	require.NoError(t, shader.ValidateWGSL(src.Vertex))

	r, err := shader.ReflectWGSL(src.Vertex)
	require.NoError(t, err)
	assert.Equal(t, map[string]int32{"position": 0, "color": 1}, r.Attributes())
}
