// Package coloredrect is the simplest sample: a red rectangle filling most of the view, rotated by
// dragging.
package coloredrect

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/camera"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/input"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/mesh"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/scene"
	"github.com/Carmen-Shannon/oxy-shaderlab/samples/internal/view"
)

const (
	Name       = "coloredrect"
	ShaderName = "colored"
)

var (
	// ClearColor is the background of the sample.
	ClearColor = common.Color{R: 0.7, G: 0.7, B: 0.7, A: 0}

	// RectColor is the vertex color of the rectangle.
	RectColor = common.Color{R: 1, G: 0, B: 0, A: 1}
)

//go:embed shaders
var assets embed.FS

// Shaders returns the embedded manifest and shader sources, rooted at the manifest.
func Shaders() fs.FS {
	sub, err := fs.Sub(assets, "shaders")
	if err != nil {
		panic(err)
	}
	return sub
}

// App is the colored rectangle sample.
type App struct {
	rect   scene.Object
	camera camera.Camera
	drag   input.DragTracker

	// distance is the eye distance set by scrolling, 0 until the first scroll.
	distance float32
}

var (
	_ engine.App           = &App{}
	_ engine.Releaser      = &App{}
	_ engine.ScrollHandler = &App{}
)

// New creates the sample.
func New() *App {
	return &App{}
}

func (a *App) OnSurfaceCreated(h engine.Host) error {
	h.Renderer().SetClearColor(ClearColor)

	sh, err := h.LoadShader(ShaderName)
	if err != nil {
		return fmt.Errorf("load %s shader: %w", ShaderName, err)
	}
	if a.rect != nil {
		a.rect.SetShader(sh)
		return nil
	}
	root := h.Scene().Root()
	if root == nil {
		if root, err = h.Scene().CreateRootNode("Root"); err != nil {
			return err
		}
	}
	a.rect = h.Scene().CreateObject("BasicObject",
		scene.WithShader(sh),
		scene.WithRenderState(pipeline.NewRenderState(
			pipeline.WithCullFace(backend.FaceBack),
			pipeline.WithDepthTest(backend.CompareLessEqual),
		)),
		scene.WithListener(scene.ListenerFuncs{UpdateFunc: a.update}),
	)
	return root.AddChild(a.rect)
}

func (a *App) OnSurfaceChanged(h engine.Host, width, height int) error {
	ratio := float32(width) / float32(height)
	a.camera = view.NewCamera(width, height, h.Caps().DepthZeroToOne)
	if a.distance != 0 {
		view.SetDistance(a.camera, a.distance)
	}
	a.rect.SetCamera(a.camera)

	if old := a.rect.Mesh(); old != nil {
		old.Release()
	}
	a.rect.SetMesh(mesh.NewPlane(ratio*2-0.1, 2-0.1, mesh.WithLabel("Rect"), mesh.WithColor(RectColor)))
	return nil
}

func (a *App) OnTouch(h engine.Host, e input.TouchEvent) {
	if a.drag.Handle(e) {
		h.RequestRender()
	}
}

func (a *App) OnScroll(h engine.Host, delta float32) {
	if a.camera != nil {
		a.distance = view.Dolly(a.camera, delta)
	}
}

func (a *App) Release() {
	if a.rect != nil && a.rect.Mesh() != nil {
		a.rect.Mesh().Release()
	}
}

func (a *App) update(o scene.Object) {
	x, y := a.drag.Offset()
	view.Rotate(o.Transform(), x, y)
}
