// Package pfl is the per-fragment lighting sample: a drag rotated cube lit by a directional light
// orbiting it, with a small sphere marking where the light is.
package pfl

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"math"
	"time"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/camera"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/input"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/light"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/mesh"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/scene"
	"github.com/Carmen-Shannon/oxy-shaderlab/samples/internal/view"
	"github.com/go-gl/mathgl/mgl32"
)

// Name is the sample name used on the command line.
const Name = "pfl"

// ShaderName is the manifest entry the sample loads.
const ShaderName = "pfl"

// OrbitPeriod is the time the light takes for one turn around the cube.
const OrbitPeriod = 10 * time.Second

// ClearColor is the background of the sample.
var ClearColor = common.Color{R: 0.7, G: 0.7, B: 0.7, A: 0}

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

// App is the per-fragment lighting sample.
type App struct {
	shader   shader.Shader
	cube     scene.Object
	marker   scene.Object
	camera   camera.Camera
	animator animator.Animator
	drag     input.DragTracker

	// orbit lights the cube. eyeLights holds a point light at the eye for the marker sphere.
	orbit      light.Light
	cubeLights light.Set
	eyeLights  light.Set
	radius     float32

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
	a := &App{
		orbit: light.NewLight(light.LightTypeDirectional),
		eyeLights: light.NewSet(
			light.NewLight(light.LightTypePoint, light.WithPosition(0, 0, 0)),
		),
	}
	a.cubeLights = light.NewSet(a.orbit)
	return a
}

func (a *App) OnSurfaceCreated(h engine.Host) error {
	h.Renderer().SetClearColor(ClearColor)

	sh, err := h.LoadShader(ShaderName)
	if err != nil {
		return fmt.Errorf("load %s shader: %w", ShaderName, err)
	}
	a.shader = sh
	if a.cube != nil {
		a.cube.SetShader(sh)
		a.marker.SetShader(sh)
		return nil
	}

	root := h.Scene().Root()
	if root == nil {
		if root, err = h.Scene().CreateRootNode("Root"); err != nil {
			return err
		}
	}
	state := pipeline.NewRenderState(
		pipeline.WithCullFace(backend.FaceBack),
		pipeline.WithDepthTest(backend.CompareLessEqual),
	)

	a.cube = h.Scene().CreateObject("Cube",
		scene.WithShader(sh),
		scene.WithRenderState(state),
		scene.WithListener(scene.ListenerFuncs{UpdateFunc: a.updateCube, ApplyFunc: a.applyCube}),
	)
	a.marker = h.Scene().CreateObject("Light",
		scene.WithShader(sh),
		scene.WithRenderState(state),
		scene.WithListener(scene.ListenerFuncs{UpdateFunc: a.updateMarker, ApplyFunc: a.applyMarker}),
	)
	if err := root.AddChild(a.cube); err != nil {
		return err
	}
	if err := root.AddChild(a.marker); err != nil {
		return err
	}

	a.animator = animator.NewAnimator(
		animator.CallbackFuncs{AnimationFunc: a.animate},
		animator.WithDuration(OrbitPeriod),
		animator.WithRepeat(true),
		animator.WithLogger(h.Logger()),
	)
	h.Renderer().AddAnimator(a.animator)
	return nil
}

func (a *App) OnSurfaceChanged(h engine.Host, width, height int) error {
	ratio := float32(width) / float32(height)
	a.radius = ratio
	a.animate(mgl32.Vec3{})

	a.camera = view.NewCamera(width, height, h.Caps().DepthZeroToOne)
	if a.distance != 0 {
		view.SetDistance(a.camera, a.distance)
	}
	a.cube.SetCamera(a.camera)
	a.marker.SetCamera(a.camera)

	meshes, err := mesh.BuildAll(context.Background(),
		func() backend.MeshData {
			return mesh.Cube(ratio*0.5, mesh.WithLabel("Cube"), mesh.WithNormals(true), mesh.WithVertexColors())
		},
		func() backend.MeshData {
			return mesh.Sphere(0.1, 10, 10, mesh.WithLabel("Light"), mesh.WithNormals(true),
				mesh.WithColor(common.Color{R: 1, G: 1, B: 1, A: 1}))
		},
	)
	if err != nil {
		return fmt.Errorf("build meshes: %w", err)
	}
	replaceMesh(a.cube, meshes[0])
	replaceMesh(a.marker, meshes[1])

	return a.animator.Start(0, 2*math.Pi)
}

func replaceMesh(o scene.Object, m mesh.Mesh) {
	if old := o.Mesh(); old != nil {
		old.Release()
	}
	o.SetMesh(m)
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
	for _, o := range []scene.Object{a.cube, a.marker} {
		if o != nil && o.Mesh() != nil {
			o.Mesh().Release()
		}
	}
}

// LightPosition returns the current orbit position of the light, w = 0.
func (a *App) LightPosition() mgl32.Vec4 {
	return a.orbit.Position()
}

func (a *App) animate(v mgl32.Vec3) {
	p := light.Orbit(v.X(), a.radius)
	a.orbit.SetPosition(p.X(), p.Y(), p.Z())
}

func (a *App) updateCube(o scene.Object) {
	x, y := a.drag.Offset()
	view.Rotate(o.Transform(), x, y)
}

func (a *App) updateMarker(o scene.Object) {
	p := a.orbit.Position()
	t := o.Transform()
	t.SetIdentity()
	t.SetTranslate(p.X(), p.Y(), p.Z())
}

func (a *App) applyCube(o scene.Object) error {
	applyNormalMatrix(o)
	a.cubeLights.Apply(o.Shader(), mgl32.Ident4())
	return nil
}

// The marker is lit from the eye, whose position in eye space is the origin.
func (a *App) applyMarker(o scene.Object) error {
	applyNormalMatrix(o)
	a.eyeLights.Apply(o.Shader(), mgl32.Ident4())
	return nil
}

func applyNormalMatrix(o scene.Object) {
	o.Shader().SetMatrix3(renderer.UniformNormalMatrix, common.NormalMatrix(o.Camera().ViewMatrix(), o.Transform().Matrix()))
}
