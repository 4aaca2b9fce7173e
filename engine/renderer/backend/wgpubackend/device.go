// Package wgpubackend implements backend.Device on WebGPU. Programs are WGSL modules whose vertex
// inputs and uniform blocks are reflected from source; every uniform block is bound through one
// ring buffer with dynamic offsets, and render pipelines are created lazily per program, render
// state, vertex layout and topology.
package wgpubackend

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	defaultRingSize = 4 << 20
	uniformAlign    = 256 // minUniformBufferOffsetAlignment of the default limits
)

// state is the fixed-function state folded into pipelines.
type state struct {
	cullEnabled  bool
	cullFace     backend.Face
	depthEnabled bool
	depthFunc    backend.CompareFunc
	depthWrite   bool
	blendEnabled bool
	blendSrc     backend.BlendFactor
	blendDst     backend.BlendFactor
}

// Device is a backend.Device drawing into a WebGPU surface. It must be used from the thread that
// created it.
type Device struct {
	logger *slog.Logger

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat    wgpu.TextureFormat
	presentMode      wgpu.PresentMode
	sampleCount      uint32
	forceFallback    bool
	width, height    int
	msaaTexture      *wgpu.Texture
	msaaTextureView  *wgpu.TextureView
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView

	ringSize      uint64
	ring          uniformRing
	uniformBuffer *wgpu.Buffer

	programs    map[backend.Program]*program
	meshes      map[backend.Buffer]*mesh
	pipelines   map[pipelineKey]*wgpu.RenderPipeline
	nextProgram backend.Program
	nextBuffer  backend.Buffer
	current     backend.Program
	state       state
	viewport    common.Rect

	// Frame state, set between BeginFrame and EndFrame.
	frameEncoder    *wgpu.CommandEncoder
	framePass       *wgpu.RenderPassEncoder
	frameSurface    *wgpu.Texture
	frameView       *wgpu.TextureView
	viewportApplied bool
}

var _ backend.Device = &Device{}

// New creates a WebGPU device for a window surface and configures the surface at the given size.
//
// Parameters:
//   - desc: the platform surface descriptor, from window.Window.SurfaceDescriptor
//   - width: initial surface width in pixels
//   - height: initial surface height in pixels
//   - options: a variadic list of DeviceBuilderOption functions
//
// Returns:
//   - *Device: the device
//   - error: an error if no adapter or device is available
func New(desc *wgpu.SurfaceDescriptor, width, height int, options ...DeviceBuilderOption) (*Device, error) {
	if desc == nil {
		return nil, fmt.Errorf("wgpubackend: nil surface descriptor")
	}
	runtime.LockOSThread()

	d := &Device{
		presentMode: wgpu.PresentModeFifo,
		sampleCount: 1,
		ringSize:    defaultRingSize,
		programs:    make(map[backend.Program]*program),
		meshes:      make(map[backend.Buffer]*mesh),
		pipelines:   make(map[pipelineKey]*wgpu.RenderPipeline),
	}
	for _, opt := range options {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}

	d.instance = wgpu.CreateInstance(nil)
	d.surface = d.instance.CreateSurface(desc)

	a, err := d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: d.forceFallback,
		CompatibleSurface:    d.surface,
	})
	if err != nil {
		d.Release()
		return nil, fmt.Errorf("wgpubackend: request adapter: %w", err)
	}
	d.adapter = a

	limits := wgpu.DefaultLimits()
	dev, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		d.Release()
		return nil, fmt.Errorf("wgpubackend: request device: %w", err)
	}
	d.device = dev
	d.queue = dev.GetQueue()

	d.uniformBuffer, err = dev.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Uniform Ring",
		Size:  d.ringSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		d.Release()
		return nil, fmt.Errorf("wgpubackend: uniform ring: %w", err)
	}
	d.ring = uniformRing{size: d.ringSize, align: uniformAlign}

	capabilities := d.surface.GetCapabilities(a)
	if len(capabilities.Formats) == 0 {
		d.Release()
		return nil, fmt.Errorf("wgpubackend: surface reports no formats")
	}
	d.surfaceFormat = capabilities.Formats[0]

	d.Resize(width, height)
	return d, nil
}

func (d *Device) Caps() backend.Caps {
	return backend.Caps{
		Name:                  "wgpu",
		ExplicitAttribBinding: false,
		DepthZeroToOne:        true,
		ShaderLanguage:        "wgsl",
	}
}

// Resize reconfigures the surface and recreates the depth and MSAA targets. A zero size leaves the
// surface unconfigured until the next non-zero resize.
func (d *Device) Resize(width, height int) {
	if width == d.width && height == d.height && d.depthTextureView != nil {
		return
	}
	d.width, d.height = width, height
	d.releaseTargets()
	if width <= 0 || height <= 0 {
		return
	}
	if err := d.configureSurface(); err != nil {
		d.logger.Error("surface configuration failed", "width", width, "height", height, "err", err)
		d.releaseTargets()
	}
}

func (d *Device) configureSurface() error {
	capabilities := d.surface.GetCapabilities(d.adapter)
	d.surface.Configure(d.adapter, d.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      d.surfaceFormat,
		Width:       uint32(d.width),
		Height:      uint32(d.height),
		PresentMode: d.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	size := wgpu.Extent3D{Width: uint32(d.width), Height: uint32(d.height), DepthOrArrayLayers: 1}
	var err error
	if d.sampleCount > 1 {
		d.msaaTexture, err = d.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   d.sampleCount,
			Dimension:     wgpu.TextureDimension2D,
			Format:        d.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return err
		}
		if d.msaaTextureView, err = d.msaaTexture.CreateView(nil); err != nil {
			return err
		}
	}

	// Depth texture sample count must match the color attachment.
	d.depthTexture, err = d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   d.sampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return err
	}
	d.depthTextureView, err = d.depthTexture.CreateView(nil)
	return err
}

func (d *Device) releaseTargets() {
	if d.msaaTextureView != nil {
		d.msaaTextureView.Release()
		d.msaaTextureView = nil
	}
	if d.msaaTexture != nil {
		d.msaaTexture.Release()
		d.msaaTexture = nil
	}
	if d.depthTextureView != nil {
		d.depthTextureView.Release()
		d.depthTextureView = nil
	}
	if d.depthTexture != nil {
		d.depthTexture.Release()
		d.depthTexture = nil
	}
}

// BeginFrame acquires the next surface texture and begins the render pass, clearing color and depth.
func (d *Device) BeginFrame(clear common.Color) error {
	if d.framePass != nil {
		return fmt.Errorf("wgpubackend: previous frame not ended")
	}
	if d.depthTextureView == nil {
		return fmt.Errorf("wgpubackend: surface not configured")
	}

	surfaceTexture, err := d.surface.GetCurrentTexture()
	if err != nil {
		// Dropping the targets makes the next Resize configure the surface again.
		d.releaseTargets()
		return fmt.Errorf("%w: %w", backend.ErrSurfaceLost, err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	encoder, err := d.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	color := wgpu.RenderPassColorAttachment{
		View:    view,
		LoadOp:  wgpu.LoadOpClear,
		StoreOp: wgpu.StoreOpStore,
		ClearValue: wgpu.Color{
			R: float64(clear.R), G: float64(clear.G), B: float64(clear.B), A: float64(clear.A),
		},
	}
	if d.sampleCount > 1 {
		color.View = d.msaaTextureView
		color.ResolveTarget = view
		color.StoreOp = wgpu.StoreOpDiscard
	}
	d.framePass = encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            d.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	d.frameEncoder = encoder
	d.frameSurface = surfaceTexture
	d.frameView = view
	d.viewportApplied = false
	d.ring.reset()
	return nil
}

// EndFrame ends the render pass, submits the frame and presents the surface.
func (d *Device) EndFrame() error {
	if d.framePass == nil {
		return backend.ErrNoFrame
	}
	defer d.releaseFrame()

	d.framePass.End()
	commandBuffer, err := d.frameEncoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()

	d.queue.Submit(commandBuffer)
	d.surface.Present()
	return nil
}

func (d *Device) releaseFrame() {
	if d.framePass != nil {
		d.framePass.Release()
		d.framePass = nil
	}
	if d.frameEncoder != nil {
		d.frameEncoder.Release()
		d.frameEncoder = nil
	}
	if d.frameView != nil {
		d.frameView.Release()
		d.frameView = nil
	}
	if d.frameSurface != nil {
		d.frameSurface.Release()
		d.frameSurface = nil
	}
}

// Viewport records the viewport in GL convention (origin bottom left). It is applied to the pass
// on the next draw.
func (d *Device) Viewport(viewport common.Rect) {
	if viewport != d.viewport {
		d.viewport = viewport
		d.viewportApplied = false
	}
}

func (d *Device) applyViewport() {
	if d.viewportApplied || d.viewport.Empty() {
		return
	}
	v := d.viewport
	y := d.height - v.Y - v.Height
	d.framePass.SetViewport(float32(v.X), float32(y), float32(v.Width), float32(v.Height), 0, 1)
	d.viewportApplied = true
}

func (d *Device) SetCullFace(enabled bool, face backend.Face) {
	d.state.cullEnabled, d.state.cullFace = enabled, face
}

func (d *Device) SetDepthTest(enabled bool, fn backend.CompareFunc) {
	d.state.depthEnabled, d.state.depthFunc = enabled, fn
}

func (d *Device) SetDepthWrite(enabled bool) {
	d.state.depthWrite = enabled
}

func (d *Device) SetBlend(enabled bool, src, dst backend.BlendFactor) {
	d.state.blendEnabled, d.state.blendSrc, d.state.blendDst = enabled, src, dst
}

// Release frees every GPU object the device created, then the device itself.
func (d *Device) Release() {
	d.releaseFrame()
	for key, p := range d.pipelines {
		p.Release()
		delete(d.pipelines, key)
	}
	for h := range d.programs {
		d.DeleteProgram(h)
	}
	for h := range d.meshes {
		d.DeleteMesh(h)
	}
	d.releaseTargets()
	if d.uniformBuffer != nil {
		d.uniformBuffer.Release()
		d.uniformBuffer = nil
	}
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.surface != nil {
		d.surface.Release()
		d.surface = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}
