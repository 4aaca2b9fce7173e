package engine

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend/glbackend"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend/wgpubackend"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/window"
)

// newDevice creates the device for a backend type on w. The GL device needs w's context current on
// the calling thread; the WebGPU device creates its surface from w.
func newDevice(bt backend.BackendType, w window.Window, vsync bool, msaa int, logger *slog.Logger) (backend.Device, error) {
	switch bt {
	case backend.BackendTypeGL:
		if w.ClientAPI() != window.ClientAPIOpenGL {
			return nil, fmt.Errorf("gl backend needs an OpenGL window")
		}
		w.MakeContextCurrent()
		if vsync {
			w.SetSwapInterval(1)
		} else {
			w.SetSwapInterval(0)
		}
		return glbackend.New(
			glbackend.WithSwapFunc(w.SwapBuffers),
			glbackend.WithSamples(msaa),
			glbackend.WithLogger(logger),
		)
	case backend.BackendTypeWGPU:
		return wgpubackend.New(w.SurfaceDescriptor(), w.Width(), w.Height(),
			wgpubackend.WithVSync(vsync),
			wgpubackend.WithSampleCount(msaa),
			wgpubackend.WithLogger(logger),
		)
	default:
		return nil, fmt.Errorf("unknown backend %q", bt)
	}
}
