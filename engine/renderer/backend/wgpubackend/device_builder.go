package wgpubackend

import (
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// DeviceBuilderOption is a functional option for configuring a Device via New.
type DeviceBuilderOption func(*Device)

// WithVSync selects Fifo presentation when enabled, Immediate otherwise. Defaults to enabled.
func WithVSync(enabled bool) DeviceBuilderOption {
	return func(d *Device) {
		if enabled {
			d.presentMode = wgpu.PresentModeFifo
		} else {
			d.presentMode = wgpu.PresentModeImmediate
		}
	}
}

// WithSampleCount sets the MSAA sample count of the main pass. Values other than 4 disable MSAA,
// since 4 is the only count WebGPU guarantees.
//
// Parameters:
//   - samples: the requested sample count
//
// Returns:
//   - DeviceBuilderOption: a function that applies the sample count to a device
func WithSampleCount(samples int) DeviceBuilderOption {
	return func(d *Device) {
		if samples == 4 {
			d.sampleCount = 4
		} else {
			d.sampleCount = 1
		}
	}
}

// WithFallbackAdapter forces the software adapter.
func WithFallbackAdapter(force bool) DeviceBuilderOption {
	return func(d *Device) {
		d.forceFallback = force
	}
}

// WithUniformRingSize sets the size in bytes of the per-frame uniform ring buffer.
func WithUniformRingSize(size uint64) DeviceBuilderOption {
	return func(d *Device) {
		if size > 0 {
			d.ringSize = size
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) DeviceBuilderOption {
	return func(d *Device) {
		d.logger = logger
	}
}
