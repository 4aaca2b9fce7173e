package glbackend

import "log/slog"

// DeviceBuilderOption is a functional option for configuring a Device via New.
type DeviceBuilderOption func(*Device)

// WithSwapFunc sets the function EndFrame calls to present, typically window.Window.SwapBuffers.
func WithSwapFunc(swap func()) DeviceBuilderOption {
	return func(d *Device) {
		d.swap = swap
	}
}

// WithSamples enables GL_MULTISAMPLE when the window was created with more than one sample.
func WithSamples(samples int) DeviceBuilderOption {
	return func(d *Device) {
		d.samples = samples
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) DeviceBuilderOption {
	return func(d *Device) {
		d.logger = logger
	}
}
