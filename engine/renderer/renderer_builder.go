package renderer

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/animator"
)

// FrameRendererBuilderOption is a functional option applied to a frame renderer during construction via NewFrameRenderer.
type FrameRendererBuilderOption func(*frameRenderer)

// WithClearColor sets the color every frame is cleared to.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - FrameRendererBuilderOption: a function that applies the clear color option to a frame renderer
func WithClearColor(c common.Color) FrameRendererBuilderOption {
	return func(r *frameRenderer) {
		r.clearColor = c
	}
}

// WithAnimators pre-registers animators advanced every frame.
//
// Parameters:
//   - animators: the animators to register
//
// Returns:
//   - FrameRendererBuilderOption: a function that registers the animators on a frame renderer
func WithAnimators(animators ...animator.Animator) FrameRendererBuilderOption {
	return func(r *frameRenderer) {
		for _, a := range animators {
			r.AddAnimator(a)
		}
	}
}

// WithStandardUniforms toggles pushing the model, view and projection matrices, time and
// resolution before each object's Apply. Enabled by default.
//
// Parameters:
//   - enabled: false to leave every uniform to the object listeners
//
// Returns:
//   - FrameRendererBuilderOption: a function that applies the option to a frame renderer
func WithStandardUniforms(enabled bool) FrameRendererBuilderOption {
	return func(r *frameRenderer) {
		r.pushCommon = enabled
	}
}

// WithLogger sets the logger draw failures are reported to. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) FrameRendererBuilderOption {
	return func(r *frameRenderer) {
		r.logger = logger
	}
}
