package animator

import (
	"log/slog"
	"time"
)

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithDuration sets the cycle duration.
//
// Parameters:
//   - d: the duration, must be positive before Start
//
// Returns:
//   - AnimatorBuilderOption: a function that sets the duration
func WithDuration(d time.Duration) AnimatorBuilderOption {
	return func(a *animator) {
		a.duration = d
	}
}

// WithRepeat sets whether the animator wraps instead of finishing.
//
// Parameters:
//   - repeat: true to loop forever
//
// Returns:
//   - AnimatorBuilderOption: a function that sets the repeat flag
func WithRepeat(repeat bool) AnimatorBuilderOption {
	return func(a *animator) {
		a.repeat = repeat
	}
}

// WithInterpolator sets the easing curve. Defaults to Linear.
func WithInterpolator(i Interpolator) AnimatorBuilderOption {
	return func(a *animator) {
		if i != nil {
			a.interpolator = i
		}
	}
}

// WithLogger sets the logger used for lifecycle diagnostics.
func WithLogger(logger *slog.Logger) AnimatorBuilderOption {
	return func(a *animator) {
		a.logger = logger
	}
}
