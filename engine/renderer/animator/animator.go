// Package animator drives a scalar or vector value from a start to an end over a fixed duration,
// advanced once per frame by the frame renderer.
package animator

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidDuration is returned by Start when the animator has no positive duration.
var ErrInvalidDuration = errors.New("animator: duration must be positive")

// State is the lifecycle state of an Animator.
type State int

const (
	// StateIdle means the animator was never started.
	StateIdle State = iota

	// StateRunning means ticks advance the value. Repeating animators stay running.
	StateRunning

	// StateFinished means a non-repeating animator reached its duration.
	StateFinished

	// StateCancelled means Cancel stopped a running animator.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Callback receives animator events. Scalar animations carry their value in X.
type Callback interface {
	OnAnimation(v mgl32.Vec3)
	OnFinished()
	OnCancel()
}

// CallbackFuncs adapts plain functions to a Callback. Nil fields are no-ops.
type CallbackFuncs struct {
	AnimationFunc func(v mgl32.Vec3)
	FinishedFunc  func()
	CancelFunc    func()
}

var _ Callback = CallbackFuncs{}

func (c CallbackFuncs) OnAnimation(v mgl32.Vec3) {
	if c.AnimationFunc != nil {
		c.AnimationFunc(v)
	}
}

func (c CallbackFuncs) OnFinished() {
	if c.FinishedFunc != nil {
		c.FinishedFunc()
	}
}

func (c CallbackFuncs) OnCancel() {
	if c.CancelFunc != nil {
		c.CancelFunc()
	}
}

type animator struct {
	callback     Callback
	duration     time.Duration
	repeat       bool
	interpolator Interpolator
	logger       *slog.Logger

	from, to mgl32.Vec3
	value    mgl32.Vec3
	elapsed  time.Duration
	state    State
}

// Animator is a time driven interpolator. It performs no locking; every call must come from the
// render thread.
type Animator interface {
	// Start arms the animator from a scalar start to a scalar end and resets elapsed time.
	//
	// Parameters:
	//   - from: the start value
	//   - to: the end value
	//
	// Returns:
	//   - error: ErrInvalidDuration if the duration is not positive
	Start(from, to float32) error

	// StartVector arms the animator between two vectors and resets elapsed time.
	//
	// Parameters:
	//   - from: the start value
	//   - to: the end value
	//
	// Returns:
	//   - error: ErrInvalidDuration if the duration is not positive
	StartVector(from, to mgl32.Vec3) error

	// Tick advances elapsed time by delta and notifies the callback with the new value. Negative
	// deltas count as zero. A repeating animator wraps elapsed time modulo its duration; a
	// non-repeating one stops at its duration, emits the end value and finishes.
	//
	// Parameters:
	//   - delta: the time since the previous frame
	//
	// Returns:
	//   - bool: true if the animator was running at the start of the tick
	Tick(delta time.Duration) bool

	// Cancel stops a running animator and fires OnCancel once. It has no effect otherwise.
	Cancel()

	// State returns the lifecycle state.
	State() State

	// Running reports whether the animator is in StateRunning.
	Running() bool

	// Value returns the last computed value.
	Value() mgl32.Vec3

	// Elapsed returns the elapsed time within the current cycle.
	Elapsed() time.Duration

	// Duration returns the cycle duration.
	Duration() time.Duration

	// SetDuration sets the cycle duration used by the next Start.
	SetDuration(d time.Duration)

	// Repeat reports whether the animator wraps instead of finishing.
	Repeat() bool

	// SetRepeat sets whether the animator wraps instead of finishing.
	SetRepeat(repeat bool)
}

var _ Animator = &animator{}

// NewAnimator creates an idle Animator.
//
// Parameters:
//   - callback: receives values and lifecycle events, may be nil
//   - options: a variadic list of AnimatorBuilderOption functions
//
// Returns:
//   - Animator: the animator
func NewAnimator(callback Callback, options ...AnimatorBuilderOption) Animator {
	a := &animator{
		callback:     callback,
		interpolator: Linear,
	}
	for _, opt := range options {
		opt(a)
	}
	if a.callback == nil {
		a.callback = CallbackFuncs{}
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

func (a *animator) Start(from, to float32) error {
	return a.StartVector(mgl32.Vec3{from}, mgl32.Vec3{to})
}

func (a *animator) StartVector(from, to mgl32.Vec3) error {
	if a.duration <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDuration, a.duration)
	}
	a.from, a.to = from, to
	a.value = from
	a.elapsed = 0
	a.state = StateRunning
	a.logger.Debug("animator started", "from", from, "to", to, "duration", a.duration, "repeat", a.repeat)
	return nil
}

func (a *animator) Tick(delta time.Duration) bool {
	if a.state != StateRunning {
		return false
	}
	a.elapsed += max(delta, 0)

	if a.elapsed >= a.duration {
		if !a.repeat {
			a.elapsed = a.duration
			a.value = a.to
			a.state = StateFinished
			a.callback.OnAnimation(a.value)
			a.callback.OnFinished()
			return true
		}
		a.elapsed %= a.duration
	}

	t := a.interpolator(float32(a.elapsed) / float32(a.duration))
	a.value = a.from.Add(a.to.Sub(a.from).Mul(t))
	a.callback.OnAnimation(a.value)
	return true
}

func (a *animator) Cancel() {
	if a.state != StateRunning {
		return
	}
	a.state = StateCancelled
	a.callback.OnCancel()
}

func (a *animator) State() State {
	return a.state
}

func (a *animator) Running() bool {
	return a.state == StateRunning
}

func (a *animator) Value() mgl32.Vec3 {
	return a.value
}

func (a *animator) Elapsed() time.Duration {
	return a.elapsed
}

func (a *animator) Duration() time.Duration {
	return a.duration
}

func (a *animator) SetDuration(d time.Duration) {
	a.duration = d
}

func (a *animator) Repeat() bool {
	return a.repeat
}

func (a *animator) SetRepeat(repeat bool) {
	a.repeat = repeat
}
