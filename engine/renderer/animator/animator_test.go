package animator

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	values    []mgl32.Vec3
	finished  int
	cancelled int
}

func (r *recorder) OnAnimation(v mgl32.Vec3) { r.values = append(r.values, v) }
func (r *recorder) OnFinished() { r.finished++ }
func (r *recorder) OnCancel() { r.cancelled++ }

func (r *recorder) last() float32 {
	return r.values[len(r.values)-1][0]
}

func TestAnimator_RepeatWraps(t *testing.T) {
	rec := &recorder{}
	a := NewAnimator(rec, WithDuration(10*time.Second), WithRepeat(true))
	require.NoError(t, a.Start(0, 2*math32.Pi))

	assert.True(t, a.Tick(5*time.Second))
	assert.InDelta(t, math32.Pi, rec.last(), 1e-5)

	assert.True(t, a.Tick(5*time.Second))
	assert.InDelta(t, 0, rec.last(), 1e-6)
	assert.Equal(t, time.Duration(0), a.Elapsed())
	assert.Equal(t, StateRunning, a.State())
	assert.Zero(t, rec.finished)

	assert.True(t, a.Tick(12500*time.Millisecond))
	assert.InDelta(t, math32.Pi/2, rec.last(), 1e-5)
}

func TestAnimator_FinishesOnce(t *testing.T) {
	rec := &recorder{}
	a := NewAnimator(rec, WithDuration(time.Second))
	require.NoError(t, a.Start(1, 3))

	assert.True(t, a.Tick(400*time.Millisecond))
	assert.InDelta(t, 1.8, rec.last(), 1e-5)

	assert.True(t, a.Tick(600*time.Millisecond))
	assert.Equal(t, float32(3), rec.last())
	assert.Equal(t, StateFinished, a.State())
	assert.Equal(t, time.Second, a.Elapsed())

	for i := 0; i < 3; i++ {
		assert.False(t, a.Tick(time.Second))
	}
	assert.Equal(t, 1, rec.finished)
	assert.Len(t, rec.values, 2)

	a.Cancel()
	assert.Zero(t, rec.cancelled)
}

func TestAnimator_CancelFiresOnce(t *testing.T) {
	rec := &recorder{}
	a := NewAnimator(rec, WithDuration(time.Second))
	require.NoError(t, a.Start(0, 1))
	a.Tick(100 * time.Millisecond)

	a.Cancel()
	a.Cancel()

	assert.Equal(t, StateCancelled, a.State())
	assert.Equal(t, 1, rec.cancelled)
	assert.False(t, a.Tick(time.Second))
	assert.Zero(t, rec.finished)
}

func TestAnimator_NegativeDeltaClampsToZero(t *testing.T) {
	rec := &recorder{}
	a := NewAnimator(rec, WithDuration(time.Second))
	require.NoError(t, a.Start(0, 10))
	a.Tick(500 * time.Millisecond)

	assert.True(t, a.Tick(-time.Hour))
	assert.Equal(t, 500*time.Millisecond, a.Elapsed())
	assert.InDelta(t, 5, rec.last(), 1e-5)
}

func TestAnimator_StartRequiresDuration(t *testing.T) {
	a := NewAnimator(nil)
	assert.ErrorIs(t, a.Start(0, 1), ErrInvalidDuration)
	assert.Equal(t, StateIdle, a.State())
	assert.False(t, a.Tick(time.Second))

	a.SetDuration(time.Second)
	require.NoError(t, a.Start(0, 1))
	assert.True(t, a.Running())
}

func TestAnimator_RestartResetsElapsed(t *testing.T) {
	a := NewAnimator(nil, WithDuration(time.Second))
	require.NoError(t, a.Start(0, 1))
	a.Tick(time.Second)
	require.Equal(t, StateFinished, a.State())

	require.NoError(t, a.Start(0, 1))
	assert.Equal(t, time.Duration(0), a.Elapsed())
	assert.Equal(t, StateRunning, a.State())
}

func TestAnimator_Vector(t *testing.T) {
	var got mgl32.Vec3
	a := NewAnimator(CallbackFuncs{AnimationFunc: func(v mgl32.Vec3) { got = v }}, WithDuration(time.Second))
	require.NoError(t, a.StartVector(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 4, 6}))

	a.Tick(250 * time.Millisecond)
	assert.True(t, got.ApproxEqual(mgl32.Vec3{0.5, 1, 1.5}))
	assert.Equal(t, got, a.Value())
}

func TestInterpolators(t *testing.T) {
	for name, fn := range map[string]Interpolator{
		"linear":      Linear,
		"accel":       Accelerate,
		"decel":       Decelerate,
		"accel-decel": AccelerateDecelerate,
	} {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0, fn(0), 1e-6)
			assert.InDelta(t, 1, fn(1), 1e-6)
		})
	}
	assert.InDelta(t, 0.5, AccelerateDecelerate(0.5), 1e-6)
}
