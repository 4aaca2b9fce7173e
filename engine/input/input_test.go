package input

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_DrainOrder(t *testing.T) {
	q := NewQueue(0)
	q.Push(TouchEvent{Action: ActionDown, X: 1, Y: 1})
	q.Push(TouchEvent{Action: ActionMove, X: 2, Y: 2})
	q.Push(TouchEvent{Action: ActionUp, X: 3, Y: 3})
	assert.Equal(t, 3, q.Len())

	events := q.Drain()
	require.Len(t, events, 3)
	assert.Equal(t, ActionDown, events[0].Action)
	assert.Equal(t, ActionMove, events[1].Action)
	assert.Equal(t, ActionUp, events[2].Action)
	assert.Empty(t, q.Drain())
}

func TestQueue_LimitCoalescesMoves(t *testing.T) {
	q := NewQueue(2)
	q.Push(TouchEvent{Action: ActionDown})
	q.Push(TouchEvent{Action: ActionMove, X: 1})
	q.Push(TouchEvent{Action: ActionMove, X: 5})
	q.Push(TouchEvent{Action: ActionUp, X: 6})

	events := q.Drain()
	assert.Equal(t, []TouchEvent{{Action: ActionDown}, {Action: ActionUp, X: 6}}, events)
}

func TestQueue_LimitKeepsGestureBoundaries(t *testing.T) {
	q := NewQueue(2)
	q.Push(TouchEvent{Action: ActionDown})
	q.Push(TouchEvent{Action: ActionUp})
	q.Push(TouchEvent{Action: ActionDown, X: 3})
	q.Push(TouchEvent{Action: ActionMove, X: 4})
	q.Push(TouchEvent{Action: ActionUp, X: 5})

	events := q.Drain()
	assert.Equal(t, []TouchEvent{
		{Action: ActionDown},
		{Action: ActionUp},
		{Action: ActionDown, X: 3},
		{Action: ActionUp, X: 5},
	}, events)

	var d DragTracker
	for _, e := range events {
		d.Handle(e)
	}
	assert.False(t, d.Down())
}

func TestQueue_ConcurrentPush(t *testing.T) {
	q := NewQueue(0)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				q.Push(TouchEvent{Action: ActionMove})
			}
		}()
	}
	wg.Wait()
	assert.Len(t, q.Drain(), 800)
}

func TestDragTracker(t *testing.T) {
	var d DragTracker

	assert.False(t, d.Handle(TouchEvent{Action: ActionMove, X: 50, Y: 50}))
	assert.False(t, d.Handle(TouchEvent{Action: ActionUp}))

	assert.True(t, d.Handle(TouchEvent{Action: ActionDown, X: 10, Y: 20}))
	assert.True(t, d.Down())
	assert.True(t, d.Handle(TouchEvent{Action: ActionMove, X: 40, Y: 5}))
	x, y := d.Offset()
	assert.Equal(t, float32(30), x)
	assert.Equal(t, float32(-15), y)

	assert.True(t, d.Handle(TouchEvent{Action: ActionUp, X: 40, Y: 5}))
	assert.False(t, d.Down())
	assert.False(t, d.Handle(TouchEvent{Action: ActionMove, X: 100, Y: 100}))
	x, y = d.Offset()
	assert.Equal(t, float32(30), x)
	assert.Equal(t, float32(-15), y)

	assert.False(t, d.Handle(TouchEvent{Action: ActionCancel}))

	d.Reset()
	x, y = d.Offset()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "cancel", ActionCancel.String())
	assert.Equal(t, "Action(9)", Action(9).String())
}
