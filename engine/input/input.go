// Package input carries pointer events from the window thread to the render thread.
package input

import (
	"fmt"
	"sync"
)

// Action is the phase of a touch gesture.
type Action int

const (
	// ActionDown starts a gesture.
	ActionDown Action = iota

	// ActionMove reports a new position while the pointer is down.
	ActionMove

	// ActionUp ends a gesture.
	ActionUp

	// ActionCancel aborts a gesture without an up event.
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionCancel:
		return "cancel"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// TouchEvent is one pointer event in window pixel coordinates.
type TouchEvent struct {
	Action Action
	X, Y   float32
}

// Queue is a mutex guarded FIFO of touch events. The window thread pushes, the render thread drains.
type Queue struct {
	mu     sync.Mutex
	events []TouchEvent
	limit  int
}

// NewQueue creates a queue that keeps at most limit pending events. When full, consecutive move
// events are coalesced and other events drop the oldest pending move. Down, up and cancel events are
// never dropped and may take the queue past its limit. A limit of zero means unbounded.
//
// Parameters:
//   - limit: the maximum number of pending events
//
// Returns:
//   - *Queue: the queue
func NewQueue(limit int) *Queue {
	return &Queue{limit: max(limit, 0)}
}

// Push appends an event. It is safe to call from any goroutine.
func (q *Queue) Push(e TouchEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.limit == 0 || len(q.events) < q.limit {
		q.events = append(q.events, e)
		return
	}
	last := len(q.events) - 1
	if e.Action == ActionMove && q.events[last].Action == ActionMove {
		q.events[last] = e
		return
	}
	for i, pending := range q.events {
		if pending.Action == ActionMove {
			q.events = append(q.events[:i], q.events[i+1:]...)
			q.events = append(q.events, e)
			return
		}
	}
	if e.Action != ActionMove {
		q.events = append(q.events, e)
	}
}

// Drain removes and returns every pending event in push order.
func (q *Queue) Drain() []TouchEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.events
	q.events = nil
	return out
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
