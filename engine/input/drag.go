package input

// DragTracker turns touch events into a drag offset from the down position. The offset persists
// after the pointer is released so the dragged pose stays in place.
//
// It performs no locking and belongs to the render thread.
type DragTracker struct {
	down         bool
	downX, downY float32
	moveX, moveY float32
}

// Handle applies one event.
//
// Parameters:
//   - e: the event
//
// Returns:
//   - bool: true if the event can change what is drawn, meaning a render should be requested
func (d *DragTracker) Handle(e TouchEvent) bool {
	switch e.Action {
	case ActionDown:
		d.down = true
		d.downX, d.downY = e.X, e.Y
		return true
	case ActionMove:
		if !d.down {
			return false
		}
		d.moveX = e.X - d.downX
		d.moveY = e.Y - d.downY
		return true
	case ActionUp:
		if !d.down {
			return false
		}
		d.down = false
		return true
	default:
		return false
	}
}

// Down reports whether a gesture is in progress.
func (d *DragTracker) Down() bool {
	return d.down
}

// Offset returns the last drag offset in pixels.
func (d *DragTracker) Offset() (x, y float32) {
	return d.moveX, d.moveY
}

// Reset forgets the gesture and the offset.
func (d *DragTracker) Reset() {
	*d = DragTracker{}
}
