package scene

// Listener customizes an object's per-frame behavior. Update runs in the update pass and usually
// mutates the transform; Apply runs in the draw pass after the standard uniforms are pushed and
// before the render state is applied.
type Listener interface {
	Update(obj Object)
	Apply(obj Object) error
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are no-ops.
type ListenerFuncs struct {
	UpdateFunc func(obj Object)
	ApplyFunc  func(obj Object) error
}

var _ Listener = ListenerFuncs{}

func (l ListenerFuncs) Update(obj Object) {
	if l.UpdateFunc != nil {
		l.UpdateFunc(obj)
	}
}

func (l ListenerFuncs) Apply(obj Object) error {
	if l.ApplyFunc != nil {
		return l.ApplyFunc(obj)
	}
	return nil
}

// nopListener is used when an object has no listener.
var nopListener Listener = ListenerFuncs{}
