package overlook

// Event is an ordered list of listeners raised with a single payload value.
// Like the rest of overlook it is single-threaded: Raise calls listeners
// synchronously on the caller's goroutine, in registration order.
//
// The zero value is ready to use.
type Event[T any] struct {
	listeners []*eventListener[T]
}

type eventListener[T any] struct {
	fn      func(T)
	removed bool
}

// AddListener registers fn and returns a function that removes it again.
// The returned remover is idempotent. Removing a listener while an event is
// being raised is safe; the removed listener will not fire after the remover
// returns.
func (e *Event[T]) AddListener(fn func(T)) (remove func()) {
	if fn == nil {
		panic("overlook: cannot add nil event listener")
	}
	l := &eventListener[T]{fn: fn}
	e.listeners = append(e.listeners, l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		for i, cur := range e.listeners {
			if cur == l {
				copy(e.listeners[i:], e.listeners[i+1:])
				e.listeners[len(e.listeners)-1] = nil
				e.listeners = e.listeners[:len(e.listeners)-1]
				return
			}
		}
	}
}

// Raise invokes every registered listener with v.
// Listeners added during a raise do not fire until the next raise; listeners
// removed during a raise are skipped.
func (e *Event[T]) Raise(v T) {
	if len(e.listeners) == 0 {
		return
	}
	// Snapshot so listeners can add/remove without corrupting iteration.
	snapshot := make([]*eventListener[T], len(e.listeners))
	copy(snapshot, e.listeners)
	for _, l := range snapshot {
		if l.removed {
			continue
		}
		l.fn(v)
	}
}

// NumListeners returns the number of registered listeners.
func (e *Event[T]) NumListeners() int {
	return len(e.listeners)
}
