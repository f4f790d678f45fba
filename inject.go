package overlook

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates, matching what real mouse input would deliver.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
}

// InjectPress queues a pointer press at the given screen coordinates (left
// button). The event is consumed on the next Update.
func (v *Viewer) InjectPress(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (v *Viewer) InjectRelease(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectClick is a convenience that queues a press followed by a release at
// the same screen coordinates. Consumes two update ticks.
func (v *Viewer) InjectClick(x, y float64) {
	v.InjectPress(x, y)
	v.InjectRelease(x, y)
}

// processInjected pops one event from the inject queue and feeds it through
// the same pointer path as real mouse input. Returns true if an event was
// consumed (real mouse input is skipped that tick).
func (v *Viewer) processInjected() bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	evt := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	if evt.pressed {
		v.pointerPressed(evt.x, evt.y)
	} else {
		v.pointerReleased(evt.x, evt.y)
	}
	return true
}
