package cursorfx

// syntheticPointerEvent represents a single injected pointer event in viewport
// coordinates. A leave event moves the pointer out of the window.
type syntheticPointerEvent struct {
	x, y  float64
	leave bool
}

// InjectMove queues a pointer move to (x, y). The event is consumed on the
// next frame, one event per frame, in place of real cursor input. A point
// outside the viewport behaves like InjectLeave.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectLeave queues the pointer leaving the window.
func (s *Scene) InjectLeave() {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{leave: true})
}

// InjectPath queues moves linearly interpolated from (fromX, fromY) to
// (toX, toY) over the given number of frames, ending exactly on the target.
func (s *Scene) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// PendingInput returns the number of injected events not yet consumed.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (real cursor
// input should be skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.leave {
		s.processPointer(s.pointer.x, s.pointer.y, false)
		return true
	}
	s.processPointer(evt.x, evt.y, s.viewport.Contains(evt.x, evt.y))
	return true
}
