package cadence

type syntheticKind uint8

const (
	syntheticMove syntheticKind = iota
	syntheticLeave
	syntheticKey
)

// syntheticEvent represents a single injected input event. Coordinates are
// screen coordinates, identical to real mouse input.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
	key  Key
}

// InjectMove queues a pointer move to the given screen coordinates. The
// event is consumed on the next frame's input pass; hovered nodes receive
// enter/leave callbacks exactly as with real mouse input.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticMove, x: x, y: y})
}

// InjectLeave queues the pointer leaving the window.
func (s *Scene) InjectLeave() {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticLeave})
}

// InjectKey queues a navigation key press.
func (s *Scene) InjectKey(k Key) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticKey, key: k})
}

// InjectHover queues a pointer move to the centre of n. The position is
// resolved when the event is queued. Returns false if n is nil or disposed.
func (s *Scene) InjectHover(n *Node) bool {
	if !alive(n) {
		return false
	}
	updateWorldTransform(s.root, 0, 0, 1, false)
	w, h := n.Width, n.Height
	if r, ok := n.HitShape.(HitRect); ok {
		w, h = r.X*2+r.Width, r.Y*2+r.Height
	} else if r, ok := n.HitShape.(Rect); ok {
		w, h = r.X*2+r.Width, r.Y*2+r.Height
	}
	s.InjectMove(n.worldX+w/2, n.worldY+h/2)
	return true
}

// Pending returns the number of queued synthetic events.
func (s *Scene) Pending() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same path as device input. Returns true if an event was
// consumed (real input should be skipped this frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticMove:
		s.processPointer(evt.x, evt.y)
	case syntheticLeave:
		s.processPointerLeave()
	case syntheticKey:
		s.processKey(evt.key)
	}
	return true
}
