package cursorfx

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Listener registry ---

type pointerListener struct {
	id uint32
	fn func(PointerContext)
}

// listenerRegistry holds pointer callbacks. Elements use enter and leave; the
// scene also uses move.
type listenerRegistry struct {
	move   []pointerListener
	enter  []pointerListener
	leave  []pointerListener
	nextID uint32
}

func (r *listenerRegistry) add(event EventType, fn func(PointerContext)) CallbackHandle {
	r.nextID++
	id := r.nextID
	l := pointerListener{id: id, fn: fn}
	switch event {
	case EventPointerMove:
		r.move = append(r.move, l)
	case EventPointerEnter:
		r.enter = append(r.enter, l)
	case EventPointerLeave:
		r.leave = append(r.leave, l)
	}
	return CallbackHandle{id: id, reg: r, event: event}
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *listenerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing twice is
// harmless.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerMove:
		h.reg.move = removeListener(h.reg.move, h.id)
	case EventPointerEnter:
		h.reg.enter = removeListener(h.reg.enter, h.id)
	case EventPointerLeave:
		h.reg.leave = removeListener(h.reg.leave, h.id)
	}
}

func removeListener(s []pointerListener, id uint32) []pointerListener {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerListener{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnPointerEnter registers a callback fired when the element joins the hover
// chain: the pointer moved over it or one of its descendants.
func (e *Element) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return e.listeners.add(EventPointerEnter, fn)
}

// OnPointerLeave registers a callback fired when the element leaves the hover
// chain.
func (e *Element) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return e.listeners.add(EventPointerLeave, fn)
}

// OnPointerMove registers a scene-level callback for pointer moves inside the
// viewport. Element is the topmost hit element, or nil.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerMove, fn)
}

// --- Hit testing ---

// elementContainsLocal tests whether (lx, ly) falls inside an element's hit
// region. Uses HitShape if set, otherwise the layout box. An element with an
// empty box and no shape is not hit-testable.
func elementContainsLocal(e *Element, lx, ly float64) bool {
	if e.HitShape != nil {
		return e.HitShape.Contains(lx, ly)
	}
	if e.Width == 0 && e.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= e.Width && ly >= 0 && ly <= e.Height
}

// collectHittable walks the tree in paint order (DFS, children in order),
// appending hit-testable elements to buf. Invisible subtrees are skipped.
func collectHittable(e *Element, buf []*Element) []*Element {
	if !e.Visible {
		return buf
	}
	if e.HitShape != nil || e.Width != 0 || e.Height != 0 {
		buf = append(buf, e)
	}
	for _, child := range e.children {
		buf = collectHittable(child, buf)
	}
	return buf
}

// hitTest finds the topmost element of the body at (x, y). Returns nil if
// nothing is hit.
func (s *Scene) hitTest(x, y float64) *Element {
	s.hitBuf = collectHittable(s.body, s.hitBuf[:0])

	// Reverse paint order: topmost visual element first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		e := s.hitBuf[i]
		lx, ly := e.WorldToLocal(x, y)
		if elementContainsLocal(e, lx, ly) {
			return e
		}
	}
	return nil
}

// chainFor returns target and its ancestors, outermost first. The root is
// part of the chain whenever the pointer is inside the viewport.
func (s *Scene) chainFor(target *Element, inside bool) []*Element {
	if !inside {
		return nil
	}
	var chain []*Element
	for e := target; e != nil; e = e.Parent {
		chain = append(chain, e)
	}
	if len(chain) == 0 || chain[len(chain)-1] != s.root {
		chain = append(chain, s.root)
	}
	slices.Reverse(chain)
	return chain
}

// --- Input processing ---

type pointerState struct {
	inside bool
	x, y   float64
	target *Element
	chain  []*Element // hover chain, outermost first
}

// processInput is called once per frame. An injected event takes priority;
// otherwise the real cursor is read when useCursor is set, or the last known
// position is re-evaluated so that hover follows tree changes under a still
// pointer.
func (s *Scene) processInput(useCursor bool) {
	if s.processInjectedInput() {
		return
	}
	if useCursor {
		mx, my := ebiten.CursorPosition()
		x, y := float64(mx), float64(my)
		s.processPointer(x, y, s.viewport.Contains(x, y))
		return
	}
	s.processPointer(s.pointer.x, s.pointer.y, s.pointer.inside)
}

// processPointer updates the hover chain for a pointer at (x, y) and fires
// leave (innermost first), enter (outermost first) and then move callbacks.
func (s *Scene) processPointer(x, y float64, inside bool) {
	ps := &s.pointer
	moved := inside && (!ps.inside || x != ps.x || y != ps.y)

	var target *Element
	if inside {
		target = s.hitTest(x, y)
	}
	prev := ps.chain
	next := s.chainFor(target, inside)

	ps.inside = inside
	ps.x, ps.y = x, y
	ps.target = target
	ps.chain = next

	for i := len(prev) - 1; i >= 0; i-- {
		if !slices.Contains(next, prev[i]) {
			s.fireListeners(prev[i].listeners.leave, prev[i], x, y)
		}
	}
	for _, e := range next {
		if !slices.Contains(prev, e) {
			s.fireListeners(e.listeners.enter, e, x, y)
		}
	}
	if moved {
		s.fireListeners(s.handlers.move, target, x, y)
	}
}

// fireListeners calls each listener with a context for e. The list is copied
// first so callbacks may remove themselves.
func (s *Scene) fireListeners(list []pointerListener, e *Element, x, y float64) {
	if len(list) == 0 {
		return
	}
	ctx := PointerContext{Element: e, GlobalX: x, GlobalY: y}
	if e != nil {
		ctx.LocalX, ctx.LocalY = e.WorldToLocal(x, y)
	}
	for _, l := range slices.Clone(list) {
		l.fn(ctx)
	}
}

// hoverChainContains reports whether e is in the current hover chain.
func (s *Scene) hoverChainContains(e *Element) bool {
	return slices.Contains(s.pointer.chain, e)
}
