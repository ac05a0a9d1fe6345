package cursorfx

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// Scene is the top-level object that owns the document tree, pointer state,
// style sheets and the cursor-variable engine. It is the Host the engine runs
// against.
//
// The document is html > (head, body). Only body's subtree and the html
// element itself are monitored for tracked classes.
type Scene struct {
	// GlowRadius is the radius of the cursor glow painted by Draw.
	GlowRadius float64

	// OnFrame, if set, runs at the start of every frame with the frame's dt in
	// milliseconds, before structural changes are delivered.
	OnFrame func(dt float64)

	root *Element
	head *Element
	body *Element

	engine   *Engine
	observer *MutationObserver

	observers []*MutationObserver
	rules     []styleRule

	viewport Rect
	clock    float64 // milliseconds

	// Input state
	handlers    listenerRegistry
	pointer     pointerState
	hitBuf      []*Element
	injectQueue []syntheticPointerEvent

	sink   VariableSink
	logger zerolog.Logger
	debug  bool

	scriptRunner  *ScriptRunner
	snapshotQueue []string
	snapshots     []Snapshot
	snapshotDir   string

	screenshotQueue []string
	drawn           bool
}

// NewScene creates a scene with an empty document sized width×height and an
// engine tracking DefaultMarker.
func NewScene(width, height float64) *Scene {
	s := &Scene{
		viewport: Rect{Width: width, Height: height},
		logger:   zerolog.Nop(),
	}

	s.root = NewElement("html")
	s.root.SetBounds(0, 0, width, height)
	s.head = NewElement("head")
	s.body = NewElement("body")
	s.body.SetBounds(0, 0, width, height)
	s.root.AddChild(s.head)
	s.root.AddChild(s.body)
	s.root.scene = s

	s.engine = NewEngine(s, sceneSink{s}, Options{Root: s.root, Logger: &s.logger})

	// Two scopes through one observer: tracked content lives under body, and
	// html is watched on its own so head changes never reach the engine.
	s.observer = s.NewMutationObserver(func(recs []MutationRecord) {
		s.engine.Apply(MutationBatch{Records: recs})
	})
	s.observer.Observe(s.body, ObserveOptions{
		ChildList:       true,
		Subtree:         true,
		AttributeFilter: []string{classAttribute},
	})
	s.observer.Observe(s.root, ObserveOptions{
		AttributeFilter: []string{classAttribute},
	})

	s.OnPointerMove(func(ctx PointerContext) {
		s.engine.Apply(PointerMoved{X: ctx.GlobalX, Y: ctx.GlobalY})
	})

	s.engine.Reconcile()
	return s
}

// Root returns the html element. Its variables describe the window.
func (s *Scene) Root() *Element {
	return s.root
}

// Head returns the head element. Tracked classes under it are ignored.
func (s *Scene) Head() *Element {
	return s.head
}

// Body returns the body element, the monitored content scope.
func (s *Scene) Body() *Element {
	return s.body
}

// Engine returns the scene's cursor-variable engine.
func (s *Scene) Engine() *Engine {
	return s.engine
}

// Now returns the scene clock in milliseconds.
func (s *Scene) Now() float64 {
	return s.clock
}

// AddTrackedClass tracks the given classes and reconciles the whole document.
// Adding an already tracked class is a no-op apart from the reconciliation.
func (s *Scene) AddTrackedClass(classes ...string) {
	s.FlushMutations()
	s.engine.Apply(MarkersChanged{Add: classes})
}

// RemoveTrackedClass stops tracking the given classes and reconciles the
// whole document.
func (s *Scene) RemoveTrackedClass(classes ...string) {
	s.FlushMutations()
	s.engine.Apply(MarkersChanged{Remove: classes})
}

// Update processes mouse input and advances fades by one ebiten tick.
func (s *Scene) Update() {
	s.step(1000/float64(ebiten.TPS()), true)
}

// Advance runs one frame without reading the real cursor: pending structural
// changes are delivered, one injected pointer event (if any) is processed and
// the clock moves forward by dt milliseconds before fades are stepped.
func (s *Scene) Advance(dt float64) {
	s.step(dt, false)
}

func (s *Scene) step(dt float64, useCursor bool) {
	var stats frameStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.OnFrame != nil {
		s.OnFrame(dt)
	}
	if s.scriptRunner != nil {
		s.scriptRunner.step(s)
	}
	s.FlushMutations()

	if s.debug {
		stats.flushTime = time.Since(t0)
		t0 = time.Now()
	}

	s.processInput(useCursor)
	s.FlushMutations()

	if s.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	if dt > 0 {
		s.clock += dt
	}
	writes := s.engine.Apply(FrameTick{Now: s.clock})
	s.flushSnapshots()

	if s.debug {
		stats.tickTime = time.Since(t0)
		stats.writes = len(writes)
		stats.observed = len(s.engine.observed)
		stats.active = len(s.engine.timelines)
		s.debugLog(stats)
	}
}

// SetViewport resizes the window. body follows the new size.
func (s *Scene) SetViewport(width, height float64) {
	s.viewport = Rect{Width: width, Height: height}
	s.root.SetBounds(0, 0, width, height)
	s.body.SetBounds(0, 0, width, height)
}

// Viewport implements Host.
func (s *Scene) Viewport() Rect {
	return s.viewport
}

// SetVariableSink sets an extra sink that receives every variable write after
// it has been stored on the element. Pass nil to remove it.
func (s *Scene) SetVariableSink(sink VariableSink) {
	s.sink = sink
}

// SetLogger sets the logger used by the scene and its engine.
func (s *Scene) SetLogger(l zerolog.Logger) {
	s.logger = l
	s.engine.SetLogger(l)
	if s.debug {
		debugLogger = l
	}
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-element
// access panics, tree depth and child count warnings are logged, and per-frame
// stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		debugLogger = s.logger
	} else {
		debugLogger = zerolog.Nop()
	}
}

// Teardown detaches every hover listener the engine holds, clears its state
// and stops structural observation. The document itself is left intact.
func (s *Scene) Teardown() {
	s.observer.Disconnect()
	s.engine.Teardown()
	s.injectQueue = nil
}

// --- Host ---

// Hovered implements Host. A detached element is never hovered.
func (s *Scene) Hovered(e *Element) bool {
	return e.Connected() && s.hoverChainContains(e)
}

// BoundingBox implements Host.
func (s *Scene) BoundingBox(e *Element) Rect {
	return e.Bounds()
}

// Listen implements Host.
func (s *Scene) Listen(e *Element, enter, leave func()) func() {
	he := e.OnPointerEnter(func(PointerContext) { enter() })
	hl := e.OnPointerLeave(func(PointerContext) { leave() })
	return func() {
		he.Remove()
		hl.Remove()
	}
}

// QueryByClass implements Host. It searches html itself and body's subtree in
// tree order.
func (s *Scene) QueryByClass(class string) []*Element {
	var out []*Element
	if s.root.HasClass(class) {
		out = append(out, s.root)
	}
	s.body.Walk(func(e *Element) bool {
		if e.HasClass(class) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// sceneSink stores each write on the element and forwards it to the scene's
// extra sink.
type sceneSink struct {
	s *Scene
}

func (k sceneSink) SetVariable(target *Element, name, value string) {
	target.setVar(name, value)
	if k.s.sink != nil {
		k.s.sink.SetVariable(target, name, value)
	}
}
