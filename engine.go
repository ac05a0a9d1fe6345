package cursorfx

import (
	"sort"

	"github.com/rs/zerolog"
)

// DefaultMarker is the class tracked by a new Engine unless Options says
// otherwise.
const DefaultMarker = "follow-cursor-vars"

// Host is the environment an Engine runs against: the structural tree, hover
// state, geometry and style resolution. Scene is the built-in implementation.
type Host interface {
	// Hovered reports whether e is currently under the pointer (e or one of
	// its descendants is hit).
	Hovered(e *Element) bool
	// BoundingBox returns e's box in viewport coordinates.
	BoundingBox(e *Element) Rect
	// Viewport returns the window rectangle the root element stands for.
	Viewport() Rect
	// ComputedStyle returns the effective value of a style property for e,
	// or "" if unset.
	ComputedStyle(e *Element, property string) string
	// Listen attaches hover enter/leave callbacks to e and returns a function
	// that detaches them.
	Listen(e *Element, enter, leave func()) (detach func())
	// QueryByClass returns every element inside the monitored scope that
	// carries class.
	QueryByClass(class string) []*Element
}

// Options configures an Engine.
type Options struct {
	// Markers is the initial tracked marker set. Nil means {DefaultMarker};
	// an empty non-nil slice tracks nothing.
	Markers []string
	// Root is the element whose variables describe the window.
	Root *Element
	// Easing replaces linear as the fallback easing.
	Easing EasingFunc
	// Logger receives debug and warning output. The zero value discards it.
	Logger *zerolog.Logger
}

// Engine is the single context object holding all cursor-variable state: the
// clock, the pointer, the tracked markers, the observed elements and the
// active fade timelines. It is not safe for concurrent use; every event is
// applied on one logical thread.
type Engine struct {
	host   Host
	sink   VariableSink
	root   *Element
	logger zerolog.Logger

	now     float64
	pointer Vec2

	markers   map[string]struct{}
	observed  map[*Element]func()
	timelines map[*Element]*FadeTimeline

	defaultEasing EasingFunc

	writes []Write
	depth  int
}

// NewEngine creates an engine over host. A nil sink stores variables on the
// elements (ElementSink). The initial markers take effect on the first
// MarkersChanged event or Reconcile call, so that the caller decides when the
// document is ready.
func NewEngine(host Host, sink VariableSink, opts Options) *Engine {
	if sink == nil {
		sink = ElementSink{}
	}
	g := &Engine{
		host:          host,
		sink:          sink,
		root:          opts.Root,
		logger:        zerolog.Nop(),
		markers:       make(map[string]struct{}),
		observed:      make(map[*Element]func()),
		timelines:     make(map[*Element]*FadeTimeline),
		defaultEasing: Linear,
	}
	if opts.Logger != nil {
		g.logger = *opts.Logger
	}
	if opts.Easing != nil {
		g.defaultEasing = opts.Easing
	}
	markers := opts.Markers
	if markers == nil {
		markers = []string{DefaultMarker}
	}
	for _, m := range markers {
		if m != "" {
			g.markers[m] = struct{}{}
		}
	}
	return g
}

// SetLogger replaces the engine's logger.
func (g *Engine) SetLogger(l zerolog.Logger) {
	g.logger = l
}

// Apply runs one event through the engine and returns the variable writes it
// produced, in order. Every write has also been sent to the sink. Events
// applied from inside another Apply (host callbacks) append to the outer
// call's result.
func (g *Engine) Apply(ev Event) []Write {
	if g.depth == 0 {
		g.writes = nil
	}
	g.depth++
	defer func() { g.depth-- }()

	switch ev := ev.(type) {
	case PointerMoved:
		g.pointerMoved(ev.X, ev.Y)
	case HoverEntered:
		g.hoverChanged(ev.Target, false)
	case HoverLeft:
		g.hoverChanged(ev.Target, true)
	case MutationBatch:
		g.mutations(ev.Records)
	case MarkersChanged:
		g.setMarkers(ev.Add, ev.Remove)
	case FrameTick:
		g.tick(ev.Now)
	}
	return g.writes
}

// Reconcile brings the observed set in line with the tracked markers without
// changing them.
func (g *Engine) Reconcile() []Write {
	return g.Apply(MarkersChanged{})
}

// hoverChanged is the listener body for hover enter/leave notifications.
func (g *Engine) hoverChanged(e *Element, left bool) {
	if e == nil {
		return
	}
	if _, ok := g.observed[e]; !ok {
		return
	}
	g.guard(e, "hover", func() { g.beginFade(e, left) })
}

// Teardown detaches every hover listener and clears all state. The engine can
// be reused afterwards; the marker set is kept.
func (g *Engine) Teardown() {
	for e, detach := range g.observed {
		g.guard(e, "teardown", detach)
	}
	clear(g.observed)
	clear(g.timelines)
	g.writes = nil
}

// Now returns the engine clock in milliseconds.
func (g *Engine) Now() float64 {
	return g.now
}

// Pointer returns the last known pointer position.
func (g *Engine) Pointer() Vec2 {
	return g.pointer
}

// Root returns the element standing for the window.
func (g *Engine) Root() *Element {
	return g.root
}

// Markers returns the tracked marker classes, sorted.
func (g *Engine) Markers() []string {
	out := make([]string, 0, len(g.markers))
	for m := range g.markers {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// IsObserved reports whether e is in the observed set.
func (g *Engine) IsObserved(e *Element) bool {
	_, ok := g.observed[e]
	return ok
}

// Observed returns the observed elements ordered by ID.
func (g *Engine) Observed() []*Element {
	return sortedKeys(g.observed)
}

// Timeline returns e's active fade, or nil. The returned value is a copy.
func (g *Engine) Timeline(e *Element) *FadeTimeline {
	tl, ok := g.timelines[e]
	if !ok {
		return nil
	}
	cp := *tl
	return &cp
}

// Active returns the elements with an active fade, ordered by ID.
func (g *Engine) Active() []*Element {
	return sortedKeys(g.timelines)
}

func sortedKeys[V any](m map[*Element]V) []*Element {
	out := make([]*Element, 0, len(m))
	for e := range m {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// guard runs fn for one element and swallows any panic so that a failing
// collaborator cannot disturb the other elements of the same batch or tick.
func (g *Engine) guard(e *Element, op string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			name := ""
			if e != nil {
				name = e.Name
			}
			g.logger.Warn().Str("element", name).Str("op", op).Interface("panic", r).Msg("recovered")
		}
	}()
	fn()
}
