package cursorfx

import (
	"strings"
)

// HitShape is used for custom hit testing regions in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data.
type PointerContext struct {
	Element *Element
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
}

// --- ID counter ---

// elementIDCounter is a plain counter; cursorfx is single-threaded.
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// --- Element ---

// Element is a node of the structural tree. It carries a layout box, a class
// list (the tracked markers), inline style declarations and the variables the
// engine writes for it.
type Element struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Element
	children []*Element

	// Layout box, relative to the parent's origin.
	X, Y          float64
	Width, Height float64

	// Transform around (PivotX, PivotY), applied after the box offset.
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Visibility & painting
	Visible bool
	Color   Color

	// Hit testing; nil means the layout box.
	HitShape HitShape

	classes []string
	style   map[string]string
	vars    map[string]string

	listeners listenerRegistry

	// scene is set on the document element only.
	scene *Scene

	disposed bool
}

// NewElement creates a detached element carrying the given classes.
func NewElement(name string, classes ...string) *Element {
	e := &Element{
		ID:      nextElementID(),
		Name:    name,
		ScaleX:  1,
		ScaleY:  1,
		Visible: true,
	}
	for _, c := range classes {
		if c != "" && !e.HasClass(c) {
			e.classes = append(e.classes, c)
		}
	}
	return e
}

// SetBounds sets the element's layout box.
func (e *Element) SetBounds(x, y, w, h float64) {
	e.X, e.Y = x, y
	e.Width, e.Height = w, h
}

// --- Tree manipulation ---

// AddChild appends child to this element's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element (cycle).
func (e *Element) AddChild(child *Element) {
	e.AddChildAt(child, len(e.children))
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (e *Element) AddChildAt(child *Element, index int) {
	if child == nil {
		panic("cursorfx: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(e, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, e) {
		panic("cursorfx: adding child would create a cycle")
	}
	if child.Parent != nil {
		old := child.Parent
		if old == e {
			if i := e.indexOf(child); i < index {
				index--
			}
		}
		old.removeChildByPtr(child)
		child.Parent = nil
		old.notifyChildList(nil, child)
	}
	if index < 0 || index > len(e.children) {
		panic("cursorfx: child index out of range")
	}
	child.Parent = e
	e.children = append(e.children, nil)
	copy(e.children[index+1:], e.children[index:])
	e.children[index] = child
	e.notifyChildList(child, nil)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(e)
	}
}

// RemoveChild detaches child from this element.
// Panics if child.Parent != e.
func (e *Element) RemoveChild(child *Element) {
	if globalDebug {
		debugCheckDisposed(e, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != e {
		panic("cursorfx: child's parent is not this element")
	}
	e.removeChildByPtr(child)
	child.Parent = nil
	e.notifyChildList(nil, child)
}

// RemoveChildAt removes and returns the child at the given index.
func (e *Element) RemoveChildAt(index int) *Element {
	if index < 0 || index >= len(e.children) {
		panic("cursorfx: child index out of range")
	}
	child := e.children[index]
	e.RemoveChild(child)
	return child
}

// RemoveFromParent detaches this element from its parent.
// No-op if this element has no parent.
func (e *Element) RemoveFromParent() {
	if e.Parent == nil {
		return
	}
	e.Parent.RemoveChild(e)
}

// RemoveChildren detaches all children from this element.
// Children are NOT disposed.
func (e *Element) RemoveChildren() {
	for len(e.children) > 0 {
		e.RemoveChild(e.children[len(e.children)-1])
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Element) Children() []*Element {
	return e.children
}

// NumChildren returns the number of children.
func (e *Element) NumChildren() int {
	return len(e.children)
}

// ChildAt returns the child at the given index.
func (e *Element) ChildAt(index int) *Element {
	return e.children[index]
}

// Connected reports whether the element is attached to a scene's document.
func (e *Element) Connected() bool {
	return e.ownerScene() != nil
}

// ownerScene walks to the top of the tree and returns the scene owning it.
func (e *Element) ownerScene() *Scene {
	top := e
	for top.Parent != nil {
		top = top.Parent
	}
	return top.scene
}

// Walk calls fn for e and every descendant in tree order. Returning false from
// fn skips that element's subtree.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// --- Classes ---

// HasClass reports whether the element carries class.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.classes {
		if c == class {
			return true
		}
	}
	return false
}

// Classes returns a copy of the class list in insertion order.
func (e *Element) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// ClassName returns the class list joined by single spaces.
func (e *Element) ClassName() string {
	return strings.Join(e.classes, " ")
}

// AddClass adds each class not already present. A class-attribute mutation is
// recorded only if the list changed.
func (e *Element) AddClass(classes ...string) {
	old := e.ClassName()
	changed := false
	for _, c := range classes {
		if c != "" && !e.HasClass(c) {
			e.classes = append(e.classes, c)
			changed = true
		}
	}
	if changed {
		e.notifyAttribute("class", old)
	}
}

// RemoveClass removes each listed class that is present.
func (e *Element) RemoveClass(classes ...string) {
	old := e.ClassName()
	changed := false
	for _, c := range classes {
		for i, have := range e.classes {
			if have == c {
				e.classes = append(e.classes[:i], e.classes[i+1:]...)
				changed = true
				break
			}
		}
	}
	if changed {
		e.notifyAttribute("class", old)
	}
}

// ToggleClass adds class if absent, removes it otherwise, and reports whether
// the element carries it afterwards.
func (e *Element) ToggleClass(class string) bool {
	if e.HasClass(class) {
		e.RemoveClass(class)
		return false
	}
	e.AddClass(class)
	return true
}

// SetClassName replaces the class list with the whitespace-separated classes
// in name. Like a DOM attribute write, it always records a mutation.
func (e *Element) SetClassName(name string) {
	old := e.ClassName()
	e.classes = e.classes[:0]
	for _, c := range strings.Fields(name) {
		if !e.HasClass(c) {
			e.classes = append(e.classes, c)
		}
	}
	e.notifyAttribute("class", old)
}

// --- Variables ---

// Var returns the value of a variable written for this element, or "".
func (e *Element) Var(name string) string {
	return e.vars[name]
}

// Vars returns a copy of every variable written for this element.
func (e *Element) Vars() map[string]string {
	out := make(map[string]string, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}

func (e *Element) setVar(name, value string) {
	if e.vars == nil {
		e.vars = make(map[string]string)
	}
	e.vars[name] = value
}

// --- Disposal ---

// Dispose removes this element from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	e.dispose()
}

func (e *Element) dispose() {
	e.disposed = true
	e.ID = 0
	// The child slice is kept so that a pending removal record can still
	// reach the disposed subtree.
	for _, child := range e.children {
		child.Parent = nil
		child.dispose()
	}
	e.Parent = nil
	e.HitShape = nil
	e.listeners = listenerRegistry{}
}

// IsDisposed returns true if this element has been disposed.
func (e *Element) IsDisposed() bool {
	return e.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of (or equal to) el.
func isAncestor(candidate, el *Element) bool {
	for p := el; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (e *Element) indexOf(child *Element) int {
	for i, c := range e.children {
		if c == child {
			return i
		}
	}
	return -1
}

// removeChildByPtr removes child from e.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (e *Element) removeChildByPtr(child *Element) {
	if i := e.indexOf(child); i >= 0 {
		copy(e.children[i:], e.children[i+1:])
		e.children[len(e.children)-1] = nil
		e.children = e.children[:len(e.children)-1]
	}
}

// notifyChildList queues a child-list mutation on e if e is connected.
func (e *Element) notifyChildList(added, removed *Element) {
	s := e.ownerScene()
	if s == nil {
		return
	}
	rec := MutationRecord{Type: MutationChildList, Target: e}
	if added != nil {
		rec.Added = []*Element{added}
	}
	if removed != nil {
		rec.Removed = []*Element{removed}
	}
	s.queueMutation(rec)
}

// notifyAttribute queues an attribute mutation on e if e is connected.
func (e *Element) notifyAttribute(name, oldValue string) {
	s := e.ownerScene()
	if s == nil {
		return
	}
	s.queueMutation(MutationRecord{
		Type:          MutationAttributes,
		Target:        e,
		AttributeName: name,
		OldValue:      oldValue,
	})
}
