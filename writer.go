package cursorfx

import "strconv"

// Variable name prefixes. Root variables describe the window, element
// variables the element's bounding box.
const (
	elementPrefix = "--cursor-pos-"
	windowPrefix  = "--cursor-window-pos-"
)

// Variable names written for a non-root element.
const (
	VarX           = elementPrefix + "x-px"
	VarY           = elementPrefix + "y-px"
	VarXFraction   = elementPrefix + "x-fraction"
	VarYFraction   = elementPrefix + "y-fraction"
	VarXPercentage = elementPrefix + "x-percentage"
	VarYPercentage = elementPrefix + "y-percentage"
	VarFade        = elementPrefix + "fade-fraction"
	VarFadePercent = elementPrefix + "fade-percentage"
)

// Variable names written for the root element.
const (
	VarWindowX           = windowPrefix + "x-px"
	VarWindowY           = windowPrefix + "y-px"
	VarWindowXFraction   = windowPrefix + "x-fraction"
	VarWindowYFraction   = windowPrefix + "y-fraction"
	VarWindowXPercentage = windowPrefix + "x-percentage"
	VarWindowYPercentage = windowPrefix + "y-percentage"
	VarWindowFade        = windowPrefix + "fade-fraction"
	VarWindowFadePercent = windowPrefix + "fade-percentage"
)

// Write is one variable assignment produced by the engine.
type Write struct {
	Target *Element
	Name   string
	Value  string
}

// VariableSink receives every variable the engine writes. The engine never
// reads variables back.
type VariableSink interface {
	SetVariable(target *Element, name, value string)
}

// ElementSink stores variables on the target element itself, where Var and
// Vars read them.
type ElementSink struct{}

// SetVariable implements VariableSink.
func (ElementSink) SetVariable(target *Element, name, value string) {
	target.setVar(name, value)
}

// prefixFor returns the variable namespace of target.
func (g *Engine) prefixFor(target *Element) string {
	if target == g.root {
		return windowPrefix
	}
	return elementPrefix
}

func (g *Engine) write(target *Element, name, value string) {
	g.writes = append(g.writes, Write{Target: target, Name: name, Value: value})
	g.sink.SetVariable(target, name, value)
}

// writePosition writes the pointer position relative to target: the window
// for the root, the bounding box otherwise. Fractions are not clamped.
func (g *Engine) writePosition(target *Element) {
	var box Rect
	if target == g.root {
		box = g.host.Viewport()
	} else {
		box = g.host.BoundingBox(target)
	}
	x := g.pointer.X - box.X
	y := g.pointer.Y - box.Y
	fx := ratio(x, box.Width)
	fy := ratio(y, box.Height)

	p := g.prefixFor(target)
	g.write(target, p+"x-px", formatNumber(x)+"px")
	g.write(target, p+"y-px", formatNumber(y)+"px")
	g.write(target, p+"x-fraction", formatNumber(fx))
	g.write(target, p+"y-fraction", formatNumber(fy))
	g.write(target, p+"x-percentage", formatNumber(fx*100)+"%")
	g.write(target, p+"y-percentage", formatNumber(fy*100)+"%")
}

// writeFade writes the fade fraction of target.
func (g *Engine) writeFade(target *Element, fraction float64) {
	p := g.prefixFor(target)
	g.write(target, p+"fade-fraction", formatNumber(fraction))
	g.write(target, p+"fade-percentage", formatNumber(fraction*100)+"%")
}

// ratio divides offset by size, treating an empty axis as 0.
func ratio(offset, size float64) float64 {
	if size == 0 {
		return 0
	}
	return offset / size
}

// formatNumber renders v with the fewest digits that round-trip.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
