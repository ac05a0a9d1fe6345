package cursorfx

// pointerMoved records the pointer and rewrites the position variables of
// every observed element that is hovered or still fading.
func (g *Engine) pointerMoved(x, y float64) {
	g.pointer = Vec2{X: x, Y: y}
	for _, e := range sortedKeys(g.observed) {
		g.guard(e, "pointer", func() {
			if _, fading := g.timelines[e]; fading || g.host.Hovered(e) {
				g.writePosition(e)
			}
		})
	}
}
