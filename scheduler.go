package cursorfx

// tick advances the clock to now, writes every active fade and retires the
// ones that have run to completion. A retiring timeline still gets this
// tick's write, which is its terminal value.
func (g *Engine) tick(now float64) {
	g.now = now
	for _, e := range sortedKeys(g.timelines) {
		tl := g.timelines[e]
		g.guard(e, "tick", func() {
			g.writeFade(e, tl.Fraction(now))
		})
		if tl.Done(now) {
			delete(g.timelines, e)
			g.logger.Debug().Str("element", e.Name).Bool("fadingOut", tl.FadingOut).Msg("fade retired")
		}
	}
}
