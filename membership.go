package cursorfx

// classAttribute is the attribute whose changes carry marker updates.
const classAttribute = "class"

// setMarkers updates the tracked marker set and reconciles the observed set
// against the whole monitored scope. Adding a tracked marker or removing an
// untracked one changes nothing, so repeated calls are harmless.
func (g *Engine) setMarkers(add, remove []string) {
	for _, m := range add {
		if m != "" {
			g.markers[m] = struct{}{}
		}
	}
	for _, m := range remove {
		delete(g.markers, m)
	}
	g.reconcile()
}

// reconcile stops every observed element that no longer belongs to the
// tracked set and starts every element that does but is not yet observed.
func (g *Engine) reconcile() {
	want := make(map[*Element]struct{})
	for _, m := range g.Markers() {
		var found []*Element
		g.guard(nil, "query", func() { found = g.host.QueryByClass(m) })
		for _, e := range found {
			if e != nil && !e.IsDisposed() {
				want[e] = struct{}{}
			}
		}
	}
	for _, e := range sortedKeys(g.observed) {
		if _, ok := want[e]; !ok {
			g.stopObserving(e)
		}
	}
	for _, e := range sortedKeys(want) {
		g.startObserving(e)
	}
	g.logger.Debug().Strs("markers", g.Markers()).Int("observed", len(g.observed)).Msg("reconciled")
}

// mutations applies one batch of structural changes in record order. Added
// and removed nodes are handled together with their descendants.
func (g *Engine) mutations(records []MutationRecord) {
	for i := range records {
		rec := &records[i]
		switch rec.Type {
		case MutationChildList:
			for _, added := range rec.Added {
				if added == nil {
					continue
				}
				added.Walk(func(e *Element) bool {
					if g.matches(e) {
						g.startObserving(e)
					}
					return true
				})
			}
			for _, removed := range rec.Removed {
				if removed == nil {
					continue
				}
				removed.Walk(func(e *Element) bool {
					g.stopObserving(e)
					return true
				})
			}
		case MutationAttributes:
			if rec.AttributeName != "" && rec.AttributeName != classAttribute {
				continue
			}
			if rec.Target == nil {
				continue
			}
			if g.matches(rec.Target) {
				g.startObserving(rec.Target)
			} else {
				g.stopObserving(rec.Target)
			}
		}
	}
}

// matches reports whether e carries at least one tracked marker.
func (g *Engine) matches(e *Element) bool {
	if e.IsDisposed() {
		return false
	}
	for _, c := range e.classes {
		if _, ok := g.markers[c]; ok {
			return true
		}
	}
	return false
}

// startObserving wires hover listeners to e, zeroes its fade, writes its
// position and, when e is already under the pointer, starts fading it in
// right away since no enter notification will follow. No-op when e is
// already observed.
func (g *Engine) startObserving(e *Element) {
	if _, ok := g.observed[e]; ok {
		return
	}
	g.guard(e, "start", func() {
		detach := g.host.Listen(e,
			func() { g.Apply(HoverEntered{Target: e}) },
			func() { g.Apply(HoverLeft{Target: e}) },
		)
		if detach == nil {
			detach = func() {}
		}
		g.observed[e] = detach
		g.logger.Debug().Str("element", e.Name).Msg("observing")

		g.writeFade(e, 0)
		g.writePosition(e)
		if g.host.Hovered(e) {
			g.beginFade(e, false)
		}
	})
}

// stopObserving detaches e. A hovered element first starts fading out; that
// timeline keeps running after e has left the observed set. No-op when e is
// not observed.
func (g *Engine) stopObserving(e *Element) {
	detach, ok := g.observed[e]
	if !ok {
		return
	}
	delete(g.observed, e)
	g.guard(e, "stop", func() {
		if g.host.Hovered(e) {
			g.beginFade(e, true)
		}
	})
	g.guard(e, "detach", detach)
	g.logger.Debug().Str("element", e.Name).Msg("stopped observing")
}
