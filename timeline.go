package cursorfx

import "math"

// FadeTimeline is one in-flight fade of an element's fade fraction. Times are
// in milliseconds on the engine clock.
type FadeTimeline struct {
	Start     float64
	Duration  float64
	Easing    EasingFunc
	FadingOut bool
}

// Ratio returns the raw elapsed ratio at now. It is 1 for a zero duration and
// may exceed 1 once the fade is complete.
func (t *FadeTimeline) Ratio(now float64) float64 {
	if t.Duration <= 0 {
		return 1
	}
	return (now - t.Start) / t.Duration
}

// Fraction returns the displayed fade fraction at now.
func (t *FadeTimeline) Fraction(now float64) float64 {
	r := clamp01(t.Ratio(now))
	if t.FadingOut {
		r = 1 - r
	}
	return t.Easing(r)
}

// Done reports whether the timeline retires on a tick at now.
func (t *FadeTimeline) Done(now float64) bool {
	return t.Ratio(now) >= 1
}

// reverse switches direction at now under a new duration and easing, choosing
// the start so that the raw progress shown right after the switch equals the
// progress shown right before it.
func (t *FadeTimeline) reverse(now float64, fadingOut bool, duration float64, easing EasingFunc) {
	r := clamp01(t.Ratio(now))
	t.Start = now - duration*(1-r)
	t.Duration = duration
	t.Easing = easing
	t.FadingOut = fadingOut
}

// beginFade starts a fade on e, or reverses the one in flight. Duration and
// easing come from e's computed style; anything unparseable, missing or
// negative degrades to 0 ms and linear.
func (g *Engine) beginFade(e *Element, fadingOut bool) {
	prop := PropFadeInTime
	if fadingOut {
		prop = PropFadeOutTime
	}
	duration := g.resolveDuration(e, prop)
	easing := g.resolveEasing(e)

	if tl, ok := g.timelines[e]; ok {
		if tl.FadingOut == fadingOut {
			return
		}
		tl.reverse(g.now, fadingOut, duration, easing)
		g.logger.Debug().Str("element", e.Name).Bool("fadingOut", fadingOut).
			Float64("duration", duration).Msg("fade reversed")
		return
	}
	g.timelines[e] = &FadeTimeline{
		Start:     g.now,
		Duration:  duration,
		Easing:    easing,
		FadingOut: fadingOut,
	}
	g.logger.Debug().Str("element", e.Name).Bool("fadingOut", fadingOut).
		Float64("duration", duration).Msg("fade started")
}

func (g *Engine) resolveDuration(e *Element, prop string) float64 {
	raw := g.host.ComputedStyle(e, prop)
	if raw == "" {
		return 0
	}
	d, err := ParseTime(raw)
	if err != nil {
		g.logger.Debug().Err(err).Str("element", e.Name).Str("property", prop).Msg("duration defaulted to 0")
		return 0
	}
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0
	}
	return d
}

func (g *Engine) resolveEasing(e *Element) EasingFunc {
	raw := g.host.ComputedStyle(e, PropFadeFunction)
	if raw == "" {
		return g.defaultEasing
	}
	fn, err := ParseTimingFunction(raw)
	if err != nil {
		g.logger.Debug().Err(err).Str("element", e.Name).Msg("easing defaulted")
		return g.defaultEasing
	}
	return fn
}
