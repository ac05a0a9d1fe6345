package cursorfx

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the convenience constructors and call Update(dt) each frame with dt in
// milliseconds. If the target element is disposed, the group stops
// immediately.
//
// Moving an element under a resting pointer changes what is hovered; the
// scene picks that up on its next frame.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Element
	Done   bool
}

// Update advances all tweens by dt milliseconds and writes values to the
// target fields.
func (g *TweenGroup) Update(dt float64) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(float32(dt))
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

func newTweenGroup(target *Element, duration float64, fn ease.TweenFunc, pairs ...tweenPair) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{count: len(pairs), target: target}
	for i, p := range pairs {
		g.tweens[i] = gween.New(float32(*p.field), float32(p.to), float32(duration), fn)
		g.fields[i] = p.field
	}
	return g
}

type tweenPair struct {
	field *float64
	to    float64
}

// TweenPosition animates e.X and e.Y to the target offset over duration
// milliseconds.
func TweenPosition(e *Element, toX, toY, duration float64, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(e, duration, fn, tweenPair{&e.X, toX}, tweenPair{&e.Y, toY})
}

// TweenSize animates e.Width and e.Height.
func TweenSize(e *Element, toW, toH, duration float64, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(e, duration, fn, tweenPair{&e.Width, toW}, tweenPair{&e.Height, toH})
}

// TweenScale animates e.ScaleX and e.ScaleY.
func TweenScale(e *Element, toSX, toSY, duration float64, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(e, duration, fn, tweenPair{&e.ScaleX, toSX}, tweenPair{&e.ScaleY, toSY})
}

// TweenRotation animates e.Rotation (radians).
func TweenRotation(e *Element, to, duration float64, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(e, duration, fn, tweenPair{&e.Rotation, to})
}

// TweenColor animates all four components of e.Color.
func TweenColor(e *Element, to Color, duration float64, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(e, duration, fn,
		tweenPair{&e.Color.R, to.R},
		tweenPair{&e.Color.G, to.G},
		tweenPair{&e.Color.B, to.B},
		tweenPair{&e.Color.A, to.A},
	)
}

// TweenGlowRadius animates s.GlowRadius. A zero radius starts from
// DefaultGlowRadius.
func TweenGlowRadius(s *Scene, to, duration float64, fn ease.TweenFunc) *TweenGroup {
	if s.GlowRadius <= 0 {
		s.GlowRadius = DefaultGlowRadius
	}
	return newTweenGroup(nil, duration, fn, tweenPair{&s.GlowRadius, to})
}
