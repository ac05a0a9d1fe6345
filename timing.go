package cursorfx

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gorilla/css/scanner"
	"github.com/tanema/gween/ease"
)

// EasingFunc maps raw progress to displayed progress. Domain and range are
// conventionally [0, 1].
type EasingFunc func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

var (
	// ErrInvalidTime is returned by ParseTime for anything that is not a CSS <time>.
	ErrInvalidTime = errors.New("cursorfx: invalid time")
	// ErrInvalidTimingFunction is returned by ParseTimingFunction for an
	// unknown or malformed easing descriptor.
	ErrInvalidTimingFunction = errors.New("cursorfx: invalid timing function")
)

// ParseTime parses a CSS <time> ("200ms", ".5s", "0") into milliseconds.
// Negative values are returned as parsed; callers decide how to treat them.
func ParseTime(text string) (float64, error) {
	toks, err := tokenize(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTime, text, err)
	}
	v, unit, next, ok := takeNumber(toks, 0)
	if !ok || next != len(toks) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, text)
	}
	switch strings.ToLower(unit) {
	case "ms":
		return v, nil
	case "s":
		return v * 1000, nil
	case "":
		if v == 0 {
			return 0, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTime, text)
}

// ParseTimingFunction parses an easing descriptor. It accepts the CSS keywords
// (linear, ease, ease-in, ease-out, ease-in-out, step-start, step-end), the
// functions cubic-bezier(), steps() and linear(), and the Penner curve names
// of the gween ease package (in-quad, out-bounce, in-out-elastic, ...).
func ParseTimingFunction(text string) (EasingFunc, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimingFunction, text, err)
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidTimingFunction)
	}
	var fn EasingFunc
	switch first := toks[0]; first.Type {
	case scanner.TokenIdent:
		if len(toks) == 1 {
			fn = easingKeyword(strings.ToLower(first.Value))
		}
	case scanner.TokenFunction:
		args, ok := functionArgs(toks)
		if !ok {
			break
		}
		switch strings.ToLower(first.Value) {
		case "cubic-bezier(":
			fn = parseCubicBezier(args)
		case "steps(":
			fn = parseSteps(args)
		case "linear(":
			fn = parseLinearStops(args)
		}
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimingFunction, text)
	}
	return fn, nil
}

func easingKeyword(name string) EasingFunc {
	switch name {
	case "linear":
		return Linear
	case "ease":
		return cubicBezier(0.25, 0.1, 0.25, 1)
	case "ease-in":
		return cubicBezier(0.42, 0, 1, 1)
	case "ease-out":
		return cubicBezier(0, 0, 0.58, 1)
	case "ease-in-out":
		return cubicBezier(0.42, 0, 0.58, 1)
	case "step-start":
		return steps(1, "jump-start")
	case "step-end":
		return steps(1, "jump-end")
	}
	if tf, ok := penner[name]; ok {
		return fromTween(tf)
	}
	return nil
}

// penner maps descriptor names to gween's easing curves.
var penner = map[string]ease.TweenFunc{
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-quart":       ease.InQuart,
	"out-quart":      ease.OutQuart,
	"in-out-quart":   ease.InOutQuart,
	"in-quint":       ease.InQuint,
	"out-quint":      ease.OutQuint,
	"in-out-quint":   ease.InOutQuint,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"in-expo":        ease.InExpo,
	"out-expo":       ease.OutExpo,
	"in-out-expo":    ease.InOutExpo,
	"in-circ":        ease.InCirc,
	"out-circ":       ease.OutCirc,
	"in-out-circ":    ease.InOutCirc,
	"in-back":        ease.InBack,
	"out-back":       ease.OutBack,
	"in-out-back":    ease.InOutBack,
	"in-bounce":      ease.InBounce,
	"out-bounce":     ease.OutBounce,
	"in-out-bounce":  ease.InOutBounce,
	"in-elastic":     ease.InElastic,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
}

// fromTween adapts a gween curve (t, begin, change, duration) to unit progress.
func fromTween(tf ease.TweenFunc) EasingFunc {
	return func(t float64) float64 {
		return float64(tf(float32(t), 0, 1, 1))
	}
}

// --- cubic-bezier() ---

func parseCubicBezier(args [][]*scanner.Token) EasingFunc {
	if len(args) != 4 {
		return nil
	}
	var p [4]float64
	for i, arg := range args {
		v, unit, next, ok := takeNumber(arg, 0)
		if !ok || unit != "" || next != len(arg) {
			return nil
		}
		p[i] = v
	}
	if p[0] < 0 || p[0] > 1 || p[2] < 0 || p[2] > 1 {
		return nil
	}
	return cubicBezier(p[0], p[1], p[2], p[3])
}

// cubicBezier returns the easing for the curve from (0,0) to (1,1) with
// control points (x1,y1) and (x2,y2). Input is clamped to [0, 1].
func cubicBezier(x1, y1, x2, y2 float64) EasingFunc {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	const eps = 1e-7
	solve := func(x float64) float64 {
		t := x
		for i := 0; i < 8; i++ {
			dx := sampleX(t) - x
			if math.Abs(dx) < eps {
				return t
			}
			d := slopeX(t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= dx / d
		}
		lo, hi := 0.0, 1.0
		t = x
		for lo < hi {
			v := sampleX(t)
			if math.Abs(v-x) < eps {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
			if hi-lo < eps {
				break
			}
		}
		return t
	}

	return func(x float64) float64 {
		x = clamp01(x)
		if x == 0 || x == 1 {
			return x
		}
		return sampleY(solve(x))
	}
}

// --- steps() ---

func parseSteps(args [][]*scanner.Token) EasingFunc {
	if len(args) < 1 || len(args) > 2 {
		return nil
	}
	n, unit, next, ok := takeNumber(args[0], 0)
	if !ok || unit != "" || next != len(args[0]) || n != math.Trunc(n) {
		return nil
	}
	pos := "jump-end"
	if len(args) == 2 {
		if len(args[1]) != 1 || args[1][0].Type != scanner.TokenIdent {
			return nil
		}
		pos = strings.ToLower(args[1][0].Value)
	}
	if n < 1 || (pos == "jump-none" && n < 2) {
		return nil
	}
	return steps(int(n), pos)
}

func steps(n int, position string) EasingFunc {
	jumps := float64(n)
	offset := 0.0
	switch position {
	case "jump-start", "start":
		offset = 1
	case "jump-end", "end":
	case "jump-none":
		jumps = float64(n - 1)
	case "jump-both":
		offset = 1
		jumps = float64(n + 1)
	default:
		return nil
	}
	return func(t float64) float64 {
		t = clamp01(t)
		step := math.Floor(t*float64(n)) + offset
		if step > jumps {
			step = jumps
		}
		return step / jumps
	}
}

// --- linear() ---

type linearStop struct {
	value float64
	at    float64
	set   bool
}

// parseLinearStops implements linear(<number> [<percentage>{1,2}]#).
func parseLinearStops(args [][]*scanner.Token) EasingFunc {
	if len(args) < 2 {
		return nil
	}
	var stops []linearStop
	for _, arg := range args {
		v, unit, i, ok := takeNumber(arg, 0)
		if !ok || unit != "" {
			return nil
		}
		var pcts []float64
		for i < len(arg) {
			p, unit, next, ok := takeNumber(arg, i)
			if !ok || unit != "%" {
				return nil
			}
			pcts = append(pcts, p/100)
			i = next
		}
		switch len(pcts) {
		case 0:
			stops = append(stops, linearStop{value: v})
		case 1:
			stops = append(stops, linearStop{value: v, at: pcts[0], set: true})
		case 2:
			stops = append(stops,
				linearStop{value: v, at: pcts[0], set: true},
				linearStop{value: v, at: pcts[1], set: true})
		default:
			return nil
		}
	}
	if !stops[0].set {
		stops[0].at, stops[0].set = 0, true
	}
	if last := len(stops) - 1; !stops[last].set {
		stops[last].at, stops[last].set = 1, true
	}
	// Positions never decrease.
	for i := 1; i < len(stops); i++ {
		if stops[i].set && stops[i].at < stops[i-1].at && stops[i-1].set {
			stops[i].at = stops[i-1].at
		}
	}
	// Spread unset positions evenly between their set neighbours.
	for i := 1; i < len(stops); i++ {
		if stops[i].set {
			continue
		}
		j := i
		for !stops[j].set {
			j++
		}
		from, to := stops[i-1].at, stops[j].at
		gap := float64(j - i + 1)
		for k := i; k < j; k++ {
			stops[k].at = from + (to-from)*float64(k-i+1)/gap
			stops[k].set = true
		}
	}
	return func(t float64) float64 {
		if t <= stops[0].at {
			return stops[0].value
		}
		for i := 1; i < len(stops); i++ {
			a, b := stops[i-1], stops[i]
			if t <= b.at {
				if b.at == a.at {
					return b.value
				}
				return a.value + (b.value-a.value)*(t-a.at)/(b.at-a.at)
			}
		}
		return stops[len(stops)-1].value
	}
}

// --- tokens ---

// tokenize scans text into CSS tokens, dropping whitespace and comments.
func tokenize(text string) ([]*scanner.Token, error) {
	s := scanner.New(strings.TrimSpace(text))
	var toks []*scanner.Token
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			return toks, nil
		case scanner.TokenError:
			return nil, fmt.Errorf("unexpected %q at column %d", tok.Value, tok.Column)
		case scanner.TokenS, scanner.TokenComment:
			continue
		}
		toks = append(toks, tok)
	}
}

// functionArgs splits the tokens after a function token into comma-separated
// arguments. The closing parenthesis must be the last token.
func functionArgs(toks []*scanner.Token) ([][]*scanner.Token, bool) {
	if len(toks) < 2 || !isChar(toks[len(toks)-1], ")") {
		return nil, false
	}
	var args [][]*scanner.Token
	var cur []*scanner.Token
	for _, tok := range toks[1 : len(toks)-1] {
		if isChar(tok, ",") {
			if len(cur) == 0 {
				return nil, false
			}
			args = append(args, cur)
			cur = nil
			continue
		}
		cur = append(cur, tok)
	}
	if len(cur) == 0 {
		return nil, false
	}
	return append(args, cur), true
}

func isChar(tok *scanner.Token, c string) bool {
	return tok.Type == scanner.TokenChar && tok.Value == c
}

// takeNumber reads an optionally signed number, percentage or dimension at
// toks[i]. The unit is "" for plain numbers and "%" for percentages.
func takeNumber(toks []*scanner.Token, i int) (v float64, unit string, next int, ok bool) {
	sign := 1.0
	if i < len(toks) && (isChar(toks[i], "-") || isChar(toks[i], "+")) {
		if toks[i].Value == "-" {
			sign = -1
		}
		i++
	}
	if i >= len(toks) {
		return 0, "", i, false
	}
	tok := toks[i]
	var num string
	switch tok.Type {
	case scanner.TokenNumber:
		num = tok.Value
	case scanner.TokenPercentage:
		num, unit = strings.TrimSuffix(tok.Value, "%"), "%"
	case scanner.TokenDimension:
		cut := strings.IndexFunc(tok.Value, func(r rune) bool {
			return (r < '0' || r > '9') && r != '.' && r != '-' && r != '+'
		})
		if cut <= 0 {
			return 0, "", i, false
		}
		num, unit = tok.Value[:cut], tok.Value[cut:]
	default:
		return 0, "", i, false
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, "", i, false
	}
	return sign * f, unit, i + 1, true
}
