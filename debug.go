package cursorfx

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// globalDebug mirrors the most recently set Scene debug flag so that element
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugLogger receives element-level debug warnings. Set by SetDebugMode.
var debugLogger = zerolog.Nop()

// frameStats holds per-frame timing and engine metrics.
// Only populated when Scene.debug is true.
type frameStats struct {
	flushTime time.Duration
	inputTime time.Duration
	tickTime  time.Duration
	writes    int
	observed  int
	active    int
}

// debugLog logs frame stats at debug level.
func (s *Scene) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	s.logger.Debug().
		Dur("flush", stats.flushTime).
		Dur("input", stats.inputTime).
		Dur("tick", stats.tickTime).
		Dur("total", stats.flushTime+stats.inputTime+stats.tickTime).
		Int("writes", stats.writes).
		Int("observed", stats.observed).
		Int("active", stats.active).
		Msg("frame")
}

// debugCheckDisposed panics with a descriptive message when a disposed element
// is used in a tree operation. Only called in debug mode.
func debugCheckDisposed(e *Element, op string) {
	if e.disposed {
		panic(fmt.Sprintf("cursorfx debug: %s on disposed element %q", op, e.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(e *Element) {
	depth := 0
	for p := e; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn().Str("element", e.Name).Int("depth", depth).
			Int("threshold", debugMaxTreeDepth).Msg("tree depth exceeded")
	}
}

// debugCheckChildCount warns if an element has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(e *Element) {
	if len(e.children) > debugMaxChildCount {
		debugLogger.Warn().Str("element", e.Name).Int("children", len(e.children)).
			Int("threshold", debugMaxChildCount).Msg("child count exceeded")
	}
}
