package ecs

import (
	"strings"

	"github.com/phanxgames/cursorfx"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// VariableEvent is one variable assignment made by the cursor engine.
type VariableEvent struct {
	// ElementID and Element identify the target at the time of the write.
	ElementID uint32
	Element   string
	Name      string
	Value     string
	// Window is set for the root element's --cursor-window-pos-* variables.
	Window bool
}

// VariableEventType is the Donburi event type for cursorfx variable writes.
var VariableEventType = events.NewEventType[VariableEvent]()

const windowPrefix = "--cursor-window-pos-"

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a VariableSink backed by a Donburi world. Writes are
// published to VariableEventType and can be consumed with events.Subscribe
// and ProcessEvents.
func NewDonburiSink(world donburi.World) cursorfx.VariableSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) SetVariable(target *cursorfx.Element, name, value string) {
	ev := VariableEvent{
		Name:   name,
		Value:  value,
		Window: strings.HasPrefix(name, windowPrefix),
	}
	if target != nil {
		ev.ElementID = target.ID
		ev.Element = target.Name
	}
	VariableEventType.Publish(s.world, ev)
}
