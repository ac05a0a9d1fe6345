package ecs

import (
	"testing"

	"github.com/phanxgames/cursorfx"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_SetVariable(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []VariableEvent
	VariableEventType.Subscribe(world, func(w donburi.World, e VariableEvent) {
		received = append(received, e)
	})

	card := cursorfx.NewElement("card")
	sink.SetVariable(card, cursorfx.VarX, "12px")
	sink.SetVariable(nil, cursorfx.VarWindowFade, "0.5")

	// Events are queued until processed.
	VariableEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.ElementID != card.ID || e0.Element != "card" || e0.Name != cursorfx.VarX || e0.Value != "12px" {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Window {
		t.Error("element variable flagged as window")
	}

	e1 := received[1]
	if !e1.Window || e1.Value != "0.5" || e1.ElementID != 0 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_FromScene(t *testing.T) {
	world := donburi.NewWorld()
	s := cursorfx.NewScene(200, 200)
	s.SetVariableSink(NewDonburiSink(world))

	fades := map[string]string{}
	VariableEventType.Subscribe(world, func(w donburi.World, e VariableEvent) {
		if e.Name == cursorfx.VarFade {
			fades[e.Element] = e.Value
		}
	})

	card := cursorfx.NewElement("card", cursorfx.DefaultMarker)
	card.SetBounds(0, 0, 100, 100)
	s.Body().AddChild(card)
	s.InjectMove(50, 50)
	s.Advance(16)
	s.Advance(16)
	events.ProcessAllEvents(world)

	if got := fades["card"]; got != "1" {
		t.Errorf("last published fade = %q, want 1", got)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	VariableEventType.Subscribe(world, func(w donburi.World, e VariableEvent) {
		count1++
	})
	VariableEventType.Subscribe(world, func(w donburi.World, e VariableEvent) {
		count2++
	})

	sink.SetVariable(cursorfx.NewElement("x"), cursorfx.VarFade, "0")
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
