package cursorfx

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const fadeScript = `
viewport: {width: 400, height: 300}
frame: 10
track: [glow]
stylesheet: |
  .glow { --cursor-fade-in-time: 100ms; --cursor-fade-out-time: 100ms }
elements:
  - name: card
    box: [100, 100, 100, 100]
    classes: [glow]
steps:
  - action: move
    x: 150
    y: 150
  - action: wait
    frames: 4
  - action: snapshot
    label: hovered
  - action: wait
    frames: 1
  - action: leave
  - action: wait
    frames: 20
  - action: snapshot
    label: left
`

// runScript sets up data on a fresh scene and advances until the script is
// done.
func runScript(t *testing.T, data string) (*Scene, *ScriptRunner) {
	t.Helper()
	runner, err := LoadScript([]byte(data))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	w, h := runner.Viewport()
	s := NewScene(w, h)
	if err := runner.Setup(s); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	for i := 0; !runner.Done(); i++ {
		if i > 1000 {
			t.Fatal("script did not finish")
		}
		s.Advance(runner.FrameTime())
	}
	return s, runner
}

func TestScriptFadeInAndOut(t *testing.T) {
	s, runner := runScript(t, fadeScript)

	snaps := s.Snapshots()
	if len(snaps) != 2 {
		t.Fatalf("snapshots = %d, want 2", len(snaps))
	}
	hovered, left := snaps[0], snaps[1]

	if hovered.Label != "hovered" || hovered.Time != 60 {
		t.Errorf("first snapshot = %q at %v, want hovered at 60", hovered.Label, hovered.Time)
	}
	if got := hovered.Elements["card"][VarFade]; got != "0.6" {
		t.Errorf("hovered fade = %q, want 0.6", got)
	}
	if got := hovered.Elements["card"][VarX]; got != "50px" {
		t.Errorf("hovered x = %q, want 50px", got)
	}
	if hovered.Pointer == nil || *hovered.Pointer != (Vec2{150, 150}) {
		t.Errorf("hovered pointer = %v", hovered.Pointer)
	}

	if got := left.Elements["card"][VarFade]; got != "0" {
		t.Errorf("left fade = %q, want 0", got)
	}
	if left.Pointer != nil {
		t.Errorf("pointer after leave = %v, want nil", left.Pointer)
	}
	if runner.Element("card") == nil || !s.Engine().IsObserved(runner.Element("card")) {
		t.Error("card not observed")
	}
}

func TestScriptTreeActions(t *testing.T) {
	script := `
viewport: {width: 200, height: 200}
elements:
  - name: box
    box: [0, 0, 100, 100]
  - name: inner
    parent: box
    box: [10, 10, 20, 20]
    classes: [follow-cursor-vars]
  - name: spare
    box: [100, 100, 50, 50]
steps:
  - action: add-class
    target: box
    class: [follow-cursor-vars]
  - action: wait
  - action: snapshot
    label: both
  - action: wait
  - action: append
    target: inner
    parent: spare
  - action: remove-class
    target: box
    class: [follow-cursor-vars]
  - action: remove
    target: spare
  - action: wait
`
	s, runner := runScript(t, script)
	box, inner := runner.Element("box"), runner.Element("inner")

	snaps := s.Snapshots()
	if len(snaps) != 1 {
		t.Fatalf("snapshots = %d, want 1", len(snaps))
	}
	for _, name := range []string{"box", "inner"} {
		if _, ok := snaps[0].Elements[name]; !ok {
			t.Errorf("snapshot missing %s", name)
		}
	}
	if s.Engine().IsObserved(box) || s.Engine().IsObserved(inner) {
		t.Error("elements still observed after remove-class and remove")
	}
	if inner.Parent != runner.Element("spare") {
		t.Error("append did not move inner")
	}
}

func TestScriptBadStepsLogged(t *testing.T) {
	script := `
viewport: {width: 100, height: 100}
elements:
  - name: a
    box: [0, 0, 10, 10]
  - name: b
    parent: a
steps:
  - action: dance
  - action: add-class
    target: ghost
    class: [x]
  - action: append
    target: a
    parent: b
  - action: wait
`
	runner, err := LoadScript([]byte(script))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	s := NewScene(100, 100)
	s.SetLogger(zerolog.New(&buf))
	if err := runner.Setup(s); err != nil {
		t.Fatal(err)
	}
	s.Advance(16)

	out := buf.String()
	for _, want := range []string{"unknown script action", "unknown element", "would create a cycle"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q: %s", want, out)
		}
	}
	if runner.Element("b").Parent != runner.Element("a") {
		t.Error("cyclic append changed the tree")
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid yaml", "steps: [", "parse script"},
		{"no steps", "viewport: {width: 1, height: 1}", "no steps"},
		{"unnamed element", "elements: [{box: [0,0,1,1]}]\nsteps: [{action: wait}]", "has no name"},
		{"duplicate", "elements: [{name: a}, {name: a}]\nsteps: [{action: wait}]", "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadScript error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestSetupUnknownParent(t *testing.T) {
	runner, err := LoadScript([]byte("elements: [{name: a, parent: nowhere}]\nsteps: [{action: wait}]"))
	if err != nil {
		t.Fatal(err)
	}
	if err := runner.Setup(NewScene(10, 10)); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("Setup error = %v, want ErrUnknownElement", err)
	}
}

func TestScriptFrameTimeDefault(t *testing.T) {
	runner, err := LoadScript([]byte("steps: [{action: wait}]"))
	if err != nil {
		t.Fatal(err)
	}
	if runner.FrameTime() != 16 {
		t.Errorf("FrameTime() = %v, want 16", runner.FrameTime())
	}
}
