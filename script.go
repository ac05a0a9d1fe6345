package cursorfx

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnknownElement is returned when a script refers to an element name that
// its layout does not define.
var ErrUnknownElement = errors.New("unknown element")

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action string   `yaml:"action"`
	Label  string   `yaml:"label,omitempty"`
	X      float64  `yaml:"x,omitempty"`
	Y      float64  `yaml:"y,omitempty"`
	Frames int      `yaml:"frames,omitempty"`
	Target string   `yaml:"target,omitempty"`
	Parent string   `yaml:"parent,omitempty"`
	Class  []string `yaml:"class,omitempty"`
}

// scriptElement declares one element of a script's layout.
type scriptElement struct {
	Name    string     `yaml:"name"`
	Parent  string     `yaml:"parent,omitempty"`
	Box     [4]float64 `yaml:"box"`
	Classes []string   `yaml:"classes,omitempty"`
	Style   string     `yaml:"style,omitempty"`
	Hidden  bool       `yaml:"hidden,omitempty"`
}

// scriptFile is the top-level YAML structure of a script.
type scriptFile struct {
	Viewport   struct{ Width, Height float64 } `yaml:"viewport"`
	Frame      float64                         `yaml:"frame,omitempty"`
	Track      []string                        `yaml:"track,omitempty"`
	StyleSheet string                          `yaml:"stylesheet,omitempty"`
	Elements   []scriptElement                 `yaml:"elements,omitempty"`
	Steps      []scriptStep                    `yaml:"steps"`
}

// ScriptRunner sequences a layout, injected pointer moves, tracked-class
// changes and snapshots across frames. Attach to a Scene via SetScriptRunner.
type ScriptRunner struct {
	file      scriptFile
	elements  map[string]*Element
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML script and returns a ScriptRunner ready to be set
// up on a Scene.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var file scriptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	names := make(map[string]bool, len(file.Elements))
	for i, el := range file.Elements {
		if el.Name == "" {
			return nil, fmt.Errorf("parse script: element %d has no name", i)
		}
		if names[el.Name] {
			return nil, fmt.Errorf("parse script: duplicate element %q", el.Name)
		}
		names[el.Name] = true
	}
	return &ScriptRunner{file: file, elements: make(map[string]*Element)}, nil
}

// Viewport returns the window size the script asks for.
func (r *ScriptRunner) Viewport() (width, height float64) {
	return r.file.Viewport.Width, r.file.Viewport.Height
}

// FrameTime returns the frame duration in milliseconds, 16 when unset.
func (r *ScriptRunner) FrameTime() float64 {
	if r.file.Frame > 0 {
		return r.file.Frame
	}
	return 16
}

// Element returns a layout element by name, or nil before Setup.
func (r *ScriptRunner) Element(name string) *Element {
	return r.elements[name]
}

// Setup builds the script's layout into s, adds its style sheet and tracked
// classes, and attaches the runner. Elements are created in declaration
// order; a parent must be declared before its children or be one of html,
// head and body (the default).
func (r *ScriptRunner) Setup(s *Scene) error {
	r.elements["html"] = s.root
	r.elements["head"] = s.head
	r.elements["body"] = s.body

	if r.file.StyleSheet != "" {
		if err := s.AddStyleSheet(r.file.StyleSheet); err != nil {
			return fmt.Errorf("setup script: %w", err)
		}
	}
	for _, decl := range r.file.Elements {
		e := NewElement(decl.Name, decl.Classes...)
		e.SetBounds(decl.Box[0], decl.Box[1], decl.Box[2], decl.Box[3])
		e.Visible = !decl.Hidden
		if decl.Style != "" {
			if err := e.SetStyle(decl.Style); err != nil {
				return fmt.Errorf("setup script: element %q: %w", decl.Name, err)
			}
		}
		parent, err := r.lookup(decl.Parent, "body")
		if err != nil {
			return fmt.Errorf("setup script: element %q: %w", decl.Name, err)
		}
		parent.AddChild(e)
		r.elements[decl.Name] = e
	}
	if len(r.file.Track) > 0 {
		s.AddTrackedClass(r.file.Track...)
	}
	s.SetScriptRunner(r)
	return nil
}

func (r *ScriptRunner) lookup(name, fallback string) (*Element, error) {
	if name == "" {
		name = fallback
	}
	e, ok := r.elements[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownElement, name)
	}
	return e, nil
}

// SetScriptRunner attaches a ScriptRunner to the scene. The runner's step
// method is called at the start of every frame, before input.
func (s *Scene) SetScriptRunner(runner *ScriptRunner) {
	s.scriptRunner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Scene.step.
func (r *ScriptRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}

	// Run steps until one consumes a frame.
	for r.cursor < len(r.steps()) {
		st := r.steps()[r.cursor]
		r.cursor++
		if r.apply(s, st) {
			break
		}
	}

	if r.cursor >= len(r.steps()) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *ScriptRunner) steps() []scriptStep {
	return r.file.Steps
}

// apply executes one step and reports whether it consumes a frame.
func (r *ScriptRunner) apply(s *Scene, st scriptStep) bool {
	switch st.Action {
	case "move":
		s.InjectMove(st.X, st.Y)
		return true
	case "leave":
		s.InjectLeave()
		return true
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
		return true
	case "snapshot":
		s.Snapshot(st.Label)
	case "track":
		s.AddTrackedClass(st.Class...)
	case "untrack":
		s.RemoveTrackedClass(st.Class...)
	case "add-class", "remove-class", "remove", "append":
		if err := r.applyTree(st); err != nil {
			s.logger.Warn().Err(err).Str("action", st.Action).Msg("script step skipped")
		}
	default:
		s.logger.Warn().Str("action", st.Action).Msg("unknown script action")
	}
	return false
}

// applyTree runs the steps that change the document.
func (r *ScriptRunner) applyTree(st scriptStep) error {
	target, err := r.lookup(st.Target, "")
	if err != nil {
		return err
	}
	switch st.Action {
	case "add-class":
		target.AddClass(st.Class...)
	case "remove-class":
		target.RemoveClass(st.Class...)
	case "remove":
		target.RemoveFromParent()
	case "append":
		parent, err := r.lookup(st.Parent, "body")
		if err != nil {
			return err
		}
		if isAncestor(target, parent) {
			return fmt.Errorf("append %q to %q: would create a cycle", st.Target, parent.Name)
		}
		parent.AddChild(target)
	}
	return nil
}
