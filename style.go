package cursorfx

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Custom properties read by the engine.
const (
	PropFadeInTime   = "--cursor-fade-in-time"
	PropFadeOutTime  = "--cursor-fade-out-time"
	PropFadeFunction = "--cursor-fade-function"
)

// SetStyle parses a CSS declaration block ("--cursor-fade-in-time: 200ms;
// color: red") and merges it into the element's inline style.
func (e *Element) SetStyle(declarations string) error {
	text := strings.TrimSpace(declarations)
	if text == "" {
		return nil
	}
	if !strings.HasSuffix(text, ";") {
		text += ";"
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return fmt.Errorf("parse style of %q: %w", e.Name, err)
	}
	old := e.styleText()
	for _, d := range decls {
		e.putStyle(d.Property, d.Value)
	}
	e.notifyAttribute("style", old)
	return nil
}

// SetStyleProperty sets one inline style property. An empty value removes it.
func (e *Element) SetStyleProperty(name, value string) {
	old := e.styleText()
	e.putStyle(name, value)
	e.notifyAttribute("style", old)
}

// StyleProperty returns the element's own inline value for name.
func (e *Element) StyleProperty(name string) string {
	return e.style[name]
}

func (e *Element) putStyle(name, value string) {
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if value == "" {
		delete(e.style, name)
		return
	}
	if e.style == nil {
		e.style = make(map[string]string)
	}
	e.style[name] = value
}

// styleText renders the inline style for mutation records.
func (e *Element) styleText() string {
	if len(e.style) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.style))
	for k := range e.style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.style[k])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}

// --- Style sheets ---

type styleRule struct {
	selectors    []string
	declarations []*css.Declaration
}

// AddStyleSheet parses a style sheet and appends its rules to the scene.
// Supported selectors are *, :root, html, element names, #name and compound
// class selectors such as .a.b; at-rules are ignored.
func (s *Scene) AddStyleSheet(text string) error {
	sheet, err := parser.Parse(text)
	if err != nil {
		return fmt.Errorf("parse style sheet: %w", err)
	}
	for _, r := range sheet.Rules {
		if r.Kind != css.QualifiedRule {
			continue
		}
		sels := r.Selectors
		if len(sels) == 0 {
			sels = strings.Split(r.Prelude, ",")
		}
		s.rules = append(s.rules, styleRule{selectors: sels, declarations: r.Declarations})
	}
	return nil
}

// ComputedStyle resolves property for e: the inline declaration, then the
// last matching style-sheet rule (!important first). Custom properties
// (names starting with "--") inherit from the parent when unset.
func (s *Scene) ComputedStyle(e *Element, property string) string {
	for el := e; el != nil; el = el.Parent {
		if v, ok := el.style[property]; ok {
			return v
		}
		if v, ok := s.sheetValue(el, property); ok {
			return v
		}
		if !strings.HasPrefix(property, "--") {
			break
		}
	}
	return ""
}

func (s *Scene) sheetValue(e *Element, property string) (string, bool) {
	var value string
	found, important := false, false
	for _, r := range s.rules {
		if !s.matchesAny(r.selectors, e) {
			continue
		}
		for _, d := range r.declarations {
			if d.Property != property {
				continue
			}
			if important && !d.Important {
				continue
			}
			value, found, important = d.Value, true, d.Important
		}
	}
	return value, found
}

func (s *Scene) matchesAny(selectors []string, e *Element) bool {
	for _, sel := range selectors {
		if s.matchSelector(strings.TrimSpace(sel), e) {
			return true
		}
	}
	return false
}

func (s *Scene) matchSelector(sel string, e *Element) bool {
	switch {
	case sel == "":
		return false
	case sel == "*":
		return true
	case sel == ":root":
		return e == s.root
	case strings.HasPrefix(sel, "#"):
		return e.Name == sel[1:]
	case strings.HasPrefix(sel, "."):
		for _, c := range strings.Split(sel[1:], ".") {
			if c == "" || !e.HasClass(c) {
				return false
			}
		}
		return true
	}
	return e.Name == sel
}
