package cursorfx

import "testing"

func TestSetStyleMerges(t *testing.T) {
	e := NewElement("e")
	if err := e.SetStyle("--cursor-fade-in-time: 200ms; color: red"); err != nil {
		t.Fatal(err)
	}
	if err := e.SetStyle("color: blue"); err != nil {
		t.Fatal(err)
	}
	if got := e.StyleProperty(PropFadeInTime); got != "200ms" {
		t.Errorf("%s = %q, want 200ms", PropFadeInTime, got)
	}
	if got := e.StyleProperty("color"); got != "blue" {
		t.Errorf("color = %q, want blue", got)
	}
	if err := e.SetStyle("   "); err != nil {
		t.Errorf("blank style: %v", err)
	}
}

func TestSetStylePropertyRemoves(t *testing.T) {
	e := NewElement("e")
	e.SetStyleProperty(PropFadeFunction, "ease-in")
	e.SetStyleProperty(PropFadeFunction, "")
	if got := e.StyleProperty(PropFadeFunction); got != "" {
		t.Errorf("%s = %q after removal", PropFadeFunction, got)
	}
}

func TestComputedStyleInheritance(t *testing.T) {
	s := NewScene(100, 100)
	outer := NewElement("outer")
	outer.SetStyleProperty(PropFadeOutTime, "300ms")
	outer.SetStyleProperty("color", "red")
	inner := NewElement("inner")
	outer.AddChild(inner)
	s.Body().AddChild(outer)

	if got := s.ComputedStyle(inner, PropFadeOutTime); got != "300ms" {
		t.Errorf("custom property = %q, want inherited 300ms", got)
	}
	if got := s.ComputedStyle(inner, "color"); got != "" {
		t.Errorf("color = %q, want no inheritance", got)
	}
}

func TestComputedStyleSheetPrecedence(t *testing.T) {
	s := NewScene(100, 100)
	sheet := `
		:root { --cursor-fade-in-time: 1s }
		* { --cursor-fade-function: ease }
		.card { --cursor-fade-in-time: 300ms }
		.card.hot { --cursor-fade-in-time: 100ms }
		#special { --cursor-fade-in-time: 50ms !important }
		#special { --cursor-fade-in-time: 75ms }
		@media screen { .card { --cursor-fade-in-time: 9s } }
	`
	if err := s.AddStyleSheet(sheet); err != nil {
		t.Fatal(err)
	}

	plain := NewElement("plain")
	card := NewElement("card", "card")
	hot := NewElement("hot", "card", "hot")
	special := NewElement("special", "card")
	inline := NewElement("inline", "card")
	inline.SetStyleProperty(PropFadeInTime, "5ms")
	for _, e := range []*Element{plain, card, hot, special, inline} {
		s.Body().AddChild(e)
	}

	tests := []struct {
		e    *Element
		prop string
		want string
	}{
		{plain, PropFadeInTime, "1s"},
		{card, PropFadeInTime, "300ms"},
		{hot, PropFadeInTime, "100ms"},
		{special, PropFadeInTime, "50ms"},
		{inline, PropFadeInTime, "5ms"},
		{plain, PropFadeFunction, "ease"},
		{s.Root(), PropFadeInTime, "1s"},
	}
	for _, tt := range tests {
		t.Run(tt.e.Name+" "+tt.prop, func(t *testing.T) {
			if got := s.ComputedStyle(tt.e, tt.prop); got != tt.want {
				t.Errorf("ComputedStyle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComputedStyleUnset(t *testing.T) {
	s := NewScene(100, 100)
	e := NewElement("e")
	s.Body().AddChild(e)
	if got := s.ComputedStyle(e, PropFadeInTime); got != "" {
		t.Errorf("ComputedStyle = %q, want empty", got)
	}
}

func TestStyleChangeRecorded(t *testing.T) {
	s := NewScene(100, 100)
	rec := &recordingObserver{}
	o := s.NewMutationObserver(rec.callback)
	o.Observe(s.Body(), ObserveOptions{Subtree: true, AttributeFilter: []string{"style"}})
	e := NewElement("e")
	s.Body().AddChild(e)
	e.SetStyleProperty("color", "red")
	s.FlushMutations()
	all := rec.all()
	if len(all) != 1 || all[0].AttributeName != "style" || all[0].OldValue != "" {
		t.Errorf("records = %+v", all)
	}
}
