package cursorfx

import (
	"math"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#ffffff", Color{1, 1, 1, 1}, true},
		{"#f00", Color{1, 0, 0, 1}, true},
		{" 00ff00 ", Color{0, 1, 0, 1}, true},
		{"#0000ff", Color{0, 0, 1, 1}, true},
		{"#12345", Color{}, false},
		{"#gggggg", Color{}, false},
		{"", Color{}, false},
		{"red", Color{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseHexColor(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseHexColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestGlowColor(t *testing.T) {
	s := NewScene(10, 10)
	e := NewElement("e", "hot")
	s.Body().AddChild(e)
	if got := s.glowColor(e); got != ColorWhite {
		t.Errorf("default glow = %v, want white", got)
	}
	if err := s.AddStyleSheet(".hot { --glow-color: #f00 }"); err != nil {
		t.Fatal(err)
	}
	if got := s.glowColor(e); got != (Color{1, 0, 0, 1}) {
		t.Errorf("sheet glow = %v, want red", got)
	}
	e.SetStyleProperty("--glow-color", "#00f")
	if got := s.glowColor(e); got != (Color{0, 0, 1, 1}) {
		t.Errorf("inline glow = %v, want blue", got)
	}
}

func TestVarNumber(t *testing.T) {
	e := NewElement("e")
	e.setVar(VarX, "-12.5px")
	e.setVar(VarXPercentage, "40%")
	e.setVar(VarFade, "0.3")
	e.setVar("--junk", "abc")

	tests := []struct {
		name string
		want float64
		ok   bool
	}{
		{VarX, -12.5, true},
		{VarXPercentage, 40, true},
		{VarFade, 0.3, true},
		{"--junk", 0, false},
		{VarY, 0, false},
	}
	for _, tt := range tests {
		got, ok := varNumber(e, tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("varNumber(%s) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRadialGradientFalloff(t *testing.T) {
	img := radialGradient(64)
	center := img.RGBAAt(32, 32).A
	mid := img.RGBAAt(48, 32).A
	corner := img.RGBAAt(0, 0).A
	if !(center > mid && mid > corner) {
		t.Errorf("alpha center/mid/corner = %d/%d/%d, want decreasing", center, mid, corner)
	}
	if corner != 0 {
		t.Errorf("corner alpha = %d, want 0", corner)
	}
	// Premultiplied white: every channel equals alpha.
	if p := img.RGBAAt(40, 30); p.R != p.A || p.G != p.A || p.B != p.A {
		t.Errorf("pixel %v not premultiplied white", p)
	}
}

func TestGeoMMatchesAffine(t *testing.T) {
	e := NewElement("e")
	e.SetBounds(30, 40, 10, 10)
	e.SetRotation(0.7)
	e.SetScale(2, 0.5)
	e.SetPivot(5, 5)
	m := e.worldTransform()
	g := geoM(m)

	for _, p := range []Vec2{{0, 0}, {10, 0}, {3, 7}} {
		wx, wy := transformPoint(m, p.X, p.Y)
		gx, gy := g.Apply(p.X, p.Y)
		if math.Abs(wx-gx) > 1e-9 || math.Abs(wy-gy) > 1e-9 {
			t.Errorf("point %v: GeoM (%v, %v), affine (%v, %v)", p, gx, gy, wx, wy)
		}
	}
}

func TestColorToRGBA(t *testing.T) {
	got := Color{1, 0.5, 0, 0.5}.toRGBA()
	if got.R != 128 || got.G != 64 || got.B != 0 || got.A != 128 {
		t.Errorf("toRGBA = %v, want premultiplied {128 64 0 128}", got)
	}
	if c := (Color{2, -1, 0, 1}).toRGBA(); c.R != 255 || c.G != 0 {
		t.Errorf("out of range components not clamped: %v", c)
	}
}

func TestLayoutFollowsWindowWhenResizable(t *testing.T) {
	s := NewScene(100, 100)
	g := &game{scene: s, cfg: RunConfig{Width: 100, Height: 100, Resizable: true}}
	w, h := g.Layout(320, 240)
	if w != 320 || h != 240 {
		t.Errorf("Layout = %d×%d, want 320×240", w, h)
	}
	if vp := s.Viewport(); vp.Width != 320 || vp.Height != 240 {
		t.Errorf("viewport = %+v", vp)
	}

	fixed := &game{scene: NewScene(100, 100), cfg: RunConfig{Width: 100, Height: 80}}
	if w, h := fixed.Layout(320, 240); w != 100 || h != 80 {
		t.Errorf("fixed Layout = %d×%d, want 100×80", w, h)
	}
}
