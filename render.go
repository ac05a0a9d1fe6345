package cursorfx

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DefaultGlowRadius is the glow radius used when Scene.GlowRadius is zero.
const DefaultGlowRadius = 48

const glowTextureSize = 128

var (
	whitePixel  *ebiten.Image
	glowTexture *ebiten.Image
)

// ensureTextures creates the shared images on first draw so that headless
// scenes never touch the graphics driver.
func ensureTextures() {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	if glowTexture == nil {
		glowTexture = ebiten.NewImageFromImage(radialGradient(glowTextureSize))
	}
}

// radialGradient builds a white disc whose alpha falls off quadratically from
// the center to the edge. Pixels are premultiplied.
func radialGradient(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c) / c
			a := 1 - clamp01(d)
			v := uint8(a*a*255 + 0.5)
			img.SetRGBA(x, y, color.RGBA{v, v, v, v})
		}
	}
	return img
}

// Draw paints every visible element box of the body in tree order, then the
// cursor glows. The glows are driven only by the variables the engine wrote:
// each element's glow sits at its --cursor-pos-*-px offset, clipped to its
// box, with its fade fraction as opacity; the window glow uses the root's
// variables.
func (s *Scene) Draw(screen *ebiten.Image) {
	ensureTextures()
	s.drawn = true

	s.body.Walk(func(e *Element) bool {
		if !e.Visible {
			return false
		}
		if e != s.body {
			drawBox(screen, e)
		}
		return true
	})

	s.body.Walk(func(e *Element) bool {
		if !e.Visible {
			return false
		}
		s.drawElementGlow(screen, e)
		return true
	})
	s.drawWindowGlow(screen)

	if s.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f TPS: %.1f\nobserved: %d\nfading: %d\nt: %.0fms",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			len(s.engine.observed), len(s.engine.timelines), s.clock))
	}
	s.flushScreenshots(screen)
}

func drawBox(dst *ebiten.Image, e *Element) {
	if e.Color.A <= 0 || e.Width == 0 || e.Height == 0 {
		return
	}
	m := e.worldTransform()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(e.Width, e.Height)
	op.GeoM.Concat(geoM(m))
	a := clamp01(e.Color.A)
	op.ColorScale.Scale(float32(e.Color.R*a), float32(e.Color.G*a), float32(e.Color.B*a), float32(a))
	dst.DrawImage(whitePixel, &op)
}

func (s *Scene) drawElementGlow(screen *ebiten.Image, e *Element) {
	fade, ok := varNumber(e, VarFade)
	if !ok || fade <= 0 {
		return
	}
	x, okx := varNumber(e, VarX)
	y, oky := varNumber(e, VarY)
	if !okx || !oky {
		return
	}
	b := e.Bounds()
	clip := image.Rect(int(math.Floor(b.X)), int(math.Floor(b.Y)),
		int(math.Ceil(b.X+b.Width)), int(math.Ceil(b.Y+b.Height)))
	clip = clip.Intersect(screen.Bounds())
	if clip.Empty() {
		return
	}
	dst := screen.SubImage(clip).(*ebiten.Image)
	s.drawGlow(dst, b.X+x, b.Y+y, fade, s.glowColor(e))
}

func (s *Scene) drawWindowGlow(screen *ebiten.Image) {
	fade, ok := varNumber(s.root, VarWindowFade)
	if !ok || fade <= 0 {
		return
	}
	x, okx := varNumber(s.root, VarWindowX)
	y, oky := varNumber(s.root, VarWindowY)
	if !okx || !oky {
		return
	}
	s.drawGlow(screen, x, y, fade, s.glowColor(s.root))
}

func (s *Scene) drawGlow(dst *ebiten.Image, cx, cy, alpha float64, c Color) {
	r := s.GlowRadius
	if r <= 0 {
		r = DefaultGlowRadius
	}
	scale := 2 * r / glowTextureSize
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-r, cy-r)
	a := clamp01(alpha) * clamp01(c.A)
	op.ColorScale.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
	op.Blend = ebiten.BlendLighter
	dst.DrawImage(glowTexture, &op)
}

// glowColor returns the element's computed --glow-color as a color, or white.
func (s *Scene) glowColor(e *Element) Color {
	if c, ok := parseHexColor(s.ComputedStyle(e, "--glow-color")); ok {
		return c
	}
	return ColorWhite
}

// parseHexColor parses #rgb and #rrggbb.
func parseHexColor(v string) (Color, bool) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return Color{}, false
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{
		R: float64(n>>16&0xff) / 255,
		G: float64(n>>8&0xff) / 255,
		B: float64(n&0xff) / 255,
		A: 1,
	}, true
}

// varNumber reads a variable written for e as a number, dropping a px or %
// suffix.
func varNumber(e *Element, name string) (float64, bool) {
	raw, ok := e.vars[name]
	if !ok {
		return 0, false
	}
	raw = strings.TrimSuffix(strings.TrimSuffix(raw, "px"), "%")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
