package curtain

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/scottkirkwood/aurora"
)

// Weights are the shares of each palette hue in a mixed color.
// Each is in [0, 1] and together they sum to 1.
type Weights struct {
	Green, Blue, Lilac float64
}

// ModeBlend is ~0 in two-color (green+blue) bands and ~1 in three-color
// bands, moving smoothly between them. Its period is two bands.
func ModeBlend(bandPos float64) float64 {
	return aurora.Smooth01(0.5 + 0.5*math.Sin(math.Pi*bandPos))
}

// Weights mixes the palette at band position bandPos (ribbon index divided by
// the band size), normalised height y01 and cursor touch.
func (c ColorParams) Weights(bandPos, y01, touch float64) Weights {
	lilacRamp := aurora.Tri01(aurora.Fract(bandPos))
	wL := aurora.Clamp01(c.MaxLilac*ModeBlend(bandPos)*lilacRamp + c.LilacBoost*aurora.Clamp01(touch))

	// Green and blue split what lilac leaves, then the top leans blue.
	wGB := 1 - wL
	wB := 0.5 * wGB
	topBias := c.TopBias * (1 - aurora.Clamp01(y01))
	wB = math.Min(wGB, wB+topBias)
	return Weights{Green: wGB - wB, Blue: wB, Lilac: wL}
}

// Mix returns the weighted sum of the palette.
func (c ColorParams) Mix(w Weights) colorful.Color {
	g, b, l := c.Palette.Green, c.Palette.Blue, c.Palette.Lilac
	return colorful.Color{
		R: g.R*w.Green + b.R*w.Blue + l.R*w.Lilac,
		G: g.G*w.Green + b.G*w.Blue + l.G*w.Lilac,
		B: g.B*w.Green + b.B*w.Blue + l.B*w.Lilac,
	}.Clamped()
}

// At returns the stroke alpha (0..255 scale) at normalised height y01:
// brightest at the top, fading along (1-y01)^Exponent to Base*Floor at the
// bottom and never reaching zero. Touch brightens it up to Max.
func (a AlphaParams) At(y01, touch float64) float64 {
	fade := math.Pow(aurora.Clamp01(1-y01), a.Exponent)
	alpha := a.Base * (a.Floor + (1-a.Floor)*fade)
	alpha *= 1 + a.Boost*aurora.Clamp01(touch)
	return math.Min(alpha, a.Max)
}
