package curtain

import (
	"image/color"
	"math"
	"testing"

	"github.com/scottkirkwood/aurora"
	"github.com/scottkirkwood/aurora/noise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stroke struct {
	kind   string
	col    color.Color
	width  float64
	coords []float64
}

// recorder is a Surface that keeps every draw call.
type recorder struct {
	col     color.Color
	width   float64
	strokes []stroke
}

func (r *recorder) SetStrokeColor(c color.Color) { r.col = c }
func (r *recorder) SetStrokeWidth(w float64)     { r.width = w }

func (r *recorder) Line(x1, y1, x2, y2 float64) {
	r.strokes = append(r.strokes, stroke{"line", r.col, r.width, []float64{x1, y1, x2, y2}})
}

func (r *recorder) Quad(x1, y1, cx, cy, x2, y2 float64) {
	r.strokes = append(r.strokes, stroke{"quad", r.col, r.width, []float64{x1, y1, cx, cy, x2, y2}})
}

func TestLayerMonotonicInDepth(t *testing.T) {
	p := DefaultParams()
	prev := p.Layer(0, 800, 500)
	for z := 0.1; z <= 1.0001; z += 0.1 {
		l := p.Layer(z, 800, 500)
		assert.Greater(t, l.BaseY, prev.BaseY, "baseY at z=%v", z)
		assert.Less(t, l.AmpX, prev.AmpX, "ampX at z=%v", z)
		assert.Less(t, l.AmpY, prev.AmpY, "ampY at z=%v", z)
		assert.Less(t, l.Stroke, prev.Stroke, "stroke at z=%v", z)
		prev = l
	}
}

func TestLayerFrontValues(t *testing.T) {
	l := DefaultParams().Layer(0, 1000, 500)
	assert.InDelta(t, 75, l.BaseY, 1e-9)
	assert.InDelta(t, 250, l.AmpX, 1e-9)
	assert.InDelta(t, 175, l.AmpY, 1e-9)
	assert.InDelta(t, 2.7, l.Stroke, 1e-9)
}

func TestConstantNoiseScenario(t *testing.T) {
	p := DefaultParams()
	p.Cols = 150
	p.StepY = 10
	r := New(p, noise.Constant(0.5))
	f := Frame{Width: 900, Height: 500, Wind: 0, Activity: 1}
	l := p.Layer(0, f.Width, f.Height)

	for _, i := range []int{0, 1, 37, 75, 149} {
		for y := 0.0; y < f.Height; y += p.StepY {
			s := r.Sample(l, i, y, f)
			assert.InDelta(t, float64(i)/150*f.Width, s.X, 1e-9, "x of ribbon %d at y=%v", i, y)
		}
	}

	top := r.Sample(l, 0, 0, f)
	assert.InDelta(t, 40.0, top.Alpha, 1e-9)
	bottom := r.Sample(l, 0, f.Height, f)
	assert.InDelta(t, 6.0, bottom.Alpha, 1e-9)
	mid := r.Sample(l, 0, 250, f)
	assert.InDelta(t, 40*(0.15+0.85*math.Pow(0.5, 1.4)), mid.Alpha, 1e-9)
}

func TestWeightsSumToOne(t *testing.T) {
	c := DefaultParams().Color
	c.LilacBoost = 0.9
	c.MaxLilac = 1
	for bandPos := 0.0; bandPos < 6; bandPos += 0.07 {
		for y01 := 0.0; y01 <= 1; y01 += 0.1 {
			for _, touch := range []float64{0, 0.3, 1} {
				w := c.Weights(bandPos, y01, touch)
				for _, v := range []float64{w.Green, w.Blue, w.Lilac} {
					require.GreaterOrEqual(t, v, 0.0)
					require.LessOrEqual(t, v, 1.0)
				}
				require.InDelta(t, 1.0, w.Green+w.Blue+w.Lilac, 1e-12,
					"bandPos=%v y01=%v touch=%v", bandPos, y01, touch)
			}
		}
	}
}

func TestBandCenterWeights(t *testing.T) {
	c := DefaultParams().Color
	assert.InDelta(t, 1.0, ModeBlend(0.5), 1e-12)

	// No top bias at the bottom of the canvas.
	w := c.Weights(0.5, 1, 0)
	assert.InDelta(t, 0.5, w.Lilac, 1e-12)
	assert.InDelta(t, 0.25, w.Green, 1e-12)
	assert.InDelta(t, 0.25, w.Blue, 1e-12)

	// At the top the extra blue comes out of green's share.
	w = c.Weights(0.5, 0, 0)
	assert.InDelta(t, 0.5, w.Lilac, 1e-12)
	assert.InDelta(t, 0.25+0.18, w.Blue, 1e-12)
	assert.InDelta(t, 0.25-0.18, w.Green, 1e-12)
}

func TestBandAlternation(t *testing.T) {
	p := DefaultParams()
	c := p.Color
	bandSize := c.BandSize(p.Cols)
	assert.Equal(t, 15, bandSize)

	for i := 0; i < p.Cols; i++ {
		a := c.Weights(float64(i)/float64(bandSize), 0.4, 0)
		b := c.Weights(float64(i+2*bandSize)/float64(bandSize), 0.4, 0)
		assert.InDelta(t, a.Lilac, b.Lilac, 1e-9, "ribbon %d", i)
	}

	// Odd bands are two-color.
	assert.InDelta(t, 0, c.Weights(1.5, 0.4, 0).Lilac, 1e-12)

	// Within a three-color band lilac peaks at the center.
	for _, band := range []float64{0, 2, 4} {
		peak := c.Weights(band+0.5, 0.4, 0).Lilac
		for frac := 0.0; frac < 1; frac += 0.05 {
			assert.LessOrEqual(t, c.Weights(band+frac, 0.4, 0).Lilac, peak+1e-12)
		}
	}
}

func TestBandSizeFloor(t *testing.T) {
	c := DefaultParams().Color
	assert.Equal(t, 6, c.BandSize(20))
	assert.Equal(t, 8, c.BandSize(80))
}

func TestAlphaPositiveAndFading(t *testing.T) {
	a := DefaultParams().Alpha
	a.Boost = 0.8
	a.Max = 60
	for _, touch := range []float64{0, 0.5, 1} {
		prev := math.Inf(1)
		for y01 := 0.0; y01 <= 1.0001; y01 += 0.02 {
			v := a.At(y01, touch)
			assert.Greater(t, v, 0.0)
			assert.LessOrEqual(t, v, a.Max)
			assert.LessOrEqual(t, v, prev)
			prev = v
		}
	}
}

func TestTouch(t *testing.T) {
	c := DefaultParams().Cursor
	f := Frame{Cursor: aurora.Point{X: 100, Y: 100}, HasCursor: true}

	assert.Equal(t, 0.0, c.Touch(100, 100, f), "disabled")

	c.Enabled = true
	assert.Equal(t, 1.0, c.Touch(100, 100, f))
	assert.Equal(t, 0.0, c.Touch(100+c.Radius, 100, f))
	mid := c.Touch(100+c.Radius/2, 100, f)
	assert.InDelta(t, 0.5, mid, 1e-12)

	f.HasCursor = false
	assert.Equal(t, 0.0, c.Touch(100, 100, f))
}

func TestCursorPushesAndLifts(t *testing.T) {
	p := DefaultParams()
	p.Cursor.Enabled = true
	p.Color.LilacBoost = 0.4
	p.Alpha.Boost = 0.5
	p.Alpha.Max = 60
	r := New(p, noise.Constant(0.5))
	f := Frame{Width: 900, Height: 500, Activity: 1}
	l := p.Layer(0, f.Width, f.Height)

	calm := r.Sample(l, 30, 200, f)
	f.Cursor = aurora.Point{X: calm.X - 20, Y: calm.Y}
	f.HasCursor = true
	touched := r.Sample(l, 30, 200, f)

	assert.Greater(t, touched.Touch, 0.0)
	assert.Greater(t, touched.X, calm.X, "pushed away from the cursor")
	assert.Less(t, touched.Y, calm.Y, "lifted")
	assert.Greater(t, touched.Weights.Lilac, calm.Weights.Lilac)
	assert.Greater(t, touched.Alpha, calm.Alpha)
}

func TestRenderIsIdempotent(t *testing.T) {
	src := noise.Func(func(x, y, z float64) float64 {
		return 0.5 + 0.4*math.Sin(3*x+y)*math.Cos(z)
	})
	p := DefaultParams()
	p.Cols = 40
	p.Cursor.Enabled = true
	r := New(p, src)
	f := Frame{Width: 400, Height: 300, T: 1.7, Wind: 0.3, Activity: 0.8,
		Cursor: aurora.Point{X: 200, Y: 120}, HasCursor: true}

	var a, b recorder
	r.Render(&a, 0.33, f)
	r.Render(&b, 0.33, f)
	require.NotEmpty(t, a.strokes)
	assert.Equal(t, a.strokes, b.strokes)
}

func TestRenderSegments(t *testing.T) {
	p := DefaultParams()
	p.Cols = 10
	p.StepY = 50
	r := New(p, noise.Constant(0.5))
	f := Frame{Width: 1000, Height: 500, Activity: 1}

	var rec recorder
	r.Render(&rec, 1, f)
	require.NotEmpty(t, rec.strokes)
	for _, s := range rec.strokes {
		assert.Equal(t, "line", s.kind)
		assert.InDelta(t, 0.9, s.width, 1e-9, "back layer stroke")
		nrgba, ok := s.col.(color.NRGBA)
		require.True(t, ok)
		assert.Greater(t, nrgba.A, uint8(0))
	}
	// 10 samples per ribbon, segments past the bottom edge are culled.
	assert.Less(t, len(rec.strokes), 10*9)
}

func TestRenderSmooth(t *testing.T) {
	p := DefaultParams()
	p.Cols = 5
	p.StepY = 25
	p.Smooth = true
	r := New(p, noise.Constant(0.5))
	f := Frame{Width: 500, Height: 200, Activity: 1}

	var rec recorder
	r.Render(&rec, 0.5, f)
	require.NotEmpty(t, rec.strokes)
	for _, s := range rec.strokes {
		assert.Equal(t, "quad", s.kind)
	}
	// Pieces of a ribbon join end to start.
	first, second := rec.strokes[0], rec.strokes[1]
	assert.Equal(t, first.coords[4:6], second.coords[0:2])
}

func TestRenderWithoutHeightDrawsNothing(t *testing.T) {
	r := New(DefaultParams(), noise.Constant(0.5))
	for _, h := range []float64{0, -50, math.NaN()} {
		var rec recorder
		assert.NotPanics(t, func() { r.Render(&rec, 0, Frame{Width: 100, Height: h}) }, "height %v", h)
		assert.Empty(t, rec.strokes, "height %v", h)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())

	tests := []struct {
		name string
		mod  func(*Params)
	}{
		{"cols", func(p *Params) { p.Cols = 0 }},
		{"step", func(p *Params) { p.StepY = -1 }},
		{"lilac", func(p *Params) { p.Color.MaxLilac = 1.5 }},
		{"bias", func(p *Params) { p.Color.TopBias = -0.1 }},
		{"floor", func(p *Params) { p.Alpha.Floor = 0 }},
		{"max", func(p *Params) { p.Alpha.Max = 1 }},
		{"radius", func(p *Params) { p.Cursor.Enabled = true; p.Cursor.Radius = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mod(&p)
			assert.Error(t, p.Validate())
		})
	}
}
