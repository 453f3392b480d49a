// Package curtain draws aurora curtains: rows of vertical ribbons displaced
// by coherent noise, shimmering over time and colored by a banded
// green/blue/lilac palette.
//
// A curtain is one depth layer. z runs from 0 (front) to 1 (back); front
// layers sway further, wobble more and use thicker strokes. Each call to
// Render draws one full layer onto a Surface and keeps no state, so the
// same inputs and noise always give the same strokes.
package curtain

import (
	"image/color"
	"math"

	"github.com/scottkirkwood/aurora"
	"github.com/scottkirkwood/aurora/noise"
)

// Surface is what a curtain is drawn on.
type Surface interface {
	SetStrokeColor(color.Color)
	SetStrokeWidth(float64)
	Line(x1, y1, x2, y2 float64)
	Quad(x1, y1, cx, cy, x2, y2 float64)
}

// Frame holds everything that changes from one frame to the next.
type Frame struct {
	Width, Height float64
	T             float64 // global clock
	Wind          float64 // signed horizontal bias, roughly -1..1
	Activity      float64 // shimmer modulator, 0.5..1
	Cursor        aurora.Point
	HasCursor     bool
}

// Layer is the geometry of one depth layer for a given canvas size.
type Layer struct {
	Z      float64
	BaseY  float64
	AmpX   float64
	AmpY   float64
	Stroke float64
}

// Layer derives the geometry for depth z on a width x height canvas.
func (p Params) Layer(z, width, height float64) Layer {
	z = aurora.Clamp01(z)
	g := p.Geometry
	return Layer{
		Z:      z,
		BaseY:  height * g.BaseY.At(z),
		AmpX:   width * g.AmpX.At(1-z),
		AmpY:   height * g.AmpY.At(1-z),
		Stroke: g.Stroke.At(1 - z),
	}
}

// Sample is one point on a ribbon.
type Sample struct {
	aurora.Point
	Touch   float64
	Weights Weights
	Alpha   float64 // 0..255
}

// Color returns the stroke color of the sample.
func (s Sample) Color(c ColorParams) color.NRGBA {
	r, g, b := c.Mix(s.Weights).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(aurora.Clamp(s.Alpha, 1, 255)))}
}

// Renderer draws curtains with one parameter bundle and noise field.
type Renderer struct {
	params   Params
	noise    noise.Source
	bandSize float64
}

// New returns a renderer. p should have passed Validate.
func New(p Params, src noise.Source) *Renderer {
	return &Renderer{
		params:   p,
		noise:    src,
		bandSize: float64(p.Color.BandSize(p.Cols)),
	}
}

// Sample computes ribbon i at vertical step y of layer l.
func (r *Renderer) Sample(l Layer, i int, y float64, f Frame) Sample {
	p := r.params
	fi := float64(i)
	y01 := 0.0
	if f.Height > 0 {
		y01 = y / f.Height
	}

	n := r.noise.Noise(fi*p.Noise.X, y*p.Noise.Y, f.T*p.Noise.T+l.Z*p.Noise.Z)

	x := fi/float64(p.Cols)*f.Width +
		(n-0.5)*l.AmpX +
		f.Wind*p.WindGain*(1-y01)

	sh := p.Shimmer
	yy := l.BaseY + y +
		math.Sin(f.T*sh.T+fi*sh.Col+y*sh.Y)*l.AmpY*sh.Damp*(0.7+0.3*f.Activity)

	touch := p.Cursor.Touch(x, yy, f)
	if touch > 0 {
		dx := x - f.Cursor.X
		x += p.Cursor.Push * touch * dx / (math.Abs(dx) + 1)
		yy -= p.Cursor.Lift * touch
	}

	return Sample{
		Point:   aurora.Point{X: x, Y: yy},
		Touch:   touch,
		Weights: p.Color.Weights(fi/r.bandSize, y01, touch),
		Alpha:   p.Alpha.At(y01, touch),
	}
}

// Touch is the cursor influence at x,y: 1 on the cursor, easing to 0 at
// Radius. It is 0 when the interaction is off or no cursor is known.
func (c CursorParams) Touch(x, y float64, f Frame) float64 {
	if !c.Enabled || !f.HasCursor || c.Radius <= 0 {
		return 0
	}
	d := math.Hypot(x-f.Cursor.X, y-f.Cursor.Y)
	return aurora.Smooth01(1 - d/c.Radius)
}

// Render draws every ribbon of the layer at depth z.
// Nothing is drawn on a canvas without a positive height.
func (r *Renderer) Render(s Surface, z float64, f Frame) {
	if !(f.Height > 0) {
		return
	}
	l := r.params.Layer(z, f.Width, f.Height)
	s.SetStrokeWidth(l.Stroke)

	column := make([]Sample, 0, int(f.Height/r.params.StepY)+1)
	for i := 0; i < r.params.Cols; i++ {
		column = column[:0]
		for y := 0.0; y < f.Height; y += r.params.StepY {
			column = append(column, r.Sample(l, i, y, f))
		}
		if r.params.Smooth {
			r.drawSmooth(s, column, f, l.Stroke)
		} else {
			r.drawSegments(s, column, f, l.Stroke)
		}
	}
}

// drawSegments connects consecutive samples with straight strokes, each in
// the color of its lower end.
func (r *Renderer) drawSegments(s Surface, column []Sample, f Frame, pad float64) {
	for k := 1; k < len(column); k++ {
		a, b := column[k-1], column[k]
		if !(aurora.Segment{A: a.Point, B: b.Point}).Visible(f.Width, f.Height, pad) {
			continue
		}
		s.SetStrokeColor(b.Color(r.params.Color))
		s.Line(a.X, a.Y, b.X, b.Y)
	}
}

// drawSmooth strokes the column as a chain of quadratic pieces running
// between segment midpoints, with each sample as the control point.
func (r *Renderer) drawSmooth(s Surface, column []Sample, f Frame, pad float64) {
	if len(column) < 3 {
		r.drawSegments(s, column, f, pad)
		return
	}
	mid := func(a, b aurora.Point) aurora.Point {
		return aurora.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	}
	last := len(column) - 1
	for k := 1; k < last; k++ {
		from := mid(column[k-1].Point, column[k].Point)
		if k == 1 {
			from = column[0].Point
		}
		to := mid(column[k].Point, column[k+1].Point)
		if k == last-1 {
			to = column[last].Point
		}
		ctrl := column[k].Point
		if !(aurora.Segment{A: from, B: ctrl}).Visible(f.Width, f.Height, pad) &&
			!(aurora.Segment{A: ctrl, B: to}).Visible(f.Width, f.Height, pad) {
			continue
		}
		s.SetStrokeColor(column[k].Color(r.params.Color))
		s.Quad(from.X, from.Y, ctrl.X, ctrl.Y, to.X, to.Y)
	}
}
