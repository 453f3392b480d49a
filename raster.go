package aurora

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Raster is a bitmap surface backed by gg, used for live frames and capture.
type Raster struct {
	dc *gg.Context
}

// NewRaster returns a width x height raster filled with background.
func NewRaster(width, height int, background color.Color) *Raster {
	dc := gg.NewContext(width, height)
	dc.SetColor(background)
	dc.Clear()
	dc.SetLineCap(gg.LineCapRound)
	return &Raster{dc: dc}
}

// Image returns the live backing image. Callers that keep it across frames
// must copy it.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

func (r *Raster) SetStrokeColor(col color.Color) {
	r.dc.SetColor(col)
}

func (r *Raster) SetStrokeWidth(width float64) {
	r.dc.SetLineWidth(width)
}

// Line strokes a single straight segment.
func (r *Raster) Line(x1, y1, x2, y2 float64) {
	r.dc.DrawLine(x1, y1, x2, y2)
	r.dc.Stroke()
}

// Quad strokes a quadratic Bézier from x1,y1 to x2,y2 with control point cx,cy.
func (r *Raster) Quad(x1, y1, cx, cy, x2, y2 float64) {
	r.dc.MoveTo(x1, y1)
	r.dc.QuadraticTo(cx, cy, x2, y2)
	r.dc.Stroke()
}

// Wash blends col over the whole raster; a translucent col leaves trails.
func (r *Raster) Wash(col color.Color) {
	r.dc.Push()
	r.dc.SetColor(col)
	r.dc.DrawRectangle(0, 0, float64(r.dc.Width()), float64(r.dc.Height()))
	r.dc.Fill()
	r.dc.Pop()
}

// WritePNG writes to a PNG file
func (r *Raster) WritePNG(fname string) error {
	return r.dc.SavePNG(fname)
}
