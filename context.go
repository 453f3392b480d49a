package aurora

import (
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/pdf"
	"github.com/tdewolff/canvas/rasterizer"
	"github.com/tdewolff/canvas/svg"
)

// Context is my abstraction for Canvas, used for vector output.
// Coordinates are in pixels with y pointing down, like Raster;
// the flip to canvas' y-up space happens here.
type Context struct {
	c             *canvas.Canvas
	ctx           *canvas.Context
	width, height float64
}

func NewContext(width, height float64) *Context {
	ctx := &Context{
		c:      canvas.New(width, height),
		width:  width,
		height: height,
	}
	ctx.ctx = canvas.NewContext(ctx.c)
	return ctx
}

// Size returns the drawing size in pixels.
func (ctx *Context) Size() (float64, float64) {
	return ctx.width, ctx.height
}

// WritePNG writes to a PNG file
func (ctx *Context) WritePNG(fname string) error {
	return ctx.c.WriteFile(fname, rasterizer.PNGWriter(3.2))
}

// WriteSVG writes to an SVG file
func (ctx *Context) WriteSVG(fname string) error {
	return ctx.c.WriteFile(fname, svg.Writer)
}

// WritePDF writes to a PDF file
func (ctx *Context) WritePDF(fname string) error {
	return ctx.c.WriteFile(fname, pdf.Writer)
}

func (ctx *Context) SetStrokeColor(col color.Color) {
	ctx.ctx.SetStrokeColor(col)
}

func (ctx *Context) SetStrokeWidth(width float64) {
	ctx.ctx.SetStrokeWidth(width)
}

// Line strokes a single straight segment.
func (ctx *Context) Line(x1, y1, x2, y2 float64) {
	ctx.ctx.MoveTo(x1, ctx.flip(y1))
	ctx.ctx.LineTo(x2, ctx.flip(y2))
	ctx.ctx.Stroke()
}

// Quad strokes a quadratic Bézier from x1,y1 to x2,y2 with control point cx,cy.
func (ctx *Context) Quad(x1, y1, cx, cy, x2, y2 float64) {
	ctx.ctx.MoveTo(x1, ctx.flip(y1))
	ctx.ctx.QuadTo(cx, ctx.flip(cy), x2, ctx.flip(y2))
	ctx.ctx.Stroke()
}

// Wash covers the whole canvas with col, which is usually translucent.
func (ctx *Context) Wash(col color.Color) {
	ctx.ctx.Push()
	ctx.ctx.SetFillColor(col)
	ctx.ctx.SetStrokeColor(color.Transparent)
	ctx.ctx.DrawPath(0, 0, canvas.Rectangle(ctx.width, ctx.height))
	ctx.ctx.Pop()
}

func (ctx *Context) flip(y float64) float64 {
	return ctx.height - y
}
