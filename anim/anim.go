// Package anim owns the animation clock and drives the curtain renderer once
// per depth layer per frame.
package anim

import (
	"image/color"

	"github.com/pkg/errors"
	"github.com/scottkirkwood/aurora"
	"github.com/scottkirkwood/aurora/curtain"
	"github.com/scottkirkwood/aurora/noise"
)

// Canvas is a curtain surface that can also be washed with a background.
type Canvas interface {
	curtain.Surface
	Wash(color.Color)
}

// Wind sources.
const (
	WindCursor = "cursor"
	WindNoise  = "noise"
)

// Layer orders.
const (
	FrontFirst = "front_first"
	BackFirst  = "back_first"
)

// Mood tunes the clock and the slow global scalars.
type Mood struct {
	Step         float64 `yaml:"step"`          // clock advance per frame
	ActivityRate float64 `yaml:"activity_rate"` // noise frequency of activity
	WindSource   string  `yaml:"wind_source"`   // cursor or noise
	WindRate     float64 `yaml:"wind_rate"`     // noise frequency of wind
	WindRange    float64 `yaml:"wind_range"`    // |wind| limit for noise wind
}

// Config is everything the driver needs besides the renderer.
type Config struct {
	Mood       Mood        `yaml:"mood"`
	Layers     int         `yaml:"layers"`
	LayerOrder string      `yaml:"layer_order"`
	Background curtain.RGB `yaml:"background"`
	Trail      uint8       `yaml:"trail"` // background alpha washed over every frame
}

// DefaultConfig matches the first borealis sketch.
func DefaultConfig() Config {
	return Config{
		Mood: Mood{
			Step:         0.004,
			ActivityRate: 0.6,
			WindSource:   WindCursor,
			WindRate:     0.15,
			WindRange:    0.6,
		},
		Layers:     4,
		LayerOrder: FrontFirst,
		Background: curtain.Hex("#070a12"),
		Trail:      20,
	}
}

// Validate checks the driver settings.
func (c Config) Validate() error {
	switch {
	case c.Mood.Step <= 0:
		return errors.Errorf("mood.step must be positive, got %v", c.Mood.Step)
	case c.Mood.WindSource != WindCursor && c.Mood.WindSource != WindNoise:
		return errors.Errorf("mood.wind_source must be %q or %q, got %q", WindCursor, WindNoise, c.Mood.WindSource)
	case c.Layers < 2:
		return errors.Errorf("layers must be at least 2, got %d", c.Layers)
	case c.LayerOrder != FrontFirst && c.LayerOrder != BackFirst:
		return errors.Errorf("layer_order must be %q or %q, got %q", FrontFirst, BackFirst, c.LayerOrder)
	case c.Trail == 0:
		return errors.New("trail must be positive")
	}
	return nil
}

// BackgroundColor is the opaque background.
func (c Config) BackgroundColor() color.NRGBA {
	r, g, b := c.Background.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// State is the animation state owned by a host and passed in every tick.
type State struct {
	T             float64
	Frame         int
	Width, Height float64
	Cursor        aurora.Point
	HasCursor     bool
}

// MoveCursor records the pointer position.
func (st *State) MoveCursor(x, y float64) {
	st.Cursor = aurora.Point{X: x, Y: y}
	st.HasCursor = true
}

// Resize records a new canvas size.
func (st *State) Resize(width, height float64) {
	st.Width, st.Height = width, height
}

// Driver advances the clock and draws all layers.
type Driver struct {
	renderer *curtain.Renderer
	noise    noise.Source
	cfg      Config
}

// NewDriver returns a driver; cfg should have passed Validate.
func NewDriver(r *curtain.Renderer, src noise.Source, cfg Config) *Driver {
	return &Driver{renderer: r, noise: src, cfg: cfg}
}

// Advance moves the clock one step and derives this frame's mood.
func (d *Driver) Advance(st *State) curtain.Frame {
	st.T += d.cfg.Mood.Step
	st.Frame++
	return d.FrameAt(st)
}

// FrameAt derives the frame inputs for the current state without advancing.
func (d *Driver) FrameAt(st *State) curtain.Frame {
	return curtain.Frame{
		Width:     st.Width,
		Height:    st.Height,
		T:         st.T,
		Wind:      d.Wind(st),
		Activity:  d.Activity(st.T),
		Cursor:    st.Cursor,
		HasCursor: st.HasCursor,
	}
}

// Activity is a slow noise-driven value in [0.5, 1].
func (d *Driver) Activity(t float64) float64 {
	return 0.5 + 0.5*d.noise.Noise(t*d.cfg.Mood.ActivityRate, 0, 0)
}

// Wind maps the cursor x onto [-1, 1], or follows slow noise when the
// mood asks for it or no cursor has been seen yet.
func (d *Driver) Wind(st *State) float64 {
	m := d.cfg.Mood
	if m.WindSource == WindCursor && st.HasCursor {
		return aurora.MapRange(st.Cursor.X, 0, st.Width, -1, 1)
	}
	return (d.noise.Noise(st.T*m.WindRate, 31.4, 0) - 0.5) * 2 * m.WindRange
}

// Depths returns the z of every layer in drawing order.
func (d *Driver) Depths() []float64 {
	n := d.cfg.Layers
	zs := make([]float64, n)
	for l := 0; l < n; l++ {
		zs[l] = float64(l) / float64(n-1)
	}
	if d.cfg.LayerOrder == BackFirst {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			zs[i], zs[j] = zs[j], zs[i]
		}
	}
	return zs
}

// Draw advances the clock, washes the canvas for trails and draws every layer.
func (d *Driver) Draw(c Canvas, st *State) {
	f := d.Advance(st)
	d.Paint(c, f)
}

// Paint draws the frame without touching the clock.
func (d *Driver) Paint(c Canvas, f curtain.Frame) {
	bg := d.BackgroundColor()
	bg.A = d.cfg.Trail
	c.Wash(bg)
	for _, z := range d.Depths() {
		d.renderer.Render(c, z, f)
	}
}

// BackgroundColor is the opaque background.
func (d *Driver) BackgroundColor() color.NRGBA {
	return d.cfg.BackgroundColor()
}
