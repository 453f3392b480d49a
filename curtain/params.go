package curtain

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Span is a value that grows linearly with a 0..1 factor: Base + Gain*f.
type Span struct {
	Base float64 `yaml:"base"`
	Gain float64 `yaml:"gain"`
}

// At evaluates the span at f.
func (s Span) At(f float64) float64 {
	return s.Base + s.Gain*f
}

// RGB is a palette entry that reads and writes as "#rrggbb".
type RGB struct {
	colorful.Color
}

// Hex builds an RGB from "#rrggbb", panicking on malformed input.
// Only meant for compiled-in palettes.
func Hex(s string) RGB {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return RGB{c}
}

func (c *RGB) UnmarshalText(b []byte) error {
	col, err := colorful.Hex(string(b))
	if err != nil {
		return errors.Wrapf(err, "bad color %q", b)
	}
	c.Color = col
	return nil
}

func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// Palette holds the three aurora hues.
type Palette struct {
	Green RGB `yaml:"green"`
	Blue  RGB `yaml:"blue"`
	Lilac RGB `yaml:"lilac"`
}

// Geometry holds the per-layer linear interpolations. BaseY is evaluated on
// z; AmpX, AmpY and Stroke on 1-z, so front layers sway, wobble and weigh more.
type Geometry struct {
	BaseY  Span `yaml:"base_y"` // fraction of height, on z
	AmpX   Span `yaml:"amp_x"`  // fraction of width, on 1-z
	AmpY   Span `yaml:"amp_y"`  // fraction of height, on 1-z
	Stroke Span `yaml:"stroke"` // pixels, on 1-z
}

// NoiseFreq scales the noise lookup (i*X, y*Y, t*T + z*Z).
type NoiseFreq struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	T float64 `yaml:"t"`
	Z float64 `yaml:"z"`
}

// Shimmer is the vertical sine wobble sin(t*T + i*Col + y*Y) * ampY * Damp.
type Shimmer struct {
	T    float64 `yaml:"t"`
	Col  float64 `yaml:"col"`
	Y    float64 `yaml:"y"`
	Damp float64 `yaml:"damp"`
}

// ColorParams drives the banding model.
type ColorParams struct {
	Palette     Palette `yaml:"palette"`
	BandDivisor float64 `yaml:"band_divisor"` // bands across the ribbons
	MinBand     int     `yaml:"min_band"`     // ribbons per band, at least
	MaxLilac    float64 `yaml:"max_lilac"`
	TopBias     float64 `yaml:"top_bias"` // extra blue share at the very top
	LilacBoost  float64 `yaml:"lilac_boost"`
}

// AlphaParams drives the height fade; alpha is on a 0..255 scale.
type AlphaParams struct {
	Base     float64 `yaml:"base"`
	Floor    float64 `yaml:"floor"`
	Exponent float64 `yaml:"exponent"`
	Boost    float64 `yaml:"boost"` // multiplicative gain near the cursor
	Max      float64 `yaml:"max"`
}

// CursorParams drives the local pointer interaction.
type CursorParams struct {
	Enabled bool    `yaml:"enabled"`
	Radius  float64 `yaml:"radius"` // pixels
	Push    float64 `yaml:"push"`   // pixels of sideways push at full touch
	Lift    float64 `yaml:"lift"`   // pixels of upward lift at full touch
}

// Params is a complete tuned-constant bundle for the renderer.
type Params struct {
	Cols     int          `yaml:"cols"`
	StepY    float64      `yaml:"step_y"`
	Smooth   bool         `yaml:"smooth"`
	WindGain float64      `yaml:"wind_gain"`
	Geometry Geometry     `yaml:"geometry"`
	Noise    NoiseFreq    `yaml:"noise"`
	Shimmer  Shimmer      `yaml:"shimmer"`
	Color    ColorParams  `yaml:"color"`
	Alpha    AlphaParams  `yaml:"alpha"`
	Cursor   CursorParams `yaml:"cursor"`
}

// DefaultParams returns the tuning of the first borealis sketch.
func DefaultParams() Params {
	return Params{
		Cols:     150,
		StepY:    10,
		WindGain: 120,
		Geometry: Geometry{
			BaseY:  Span{0.15, 0.08},
			AmpX:   Span{0.15, 0.1},
			AmpY:   Span{0.2, 0.15},
			Stroke: Span{0.9, 1.8},
		},
		Noise:   NoiseFreq{X: 0.06, Y: 0.01, T: 1.2, Z: 3},
		Shimmer: Shimmer{T: 2, Col: 0.15, Y: 0.01, Damp: 0.1},
		Color: ColorParams{
			Palette: Palette{
				Green: Hex("#28ff78"),
				Blue:  Hex("#00aaff"),
				Lilac: Hex("#eb50ff"),
			},
			BandDivisor: 10,
			MinBand:     6,
			MaxLilac:    0.5,
			TopBias:     0.18,
		},
		Alpha: AlphaParams{Base: 40, Floor: 0.15, Exponent: 1.4, Max: 40},
		Cursor: CursorParams{
			Radius: 180,
			Push:   40,
			Lift:   30,
		},
	}
}

// Validate rejects bundles the renderer cannot draw.
func (p Params) Validate() error {
	switch {
	case p.Cols <= 0:
		return errors.Errorf("cols must be positive, got %d", p.Cols)
	case p.StepY <= 0:
		return errors.Errorf("step_y must be positive, got %v", p.StepY)
	case p.Color.BandDivisor <= 0:
		return errors.Errorf("color.band_divisor must be positive, got %v", p.Color.BandDivisor)
	case p.Color.MinBand <= 0:
		return errors.Errorf("color.min_band must be positive, got %d", p.Color.MinBand)
	case !in01(p.Color.MaxLilac):
		return errors.Errorf("color.max_lilac must be in [0,1], got %v", p.Color.MaxLilac)
	case !in01(p.Color.TopBias):
		return errors.Errorf("color.top_bias must be in [0,1], got %v", p.Color.TopBias)
	case p.Color.LilacBoost < 0:
		return errors.Errorf("color.lilac_boost must not be negative, got %v", p.Color.LilacBoost)
	case p.Alpha.Base <= 0:
		return errors.Errorf("alpha.base must be positive, got %v", p.Alpha.Base)
	case p.Alpha.Floor <= 0 || p.Alpha.Floor > 1:
		return errors.Errorf("alpha.floor must be in (0,1], got %v", p.Alpha.Floor)
	case p.Alpha.Exponent <= 0:
		return errors.Errorf("alpha.exponent must be positive, got %v", p.Alpha.Exponent)
	case p.Alpha.Boost < 0:
		return errors.Errorf("alpha.boost must not be negative, got %v", p.Alpha.Boost)
	case p.Alpha.Max < p.Alpha.Base*p.Alpha.Floor || p.Alpha.Max > 255:
		return errors.Errorf("alpha.max must be in [%v,255], got %v", p.Alpha.Base*p.Alpha.Floor, p.Alpha.Max)
	case p.Cursor.Enabled && p.Cursor.Radius <= 0:
		return errors.Errorf("cursor.radius must be positive, got %v", p.Cursor.Radius)
	}
	return nil
}

// BandSize is the number of ribbons per color band.
func (c ColorParams) BandSize(cols int) int {
	size := int(float64(cols)/c.BandDivisor + 0.5)
	if size < c.MinBand {
		return c.MinBand
	}
	return size
}

func in01(v float64) bool {
	return v >= 0 && v <= 1
}
