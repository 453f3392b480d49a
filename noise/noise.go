// Package noise provides the coherent noise field the curtains are sampled from.
// Every Source returns values in [0, 1].
package noise

import (
	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
	"github.com/pkg/errors"
	"github.com/scottkirkwood/aurora"
)

// Source is a 3-input coherent noise function returning a value in [0, 1].
type Source interface {
	Noise(x, y, z float64) float64
}

// Func adapts a plain function to a Source.
type Func func(x, y, z float64) float64

func (f Func) Noise(x, y, z float64) float64 { return aurora.Clamp01(f(x, y, z)) }

// Constant always returns the same value.
type Constant float64

func (c Constant) Noise(_, _, _ float64) float64 { return aurora.Clamp01(float64(c)) }

// Simplex is OpenSimplex noise.
type Simplex struct {
	n opensimplex.Noise
}

func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.NewNormalized(seed)}
}

func (s *Simplex) Noise(x, y, z float64) float64 {
	return aurora.Clamp01(s.n.Eval3(x, y, z))
}

// Perlin is classic gradient noise.
type Perlin struct {
	p *perlin.Perlin
}

const (
	perlinAlpha = 2
	perlinBeta  = 2
	perlinN     = 3
)

func NewPerlin(seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)}
}

func (p *Perlin) Noise(x, y, z float64) float64 {
	return aurora.Clamp01(0.5 + 0.5*p.p.Noise3D(x, y, z))
}

// Octaves sums several octaves of src (fractal Brownian motion), each at
// twice the frequency and Falloff times the amplitude of the previous one.
// The result is renormalised back into [0, 1].
type Octaves struct {
	Src     Source
	Count   int
	Falloff float64
}

func (o Octaves) Noise(x, y, z float64) float64 {
	if o.Count <= 1 {
		return o.Src.Noise(x, y, z)
	}
	var total, maxValue float64
	frequency, amplitude := 1.0, 1.0
	for i := 0; i < o.Count; i++ {
		total += o.Src.Noise(x*frequency, y*frequency, z*frequency) * amplitude
		maxValue += amplitude
		amplitude *= o.Falloff
		frequency *= 2
	}
	return aurora.Clamp01(total / maxValue)
}

// New builds a named source: "simplex", "perlin" or "p5" (4 octaves of
// simplex with 0.5 falloff, close to what browser sketches get from noise()).
func New(kind string, seed int64) (Source, error) {
	switch kind {
	case "", "p5":
		return Octaves{Src: NewSimplex(seed), Count: 4, Falloff: 0.5}, nil
	case "simplex":
		return NewSimplex(seed), nil
	case "perlin":
		return NewPerlin(seed), nil
	}
	return nil, errors.Errorf("unknown noise %q", kind)
}
