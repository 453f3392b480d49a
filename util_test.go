package aurora

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0.25, 0.25},
		{1.5, 1},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp01(tt.in), "Clamp01(%v)", tt.in)
	}
}

func TestSmooth01(t *testing.T) {
	assert.Equal(t, 0.0, Smooth01(-1))
	assert.Equal(t, 0.5, Smooth01(0.5))
	assert.Equal(t, 1.0, Smooth01(2))
	prev := 0.0
	for x := 0.0; x <= 1; x += 0.05 {
		v := Smooth01(x)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestTri01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.5},
		{0.5, 1},
		{0.75, 0.5},
		{1, 0},
		{3.5, 1},
		{-0.5, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Tri01(tt.in), 1e-12, "Tri01(%v)", tt.in)
	}
}

func TestMapRange(t *testing.T) {
	assert.Equal(t, -1.0, MapRange(0, 0, 800, -1, 1))
	assert.Equal(t, 0.0, MapRange(400, 0, 800, -1, 1))
	assert.Equal(t, 1.0, MapRange(800, 0, 800, -1, 1))
	assert.Equal(t, 2.0, MapRange(1200, 0, 800, -1, 1))
	assert.Equal(t, 5.0, MapRange(3, 1, 1, 5, 9))
}

func TestFract(t *testing.T) {
	assert.InDelta(t, 0.25, Fract(2.25), 1e-12)
	assert.InDelta(t, 0.75, Fract(-0.25), 1e-12)
}
