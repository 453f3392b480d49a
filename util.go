package aurora

import (
	"math"
	"strings"
)

// Basename retrieves the basename of a file path.
func Basename(fName string) string {
	if lslash := strings.LastIndex(fName, "/"); lslash != -1 {
		fName = fName[lslash+1:]
	}
	return fName
}

// Clamp current value between low and high
func Clamp(cur, low, high float64) float64 {
	if low > high {
		low, high = high, low
	}
	if cur < low {
		return low
	}
	if cur > high {
		return high
	}
	return cur
}

// Clamp01 forces cur into [0, 1]. NaN maps to 0.
func Clamp01(cur float64) float64 {
	if math.IsNaN(cur) {
		return 0
	}
	return Clamp(cur, 0, 1)
}

// MapRange re-maps v from [inLow, inHigh] to [outLow, outHigh], without clamping.
func MapRange(v, inLow, inHigh, outLow, outHigh float64) float64 {
	if inHigh == inLow {
		return outLow
	}
	return outLow + (v-inLow)*(outHigh-outLow)/(inHigh-inLow)
}

// Fract returns the fractional part of x, always in [0, 1).
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// Smooth01 is the smoothstep curve over [0, 1]; x is clamped first.
func Smooth01(x float64) float64 {
	x = Clamp01(x)
	return x * x * (3 - 2*x)
}

// Tri01 is a triangle wave with period 1: 0 at integers, 1 at the half.
func Tri01(x float64) float64 {
	return 1 - math.Abs(2*Fract(x)-1)
}

