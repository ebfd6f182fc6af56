// Package helpers holds small, dependency-free numeric utilities shared
// across the planner: unit conversions and piecewise-linear interpolation.
package helpers

import (
	"fmt"
	"math"
	"sort"
)

// EqualFloat64() compares two float64 values to see if they are as close enough
// together within a defined threshold to be considered equal.
func EqualFloat64(a, b float64) bool {
	const float64EqualityThreshold float64 = 1e-9
	return math.Abs(a-b) <= float64EqualityThreshold
}

func MetresToFeet(depth float64) float64 {
	return depth * 3.28084
}

func FeetToMetres(depth float64) float64 {
	return depth / 3.28084
}

func LitresToCubicFeet(volume float64) float64 {
	return volume * 0.0353147
}

func CubicFeetToLitres(volume float64) float64 {
	return volume / 0.0353147
}

func BarToPSI(pressure float64) float64 {
	return pressure * 14.5038
}

func PSIToBar(pressure float64) float64 {
	return pressure / 14.5038
}

// RoundUpToIncrement rounds value up to the nearest multiple of inc. inc
// must be positive.
func RoundUpToIncrement(value, inc float64) float64 {
	return math.Ceil(value/inc) * inc
}

// RoundToIncrement rounds value to the nearest multiple of inc. inc must
// be positive.
func RoundToIncrement(value, inc float64) float64 {
	return math.Round(value/inc) * inc
}

// Interpolate performs piecewise-linear interpolation of the samples (xp,
// yp) at each point in x. xp must be strictly increasing and have the same
// length as yp. Values of x outside the range of xp are clamped to the
// first/last yp value.
func Interpolate(xp, yp, x []float64) ([]float64, error) {
	if len(xp) != len(yp) {
		return nil, fmt.Errorf("helpers: Interpolate: xp and yp have different lengths (%d != %d)", len(xp), len(yp))
	}
	if len(xp) < 2 {
		return nil, fmt.Errorf("helpers: Interpolate: need at least 2 points, got %d", len(xp))
	}
	for i := 1; i < len(xp); i++ {
		if xp[i] <= xp[i-1] {
			return nil, fmt.Errorf("helpers: Interpolate: xp must be strictly increasing at index %d", i)
		}
	}

	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = interpolateOne(xp, yp, xi)
	}
	return y, nil
}

// interpolateOne interpolates a single x value against the (xp, yp) table.
func interpolateOne(xp, yp []float64, x float64) float64 {
	if x <= xp[0] {
		return yp[0]
	}
	n := len(xp)
	if x >= xp[n-1] {
		return yp[n-1]
	}

	// Find the first index whose xp value is >= x.
	i := sort.SearchFloat64s(xp, x)
	if i < len(xp) && xp[i] == x {
		return yp[i]
	}
	// i is now the index of the first xp strictly greater than x, so the
	// bracketing segment is [i-1, i].
	x0, x1 := xp[i-1], xp[i]
	y0, y1 := yp[i-1], yp[i]
	frac := (x - x0) / (x1 - x0)
	return y0 + frac*(y1-y0)
}
