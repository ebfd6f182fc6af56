package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolateRoundTrip(t *testing.T) {
	xp := []float64{0, 1, 2}
	yp := []float64{0, -1, 1}
	x := []float64{0, 0.5, 1, 1.5, 2}
	want := []float64{0, -0.5, -1, 0, 1}

	got, err := Interpolate(xp, yp, x)
	require.NoError(t, err)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12)
	}
}

func TestInterpolateAtKnots(t *testing.T) {
	xp := []float64{0, 1, 2, 3}
	yp := []float64{10, 20, 15, 40}

	got, err := Interpolate(xp, yp, xp)
	require.NoError(t, err)
	for i := range yp {
		assert.InDelta(t, yp[i], got[i], 1e-12)
	}
}

func TestInterpolateClampsOutOfRange(t *testing.T) {
	xp := []float64{0, 1}
	yp := []float64{5, 10}

	got, err := Interpolate(xp, yp, []float64{-1, 2})
	require.NoError(t, err)
	assert.Equal(t, 5.0, got[0])
	assert.Equal(t, 10.0, got[1])
}

func TestInterpolateRequiresStrictlyIncreasing(t *testing.T) {
	_, err := Interpolate([]float64{0, 1, 1}, []float64{0, 1, 2}, []float64{0.5})
	require.Error(t, err)
}

func TestUnitConversionRoundTrips(t *testing.T) {
	assert.InDelta(t, 10.0, FeetToMetres(MetresToFeet(10.0)), 1e-9)
	assert.InDelta(t, 80.0, CubicFeetToLitres(LitresToCubicFeet(80.0)), 1e-6)
	assert.InDelta(t, 200.0, PSIToBar(BarToPSI(200.0)), 1e-9)
}

func TestEqualFloat64(t *testing.T) {
	assert.True(t, EqualFloat64(1.0, 1.0+1e-12))
	assert.False(t, EqualFloat64(1.0, 1.1))
}

func TestRoundToIncrement(t *testing.T) {
	assert.InDelta(t, 10.0, RoundToIncrement(11.0, 5.0), 1e-12)
	assert.InDelta(t, 15.0, RoundToIncrement(13.0, 5.0), 1e-12)
	assert.InDelta(t, 0.0, RoundToIncrement(0.1, 5.0), 1e-12)
}

func TestRoundUpToIncrement(t *testing.T) {
	assert.InDelta(t, 15.0, RoundUpToIncrement(11.0, 5.0), 1e-12)
	assert.InDelta(t, 5.0, RoundUpToIncrement(0.1, 5.0), 1e-12)
}
