package water

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaterPressureFromDepth(t *testing.T) {
	assert.InDelta(t, 9.777, WaterPressureFromDepth(100.0, Fresh), 1e-3)
	assert.InDelta(t, 10.038, WaterPressureFromDepth(100.0, Salt), 1e-3)
}

func TestPressureDepthRoundTrip(t *testing.T) {
	for _, w := range []Type{Fresh, Salt} {
		for _, d := range []float64{0.0, 5.5, 30.0, 99.9} {
			p := PressureFromDepth(d, w)
			got := DepthFromPressure(p, w)
			assert.InDelta(t, d, got, 1e-9)
		}
	}
}

func TestSurfacePressureAtZeroDepth(t *testing.T) {
	assert.InDelta(t, SurfacePressure, PressureFromDepth(0.0, Fresh), 1e-12)
	assert.InDelta(t, SurfacePressure, PressureFromDepth(0.0, Salt), 1e-12)
}

func TestSaltDenserThanFresh(t *testing.T) {
	assert.Greater(t, Density(Salt), Density(Fresh))
	assert.Greater(t, PressureFromDepth(10.0, Salt), PressureFromDepth(10.0, Fresh))
}
