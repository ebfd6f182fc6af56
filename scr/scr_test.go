package scr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m5lapp/decoplanner/tank"
	"github.com/m5lapp/decoplanner/water"
)

func TestSacScrRoundTrip(t *testing.T) {
	tk, err := tank.Full(tank.AL80)
	require.NoError(t, err)

	sac := 20.0 // bar/min
	s := FromSac(sac, tk)
	got := ToSac(s, tk)
	assert.InDelta(t, sac, got, 1e-9)
}

func TestAtDepthScalesLinearlyWithPressure(t *testing.T) {
	s := 20.0
	depth := 30.0
	w := water.Salt

	scaled := AtDepth(s, depth, w)
	ratio := scaled / s
	want := water.PressureFromDepth(depth, w) / water.SurfacePressure
	assert.InDelta(t, want, ratio, 1e-9)
}

func TestAtDepthAtSurfaceIsUnscaled(t *testing.T) {
	s := 15.0
	got := AtDepth(s, 0.0, water.Fresh)
	assert.InDelta(t, s, got, 1e-9)
}
