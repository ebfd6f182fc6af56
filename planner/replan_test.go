package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m5lapp/decoplanner/gasmix"
	"github.com/m5lapp/decoplanner/plan"
	"github.com/m5lapp/decoplanner/tank"
	"github.com/m5lapp/decoplanner/water"
)

func buildDive(t *testing.T, bottomDepth float64, descentMin, bottomMin int) *plan.Plan {
	t.Helper()
	p, err := plan.New(water.Salt, 0.3, 0.7, 20.0, 15.0)
	require.NoError(t, err)
	require.NoError(t, p.SetTank("back", tank.AL80, tank.Catalog[tank.AL80].ServicePressure, gasmix.Air()))
	require.NoError(t, p.AddSegment(descentMin, bottomDepth))
	require.NoError(t, p.AddSegment(bottomMin, bottomDepth))
	require.NoError(t, p.Finalize())
	return p
}

func TestReplanProducesLegalAscentToSurface(t *testing.T) {
	input := buildDive(t, 30.0, 2, 18)

	out, err := Replan(input)
	require.NoError(t, err)
	require.True(t, out.Finalized())

	profile := out.Profile()
	require.Greater(t, len(profile), 3, "expected a non-empty deco schedule")

	last := profile[len(profile)-1]
	assert.Equal(t, 0.0, last.Depth)

	for i := 1; i < len(profile); i++ {
		assert.Greater(t, profile[i].Time, profile[i-1].Time, "times must strictly increase")
		_, ok := out.Tank(profile[i].TankName)
		assert.True(t, ok, "every segment's tank must be in the loadout")
	}

	stopDepthIncM := 10.0 / 3.28084
	// profile[0..2] are the input's surface, descent and bottom points;
	// everything after them is planner-synthesized.
	for _, pt := range profile[3:] {
		remainder := math.Mod(pt.Depth, stopDepthIncM)
		if remainder > stopDepthIncM/2 {
			remainder = stopDepthIncM - remainder
		}
		assert.InDelta(t, 0.0, remainder, 1e-6, "stop depths should be whole multiples of STOP_DEPTH_INC")
	}
}

func TestReplanRejectsUnfinalizedInput(t *testing.T) {
	p, err := plan.New(water.Salt, 0.3, 0.7, 20.0, 15.0)
	require.NoError(t, err)
	require.NoError(t, p.SetTank("back", tank.AL80, tank.Catalog[tank.AL80].ServicePressure, gasmix.Air()))
	require.NoError(t, p.AddSegment(20, 30.0))

	_, err = Replan(p)
	var stateErr *plan.StateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestReplanFailsWithAscentErrorWhenCannotSurface(t *testing.T) {
	// Gradient factors pinned arbitrarily close to zero only accept a
	// probed ceiling whose ambient pressure is at or above every tissue
	// pressure. Breathing a 5% O2 / 95% N2 mix, the tissues tend towards
	// 0.95 * ambient - pH2O, which at the first stop (27.432 m, nine
	// STOP_DEPTH_INCs) stays above the ambient pressure one increment
	// shallower, so the diver never leaves that stop: the ascent loop hits
	// its iteration cap and must report AscentError rather than hang, per
	// spec.md §8.6.
	p, err := plan.New(water.Salt, 1e-9, 1e-9, 20.0, 15.0)
	require.NoError(t, err)
	lowO2, err := gasmix.New(0.05)
	require.NoError(t, err)
	require.NoError(t, p.SetTank("back", tank.AL80, tank.Catalog[tank.AL80].ServicePressure, lowO2))
	require.NoError(t, p.AddSegment(2, 30.0))
	require.NoError(t, p.AddSegment(18, 30.0))
	require.NoError(t, p.Finalize())

	_, err = Replan(p)
	require.Error(t, err)

	var ascentErr *AscentError
	require.ErrorAs(t, err, &ascentErr)
	assert.Equal(t, maxIterations, ascentErr.Iterations)
	assert.InDelta(t, 9*stopDepthIncM, ascentErr.StuckDepth, 1e-9)
}
