package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m5lapp/decoplanner/gasmix"
	"github.com/m5lapp/decoplanner/plan"
	"github.com/m5lapp/decoplanner/tank"
	"github.com/m5lapp/decoplanner/water"
)

func TestComputeGasUsageAtDepth(t *testing.T) {
	// Point(60s, 10m) -> Point(120s, 10m) with scr.work = 10 L/min in salt
	// water should consume 20 L +/- 0.1 (spec.md §8 scenario 3). A profile
	// always starts at the surface, so the first minute is the descent and
	// only the second minute, held at 10 m, is measured.
	p, err := plan.New(water.Salt, 0.3, 0.7, 10.0, 10.0)
	require.NoError(t, err)
	require.NoError(t, p.SetTank("back", tank.AL80, tank.Catalog[tank.AL80].ServicePressure, gasmix.Air()))
	require.NoError(t, p.AddSegment(1, 10.0))
	require.NoError(t, p.AddSegment(1, 10.0))
	require.NoError(t, p.Finalize())

	res, err := Compute(p)
	require.NoError(t, err)

	pressures := res.TankPressure["back"]
	require.NotEmpty(t, pressures)
	holdStart := int(60.0 / timeIncSeconds)
	startTank, err := tank.NewAtPressure(tank.Catalog[tank.AL80], pressures[holdStart])
	require.NoError(t, err)
	startVolume := startTank.Volume()

	finalTank, err := tank.NewAtPressure(tank.Catalog[tank.AL80], pressures[len(pressures)-1])
	require.NoError(t, err)
	consumed := startVolume - finalTank.Volume()

	assert.InDelta(t, 20.0, consumed, 0.1)
}

func TestComputeResamplesOnFineGrid(t *testing.T) {
	p, err := plan.New(water.Salt, 0.3, 0.7, 20.0, 15.0)
	require.NoError(t, err)
	require.NoError(t, p.SetTank("back", tank.AL80, tank.Catalog[tank.AL80].ServicePressure, gasmix.Air()))
	require.NoError(t, p.AddSegment(1, 10.0))
	require.NoError(t, p.AddSegment(2, 0.0))
	require.NoError(t, p.Finalize())

	res, err := Compute(p)
	require.NoError(t, err)

	require.Equal(t, len(res.Time), len(res.Depth))
	require.Equal(t, len(res.Time), len(res.Deco))
	assert.Equal(t, 0.0, res.Time[0])
	assert.InDelta(t, 6.0, res.Time[1]-res.Time[0], 1e-9)
	assert.Equal(t, 0.0, res.Depth[0])
	assert.InDelta(t, 0.0, res.Depth[len(res.Depth)-1], 1e-9)

	for i, p := range res.AmbientPressure {
		assert.InDelta(t, water.PressureFromDepth(res.Depth[i], water.Salt), p, 1e-9)
	}
}

func TestComputeRejectsUnfinalizedPlan(t *testing.T) {
	p, err := plan.New(water.Salt, 0.3, 0.7, 20.0, 15.0)
	require.NoError(t, err)
	require.NoError(t, p.SetTank("back", tank.AL80, tank.Catalog[tank.AL80].ServicePressure, gasmix.Air()))
	require.NoError(t, p.AddSegment(1, 10.0))

	_, err = Compute(p)
	var stateErr *plan.StateError
	assert.ErrorAs(t, err, &stateErr)
}
