package tank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m5lapp/decoplanner/helpers"
)

func TestVolumePressureRoundTrip(t *testing.T) {
	spec := Catalog[AL80]
	for _, p := range []float64{0.0, 1.0, 100.0, 207.0} {
		v := VolumeAtPressure(spec, p)
		got := PressureAtVolume(spec, v)
		assert.InDelta(t, p, got, 1e-9)
	}
}

func TestFullAL80CubicFeet(t *testing.T) {
	tk, err := Full(AL80)
	require.NoError(t, err)
	cuft := helpers.LitresToCubicFeet(tk.Volume())
	assert.InDelta(t, 77.4, cuft, 0.05)
}

func TestFullLP108CubicFeet(t *testing.T) {
	tk, err := Full(LP108)
	require.NoError(t, err)
	cuft := helpers.LitresToCubicFeet(tk.Volume())
	assert.InDelta(t, 108.0, cuft, 0.2)
}

func TestDecreaseVolume(t *testing.T) {
	tk, err := Full(AL80)
	require.NoError(t, err)
	start := tk.Volume()

	require.NoError(t, tk.DecreaseVolume(100.0))
	assert.InDelta(t, start-100.0, tk.Volume(), 1e-9)
}

func TestDecreaseVolumeFailsOnOverdraw(t *testing.T) {
	tk, err := NewOfType(AL40, 10.0)
	require.NoError(t, err)
	err = tk.DecreaseVolume(tk.Volume() + 1.0)
	require.Error(t, err)
}

func TestUnknownTankType(t *testing.T) {
	_, err := NewOfType(Type(999), 100.0)
	require.Error(t, err)
}

func TestNewAtPressureAllowsZeroButRejectsNegative(t *testing.T) {
	tk, err := NewAtPressure(Catalog[AL80], 0.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, tk.Volume())

	_, err = NewAtPressure(Catalog[AL80], -1.0)
	require.Error(t, err)
}
