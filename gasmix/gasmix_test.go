package gasmix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m5lapp/decoplanner/water"
)

func TestNewMixValidation(t *testing.T) {
	tests := []struct {
		name    string
		fo2     float64
		wantErr bool
	}{
		{name: "air-ish", fo2: 0.21, wantErr: false},
		{name: "pure oxygen", fo2: 1.0, wantErr: false},
		{name: "zero", fo2: 0.0, wantErr: true},
		{name: "negative", fo2: -0.1, wantErr: true},
		{name: "over one", fo2: 1.1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.fo2)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.fo2, m.FO2(), 1e-12)
			assert.InDelta(t, 1.0-tt.fo2, m.FN2(), 1e-12)
		})
	}
}

func TestAir(t *testing.T) {
	a := Air()
	assert.InDelta(t, 0.20946, a.FO2(), 1e-9)
	assert.InDelta(t, 0.79054, a.FN2(), 1e-9)
}

func TestPartialPressureAtSurface(t *testing.T) {
	a := Air()
	pp := a.PartialPressure(0.0, water.Fresh)
	assert.InDelta(t, water.SurfacePressure*a.FO2(), pp.O2, 1e-9)
	assert.InDelta(t, water.SurfacePressure*a.FN2(), pp.N2, 1e-9)
}

func TestPartialPressureScalesWithDepth(t *testing.T) {
	a := Air()
	shallow := a.PartialPressure(10.0, water.Salt)
	deep := a.PartialPressure(30.0, water.Salt)
	assert.Greater(t, deep.N2, shallow.N2)
	assert.Greater(t, deep.O2, shallow.O2)
}
