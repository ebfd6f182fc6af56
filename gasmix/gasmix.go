// Package gasmix represents a nitrogen/oxygen breathing gas mixture and its
// partial pressures at depth. Helium/Trimix/Heliox mixes are a Non-goal of
// this engine (see spec.md §1) and are not modelled.
package gasmix

import (
	"fmt"

	"github.com/m5lapp/decoplanner/water"
)

// airFO2 is the fraction of oxygen in atmospheric air, matching the source
// project's more precise value (0.20946) rather than the commonly rounded
// 0.21.
const airFO2 = 0.20946

// Mix is an immutable nitrogen/oxygen breathing gas mixture.
type Mix struct {
	fo2 float64
	fn2 float64
}

// PartialPressure holds the partial pressures of oxygen and nitrogen in a
// Mix at some ambient pressure, in bar.
type PartialPressure struct {
	O2 float64
	N2 float64
}

// New constructs a Mix from a fraction of oxygen. The fraction of nitrogen
// is derived as 1 - fo2. fo2 must be in (0, 1].
func New(fo2 float64) (Mix, error) {
	if fo2 <= 0.0 || fo2 > 1.0 {
		return Mix{}, fmt.Errorf("gasmix: invalid FO2 %f, must be in (0, 1]", fo2)
	}
	fn2 := 1.0 - fo2
	if fn2 < 0.0 || fn2 >= 1.0 {
		return Mix{}, fmt.Errorf("gasmix: invalid derived FN2 %f, must be in [0, 1)", fn2)
	}
	return Mix{fo2: fo2, fn2: fn2}, nil
}

// Air is a convenience constructor for atmospheric air.
func Air() Mix {
	m, _ := New(airFO2)
	return m
}

// FO2 returns the fraction of oxygen in the mix.
func (m Mix) FO2() float64 { return m.fo2 }

// FN2 returns the fraction of nitrogen in the mix.
func (m Mix) FN2() float64 { return m.fn2 }

// PartialPressure returns the partial pressures of O2 and N2 for the mix at
// the given depth (metres) and water type.
func (m Mix) PartialPressure(depth float64, w water.Type) PartialPressure {
	p := water.PressureFromDepth(depth, w)
	return PartialPressure{
		O2: m.fo2 * p,
		N2: m.fn2 * p,
	}
}
