// Package scr converts between Surface Air Consumption (SAC, a pressure
// drop rate in a specific known tank) and Surface Consumption Rate (SCR, a
// free-gas-volume rate), and scales SCR for ambient pressure at depth.
package scr

import (
	"github.com/m5lapp/decoplanner/tank"
	"github.com/m5lapp/decoplanner/water"
)

// FromSac converts a SAC rate (bar/min, measured against a specific tank)
// into an SCR rate (L/min of free gas), using that tank's service
// volume/pressure relation.
func FromSac(sac float64, t *tank.Tank) float64 {
	return sac * (t.ServiceVolume() / t.Spec().ServicePressure)
}

// ToSac converts an SCR rate (L/min of free gas) back into a SAC rate
// (bar/min) for the given tank.
func ToSac(scrRate float64, t *tank.Tank) float64 {
	return scrRate * (t.Spec().ServicePressure / t.ServiceVolume())
}

// AtDepth scales a surface SCR rate by the absolute ambient pressure at the
// given depth, yielding the free-gas-volume consumption rate at depth.
func AtDepth(scrRate, depth float64, w water.Type) float64 {
	p := water.PressureFromDepth(depth, w)
	return scrRate * (p / water.SurfacePressure)
}
