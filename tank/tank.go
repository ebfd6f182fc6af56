// Package tank models a scuba cylinder: its physical spec (interior volume,
// service pressure, compressibility factor Z) and the reversible
// pressure/free-gas-volume relation that follows from it.
package tank

import "fmt"

// oneAtm is 1 standard atmosphere in bar, used as the reference pressure in
// the tank volume/pressure relation (spec §4.2).
const oneAtm = 1.01325

// Spec describes the physical characteristics of a cylinder type.
type Spec struct {
	// Size is the interior volume of the tank at 1 atm, in litres.
	Size float64
	// ServicePressure is the tank's rated maximum pressure, in bar.
	ServicePressure float64
	// Z is the real-gas compressibility factor.
	Z float64
}

// Type identifies a catalog cylinder type.
type Type int

const (
	AL40 Type = iota
	AL80
	LP108
	DLP108
)

func (t Type) String() string {
	switch t {
	case AL40:
		return "AL40"
	case AL80:
		return "AL80"
	case LP108:
		return "LP108"
	case DLP108:
		return "D_LP108"
	default:
		return "Unknown"
	}
}

// psiToBar converts pounds per square inch to bar.
func psiToBar(psi float64) float64 { return psi / 14.5038 }

// Catalog holds the known cylinder specs, keyed by Type.
var Catalog = map[Type]Spec{
	AL40:   {Size: 5.8, ServicePressure: psiToBar(3000), Z: 1.045},
	AL80:   {Size: 11.1, ServicePressure: psiToBar(3000), Z: 1.0337},
	LP108:  {Size: 17.0, ServicePressure: psiToBar(2640), Z: 1.0},
	DLP108: {Size: 34.0, ServicePressure: psiToBar(2640), Z: 1.0},
}

// VolumeAtPressure computes the free-gas volume (litres) stored in a tank
// of the given spec at the given pressure (bar).
func VolumeAtPressure(spec Spec, pressure float64) float64 {
	return spec.Size * pressure / (spec.Z * oneAtm)
}

// PressureAtVolume is the inverse of VolumeAtPressure.
func PressureAtVolume(spec Spec, volume float64) float64 {
	return volume * spec.Z * oneAtm / spec.Size
}

// Tank is a cylinder with mutable (pressure, volume) state that is always
// kept consistent via Spec's pressure/volume relation.
type Tank struct {
	spec     Spec
	pressure float64
	volume   float64
}

// NewAtPressure constructs a Tank of the given spec starting at pressure
// (bar). Zero is accepted here: a Tank can legitimately be depleted to
// empty over the course of a simulated dive (see result.simulateTanks).
// Callers building a starting loadout (plan.Plan.SetTank) reject an empty
// starting tank themselves; this constructor only rules out the physically
// impossible negative pressure.
func NewAtPressure(spec Spec, pressure float64) (*Tank, error) {
	if pressure < 0 {
		return nil, fmt.Errorf("tank: negative pressure %f", pressure)
	}
	return &Tank{
		spec:     spec,
		pressure: pressure,
		volume:   VolumeAtPressure(spec, pressure),
	}, nil
}

// NewOfType constructs a Tank from a catalog Type starting at pressure
// (bar).
func NewOfType(t Type, pressure float64) (*Tank, error) {
	spec, ok := Catalog[t]
	if !ok {
		return nil, fmt.Errorf("tank: unknown tank type %v", t)
	}
	return NewAtPressure(spec, pressure)
}

// Full constructs a Tank of the given catalog Type filled to its service
// pressure.
func Full(t Type) (*Tank, error) {
	spec, ok := Catalog[t]
	if !ok {
		return nil, fmt.Errorf("tank: unknown tank type %v", t)
	}
	return NewAtPressure(spec, spec.ServicePressure)
}

// Spec returns the tank's spec.
func (t *Tank) Spec() Spec { return t.spec }

// Pressure returns the tank's current pressure in bar.
func (t *Tank) Pressure() float64 { return t.pressure }

// Volume returns the tank's current free-gas volume in litres.
func (t *Tank) Volume() float64 { return t.volume }

// ServiceVolume returns the free-gas volume at the tank's rated service
// pressure.
func (t *Tank) ServiceVolume() float64 {
	return VolumeAtPressure(t.spec, t.spec.ServicePressure)
}

// SetPressure sets the tank's pressure, updating volume to match.
func (t *Tank) SetPressure(pressure float64) {
	t.pressure = pressure
	t.volume = VolumeAtPressure(t.spec, pressure)
}

// SetVolume sets the tank's free-gas volume, updating pressure to match.
func (t *Tank) SetVolume(volume float64) {
	t.volume = volume
	t.pressure = PressureAtVolume(t.spec, volume)
}

// DecreaseVolume decrements the tank's free-gas volume by delta (litres),
// consistent with some gas having been consumed. It returns an error if
// delta exceeds the tank's current volume, preserving the volume >= 0 /
// pressure >= 0 invariant for direct callers of this API.
//
// Result's re-sampling simulation (package result) does not route through
// this guard: per spec §9, whether a depleted tank's pressure should go
// negative during historical consumption accounting is an open question,
// and the reference behavior there is to let it run negative rather than
// fail the whole simulation.
func (t *Tank) DecreaseVolume(delta float64) error {
	if delta > t.volume {
		return fmt.Errorf("tank: cannot decrease volume by %f, only %f remaining", delta, t.volume)
	}
	t.SetVolume(t.volume - delta)
	return nil
}
