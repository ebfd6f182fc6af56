// Package buhlmann implements the Bühlmann ZH-L16A tissue-compartment
// model and the gradient-factor ceiling computation (spec §4.3, §4.4).
package buhlmann

import (
	"fmt"
	"math"

	"github.com/m5lapp/decoplanner/gasmix"
	"github.com/m5lapp/decoplanner/water"
)

// modelTimeIncMin is MODEL_TIME_INC (spec §6), the sub-step size used by
// VariablePressureUpdate, in minutes. 1 second, which divides 1 minute
// evenly.
const modelTimeIncMin = 1.0 / 60.0

// ModelID identifies a compartment-half-life table.
type ModelID int

const (
	// ZHL16A is the original 17-compartment ZH-L16A table (spec §6), with
	// the fastest compartment split into 1a/1b (4 and 5 minute half
	// lives) retained for conservatism.
	ZHL16A ModelID = iota
)

func (m ModelID) String() string {
	switch m {
	case ZHL16A:
		return "ZHL_16A"
	default:
		return "Unknown"
	}
}

// zhl16aHalfLives are the 17 nitrogen half-lives (minutes) of the ZH-L16A
// model, per spec §4.4/§6.
var zhl16aHalfLives = []float64{
	4, 5, 8, 12.5, 18.5, 27, 38.3, 54.3, 77, 109, 146, 187, 239, 305, 390, 498, 635,
}

func halfLivesFor(id ModelID) ([]float64, error) {
	switch id {
	case ZHL16A:
		return zhl16aHalfLives, nil
	default:
		return nil, fmt.Errorf("buhlmann: unknown model id %v", id)
	}
}

// Model is a Bühlmann ZH-L tissue model: an ordered vector of Compartments
// driven together, plus the gradient-factor pair it was built with (spec
// §3, §4.4). Ceiling and Ceilings take the gradient factor as an argument;
// GFLow and GFHigh are not used by them.
type Model struct {
	Water        water.Type
	ID           ModelID
	GFLow        float64
	GFHigh       float64
	Compartments []*Compartment
}

// New constructs a Model with the given water type, half-life table and
// gradient factors. gfLow and gfHigh must each be in (0, 1].
func New(w water.Type, id ModelID, gfLow, gfHigh float64) (*Model, error) {
	if gfLow <= 0.0 || gfLow > 1.0 {
		return nil, fmt.Errorf("buhlmann: gfLow %f out of range (0, 1]", gfLow)
	}
	if gfHigh <= 0.0 || gfHigh > 1.0 {
		return nil, fmt.Errorf("buhlmann: gfHigh %f out of range (0, 1]", gfHigh)
	}

	halfLives, err := halfLivesFor(id)
	if err != nil {
		return nil, err
	}

	compartments := make([]*Compartment, len(halfLives))
	for i, t := range halfLives {
		compartments[i] = NewCompartment(NewCompartmentParams(t))
	}

	return &Model{
		Water:        w,
		ID:           id,
		GFLow:        gfLow,
		GFHigh:       gfHigh,
		Compartments: compartments,
	}, nil
}

// Clone returns a deep copy of the model, cheap because it is just a
// vector of small compartment structs, for use when probing test ceilings
// (spec §5).
func (m *Model) Clone() *Model {
	clones := make([]*Compartment, len(m.Compartments))
	for i, c := range m.Compartments {
		clones[i] = c.clone()
	}
	return &Model{
		Water:        m.Water,
		ID:           m.ID,
		GFLow:        m.GFLow,
		GFHigh:       m.GFHigh,
		Compartments: clones,
	}
}

// Equilibrium initializes every compartment's pressure to pp.N2 less the
// water-vapour pressure pH2O, the value a constant-pressure update at pp.N2
// converges to, i.e. the model is in equilibrium with an environment at
// the given partial pressures.
func (m *Model) Equilibrium(pp gasmix.PartialPressure) {
	for _, c := range m.Compartments {
		c.Set(pp.N2 - pH2O)
	}
}

// Update advances every compartment for duration minutes at the constant
// inspired nitrogen partial pressure pp.N2.
func (m *Model) Update(pp gasmix.PartialPressure, duration float64) {
	for _, c := range m.Compartments {
		c.ConstantPressureUpdate(pp.N2, duration)
	}
}

// VariableUpdate advances every compartment for duration minutes as the
// inspired nitrogen partial pressure ramps linearly from ppStart.N2 to
// ppEnd.N2.
func (m *Model) VariableUpdate(ppStart, ppEnd gasmix.PartialPressure, duration float64) {
	for _, c := range m.Compartments {
		c.VariablePressureUpdate(ppStart.N2, ppEnd.N2, duration)
	}
}

// M0s returns the surface M-value of every compartment.
func (m *Model) M0s() []float64 {
	out := make([]float64, len(m.Compartments))
	for i, c := range m.Compartments {
		out[i] = c.M0()
	}
	return out
}

// Pressures returns the current inert-gas pressure of every compartment.
func (m *Model) Pressures() []float64 {
	out := make([]float64, len(m.Compartments))
	for i, c := range m.Compartments {
		out[i] = c.Pressure()
	}
	return out
}

// Gradients returns the gradient factor of every compartment at the
// ambient pressure corresponding to depth (metres).
func (m *Model) Gradients(depth float64) []float64 {
	pAmb := water.PressureFromDepth(depth, m.Water)
	out := make([]float64, len(m.Compartments))
	for i, c := range m.Compartments {
		out[i] = c.GradientAt(pAmb)
	}
	return out
}

// M0 returns the maximum (most restrictive) surface M-value across all
// compartments.
func (m *Model) M0() float64 {
	return max64(m.M0s())
}

// GradientAtDepth returns the maximum gradient factor across all
// compartments at the given depth.
func (m *Model) GradientAtDepth(depth float64) float64 {
	return max64(m.Gradients(depth))
}

// Ceilings returns, for each compartment, the shallowest depth (metres) to
// which the diver may ascend given the gradient factor gf (in [0, 1]),
// per spec §4.4.
func (m *Model) Ceilings(gf float64) []float64 {
	out := make([]float64, len(m.Compartments))
	for i, c := range m.Compartments {
		tolerableDepth := water.DepthFromPressure(c.M0(), m.Water)
		tissueDepth := water.DepthFromPressure(c.Pressure(), m.Water)
		out[i] = tissueDepth - (tissueDepth-tolerableDepth)*gf
	}
	return out
}

// Ceiling returns the overall ceiling (deepest of the per-compartment
// ceilings) for the gradient factor gf.
func (m *Model) Ceiling(gf float64) float64 {
	return max64(m.Ceilings(gf))
}

func max64(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}
