package buhlmann

import (
	"fmt"
	"math"
)

// pH2O is the partial pressure of water vapour in the lungs, in bar. See
// spec §4.3; this is the Bühlmann value (0.0627 bar), distinct from the
// Schreiner-model value some other decompression models use.
const pH2O = 0.0627

// CompartmentParams holds the time constant and derived M-value-line
// coefficients for one tissue compartment, computed once at construction.
type CompartmentParams struct {
	// HalfLife is the compartment's inert-gas half time, in minutes.
	HalfLife float64
	// A is the y-intercept of the M-value line, in bar.
	A float64
	// B is the reciprocal of the slope of the M-value line (unitless).
	B float64
}

// NewCompartmentParams derives a and b from the half-life t (minutes),
// per spec §4.3: a = 2*t^(-1/3), b = 1.005 - t^(-1/2).
func NewCompartmentParams(halfLife float64) CompartmentParams {
	return CompartmentParams{
		HalfLife: halfLife,
		A:        2.0 * math.Pow(halfLife, -1.0/3.0),
		B:        1.005 - math.Pow(halfLife, -0.5),
	}
}

// Compartment tracks the inert-gas pressure of a single theoretical tissue
// with exponential washout/washin kinetics. It is a type-state: it starts
// uninitialized, and every method that reads or updates its pressure,
// other than Set, panics with a usage fault until it has been initialized
// (Params is always available), matching spec §5 ("a Compartment must be
// initialized... violating this is a programmer error").
type Compartment struct {
	params    CompartmentParams
	pressure  float64
	isSet     bool
}

// NewCompartment constructs an uninitialized Compartment with the given
// params.
func NewCompartment(params CompartmentParams) *Compartment {
	return &Compartment{params: params}
}

// Params returns the compartment's constant coefficients.
func (c *Compartment) Params() CompartmentParams { return c.params }

func (c *Compartment) requireSet(op string) {
	if !c.isSet {
		panic(fmt.Sprintf("buhlmann: Compartment.%s called before Set/Equilibrium: usage fault", op))
	}
}

// Set initializes (or resets) the compartment's current inert-gas pressure
// to pressure (bar).
func (c *Compartment) Set(pressure float64) {
	c.pressure = pressure
	c.isSet = true
}

// Pressure returns the compartment's current inert-gas pressure (bar).
// Panics if the compartment has not been initialized.
func (c *Compartment) Pressure() float64 {
	c.requireSet("Pressure")
	return c.pressure
}

// ConstantPressureUpdate advances the compartment's pressure over duration
// (minutes) at a constant inspired inert-gas pressure pInsp (bar), per
// spec §4.3:
//
//	P' = P + (pInsp - pH2O - P) * (1 - 2^(-duration/halfLife))
func (c *Compartment) ConstantPressureUpdate(pInsp, duration float64) {
	c.requireSet("ConstantPressureUpdate")
	k := 1.0 - math.Pow(2.0, -duration/c.params.HalfLife)
	c.pressure = c.pressure + (pInsp-pH2O-c.pressure)*k
}

// VariablePressureUpdate advances the compartment's pressure over duration
// (minutes), where the inspired inert-gas pressure ramps linearly from
// pInspStart to pInspEnd. Per spec §4.3, this subdivides the duration into
// MODEL_TIME_INC sub-steps and applies the constant-pressure update at
// each sub-step's average inspired pressure.
func (c *Compartment) VariablePressureUpdate(pInspStart, pInspEnd, duration float64) {
	c.requireSet("VariablePressureUpdate")
	if duration <= 0 {
		return
	}

	n := int(math.Ceil(duration / modelTimeIncMin))
	if n < 1 {
		n = 1
	}
	step := duration / float64(n)

	for i := 0; i < n; i++ {
		fracStart := float64(i) / float64(n)
		fracEnd := float64(i+1) / float64(n)
		pStart := pInspStart + (pInspEnd-pInspStart)*fracStart
		pEnd := pInspStart + (pInspEnd-pInspStart)*fracEnd
		avg := (pStart + pEnd) / 2.0
		c.ConstantPressureUpdate(avg, step)
	}
}

// M0 returns the compartment's surface M-value: the tolerated inert-gas
// pressure were the diver instantaneously at the surface. This is not a
// depth; see spec §4.3.
func (c *Compartment) M0() float64 {
	c.requireSet("M0")
	return (c.pressure - c.params.A) * c.params.B
}

// GradientAt returns the gradient factor the compartment would experience
// if instantaneously exposed to ambient pressure pAmb (bar). Positive
// values mean the compartment is supersaturated relative to the
// environment; values > 1 mean the compartment is beyond its M-value.
func (c *Compartment) GradientAt(pAmb float64) float64 {
	c.requireSet("GradientAt")
	m0 := c.M0()
	return (c.pressure - pAmb) / (c.pressure - m0)
}

// clone returns a deep copy of the compartment (cheap: a few floats).
func (c *Compartment) clone() *Compartment {
	cp := *c
	return &cp
}
