package planner

import "fmt"

// AscentError reports that the ascent loop could not reach the surface
// within the iteration cap (spec.md §7, kind 3: numerical exhaustion),
// e.g. because the ceiling never decreases.
type AscentError struct {
	StuckDepth float64
	Iterations int
}

func (e *AscentError) Error() string {
	return fmt.Sprintf("planner: cannot plan ascent, stuck at %.2fm after %d iterations", e.StuckDepth, e.Iterations)
}

// NoBreathableGasError reports that no tank in the loadout has an
// oxygen partial pressure within the accepted deco limit at the current
// depth (a recognized hypoxia-check TODO in spec.md §4.6 step 1 means
// this case is under-specified upstream; this module reports it rather
// than silently picking an unsafe mix).
type NoBreathableGasError struct {
	Depth float64
}

func (e *NoBreathableGasError) Error() string {
	return fmt.Sprintf("planner: no loadout tank is breathable at %.2fm", e.Depth)
}
