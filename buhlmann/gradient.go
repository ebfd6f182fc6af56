package buhlmann

// GradientPolicy implements the linear gradient-factor-vs-depth rule from
// spec §4.5: gf(d) = gfHigh + (gfLow - gfHigh) * (d / firstStopDepth), so
// gf(firstStopDepth) = gfLow and gf(0) = gfHigh. The slope is undefined
// until the first stop depth is known, mirroring the reference design's
// `Gradient` helper (see DESIGN.md), which lazily computes its slope the
// first time the diver actually starts ascending through stops.
type GradientPolicy struct {
	Low, High float64

	slope      float64
	slopeKnown bool
}

// NewGradientPolicy constructs a policy for the given (low, high)
// gradient-factor pair.
func NewGradientPolicy(low, high float64) *GradientPolicy {
	return &GradientPolicy{Low: low, High: high}
}

// AscendFrom fixes the slope of the policy using the depth of the first
// stop (the deepest point at which gfLow applies). Calling this more than
// once has no effect after the first call.
func (g *GradientPolicy) AscendFrom(firstStopDepth float64) {
	if g.slopeKnown {
		return
	}
	if firstStopDepth == 0 {
		g.slope = 0
	} else {
		g.slope = (g.Low - g.High) / firstStopDepth
	}
	g.slopeKnown = true
}

// Known reports whether AscendFrom has been called yet.
func (g *GradientPolicy) Known() bool { return g.slopeKnown }

// At returns the allowed gradient factor at the given depth. Before
// AscendFrom has been called, this returns Low (spec §4.6: "If the GF
// slope has not yet been initialized... use gfLow").
func (g *GradientPolicy) At(depth float64) float64 {
	if !g.slopeKnown {
		return g.Low
	}
	return g.High + g.slope*depth
}
