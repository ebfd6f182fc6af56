// Package plan implements the validated, immutable-after-finalize dive
// profile container (spec.md §3, §6): water type, gradient-factor and SCR
// pairs, tank loadout, and the ordered sequence of depth/time/tank points
// that make up a dive.
package plan

import (
	"time"

	"github.com/google/uuid"

	"github.com/m5lapp/decoplanner/gasmix"
	"github.com/m5lapp/decoplanner/tank"
	"github.com/m5lapp/decoplanner/water"
)

// Point is one vertex of a Plan's profile: the diver is at Depth metres at
// Time minutes (elapsed since the start of the dive), breathing from the
// tank named TankName.
type Point struct {
	Time     int
	Depth    float64
	TankName string
}

// TankConfig records the loadout entry for one named tank: its catalog
// type, its pressure at the start of the dive, and the gas mix it's
// filled with.
type TankConfig struct {
	Type          tank.Type
	StartPressure float64
	Mix           gasmix.Mix
}

// Plan is the validated, builder-populated, immutable-after-finalize
// container of a dive's profile (spec.md §3). It is constructed with New,
// populated with SetTank/AddSegment, and sealed with Finalize. The
// planner package builds a new output Plan by seeding a fresh Plan's
// profile from a finalized input Plan (via SeedProfile, documented as
// planner-only) and extending it with decompression segments before
// finalizing it in turn.
type Plan struct {
	ID        uuid.UUID
	CreatedAt time.Time

	water   water.Type
	gfLow   float64
	gfHigh  float64
	scrWork float64
	scrDeco float64

	tanks   map[string]TankConfig
	profile []Point

	currentTank string
	finalized   bool
}

// New constructs an empty, unfinalized Plan. gfLow and gfHigh must each be
// in (0, 1] with gfLow <= gfHigh (spec.md §3, §4.5); scrWork and scrDeco
// must be strictly positive.
func New(w water.Type, gfLow, gfHigh, scrWork, scrDeco float64) (*Plan, error) {
	if gfLow <= 0.0 || gfLow > 1.0 {
		return nil, newValidationError("gfLow", "must be in (0, 1], got %f", gfLow)
	}
	if gfHigh <= 0.0 || gfHigh > 1.0 {
		return nil, newValidationError("gfHigh", "must be in (0, 1], got %f", gfHigh)
	}
	if gfLow > gfHigh {
		return nil, newValidationError("gfLow", "must be <= gfHigh (%f > %f)", gfLow, gfHigh)
	}
	if scrWork <= 0.0 {
		return nil, newValidationError("scrWork", "must be > 0, got %f", scrWork)
	}
	if scrDeco <= 0.0 {
		return nil, newValidationError("scrDeco", "must be > 0, got %f", scrDeco)
	}

	return &Plan{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		water:     w,
		gfLow:     gfLow,
		gfHigh:    gfHigh,
		scrWork:   scrWork,
		scrDeco:   scrDeco,
		tanks:     make(map[string]TankConfig),
	}, nil
}

func (p *Plan) Water() water.Type    { return p.water }
func (p *Plan) GFLow() float64       { return p.gfLow }
func (p *Plan) GFHigh() float64      { return p.gfHigh }
func (p *Plan) ScrWork() float64     { return p.scrWork }
func (p *Plan) ScrDeco() float64     { return p.scrDeco }
func (p *Plan) Finalized() bool      { return p.finalized }
func (p *Plan) CurrentTank() string  { return p.currentTank }

// Tank returns the named tank's config and whether it exists.
func (p *Plan) Tank(name string) (TankConfig, bool) {
	cfg, ok := p.tanks[name]
	return cfg, ok
}

// Tanks returns a copy of the tank loadout, keyed by name.
func (p *Plan) Tanks() map[string]TankConfig {
	out := make(map[string]TankConfig, len(p.tanks))
	for k, v := range p.tanks {
		out[k] = v
	}
	return out
}

// Profile returns a copy of the profile points recorded so far.
func (p *Plan) Profile() []Point {
	out := make([]Point, len(p.profile))
	copy(out, p.profile)
	return out
}

// LastPoint returns the last recorded profile point, and false if the
// profile is empty.
func (p *Plan) LastPoint() (Point, bool) {
	if len(p.profile) == 0 {
		return Point{}, false
	}
	return p.profile[len(p.profile)-1], true
}

// SetTank registers a named tank in the loadout and selects it as the
// builder's current tank (spec.md §3: "currentTank: the last tank
// selected by the builder"), used by the next AddSegment call.
func (p *Plan) SetTank(name string, t tank.Type, startPressure float64, mix gasmix.Mix) error {
	if p.finalized {
		return newStateError("SetTank", "plan is already finalized")
	}
	if _, ok := tank.Catalog[t]; !ok {
		return newValidationError("tankType", "unknown tank type %v", t)
	}
	if startPressure <= 0 {
		return newValidationError("startPressure", "must be > 0, got an empty tank at %f", startPressure)
	}

	p.tanks[name] = TankConfig{Type: t, StartPressure: startPressure, Mix: mix}
	p.currentTank = name
	return nil
}

// AddSegment appends a segment of durationMin whole minutes ending at
// endDepth metres, breathing from the builder's current tank. If the
// profile is empty, it first seeds profile[0] = (0, 0, currentTank) per
// spec.md §3, then appends the new point at (durationMin, endDepth).
func (p *Plan) AddSegment(durationMin int, endDepth float64) error {
	if p.finalized {
		return newStateError("AddSegment", "plan is already finalized")
	}
	if p.currentTank == "" {
		return newStateError("AddSegment", "no tank selected; call SetTank first")
	}
	if durationMin <= 0 {
		return newValidationError("durationMin", "must be > 0, got %d", durationMin)
	}
	if endDepth < 0 {
		return newValidationError("endDepth", "must be >= 0, got %f", endDepth)
	}

	if len(p.profile) == 0 {
		if err := p.AppendPoint(0, 0, p.currentTank); err != nil {
			return err
		}
	}

	last, _ := p.LastPoint()
	return p.AppendPoint(last.Time+durationMin, endDepth, p.currentTank)
}

// AppendPoint appends a single profile point directly. It is a lower-level
// primitive than AddSegment: exported for the planner package to drive the
// ascent-stop synthesis (spec.md §4.6), which computes absolute times and
// tank names rather than segment durations relative to the builder's
// current tank. Direct callers outside the planner should prefer
// AddSegment/SetTank.
func (p *Plan) AppendPoint(timeMin int, depth float64, tankName string) error {
	if p.finalized {
		return newStateError("AppendPoint", "plan is already finalized")
	}
	if _, ok := p.tanks[tankName]; !ok {
		return newValidationError("tankName", "unknown tank %q", tankName)
	}
	if depth < 0 {
		return newValidationError("depth", "must be >= 0, got %f", depth)
	}
	if last, ok := p.LastPoint(); ok && timeMin <= last.Time {
		return newValidationError("timeMin", "profile times must strictly increase (%d <= %d)", timeMin, last.Time)
	}

	p.profile = append(p.profile, Point{Time: timeMin, Depth: depth, TankName: tankName})
	p.currentTank = tankName
	return nil
}

// SeedProfile replaces the profile wholesale with points (which must
// already satisfy the profile invariants). This is planner-only: it backs
// the replan bootstrap (spec.md §3: "the planner... builds a new Plan
// seeded with the input's profile"), and should not be called by ordinary
// builder code, which should use SetTank/AddSegment instead.
func (p *Plan) SeedProfile(profile []Point) error {
	if p.finalized {
		return newStateError("SeedProfile", "plan is already finalized")
	}
	if len(profile) == 0 {
		return newValidationError("profile", "must be non-empty")
	}
	if profile[0].Time != 0 || profile[0].Depth != 0 {
		return newValidationError("profile", "profile[0] must be (time=0, depth=0)")
	}
	for i := 1; i < len(profile); i++ {
		if profile[i].Time <= profile[i-1].Time {
			return newValidationError("profile", "times must strictly increase at index %d", i)
		}
		if profile[i].Depth < 0 {
			return newValidationError("profile", "negative depth at index %d", i)
		}
	}
	for i, pt := range profile {
		if _, ok := p.tanks[pt.TankName]; !ok {
			return newValidationError("profile", "unknown tank %q at index %d", pt.TankName, i)
		}
	}

	p.profile = append([]Point(nil), profile...)
	p.currentTank = profile[len(profile)-1].TankName
	return nil
}

// Finalize seals the plan: the profile is frozen and the plan becomes
// read-only input to the planner/result packages. Requires at least two
// profile points (spec.md §7, kind 2).
func (p *Plan) Finalize() error {
	if p.finalized {
		return newStateError("Finalize", "plan is already finalized")
	}
	if len(p.profile) < 2 {
		return newStateError("Finalize", "profile needs at least 2 points, has %d", len(p.profile))
	}
	if p.profile[0].Time != 0 || p.profile[0].Depth != 0 {
		return newStateError("Finalize", "profile[0] must be (time=0, depth=0)")
	}

	p.finalized = true
	return nil
}
