// Package planner implements the iterative ascent planner (spec.md §4.6):
// given a finalized Plan whose profile ends below the surface, it replays
// the profile through a Bühlmann model, then synthesizes a legal
// decompression-stop schedule to the surface.
package planner

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/m5lapp/decoplanner/buhlmann"
	"github.com/m5lapp/decoplanner/gasmix"
	"github.com/m5lapp/decoplanner/helpers"
	"github.com/m5lapp/decoplanner/plan"
	"github.com/m5lapp/decoplanner/water"
)

const (
	// stopDepthIncFt is STOP_DEPTH_INC (spec.md §4.6, §6).
	stopDepthIncFt = 10.0
	// stopTimeIncMin is STOP_TIME_INC in minutes.
	stopTimeIncMin = 1.0
	// ascentRateFtPerMin is ASCENT_RATE (spec.md §4.6, §6).
	ascentRateFtPerMin = 20.0
	// maxIterations bounds the ascent loop so a stuck ceiling is reported
	// as an AscentError instead of hanging (spec.md §7 kind 3).
	maxIterations = 10000
)

var (
	stopDepthIncM     = helpers.FeetToMetres(stopDepthIncFt)
	ascentRateMPerMin = helpers.FeetToMetres(ascentRateFtPerMin)
	// maxDecoPPO2 is MAX_DECO_PPO2 = 1.6 atm (spec.md §4.6, §6), expressed
	// in bar using the same Psurf = 1 atm convention as tank.oneAtm.
	maxDecoPPO2 = 1.6 * water.SurfacePressure
)

// Replan takes a finalized Plan whose profile ends below the surface,
// replays it through a fresh Bühlmann model, and returns a new, finalized
// Plan extending it with a legal ascent to the surface.
func Replan(input *plan.Plan) (*plan.Plan, error) {
	if !input.Finalized() {
		return nil, &plan.StateError{Op: "Replan", Message: "input plan is not finalized"}
	}
	profile := input.Profile()
	last := profile[len(profile)-1]
	if last.Depth <= 0 {
		return nil, &plan.ValidationError{Field: "profile", Message: "input plan must end below the surface"}
	}

	model, err := bootstrap(input)
	if err != nil {
		return nil, err
	}

	out, err := plan.New(input.Water(), input.GFLow(), input.GFHigh(), input.ScrWork(), input.ScrDeco())
	if err != nil {
		return nil, err
	}
	for name, cfg := range input.Tanks() {
		if err := out.SetTank(name, cfg.Type, cfg.StartPressure, cfg.Mix); err != nil {
			return nil, err
		}
	}
	if err := out.SeedProfile(profile); err != nil {
		return nil, err
	}

	gp := buhlmann.NewGradientPolicy(input.GFLow(), input.GFHigh())

	currentDepth := last.Depth
	currentTime := last.Time
	currentTank := last.TankName
	stopDuration := 0

	tanks := input.Tanks()

	for iter := 0; currentDepth > 0; iter++ {
		if iter >= maxIterations {
			return nil, &AscentError{StuckDepth: currentDepth, Iterations: iter}
		}

		mix, mixName, err := bestMix(tanks, currentDepth, input.Water())
		if err != nil {
			return nil, err
		}
		currentTank = mixName

		ceiling := findNextStop(model, gp, mix, currentDepth, input.Water())

		log.Debug().
			Float64("currentDepth", currentDepth).
			Float64("ceiling", ceiling).
			Int("stopDuration", stopDuration).
			Str("tank", currentTank).
			Msg("planner: ascent iteration")

		if ceiling >= currentDepth {
			pp := mix.PartialPressure(currentDepth, input.Water())
			model.Update(pp, stopTimeIncMin)
			stopDuration += int(stopTimeIncMin)
			continue
		}

		if stopDuration > 0 {
			currentTime += stopDuration
			if err := out.AppendPoint(currentTime, currentDepth, currentTank); err != nil {
				return nil, err
			}
			stopDuration = 0
		}

		if !gp.Known() {
			gp.AscendFrom(ceiling)
		}

		ascentDuration := ascentDurationMinutes(currentDepth, ceiling)
		ppStart := mix.PartialPressure(currentDepth, input.Water())
		ppEnd := mix.PartialPressure(ceiling, input.Water())
		model.VariableUpdate(ppStart, ppEnd, float64(ascentDuration))

		currentTime += ascentDuration
		currentDepth = ceiling
		if err := out.AppendPoint(currentTime, currentDepth, currentTank); err != nil {
			return nil, err
		}
	}

	if err := out.Finalize(); err != nil {
		return nil, err
	}
	return out, nil
}

// bootstrap builds a Bühlmann model equilibrated to surface air, then
// replays the input profile segment by segment (spec.md §4.6 "Bootstrap").
func bootstrap(input *plan.Plan) (*buhlmann.Model, error) {
	model, err := buhlmann.New(input.Water(), buhlmann.ZHL16A, input.GFLow(), input.GFHigh())
	if err != nil {
		return nil, err
	}
	model.Equilibrium(gasmix.Air().PartialPressure(0.0, input.Water()))

	profile := input.Profile()
	for i := 0; i < len(profile)-1; i++ {
		start, end := profile[i], profile[i+1]
		cfg, ok := input.Tank(start.TankName)
		if !ok {
			return nil, &plan.ValidationError{Field: "profile", Message: "unknown tank " + start.TankName}
		}

		duration := float64(end.Time - start.Time)
		ppStart := cfg.Mix.PartialPressure(start.Depth, input.Water())
		if start.Depth == end.Depth {
			model.Update(ppStart, duration)
		} else {
			ppEnd := cfg.Mix.PartialPressure(end.Depth, input.Water())
			model.VariableUpdate(ppStart, ppEnd, duration)
		}
	}

	return model, nil
}

// bestMix implements spec.md §4.6 step 1: among loadout tanks breathable
// (PPO2 <= MAX_DECO_PPO2) at depth, pick the richest usable deco mix
// (lowest N2 partial pressure). Ties are broken by the tank with the
// higher starting pressure (spec.md §9: unspecified, "prefer the tank
// with more remaining pressure" — this module has no gas-consumption
// state at plan time, so StartPressure is the best available proxy).
func bestMix(tanks map[string]plan.TankConfig, depth float64, w water.Type) (gasmix.Mix, string, error) {
	var (
		bestName string
		bestCfg  plan.TankConfig
		bestPP   gasmix.PartialPressure
		found    bool
	)

	for name, cfg := range tanks {
		pp := cfg.Mix.PartialPressure(depth, w)
		if pp.O2 > maxDecoPPO2 {
			continue
		}
		if !found {
			bestName, bestCfg, bestPP, found = name, cfg, pp, true
			continue
		}
		switch {
		case pp.N2 < bestPP.N2:
			bestName, bestCfg, bestPP = name, cfg, pp
		case pp.N2 == bestPP.N2 && cfg.StartPressure > bestCfg.StartPressure:
			bestName, bestCfg, bestPP = name, cfg, pp
		case pp.N2 == bestPP.N2 && cfg.StartPressure == bestCfg.StartPressure && name < bestName:
			bestName, bestCfg, bestPP = name, cfg, pp
		}
	}

	if !found {
		return gasmix.Mix{}, "", &NoBreathableGasError{Depth: depth}
	}
	return bestCfg.Mix, bestName, nil
}

// findNextStop implements spec.md §4.6 step 2: probe progressively
// shallower candidate ceilings, accepting each as long as a cloned model's
// gradient at the candidate stays within the policy's allowed gradient.
func findNextStop(model *buhlmann.Model, gp *buhlmann.GradientPolicy, mix gasmix.Mix, currentDepth float64, w water.Type) float64 {
	ceiling := currentDepth
	for {
		testCeiling := helpers.RoundToIncrement(ceiling-stopDepthIncM, stopDepthIncM)
		if testCeiling < 0 {
			testCeiling = 0
		}
		if testCeiling >= ceiling {
			break
		}

		ascentDuration := ascentDurationMinutes(currentDepth, testCeiling)
		clone := model.Clone()
		ppStart := mix.PartialPressure(currentDepth, w)
		ppEnd := mix.PartialPressure(testCeiling, w)
		clone.VariableUpdate(ppStart, ppEnd, float64(ascentDuration))

		allowed := gp.At(testCeiling)
		if clone.GradientAtDepth(testCeiling) <= allowed {
			ceiling = testCeiling
			continue
		}
		break
	}
	return ceiling
}

// ascentDurationMinutes computes the whole-minute ascent duration from
// fromDepth to toDepth at ASCENT_RATE, rounded up to the next
// STOP_TIME_INC (spec.md §4.6 step 2).
func ascentDurationMinutes(fromDepth, toDepth float64) int {
	deltaM := fromDepth - toDepth
	minutes := math.Ceil(deltaM / ascentRateMPerMin / stopTimeIncMin) * stopTimeIncMin
	if minutes < stopTimeIncMin {
		minutes = stopTimeIncMin
	}
	return int(minutes)
}
