// Package result re-samples a finalized Plan onto a uniform, fine time
// grid (spec.md §4.7): piecewise-linear depth, per-tank pressure
// simulation, and a fresh Bühlmann tissue simulation, with the two
// simulations run in parallel.
package result

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/m5lapp/decoplanner/buhlmann"
	"github.com/m5lapp/decoplanner/gasmix"
	"github.com/m5lapp/decoplanner/helpers"
	"github.com/m5lapp/decoplanner/plan"
	"github.com/m5lapp/decoplanner/tank"
	"github.com/m5lapp/decoplanner/water"
)

// timeIncSeconds is RESULT_TIME_INC (spec.md §4.7, §6): 6 seconds, which
// divides 1 minute evenly.
const timeIncSeconds = 6.0

// DecoSample holds the per-step Bühlmann state (spec.md §4.7 "deco").
type DecoSample struct {
	Ceiling         float64
	Gradient        float64
	M0s             []float64
	TissuePressures []float64
	Ceilings        []float64
	Gradients       []float64
}

// Result is the fine-grained, fully re-sampled output of a finalized
// Plan: per-step arrays of time, depth, ambient pressure, per-tank
// pressure, and tissue/deco state.
type Result struct {
	Time            []float64
	Depth           []float64
	AmbientPressure []float64
	TankPressure    map[string][]float64
	Deco            []DecoSample
}

// Compute re-samples plan onto a uniform RESULT_TIME_INC grid and runs the
// tank-consumption and tissue simulations in parallel (spec.md §2 item 9,
// §4.7).
func Compute(p *plan.Plan) (*Result, error) {
	if !p.Finalized() {
		return nil, &plan.StateError{Op: "Compute", Message: "plan is not finalized"}
	}

	profile := p.Profile()
	tEnd := float64(profile[len(profile)-1].Time) * 60.0
	n := int(tEnd/timeIncSeconds) + 1

	times := make([]float64, n)
	profileTimes := make([]float64, len(profile))
	profileDepths := make([]float64, len(profile))
	for i, pt := range profile {
		profileTimes[i] = float64(pt.Time) * 60.0
		profileDepths[i] = pt.Depth
	}
	for i := 0; i < n; i++ {
		times[i] = float64(i) * timeIncSeconds
	}

	depths, err := helpers.Interpolate(profileTimes, profileDepths, times)
	if err != nil {
		return nil, fmt.Errorf("result: interpolating depth profile: %w", err)
	}

	ambient := make([]float64, n)
	for i, d := range depths {
		ambient[i] = water.PressureFromDepth(d, p.Water())
	}

	activeTankAt := func(tSec float64) string {
		name := profile[0].TankName
		for _, pt := range profile {
			if float64(pt.Time)*60.0 > tSec {
				break
			}
			name = pt.TankName
		}
		return name
	}

	var tankPressure map[string][]float64
	var deco []DecoSample

	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error {
		tp, err := simulateTanks(p, times, depths, activeTankAt)
		if err != nil {
			return err
		}
		tankPressure = tp
		return nil
	})
	g.Go(func() error {
		d, err := simulateDeco(p, times, depths)
		if err != nil {
			return err
		}
		deco = d
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{
		Time:            times,
		Depth:           depths,
		AmbientPressure: ambient,
		TankPressure:    tankPressure,
		Deco:            deco,
	}, nil
}

// simulateTanks computes per-step tank pressures by decrementing each
// tank's volume by its consumption over each fine-grid interval (spec.md
// §4.7). Per spec.md §9, this does not clamp pressure at zero: a tank may
// run dry and its pressure may go negative, which is not treated as a
// core error (spec.md §7 kind 4) but is logged as a warning.
func simulateTanks(p *plan.Plan, times, depths []float64, activeTankAt func(float64) string) (map[string][]float64, error) {
	cfgs := p.Tanks()
	tanks := make(map[string]*tank.Tank, len(cfgs))
	pressures := make(map[string][]float64, len(cfgs))
	warned := make(map[string]bool, len(cfgs))

	for name, cfg := range cfgs {
		tk, err := tank.NewOfType(cfg.Type, cfg.StartPressure)
		if err != nil {
			return nil, fmt.Errorf("result: building tank %q: %w", name, err)
		}
		tanks[name] = tk
		pressures[name] = make([]float64, len(times))
		pressures[name][0] = tk.Pressure()
	}

	for i := 1; i < len(times); i++ {
		dt := (times[i] - times[i-1]) / 60.0
		dAvg := (depths[i-1] + depths[i]) / 2.0
		volume := dt * p.ScrWork() * (water.PressureFromDepth(dAvg, p.Water()) / water.SurfacePressure)

		activeName := activeTankAt(times[i-1])
		tk := tanks[activeName]
		tk.SetVolume(tk.Volume() - volume)

		if tk.Pressure() <= 0 && !warned[activeName] {
			log.Warn().Str("tank", activeName).Float64("pressure", tk.Pressure()).
				Msg("result: tank pressure reached zero or below during simulation")
			warned[activeName] = true
		}

		for name, t := range tanks {
			pressures[name][i] = t.Pressure()
		}
	}

	return pressures, nil
}

// simulateDeco drives a fresh Bühlmann model step by step across the fine
// grid, using the average-depth partial pressure of the currently active
// tank (spec.md §4.7 "deco"). Neither SCR value is used by this pass: the
// tissue simulation depends only on the active tank's mix, and
// consumption rates figure only in tank consumption, handled by
// simulateTanks.
func simulateDeco(p *plan.Plan, times, depths []float64) ([]DecoSample, error) {
	profile := p.Profile()
	cfgs := p.Tanks()

	model, err := buhlmann.New(p.Water(), buhlmann.ZHL16A, p.GFLow(), p.GFHigh())
	if err != nil {
		return nil, err
	}
	model.Equilibrium(gasmix.Air().PartialPressure(0.0, p.Water()))

	activeMixAt := func(tSec float64) (gasmix.Mix, error) {
		name := profile[0].TankName
		for _, pt := range profile {
			if float64(pt.Time)*60.0 > tSec {
				break
			}
			name = pt.TankName
		}
		cfg, ok := cfgs[name]
		if !ok {
			return gasmix.Mix{}, fmt.Errorf("result: unknown tank %q in profile", name)
		}
		return cfg.Mix, nil
	}

	samples := make([]DecoSample, len(times))
	samples[0] = snapshotDeco(model, p.Water(), depths[0])

	for i := 1; i < len(times); i++ {
		dt := (times[i] - times[i-1]) / 60.0
		dAvg := (depths[i-1] + depths[i]) / 2.0

		mix, err := activeMixAt(times[i-1])
		if err != nil {
			return nil, err
		}
		pp := mix.PartialPressure(dAvg, p.Water())
		model.Update(pp, dt)

		samples[i] = snapshotDeco(model, p.Water(), depths[i])
	}

	return samples, nil
}

func snapshotDeco(model *buhlmann.Model, w water.Type, depth float64) DecoSample {
	return DecoSample{
		Ceiling:         model.Ceiling(1.0),
		Gradient:        model.GradientAtDepth(depth),
		M0s:             model.M0s(),
		TissuePressures: model.Pressures(),
		Ceilings:        model.Ceilings(1.0),
		Gradients:       model.Gradients(depth),
	}
}
