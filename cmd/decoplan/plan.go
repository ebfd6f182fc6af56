package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/m5lapp/decoplanner/gasmix"
	"github.com/m5lapp/decoplanner/plan"
	"github.com/m5lapp/decoplanner/planner"
	"github.com/m5lapp/decoplanner/result"
	"github.com/m5lapp/decoplanner/tank"
	"github.com/m5lapp/decoplanner/water"
)

// waterValue adapts water.Type to pflag.Value so --water rejects anything
// but "fresh"/"salt" at parse time instead of at plan-build time.
type waterValue struct {
	t water.Type
	s string
}

func newWaterValue(def string) *waterValue {
	v := &waterValue{}
	_ = v.Set(def)
	return v
}

func (v *waterValue) String() string { return v.s }
func (v *waterValue) Type() string   { return "water" }
func (v *waterValue) Set(s string) error {
	t, err := parseWater(s)
	if err != nil {
		return err
	}
	v.t, v.s = t, strings.ToLower(s)
	return nil
}

var (
	waterFlagValue = newWaterValue("salt")
	gfLowFlag      float64
	gfHighFlag     float64
	scrWorkFlag    float64
	scrDecoFlag    float64
	tankFlags      []string
	segmentFlags   []string
)

var _ pflag.Value = (*waterValue)(nil)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build a dive profile, replan its ascent, and print the result",
		Example: `  decoplan plan \
    --water salt --gf-low 0.3 --gf-high 0.85 --scr-work 20 --scr-deco 15 \
    --tank back:AL80:0.21:200 \
    --segment 2:30 --segment 18:30`,
		RunE: runPlan,
	}

	cmd.Flags().Var(waterFlagValue, "water", "water type: fresh or salt")
	cmd.Flags().Float64Var(&gfLowFlag, "gf-low", 0.3, "gradient factor low (0, 1]")
	cmd.Flags().Float64Var(&gfHighFlag, "gf-high", 0.85, "gradient factor high (0, 1]")
	cmd.Flags().Float64Var(&scrWorkFlag, "scr-work", 20.0, "working surface consumption rate (L/min)")
	cmd.Flags().Float64Var(&scrDecoFlag, "scr-deco", 15.0, "deco surface consumption rate (L/min)")
	cmd.Flags().StringArrayVar(&tankFlags, "tank", nil, "tank loadout entry: name:type:fo2:pressureBar (repeatable; first is the starting tank)")
	cmd.Flags().StringArrayVar(&segmentFlags, "segment", nil, "profile segment: durationMin:endDepthM (repeatable, in order)")

	cmd.MarkFlagRequired("tank")
	cmd.MarkFlagRequired("segment")

	return cmd
}

func parseWater(s string) (water.Type, error) {
	switch strings.ToLower(s) {
	case "fresh":
		return water.Fresh, nil
	case "salt":
		return water.Salt, nil
	default:
		return 0, fmt.Errorf("unknown water type %q (want fresh or salt)", s)
	}
}

func parseTankType(s string) (tank.Type, error) {
	switch strings.ToUpper(s) {
	case "AL40":
		return tank.AL40, nil
	case "AL80":
		return tank.AL80, nil
	case "LP108":
		return tank.LP108, nil
	case "D_LP108", "DLP108":
		return tank.DLP108, nil
	default:
		return 0, fmt.Errorf("unknown tank type %q", s)
	}
}

// parseTankFlag parses "name:type:fo2:pressureBar" into its components.
func parseTankFlag(s string) (name string, t tank.Type, mix gasmix.Mix, pressure float64, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		err = fmt.Errorf("invalid --tank %q, want name:type:fo2:pressureBar", s)
		return
	}
	name = parts[0]
	if t, err = parseTankType(parts[1]); err != nil {
		return
	}
	fo2, convErr := strconv.ParseFloat(parts[2], 64)
	if convErr != nil {
		err = fmt.Errorf("invalid fo2 in --tank %q: %w", s, convErr)
		return
	}
	if mix, err = gasmix.New(fo2); err != nil {
		return
	}
	if pressure, err = strconv.ParseFloat(parts[3], 64); err != nil {
		err = fmt.Errorf("invalid pressure in --tank %q: %w", s, err)
		return
	}
	return
}

// parseSegmentFlag parses "durationMin:endDepthM".
func parseSegmentFlag(s string) (durationMin int, endDepth float64, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		err = fmt.Errorf("invalid --segment %q, want durationMin:endDepthM", s)
		return
	}
	if durationMin, err = strconv.Atoi(parts[0]); err != nil {
		err = fmt.Errorf("invalid duration in --segment %q: %w", s, err)
		return
	}
	if endDepth, err = strconv.ParseFloat(parts[1], 64); err != nil {
		err = fmt.Errorf("invalid depth in --segment %q: %w", s, err)
		return
	}
	return
}

func buildPlan() (*plan.Plan, error) {
	p, err := plan.New(waterFlagValue.t, gfLowFlag, gfHighFlag, scrWorkFlag, scrDecoFlag)
	if err != nil {
		return nil, err
	}

	// SetTank selects the tank it registers, so register the tanks last to
	// first to leave the first --tank selected for the segments.
	for i := len(tankFlags) - 1; i >= 0; i-- {
		name, t, mix, pressure, err := parseTankFlag(tankFlags[i])
		if err != nil {
			return nil, err
		}
		if err := p.SetTank(name, t, pressure, mix); err != nil {
			return nil, err
		}
	}

	for _, sf := range segmentFlags {
		durationMin, endDepth, err := parseSegmentFlag(sf)
		if err != nil {
			return nil, err
		}
		if err := p.AddSegment(durationMin, endDepth); err != nil {
			return nil, err
		}
	}

	if err := p.Finalize(); err != nil {
		return nil, err
	}
	return p, nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	input, err := buildPlan()
	if err != nil {
		return fmt.Errorf("building plan: %w", err)
	}
	log.Info().Str("id", input.ID.String()).Msg("decoplan: input profile built")

	out, err := planner.Replan(input)
	if err != nil {
		return fmt.Errorf("replanning ascent: %w", err)
	}
	log.Info().Str("id", out.ID.String()).Int("points", len(out.Profile())).Msg("decoplan: ascent planned")

	res, err := result.Compute(out)
	if err != nil {
		return fmt.Errorf("computing result: %w", err)
	}

	return printResult(cmd, out, res)
}

func printResult(cmd *cobra.Command, p *plan.Plan, res *result.Result) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Profile:")
	tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "time(min)\tdepth(m)\ttank")
	for _, pt := range p.Profile() {
		fmt.Fprintf(tw, "%d\t%.1f\t%s\n", pt.Time, pt.Depth, pt.TankName)
	}
	tw.Flush()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Result: %d samples at a %d-point resolution\n", len(res.Time), len(res.Time))
	for name, pressures := range res.TankPressure {
		fmt.Fprintf(out, "  tank %s: start=%.1f bar, end=%.1f bar\n", name, pressures[0], pressures[len(pressures)-1])
	}
	if len(res.Deco) > 0 {
		last := res.Deco[len(res.Deco)-1]
		fmt.Fprintf(out, "  final ceiling: %.2fm, final gradient: %.3f\n", last.Ceiling, last.Gradient)
	}

	return nil
}
