package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fincity/investing-engine/internal/domain"
	"github.com/fincity/investing-engine/internal/output"
	"github.com/fincity/investing-engine/internal/simulation"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a single seeded portfolio simulation",
	Long: `Simulate one portfolio path month by month and print the result.

The same seed always produces the same path, so results can be shared
and replayed.

Examples:
  investd simulate --profile balanced --start-value 10000 --years 10 --seed test1
  investd simulate --glide-start 0.90,0.08,0.02 --glide-end 0.30,0.50,0.20 --years 30
  investd simulate --profile aggressive --years 5 --crash-at-month 30 --crash-pct 30`,
	RunE: runSimulate,
}

var (
	simProfile      string
	simGlideStart   string
	simGlideEnd     string
	simStartValue   float64
	simYears        int
	simContrib      float64
	simFeesBps      int
	simRebalance    string
	simThresholdPct float64
	simPreset       string
	simCrashMonth   int
	simCrashPct     float64
	simSeed         string
	simFormat       string
)

func init() {
	rootCmd.AddCommand(simulateCmd)
	addParamFlags(simulateCmd)
	simulateCmd.Flags().StringVarP(&simFormat, "format", "o", "console", "output format (console, json, csv)")
}

// addParamFlags registers the simulation parameter flags shared by the
// simulate and montecarlo commands.
func addParamFlags(c *cobra.Command) {
	c.Flags().StringVarP(&simProfile, "profile", "p", "balanced", "risk profile (conservative, balanced, aggressive)")
	c.Flags().StringVar(&simGlideStart, "glide-start", "", "glide path start mix as stocks,bonds,cash (e.g. 0.90,0.08,0.02)")
	c.Flags().StringVar(&simGlideEnd, "glide-end", "", "glide path end mix as stocks,bonds,cash")
	c.Flags().Float64VarP(&simStartValue, "start-value", "v", 10000, "starting portfolio value")
	c.Flags().IntVarP(&simYears, "years", "y", 10, "horizon in years (1-40)")
	c.Flags().Float64VarP(&simContrib, "contrib", "c", 0, "monthly contribution")
	c.Flags().IntVar(&simFeesBps, "fees-bps", 0, "annual fee in basis points")
	c.Flags().StringVarP(&simRebalance, "rebalance", "r", "none", "rebalance policy (none, annual, threshold)")
	c.Flags().Float64Var(&simThresholdPct, "threshold-pct", -1, "threshold drift in percent (default 5)")
	c.Flags().StringVar(&simPreset, "preset", "normal", "return sequence preset (normal, badFirstYears, goodFirstYears)")
	c.Flags().IntVar(&simCrashMonth, "crash-at-month", 0, "inject a stock crash at this month (1-based)")
	c.Flags().Float64Var(&simCrashPct, "crash-pct", 30, "crash severity in percent")
	c.Flags().StringVarP(&simSeed, "seed", "s", "", "simulation seed (number or string; random when empty)")
}

// parseMix parses a "stocks,bonds,cash" fraction triple.
func parseMix(s string) (domain.AssetMix, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return domain.AssetMix{}, fmt.Errorf("mix %q: want three comma-separated fractions", s)
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return domain.AssetMix{}, fmt.Errorf("mix %q: %w", s, err)
		}
		vals[i] = v
	}
	return domain.NewAssetMix(vals[0], vals[1], vals[2]), nil
}

func parseSeedFlag(s string) int64 {
	if s == "" {
		return simulation.RandomSeed()
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return simulation.SeedFromString(s)
}

func buildSimParams() (domain.SimulationParams, error) {
	hundred := decimal.NewFromInt(100)

	params := domain.SimulationParams{
		Profile:        simProfile,
		StartValue:     decimal.NewFromFloat(simStartValue),
		Years:          simYears,
		ContribMonthly: decimal.NewFromFloat(simContrib),
		FeesBps:        simFeesBps,
		Rebalance:      domain.RebalancePolicy(simRebalance),
		Preset:         domain.SequencePreset(simPreset),
		Seed:           parseSeedFlag(simSeed),
	}

	if simGlideStart != "" || simGlideEnd != "" {
		if simGlideStart == "" || simGlideEnd == "" {
			return params, fmt.Errorf("glide path needs both --glide-start and --glide-end")
		}
		start, err := parseMix(simGlideStart)
		if err != nil {
			return params, err
		}
		end, err := parseMix(simGlideEnd)
		if err != nil {
			return params, err
		}
		params.Profile = ""
		params.GlidePath = &domain.GlidePath{Start: start, End: end}
	}

	if simThresholdPct >= 0 {
		params.Threshold = decimal.NewFromFloat(simThresholdPct).Div(hundred)
	}
	if simCrashMonth > 0 {
		params.Shock = &domain.ShockSpec{
			CrashAtMonth: simCrashMonth,
			Severity:     decimal.NewFromFloat(simCrashPct).Div(hundred),
		}
	}
	return params, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	params, err := buildSimParams()
	if err != nil {
		return err
	}

	engine := simulation.NewEngine()
	result, err := engine.Simulate(context.Background(), params)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	return output.WriteFormatted(result, simFormat)
}
