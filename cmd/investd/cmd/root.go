package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "investd",
	Short: "Portfolio projection engine for the Investing District",
	Long: `Investd runs deterministic portfolio simulations and Monte Carlo
projections for the Investing District of the financial-literacy game.

It provides tools for:
  - Simulating a single portfolio path month by month
  - Running Monte Carlo ensembles with percentile bands
  - Serving the simulation API over HTTP

Every projection is seeded and reproducible: the same inputs always
produce the same path.`,
	SilenceUsage: true,
}

var (
	cfgPath  string
	logLevel string
)

// Execute runs the root command and all registered subcommands.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
