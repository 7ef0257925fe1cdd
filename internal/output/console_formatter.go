package output

import (
	"bytes"
	"fmt"

	"github.com/fincity/investing-engine/internal/domain"
)

// ConsoleFormatter renders a compact human-readable summary with
// yearly balance milestones.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "PORTFOLIO SIMULATION")
	fmt.Fprintln(&buf, "====================")
	fmt.Fprintf(&buf, "Profile: %s  (stocks %s, bonds %s, cash %s)\n",
		result.Profile,
		FormatPercentage(result.Mix.Fraction(domain.ClassStocks)),
		FormatPercentage(result.Mix.Fraction(domain.ClassBonds)),
		FormatPercentage(result.Mix.Fraction(domain.ClassCash)))
	fmt.Fprintf(&buf, "Seed:    %d\n", result.Seed)
	fmt.Fprintf(&buf, "Months:  %d\n", len(result.Path))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "End value:     %s\n", FormatCurrency(result.Stats.EndValue))
	fmt.Fprintf(&buf, "CAGR:          %s\n", FormatPercentage(result.Stats.CAGR))
	fmt.Fprintf(&buf, "Volatility:    %s\n", FormatPercentage(result.Stats.Volatility))
	fmt.Fprintf(&buf, "Max drawdown:  %s\n", FormatPercentage(result.Stats.MaxDrawdown))
	fmt.Fprintf(&buf, "Fees paid:     %s\n", FormatCurrency(result.Stats.FeeTotal))
	if n := len(result.Trades); n > 0 {
		fmt.Fprintf(&buf, "Rebalances:    %d trades\n", n)
	}
	fmt.Fprintln(&buf)

	if len(result.Path) >= 12 {
		fmt.Fprintln(&buf, "Year-end balances")
		fmt.Fprintln(&buf, "-----------------")
		for _, snap := range result.Path {
			if snap.Month%12 != 0 {
				continue
			}
			fmt.Fprintf(&buf, "Year %2d: %14s  (stocks %s, bonds %s, cash %s)\n",
				snap.Month/12,
				FormatCurrency(snap.Total),
				FormatCurrency(snap.Stocks),
				FormatCurrency(snap.Bonds),
				FormatCurrency(snap.Cash))
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, domain.Disclaimer)

	return buf.Bytes(), nil
}
