// Spot-check tool: prints the deterministic draw stream for a seed so
// a path can be verified by hand when a reproducibility question comes up.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fincity/investing-engine/internal/domain"
	"github.com/fincity/investing-engine/internal/simulation"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: print_draws <seed> [months] [profile]")
		return
	}

	seed, err := strconv.ParseInt(os.Args[1], 10, 64)
	if err != nil {
		seed = simulation.SeedFromString(os.Args[1])
	}

	months := 12
	if len(os.Args) > 2 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil && n > 0 {
			months = n
		}
	}

	profileName := "balanced"
	if len(os.Args) > 3 {
		profileName = os.Args[3]
	}
	profile, ok := domain.ProfileByName(profileName)
	if !ok {
		fmt.Printf("unknown profile %q\n", profileName)
		return
	}

	fmt.Printf("seed=%d profile=%s\n", seed, profileName)
	fmt.Printf("%-6s %-8s %12s %12s %12s\n", "month", "index", "stocks", "bonds", "cash")

	cur := simulation.NewCursor(seed)
	for m := 1; m <= months; m++ {
		start := cur.Index()
		var rets simulation.MonthReturns
		rets, cur = simulation.DrawMonthReturns(profile, domain.PresetNormal, m, cur)
		fmt.Printf("%-6d %-8d %12s %12s %12s\n",
			m, start,
			rets.Stocks.StringFixed(6),
			rets.Bonds.StringFixed(6),
			rets.Cash.StringFixed(6))
	}
}
