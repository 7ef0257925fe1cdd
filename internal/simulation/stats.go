package simulation

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fincity/investing-engine/internal/domain"
)

// computeStats derives summary statistics from a completed path.
// Monthly growth rates are measured on total value before that month's
// contribution, so stats reflect market movement rather than deposits.
func computeStats(startValue decimal.Decimal, path []domain.PortfolioSnapshot, monthlyReturns []decimal.Decimal, feeTotal decimal.Decimal, years int) domain.SimulationStats {
	stats := domain.SimulationStats{FeeTotal: feeTotal}
	if len(path) == 0 {
		return stats
	}

	stats.EndValue = path[len(path)-1].Total
	stats.CAGR = cagr(startValue, stats.EndValue, years)
	stats.Volatility = standardDeviation(monthlyReturns)
	stats.MaxDrawdown = maxDrawdown(startValue, path)
	return stats
}

// cagr computes the compound annual growth rate from start to end value.
func cagr(start, end decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 || !start.IsPositive() || !end.IsPositive() {
		return decimal.Zero
	}
	startF, _ := start.Float64()
	endF, _ := end.Float64()
	g := math.Pow(endF/startF, 1/float64(years)) - 1
	return decimal.NewFromFloat(g)
}

// standardDeviation is the population standard deviation of the values.
func standardDeviation(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}

	var sum decimal.Decimal
	for _, v := range values {
		sum = sum.Add(v)
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(values))))

	var varianceSum decimal.Decimal
	for _, v := range values {
		diff := v.Sub(mean)
		varianceSum = varianceSum.Add(diff.Mul(diff))
	}
	variance := varianceSum.Div(decimal.NewFromInt(int64(len(values))))

	varianceFloat, _ := variance.Float64()
	return decimal.NewFromFloat(math.Sqrt(varianceFloat))
}

// maxDrawdown is the largest peak-to-trough decline of total value across
// the path, expressed as a positive fraction of the peak.
func maxDrawdown(startValue decimal.Decimal, path []domain.PortfolioSnapshot) decimal.Decimal {
	peak := startValue
	worst := decimal.Zero
	for _, snap := range path {
		if snap.Total.GreaterThan(peak) {
			peak = snap.Total
			continue
		}
		if !peak.IsPositive() {
			continue
		}
		dd := peak.Sub(snap.Total).Div(peak)
		if dd.GreaterThan(worst) {
			worst = dd
		}
	}
	return worst
}

// percentile returns the nearest-rank percentile of values. The slice is
// sorted in place. rank = ceil(p*n/100) in integer math, clamped to at
// least 1, so p50 of a single value is that value.
func percentile(values []decimal.Decimal, p int) decimal.Decimal {
	n := len(values)
	if n == 0 {
		return decimal.Zero
	}
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
	rank := (p*n + 99) / 100
	if rank < 1 {
		rank = 1
	}
	if rank > n {
		rank = n
	}
	return values[rank-1]
}
