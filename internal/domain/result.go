package domain

import "github.com/shopspring/decimal"

// Disclaimer accompanies every simulation and coach response.
const Disclaimer = "Educational simulation only. Simulated returns are illustrative and are not investment advice."

// PortfolioSnapshot is the end-of-month state of the portfolio.
// Month is 1-based; month 0 never appears in a path.
type PortfolioSnapshot struct {
	Month  int             `json:"month"`
	Total  decimal.Decimal `json:"total"`
	Stocks decimal.Decimal `json:"stocks"`
	Bonds  decimal.Decimal `json:"bonds"`
	Cash   decimal.Decimal `json:"cash"`
}

// TradeRecord describes one leg of a rebalancing move: Amount flowed out of
// From and into To during Month's rebalance step.
type TradeRecord struct {
	Month  int             `json:"month"`
	From   Class           `json:"from"`
	To     Class           `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// SimulationStats summarizes a completed path.
type SimulationStats struct {
	EndValue    decimal.Decimal `json:"endValue"`
	CAGR        decimal.Decimal `json:"cagr"`
	Volatility  decimal.Decimal `json:"volatility"`
	MaxDrawdown decimal.Decimal `json:"maxDrawdown"`
	FeeTotal    decimal.Decimal `json:"feeTotal"`
}

// SimulationResult is a single deterministic path plus its summary.
type SimulationResult struct {
	Path    []PortfolioSnapshot `json:"path"`
	Trades  []TradeRecord       `json:"trades"`
	Stats   SimulationStats     `json:"stats"`
	Profile string              `json:"profile"`
	Mix     AssetMix            `json:"mix"`
	Seed    int64               `json:"seed"`
}

// MonteCarloBand holds the per-month percentile fan of total portfolio value
// across all runs. Percentiles use the nearest-rank method.
type MonteCarloBand struct {
	Month int             `json:"month"`
	P10   decimal.Decimal `json:"p10"`
	P25   decimal.Decimal `json:"p25"`
	P50   decimal.Decimal `json:"p50"`
	P75   decimal.Decimal `json:"p75"`
	P90   decimal.Decimal `json:"p90"`
}

// MonteCarloResult aggregates an ensemble of simulation runs.
// SuccessProb is nil when no target amount was requested.
type MonteCarloResult struct {
	Bands       []MonteCarloBand  `json:"bands"`
	SuccessProb *decimal.Decimal  `json:"successProb,omitempty"`
	Runs        int               `json:"runs"`
	EndValues   []decimal.Decimal `json:"endValues"`
	Profile     string            `json:"profile"`
	Mix         AssetMix          `json:"mix"`
	Seed        int64             `json:"seed"`
}
