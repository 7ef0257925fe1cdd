package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/fincity/investing-engine/internal/domain"
	"github.com/fincity/investing-engine/internal/simulation"
)

var hundred = decimal.NewFromInt(100)

// ToParams converts a wire request into simulation parameters, applying wire
// defaults (annual rebalancing, normal sequence) and resolving the seed.
func (r SimulateRequest) ToParams() (domain.SimulationParams, error) {
	params := domain.SimulationParams{
		Profile:        r.Profile,
		StartValue:     decimal.NewFromFloat(r.StartValue),
		Years:          r.Years,
		ContribMonthly: decimal.NewFromFloat(r.ContribMonthly),
		FeesBps:        r.FeesBps,
		Rebalance:      domain.RebalancePolicy(r.Rebalance),
		Preset:         domain.SequencePreset(r.SequencePreset),
	}

	if r.Rebalance == "" {
		params.Rebalance = domain.RebalanceAnnual
	}
	if r.SequencePreset == "" {
		params.Preset = domain.PresetNormal
	}
	if r.GlidePath != nil {
		params.GlidePath = &domain.GlidePath{
			Start: domain.NewAssetMix(r.GlidePath.Start.Stocks, r.GlidePath.Start.Bonds, r.GlidePath.Start.Cash),
			End:   domain.NewAssetMix(r.GlidePath.End.Stocks, r.GlidePath.End.Bonds, r.GlidePath.End.Cash),
		}
	}
	if r.ThresholdPct != 0 {
		params.Threshold = decimal.NewFromFloat(r.ThresholdPct).Div(hundred)
	}
	if r.Shock != nil {
		params.Shock = &domain.ShockSpec{
			CrashAtMonth: r.Shock.CrashAtMonth,
			Severity:     decimal.NewFromFloat(r.Shock.CrashPct).Div(hundred),
		}
	}

	seed, err := parseSeed(r.Seed)
	if err != nil {
		return params, err
	}
	params.Seed = seed

	return params, nil
}

// parseSeed accepts a JSON number, a string label, or nothing. Absent or
// empty seeds are minted so the response can echo the value used.
func parseSeed(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return simulation.RandomSeed(), nil
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int64(f), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return simulation.RandomSeed(), nil
		}
		return simulation.SeedFromString(s), nil
	}

	return 0, &domain.InvalidParamsError{Field: "seed", Reason: "must be a number or a string"}
}

// NewSimulateResponse converts a simulation result to its wire shape.
func NewSimulateResponse(res *domain.SimulationResult) SimulateResponse {
	path := make([]SnapshotDTO, 0, len(res.Path))
	for _, snap := range res.Path {
		path = append(path, SnapshotDTO{
			Month:  snap.Month,
			Total:  snap.Total.InexactFloat64(),
			Stocks: snap.Stocks.InexactFloat64(),
			Bonds:  snap.Bonds.InexactFloat64(),
			Cash:   snap.Cash.InexactFloat64(),
		})
	}

	trades := make([]TradeDTO, 0, len(res.Trades))
	for _, trade := range res.Trades {
		trades = append(trades, TradeDTO{
			Month:  trade.Month,
			From:   string(trade.From),
			To:     string(trade.To),
			Amount: trade.Amount.InexactFloat64(),
		})
	}

	return SimulateResponse{
		Success: true,
		Stats: StatsDTO{
			EndValue:    res.Stats.EndValue.InexactFloat64(),
			CAGR:        res.Stats.CAGR.InexactFloat64(),
			Volatility:  res.Stats.Volatility.InexactFloat64(),
			MaxDrawdown: res.Stats.MaxDrawdown.InexactFloat64(),
			FeeTotal:    res.Stats.FeeTotal.InexactFloat64(),
		},
		Path:   path,
		Trades: trades,
		Meta:   newMeta(res.Profile, res.Mix, res.Seed),
	}
}

// NewMonteCarloResponse converts an ensemble result to its wire shape.
func NewMonteCarloResponse(res *domain.MonteCarloResult) MonteCarloResponse {
	bands := make([]BandDTO, 0, len(res.Bands))
	for _, band := range res.Bands {
		bands = append(bands, BandDTO{
			Month: band.Month,
			P10:   band.P10.InexactFloat64(),
			P25:   band.P25.InexactFloat64(),
			P50:   band.P50.InexactFloat64(),
			P75:   band.P75.InexactFloat64(),
			P90:   band.P90.InexactFloat64(),
		})
	}

	out := MonteCarloResponse{
		Success: true,
		Runs:    res.Runs,
		Bands:   bands,
		Meta:    newMeta(res.Profile, res.Mix, res.Seed),
	}
	if res.SuccessProb != nil {
		prob := res.SuccessProb.InexactFloat64()
		out.SuccessProb = &prob
	}
	return out
}

func newMeta(profile string, mix domain.AssetMix, seed int64) MetaDTO {
	return MetaDTO{
		Profile: profile,
		Mix: MixDTO{
			Stocks: mix.Stocks.InexactFloat64(),
			Bonds:  mix.Bonds.InexactFloat64(),
			Cash:   mix.Cash.InexactFloat64(),
		},
		Seed:       seed,
		Disclaimer: domain.Disclaimer,
	}
}
