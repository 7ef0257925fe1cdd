package simulation

import (
	"context"
	"runtime"

	"github.com/shopspring/decimal"

	"github.com/fincity/investing-engine/internal/domain"
)

var one = decimal.NewFromInt(1)

// Engine runs portfolio simulations. The zero value is not usable; construct
// with NewEngine. Engines are safe for concurrent use once configured.
type Engine struct {
	logger  Logger
	workers int
}

// NewEngine creates a simulation engine with a no-op logger and one Monte
// Carlo worker per CPU.
func NewEngine() *Engine {
	return &Engine{
		logger:  NopLogger{},
		workers: runtime.NumCPU(),
	}
}

// SetLogger sets the engine logger. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.logger = NopLogger{}
		return
	}
	e.logger = l
}

// SetWorkers bounds Monte Carlo fan-out. Values below 1 are ignored.
func (e *Engine) SetWorkers(n int) {
	if n >= 1 {
		e.workers = n
	}
}

// Simulate runs one deterministic path. Identical params produce an
// identical result down to every snapshot digit.
func (e *Engine) Simulate(ctx context.Context, params domain.SimulationParams) (*domain.SimulationResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Debugf("simulate: profile=%s months=%d seed=%d rebalance=%s",
		params.ProfileLabel(), params.Months(), params.Seed, params.Rebalance)

	return e.simulatePath(params)
}

// simulatePath executes the monthly loop. Callers must have validated params.
//
// Each month, in order: resolve the target mix, draw returns, apply the
// shock, grow class balances, add the contribution to cash, deduct the
// pro-rata fee, rebalance per policy, snapshot.
func (e *Engine) simulatePath(params domain.SimulationParams) (*domain.SimulationResult, error) {
	months := params.Months()

	initialMix, err := ResolveMix(params, 0)
	if err != nil {
		return nil, err
	}

	profile := params.ReturnProfile()
	h := holdings{
		stocks: params.StartValue.Mul(initialMix.Stocks),
		bonds:  params.StartValue.Mul(initialMix.Bonds),
		cash:   params.StartValue.Mul(initialMix.Cash),
	}

	// Monthly fee fraction of total value: feesBps/10000/12.
	feeFrac := decimal.NewFromInt(int64(params.FeesBps)).
		Div(decimal.NewFromInt(10000)).
		Div(decimal.NewFromInt(12))

	cur := NewCursor(params.Seed)
	path := make([]domain.PortfolioSnapshot, 0, months)
	monthlyReturns := make([]decimal.Decimal, 0, months)
	var trades []domain.TradeRecord
	feeTotal := decimal.Zero

	for month := 1; month <= months; month++ {
		target, err := ResolveMix(params, month)
		if err != nil {
			return nil, err
		}

		var rets MonthReturns
		rets, cur = DrawMonthReturns(profile, params.Preset, month, cur)
		rets = ApplyShock(rets, params.Shock, month)

		before := h.total()
		for _, class := range domain.Classes() {
			grown := h.forClass(class).Mul(one.Add(rets.ForClass(class)))
			h.setClass(class, grown)
		}
		// Growth rate is measured before the contribution lands, so
		// volatility reflects market movement, not deposits.
		if before.IsPositive() {
			monthlyReturns = append(monthlyReturns, h.total().Div(before).Sub(one))
		}

		h.cash = h.cash.Add(params.ContribMonthly)

		if feeFrac.IsPositive() {
			fee := h.total().Mul(feeFrac)
			feeTotal = feeTotal.Add(fee)
			keep := one.Sub(feeFrac)
			for _, class := range domain.Classes() {
				h.setClass(class, h.forClass(class).Mul(keep))
			}
		}

		if needsRebalance(params.Rebalance, params.RebalanceThreshold(), h, target, month) {
			var moved []domain.TradeRecord
			h, moved = rebalance(h, target, month)
			trades = append(trades, moved...)
		}

		path = append(path, domain.PortfolioSnapshot{
			Month:  month,
			Total:  h.total(),
			Stocks: h.stocks,
			Bonds:  h.bonds,
			Cash:   h.cash,
		})
	}

	stats := computeStats(params.StartValue, path, monthlyReturns, feeTotal, params.Years)
	return &domain.SimulationResult{
		Path:    path,
		Trades:  trades,
		Stats:   stats,
		Profile: params.ProfileLabel(),
		Mix:     initialMix,
		Seed:    params.Seed,
	}, nil
}

// holdings tracks per-class balances through the monthly loop.
type holdings struct {
	stocks decimal.Decimal
	bonds  decimal.Decimal
	cash   decimal.Decimal
}

func (h holdings) total() decimal.Decimal {
	return h.stocks.Add(h.bonds).Add(h.cash)
}

func (h holdings) forClass(c domain.Class) decimal.Decimal {
	switch c {
	case domain.ClassStocks:
		return h.stocks
	case domain.ClassBonds:
		return h.bonds
	case domain.ClassCash:
		return h.cash
	}
	return decimal.Zero
}

func (h *holdings) setClass(c domain.Class, v decimal.Decimal) {
	switch c {
	case domain.ClassStocks:
		h.stocks = v
	case domain.ClassBonds:
		h.bonds = v
	case domain.ClassCash:
		h.cash = v
	}
}

// needsRebalance decides whether this month's rebalance step fires.
// Annual fires every 12th month. Threshold fires when any class weight
// drifts beyond the threshold from its target.
func needsRebalance(policy domain.RebalancePolicy, threshold decimal.Decimal, h holdings, target domain.AssetMix, month int) bool {
	switch policy {
	case domain.RebalanceAnnual:
		return month%12 == 0
	case domain.RebalanceThreshold:
		total := h.total()
		if !total.IsPositive() {
			return false
		}
		for _, class := range domain.Classes() {
			drift := h.forClass(class).Div(total).Sub(target.Fraction(class)).Abs()
			if drift.GreaterThan(threshold) {
				return true
			}
		}
	}
	return false
}

// rebalance restores the target mix and records the flows. Overweight
// classes fund underweight ones, paired greedily in canonical class order.
func rebalance(h holdings, target domain.AssetMix, month int) (holdings, []domain.TradeRecord) {
	total := h.total()
	if !total.IsPositive() {
		return h, nil
	}

	type flow struct {
		class  domain.Class
		amount decimal.Decimal
	}
	var sources, sinks []flow
	out := h
	for _, class := range domain.Classes() {
		targetBal := total.Mul(target.Fraction(class))
		delta := targetBal.Sub(h.forClass(class))
		out.setClass(class, targetBal)
		if delta.IsPositive() {
			sinks = append(sinks, flow{class: class, amount: delta})
		} else if delta.IsNegative() {
			sources = append(sources, flow{class: class, amount: delta.Neg()})
		}
	}

	var trades []domain.TradeRecord
	si := 0
	for _, sink := range sinks {
		need := sink.amount
		for need.IsPositive() && si < len(sources) {
			src := &sources[si]
			amt := decimal.Min(need, src.amount)
			if amt.IsPositive() {
				trades = append(trades, domain.TradeRecord{Month: month, From: src.class, To: sink.class, Amount: amt})
			}
			need = need.Sub(amt)
			src.amount = src.amount.Sub(amt)
			if !src.amount.IsPositive() {
				si++
			}
		}
	}
	return out, trades
}
